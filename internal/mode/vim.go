package mode

import (
	"strconv"

	"github.com/dshills/modaledit/internal/command"
	"github.com/dshills/modaledit/internal/key"
)

// Vim is the Vim modal state machine: Normal, Insert, and Visual sub-modes
// with numeric counts and operator-pending composition in Normal mode.
type Vim struct {
	mode          command.Mode
	count         CountState
	operator      *Operator
	pendingMotion bool
	opCount       int  // count captured at operator entry
	register      rune // named register for yank/paste targeting
}

// NewVim creates a Vim machine in Normal mode.
func NewVim() *Vim {
	return &Vim{mode: command.ModeVimNormal}
}

// Name returns "vim".
func (v *Vim) Name() string { return "vim" }

// Mode returns the current sub-mode.
func (v *Vim) Mode() command.Mode { return v.mode }

// IsInsertMode reports whether the machine is in Insert mode.
func (v *Vim) IsInsertMode() bool { return v.mode == command.ModeVimInsert }

// SetMode forces the machine into a sub-mode and clears pending state.
// Non-Vim modes are ignored.
func (v *Vim) SetMode(m command.Mode) {
	if !m.IsVim() {
		return
	}
	v.mode = m
	v.clearPending()
}

func (v *Vim) clearPending() {
	v.count.Reset()
	v.operator = nil
	v.pendingMotion = false
	v.opCount = 0
	v.register = 0
}

// Pending returns the keys awaiting completion (count digits and operator),
// for status display. Empty when nothing is pending.
func (v *Vim) Pending() string {
	if !v.pendingMotion {
		if v.count.Active {
			return strconv.Itoa(v.count.Value)
		}
		return ""
	}

	var s string
	if v.opCount > 1 {
		s = strconv.Itoa(v.opCount)
	}
	if v.operator != nil {
		s += string(v.operator.Key)
	}
	if v.count.Active {
		s += strconv.Itoa(v.count.Value)
	}
	return s
}

// HandleKey processes one key event.
func (v *Vim) HandleKey(ev key.Event) Result {
	if ev.IsEscape() {
		return v.handleEscape()
	}

	switch v.mode {
	case command.ModeVimNormal:
		return v.handleNormal(ev)
	case command.ModeVimInsert:
		return v.handleInsert(ev)
	case command.ModeVimVisual:
		return v.handleVisual(ev)
	default:
		return passthrough()
	}
}

// handleEscape returns the machine to Normal mode from any state and
// cancels pending counts and operators.
func (v *Vim) handleEscape() Result {
	v.clearPending()
	if v.mode == command.ModeVimNormal {
		return consume()
	}
	v.mode = command.ModeVimNormal
	return consume(command.ChangeMode(command.ModeVimNormal))
}

// handleNormal processes keys in Normal mode. Priority order: count
// digits, pending operator motion, then direct key mappings. An unmatched
// key is consumed without commands: Normal mode never lets a key insert a
// literal character.
func (v *Vim) handleNormal(ev key.Event) Result {
	if ev.Key.IsNavigationKey() {
		return v.navigationKey(ev)
	}
	if ev.Key == key.KeyDelete && ev.Modifiers.IsEmpty() {
		return consume(command.DeleteCharForward())
	}

	if !ev.IsRune() {
		return passthrough()
	}
	// Ctrl/Alt chords are not Vim normal-mode vocabulary; leave them to
	// the host.
	if ev.IsModified() {
		return passthrough()
	}

	r := ev.Rune

	// Count digits accumulate first. A lone '0' is the line-start motion.
	if IsCountDigit(r) && (r != '0' || v.count.Active) {
		v.count.AccumulateDigit(r)
		return consume()
	}

	if v.pendingMotion {
		return v.handlePendingMotion(r)
	}

	switch r {
	// Mode entry
	case 'i':
		v.mode = command.ModeVimInsert
		v.count.Reset()
		return consume(command.ChangeMode(command.ModeVimInsert))
	case 'a':
		v.mode = command.ModeVimInsert
		v.count.Reset()
		return consume(
			command.MoveCursor(command.MoveRight),
			command.ChangeMode(command.ModeVimInsert),
		)
	case 'v':
		v.mode = command.ModeVimVisual
		v.count.Reset()
		return consume(command.ChangeMode(command.ModeVimVisual))

	// Basic movement
	case 'h':
		return v.repeatMove(command.MoveLeft)
	case 'j':
		return v.repeatMove(command.MoveDown)
	case 'k':
		return v.repeatMove(command.MoveUp)
	case 'l':
		return v.repeatMove(command.MoveRight)

	// Word movement
	case 'w':
		return v.repeatMove(command.MoveWordRight)
	case 'b':
		return v.repeatMove(command.MoveWordLeft)

	// Line movement
	case '0', '^':
		return consume(command.MoveCursor(command.MoveLineStart))
	case '$':
		return consume(command.MoveCursor(command.MoveLineEnd))

	// Document movement; Shift disambiguates g vs G.
	case 'g':
		if ev.Modifiers.HasShift() {
			return consume(command.MoveCursor(command.MoveDocumentEnd))
		}
		return consume(command.MoveCursor(command.MoveDocumentStart))
	case 'G':
		return consume(command.MoveCursor(command.MoveDocumentEnd))

	// Direct edits
	case 'x':
		return consume(repeat(v.count.Take(), command.DeleteCharForward())...)
	}

	// Operators enter the pending-motion state, taking any count typed
	// before them.
	if op := GetOperator(r); op != nil {
		v.operator = op
		v.pendingMotion = true
		v.opCount = v.count.Take()
		return consume()
	}

	// Unmatched: suppress, never insert.
	v.count.Reset()
	return consume()
}

// handlePendingMotion interprets the key after an operator. The operator's
// own key repeated operates line-wise; an invalid motion cancels the
// operator without mutating the buffer. Counts typed before and after the
// operator multiply (2d3w deletes six words).
func (v *Vim) handlePendingMotion(r rune) Result {
	op := v.operator
	v.operator = nil
	v.pendingMotion = false
	before := v.opCount
	v.opCount = 0
	if before < 1 {
		before = 1
	}
	count := before * v.count.Take()
	if count > maxRepeat {
		count = maxRepeat
	}

	if op == nil || !op.Wired {
		return consume()
	}

	var cmds []command.Command
	switch r {
	case op.Key:
		cmds = repeat(count, command.DeleteLine())
	case 'h':
		cmds = repeat(count, command.DeleteChar())
	case 'l':
		cmds = repeat(count, command.DeleteCharForward())
	case 'w':
		cmds = repeat(count, command.DeleteWord())
	default:
		// Invalid motion cancels the operator.
		return consume()
	}

	if op.EntersInsert {
		v.mode = command.ModeVimInsert
		cmds = append(cmds, command.ChangeMode(command.ModeVimInsert))
	}
	return consume(cmds...)
}

// handleInsert passes characters straight through to the buffer.
func (v *Vim) handleInsert(ev key.Event) Result {
	switch {
	case ev.IsBackspace():
		return consume(command.DeleteChar())
	case ev.IsEnter():
		return consume(command.NewLine())
	case ev.Key == key.KeyTab && ev.Modifiers.IsEmpty():
		return consume(command.InsertChar('\t'))
	case ev.Key == key.KeyDelete && ev.Modifiers.IsEmpty():
		return consume(command.DeleteCharForward())
	case ev.Key.IsNavigationKey():
		return v.navigationKey(ev)
	case ev.IsChar() && !ev.IsModified():
		return consume(command.InsertChar(ev.Rune))
	default:
		return passthrough()
	}
}

// handleVisual mirrors Normal-mode navigation; the session extends the
// selection from the anchor on every movement. Selection-consuming
// operations return to Normal (or Insert for change).
func (v *Vim) handleVisual(ev key.Event) Result {
	if ev.Key.IsNavigationKey() {
		return v.navigationKey(ev)
	}
	if !ev.IsRune() || ev.IsModified() {
		return passthrough()
	}

	switch ev.Rune {
	case 'v':
		v.mode = command.ModeVimNormal
		return consume(command.ChangeMode(command.ModeVimNormal))

	case 'h':
		return consume(command.MoveCursor(command.MoveLeft))
	case 'j':
		return consume(command.MoveCursor(command.MoveDown))
	case 'k':
		return consume(command.MoveCursor(command.MoveUp))
	case 'l':
		return consume(command.MoveCursor(command.MoveRight))
	case 'w':
		return consume(command.MoveCursor(command.MoveWordRight))
	case 'b':
		return consume(command.MoveCursor(command.MoveWordLeft))
	case '0', '^':
		return consume(command.MoveCursor(command.MoveLineStart))
	case '$':
		return consume(command.MoveCursor(command.MoveLineEnd))
	case 'g':
		if ev.Modifiers.HasShift() {
			return consume(command.MoveCursor(command.MoveDocumentEnd))
		}
		return consume(command.MoveCursor(command.MoveDocumentStart))
	case 'G':
		return consume(command.MoveCursor(command.MoveDocumentEnd))

	case 'y':
		v.mode = command.ModeVimNormal
		return consume(command.Copy(), command.ChangeMode(command.ModeVimNormal))
	case 'x', 'd':
		v.mode = command.ModeVimNormal
		return consume(command.Cut(), command.ChangeMode(command.ModeVimNormal))
	case 'c':
		v.mode = command.ModeVimInsert
		return consume(command.Cut(), command.ChangeMode(command.ModeVimInsert))
	case 'p':
		v.mode = command.ModeVimNormal
		return consume(command.Paste(), command.ChangeMode(command.ModeVimNormal))
	}

	// Suppress any other character-producing key.
	return consume()
}

// navigationKey maps arrow/Home/End keys to movements in any sub-mode.
func (v *Vim) navigationKey(ev key.Event) Result {
	switch ev.Key {
	case key.KeyLeft:
		return consume(command.MoveCursor(command.MoveLeft))
	case key.KeyRight:
		return consume(command.MoveCursor(command.MoveRight))
	case key.KeyUp:
		return consume(command.MoveCursor(command.MoveUp))
	case key.KeyDown:
		return consume(command.MoveCursor(command.MoveDown))
	case key.KeyHome:
		return consume(command.MoveCursor(command.MoveLineStart))
	case key.KeyEnd:
		return consume(command.MoveCursor(command.MoveLineEnd))
	default:
		return passthrough()
	}
}

// repeatMove emits a movement repeated by the pending count.
func (v *Vim) repeatMove(m command.Movement) Result {
	return consume(repeat(v.count.Take(), command.MoveCursor(m))...)
}

// repeat returns n copies of cmd.
func repeat(n int, cmd command.Command) []command.Command {
	if n < 1 {
		n = 1
	}
	cmds := make([]command.Command, n)
	for i := range cmds {
		cmds[i] = cmd
	}
	return cmds
}
