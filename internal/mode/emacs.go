package mode

import (
	"github.com/dshills/modaledit/internal/command"
	"github.com/dshills/modaledit/internal/key"
)

// Prefix identifies a pending Emacs command prefix. A prefix holds for
// exactly one follow-up key and clears whether or not that key resolves to a
// known chord.
type Prefix uint8

const (
	// PrefixNone means no prefix is pending.
	PrefixNone Prefix = iota

	// PrefixBuffer is the buffer-operation prefix (C-x).
	PrefixBuffer

	// PrefixCopy is the user-command prefix (C-c).
	PrefixCopy

	// PrefixMeta is a lone Escape; the next key reads as Alt-modified.
	PrefixMeta
)

// String returns the prefix name.
func (p Prefix) String() string {
	switch p {
	case PrefixBuffer:
		return "C-x"
	case PrefixCopy:
		return "C-c"
	case PrefixMeta:
		return "Meta"
	default:
		return "none"
	}
}

// Emacs is the Emacs chord state machine. It is stateless per keystroke
// except for one pending prefix and a mark-active flag. Plain printable
// characters always insert; there is no navigation lockout.
type Emacs struct {
	prefix Prefix
	mark   bool
}

// NewEmacs creates an Emacs machine with no pending prefix.
func NewEmacs() *Emacs {
	return &Emacs{}
}

// Name returns "emacs".
func (e *Emacs) Name() string { return "emacs" }

// Mode returns ModeEmacs.
func (e *Emacs) Mode() command.Mode { return command.ModeEmacs }

// SetMode clears pending prefix and mark state. Emacs has a single mode.
func (e *Emacs) SetMode(command.Mode) {
	e.prefix = PrefixNone
	e.mark = false
}

// IsInsertMode always reports true: unhandled printable keys insert
// literally.
func (e *Emacs) IsInsertMode() bool { return true }

// MarkActive reports whether a mark has been set and not yet consumed.
func (e *Emacs) MarkActive() bool { return e.mark }

// PendingPrefix returns the pending prefix, if any.
func (e *Emacs) PendingPrefix() Prefix { return e.prefix }

// Pending returns the pending prefix for status display, or "".
func (e *Emacs) Pending() string {
	if e.prefix == PrefixNone {
		return ""
	}
	return e.prefix.String()
}

// HandleKey processes one key event.
func (e *Emacs) HandleKey(ev key.Event) Result {
	switch e.prefix {
	case PrefixBuffer:
		e.prefix = PrefixNone
		if res, ok := e.bufferPrefixKey(ev); ok {
			return res
		}
		// Non-matching follow-up: the prefix is spent, the key is handled
		// as if it arrived bare.
	case PrefixCopy:
		// C-c chords are reserved for user commands; none are bound.
		e.prefix = PrefixNone
	case PrefixMeta:
		// The key after a lone Escape reads as Alt-modified.
		e.prefix = PrefixNone
		ev.Modifiers = ev.Modifiers.With(key.ModAlt)
	}

	if ev.IsEscape() {
		e.prefix = PrefixMeta
		return consume()
	}

	if ev.Modifiers.HasCtrl() {
		return e.ctrlKey(ev)
	}
	if ev.Modifiers.HasAlt() {
		return e.altKey(ev)
	}

	return e.plainKey(ev)
}

// ctrlKey dispatches Ctrl-modified keys.
func (e *Emacs) ctrlKey(ev key.Event) Result {
	switch ev.Key {
	case key.KeyHome:
		return consume(command.MoveCursor(command.MoveDocumentStart))
	case key.KeyEnd:
		return consume(command.MoveCursor(command.MoveDocumentEnd))
	case key.KeySpace:
		e.mark = true
		return consume(command.Custom("set_mark"))
	}

	if !ev.IsRune() {
		return passthrough()
	}

	switch ev.Rune {
	// Basic movement
	case 'b':
		return consume(command.MoveCursor(command.MoveLeft))
	case 'f':
		return consume(command.MoveCursor(command.MoveRight))
	case 'p':
		return consume(command.MoveCursor(command.MoveUp))
	case 'n':
		return consume(command.MoveCursor(command.MoveDown))

	// Line movement
	case 'a':
		return consume(command.MoveCursor(command.MoveLineStart))
	case 'e':
		return consume(command.MoveCursor(command.MoveLineEnd))

	// Delete operations
	case 'd':
		return consume(command.DeleteCharForward())
	case 'h':
		return consume(command.DeleteChar())

	// Mark
	case ' ':
		e.mark = true
		return consume(command.Custom("set_mark"))

	// Prefixes
	case 'x':
		e.prefix = PrefixBuffer
		return consume()
	case 'c':
		e.prefix = PrefixCopy
		return consume()
	}

	return passthrough()
}

// altKey dispatches Alt-modified keys.
func (e *Emacs) altKey(ev key.Event) Result {
	switch ev.Key {
	case key.KeyLeft:
		return consume(command.MoveCursor(command.MoveWordLeft))
	case key.KeyRight:
		return consume(command.MoveCursor(command.MoveWordRight))
	}

	if !ev.IsRune() {
		return passthrough()
	}

	switch ev.Rune {
	// Word movement
	case 'f':
		return consume(command.MoveCursor(command.MoveWordRight))
	case 'b':
		return consume(command.MoveCursor(command.MoveWordLeft))

	// Document movement: Alt+Shift+comma / Alt+Shift+period. The host may
	// deliver the shifted rune directly or the base rune with Shift held.
	case '<':
		return consume(command.MoveCursor(command.MoveDocumentStart))
	case '>':
		return consume(command.MoveCursor(command.MoveDocumentEnd))
	case ',':
		if ev.Modifiers.HasShift() {
			return consume(command.MoveCursor(command.MoveDocumentStart))
		}
	case '.':
		if ev.Modifiers.HasShift() {
			return consume(command.MoveCursor(command.MoveDocumentEnd))
		}
	}

	return passthrough()
}

// bufferPrefixKey resolves the key following C-x. The second return value
// reports whether the key matched a chord; unmatched keys fall back to
// ordinary handling.
func (e *Emacs) bufferPrefixKey(ev key.Event) (Result, bool) {
	if !ev.IsRune() {
		return Result{}, false
	}

	if ev.Modifiers.HasCtrl() {
		switch ev.Rune {
		case 's': // C-x C-s
			return consume(command.Custom("save_buffer")), true
		case 'k': // C-x C-k: kill region, only with an active mark
			if e.mark {
				e.mark = false
				return consume(command.Cut()), true
			}
			return consume(), true
		}
		return Result{}, false
	}

	if ev.Modifiers.HasAlt() {
		return Result{}, false
	}

	switch ev.Rune {
	case 'c':
		return consume(command.Copy()), true
	case 'v':
		return consume(command.Paste()), true
	}
	return Result{}, false
}

// plainKey handles unmodified keys: characters always insert literally.
// Printable characters are never suppressed; the host widget keeps its
// default behavior for them.
func (e *Emacs) plainKey(ev key.Event) Result {
	switch {
	case ev.IsBackspace():
		return Result{Commands: []command.Command{command.DeleteChar()}}
	case ev.IsEnter():
		return Result{Commands: []command.Command{command.NewLine()}}
	case ev.Key == key.KeyTab && ev.Modifiers.IsEmpty():
		return Result{Commands: []command.Command{command.InsertChar('\t')}}
	case ev.Key == key.KeyDelete && ev.Modifiers.IsEmpty():
		return Result{Commands: []command.Command{command.DeleteCharForward()}}
	case ev.Key == key.KeySpace && !ev.Modifiers.HasCtrl():
		return Result{Commands: []command.Command{command.InsertChar(' ')}}
	case ev.Key == key.KeyLeft:
		return Result{Commands: []command.Command{command.MoveCursor(command.MoveLeft)}}
	case ev.Key == key.KeyRight:
		return Result{Commands: []command.Command{command.MoveCursor(command.MoveRight)}}
	case ev.Key == key.KeyUp:
		return Result{Commands: []command.Command{command.MoveCursor(command.MoveUp)}}
	case ev.Key == key.KeyDown:
		return Result{Commands: []command.Command{command.MoveCursor(command.MoveDown)}}
	case ev.Key == key.KeyHome:
		return Result{Commands: []command.Command{command.MoveCursor(command.MoveLineStart)}}
	case ev.Key == key.KeyEnd:
		return Result{Commands: []command.Command{command.MoveCursor(command.MoveLineEnd)}}
	case ev.IsChar():
		return Result{Commands: []command.Command{command.InsertChar(ev.Rune)}}
	default:
		return passthrough()
	}
}
