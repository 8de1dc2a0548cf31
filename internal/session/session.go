// Package session implements the key translation layer: it owns a buffer
// and the active mode machine, executes the commands the machine produces,
// and reports which raw key events must be suppressed so a host widget does
// not additionally process them.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/dshills/modaledit/internal/buffer"
	"github.com/dshills/modaledit/internal/command"
	"github.com/dshills/modaledit/internal/key"
	"github.com/dshills/modaledit/internal/log"
	"github.com/dshills/modaledit/internal/mode"
	"github.com/dshills/modaledit/internal/trace"
)

// HookRunner runs named hooks backing Custom commands.
type HookRunner interface {
	Invoke(name string) error
}

// Config configures a session.
type Config struct {
	// Mode is the initial mode. Zero value is Vim Normal.
	Mode command.Mode

	// Text is the initial buffer content.
	Text string

	// Tracer receives diagnostic events. Nil disables tracing.
	Tracer trace.Recorder

	// Hooks runs Custom commands. Nil means custom commands are logged
	// and dropped.
	Hooks HookRunner

	// Logger for session diagnostics. Nil falls back to the process
	// default.
	Logger *log.Logger
}

// Session is a single editing session. It is exclusively owned by one
// goroutine; no method is safe for concurrent use.
type Session struct {
	id        uuid.UUID
	buf       *buffer.Buffer
	machine   mode.Machine
	anchor    int
	anchorSet bool
	register  string
	tracer    trace.Recorder
	hooks     HookRunner
	logger    *log.Logger
}

// New creates a session with the configured initial mode and content.
func New(cfg Config) *Session {
	var m mode.Machine
	if cfg.Mode == command.ModeEmacs {
		m = mode.NewEmacs()
	} else {
		vim := mode.NewVim()
		if cfg.Mode.IsVim() {
			vim.SetMode(cfg.Mode)
		}
		m = vim
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		id:      uuid.New(),
		buf:     buffer.NewFromString(cfg.Text),
		machine: m,
		tracer:  tracer,
		hooks:   cfg.Hooks,
		logger:  logger.WithComponent("session"),
	}
	if cfg.Mode == command.ModeVimVisual {
		s.setAnchor()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// HandleKey processes one key event: it dispatches to the active machine,
// executes the resulting commands against the buffer, and reports whether
// the raw event was consumed (must be suppressed by the host).
func (s *Session) HandleKey(ev key.Event) bool {
	res := s.machine.HandleKey(ev)
	for _, cmd := range res.Commands {
		s.apply(cmd)
	}
	s.record(ev, res)
	return res.Consumed
}

// ProcessEvents consumes an input sequence and returns the filtered
// sequence the host should forward to its default handling. The input slice
// is never mutated.
func (s *Session) ProcessEvents(events []key.Event) []key.Event {
	forward := make([]key.Event, 0, len(events))
	for _, ev := range events {
		if !s.HandleKey(ev) {
			forward = append(forward, ev)
		}
	}
	return forward
}

// apply executes one command against the buffer and session state.
func (s *Session) apply(cmd command.Command) {
	switch cmd.Kind {
	case command.KindInsertChar:
		s.buf.InsertChar(cmd.Rune)
	case command.KindDeleteChar:
		s.buf.DeleteChar()
	case command.KindDeleteCharForward:
		s.buf.DeleteCharForward()
	case command.KindMoveCursor:
		s.move(cmd.Movement)
	case command.KindNewLine:
		s.buf.InsertNewline()
	case command.KindDeleteLine:
		s.deleteLine()
	case command.KindDeleteWord:
		s.deleteWord()
	case command.KindCopy:
		s.copySelection()
	case command.KindCut:
		s.cutSelection()
	case command.KindPaste:
		s.paste()
	case command.KindChangeMode:
		s.changeMode(cmd.Mode)
	case command.KindCustom:
		s.custom(cmd.Name)
	}
}

func (s *Session) move(m command.Movement) {
	switch m {
	case command.MoveLeft:
		s.buf.MoveCursorLeft()
	case command.MoveRight:
		s.buf.MoveCursorRight()
	case command.MoveUp:
		s.buf.MoveCursorUp()
	case command.MoveDown:
		s.buf.MoveCursorDown()
	case command.MoveWordLeft:
		s.buf.MoveCursorWordLeft()
	case command.MoveWordRight:
		s.buf.MoveCursorWordRight()
	case command.MoveLineStart:
		s.buf.MoveToLineStart()
	case command.MoveLineEnd:
		s.buf.MoveToLineEnd()
	case command.MoveDocumentStart:
		s.buf.MoveCursorDocumentStart()
	case command.MoveDocumentEnd:
		s.buf.MoveCursorDocumentEnd()
	}
}

// deleteLine removes the current line including its trailing newline.
func (s *Session) deleteLine() {
	start, end := s.buf.LineRange(s.buf.CurrentLine())
	if end < s.buf.Len() {
		end++ // take the newline with the line
	} else if start > 0 {
		start-- // last line: take the preceding newline instead
	}
	s.buf.SetCursor(start)
	s.buf.DeleteRange(start, end)
}

// deleteWord removes from the cursor to the start of the next word.
func (s *Session) deleteWord() {
	start := s.buf.Cursor()
	s.buf.MoveCursorWordRight()
	end := s.buf.Cursor()
	s.buf.SetCursor(start)
	s.buf.DeleteRange(start, end)
}

// selection returns the normalized [start, end) span between the anchor and
// the cursor. ok is false when no anchor is set.
func (s *Session) selection() (start, end int, ok bool) {
	if !s.anchorSet {
		return 0, 0, false
	}
	start, end = s.anchor, s.buf.Cursor()
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

func (s *Session) copySelection() {
	start, end, ok := s.selection()
	if !ok || start == end {
		return
	}
	s.register = s.buf.TextRange(start, end)
}

func (s *Session) cutSelection() {
	start, end, ok := s.selection()
	if !ok || start == end {
		return
	}
	s.register = s.buf.TextRange(start, end)
	s.buf.DeleteRange(start, end)
	s.buf.SetCursor(start)
	s.clearAnchor()
}

// paste inserts the register at the cursor; with an active selection it
// replaces the selection instead.
func (s *Session) paste() {
	if s.register == "" {
		return
	}
	if start, end, ok := s.selection(); ok && start != end {
		s.buf.DeleteRange(start, end)
		s.buf.SetCursor(start)
		s.clearAnchor()
	}
	s.buf.InsertText(s.register)
}

// changeMode applies an explicit mode transition. The anchor tracks Visual
// entry and exit.
func (s *Session) changeMode(m command.Mode) {
	s.machine.SetMode(m)
	if m == command.ModeVimVisual {
		s.setAnchor()
	} else if m.IsVim() {
		s.clearAnchor()
	}
}

// custom routes a named hook. set_mark is handled by the session itself;
// everything else goes to the configured hook runner.
func (s *Session) custom(name string) {
	if name == "set_mark" {
		s.setAnchor()
		return
	}
	if s.hooks == nil {
		s.logger.Debug("custom command %q dropped: no hook runner", name)
		return
	}
	if err := s.hooks.Invoke(name); err != nil {
		s.logger.Warn("hook %q failed: %v", name, err)
	}
}

func (s *Session) setAnchor() {
	s.anchor = s.buf.Cursor()
	s.anchorSet = true
}

func (s *Session) clearAnchor() {
	s.anchor = 0
	s.anchorSet = false
}

func (s *Session) record(ev key.Event, res mode.Result) {
	cmds := make([]string, len(res.Commands))
	for i, cmd := range res.Commands {
		cmds[i] = cmd.String()
	}
	s.tracer.Record(trace.Event{
		Time:       time.Now(),
		Key:        ev.String(),
		Mode:       s.machine.Mode().String(),
		Commands:   cmds,
		Suppressed: res.Consumed,
	})
}

// Text returns the buffer content.
func (s *Session) Text() string { return s.buf.Text() }

// SetText replaces the buffer content, clamping the cursor.
func (s *Session) SetText(text string) { s.buf.SetText(text) }

// CursorOffset returns the cursor's rune offset.
func (s *Session) CursorOffset() int { return s.buf.Cursor() }

// Line returns the 0-based cursor line.
func (s *Session) Line() int { return s.buf.CurrentLine() }

// Column returns the 0-based cursor column.
func (s *Session) Column() int { return s.buf.CurrentColumn() }

// LineCount returns the number of lines.
func (s *Session) LineCount() int { return s.buf.LineCount() }

// CharCount returns the number of grapheme clusters in the buffer, the
// user-perceived character count for status display.
func (s *Session) CharCount() int {
	return uniseg.GraphemeClusterCount(s.buf.Text())
}

// Mode returns the active mode.
func (s *Session) Mode() command.Mode { return s.machine.Mode() }

// IsInsertMode reports whether plain printable keys currently insert.
func (s *Session) IsInsertMode() bool { return s.machine.IsInsertMode() }

// SelectedText returns the text between the anchor and the cursor, or ""
// when no selection is active.
func (s *Session) SelectedText() string {
	start, end, ok := s.selection()
	if !ok {
		return ""
	}
	return s.buf.TextRange(start, end)
}

// Register returns the content of the unnamed register.
func (s *Session) Register() string { return s.register }

// PendingKeys returns the machine's pending key state for status display
// (count digits, pending operator, or an Emacs prefix).
func (s *Session) PendingKeys() string {
	if p, ok := s.machine.(interface{ Pending() string }); ok {
		return p.Pending()
	}
	return ""
}
