package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/modaledit/internal/command"
	"github.com/dshills/modaledit/internal/key"
	"github.com/dshills/modaledit/internal/trace"
)

// typeString feeds plain character events.
func typeString(s *Session, input string) {
	for _, r := range input {
		s.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
}

func escape(s *Session) {
	s.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone))
}

func TestNewDefaultsToVimNormal(t *testing.T) {
	s := New(Config{})
	if s.Mode() != command.ModeVimNormal {
		t.Errorf("Mode() = %v, want vim-normal", s.Mode())
	}
	if s.ID() == uuid.Nil {
		t.Error("session must get a non-zero id")
	}
}

func TestCountedMotion(t *testing.T) {
	// 3 then l moves the cursor to offset 3.
	s := New(Config{Text: "abcdef"})
	typeString(s, "3l")
	if s.CursorOffset() != 3 {
		t.Errorf("cursor = %d, want 3", s.CursorOffset())
	}
}

func TestNormalModeDeleteUnderCursor(t *testing.T) {
	// x on "abc" with cursor 0 yields "bc", cursor stays at 0.
	s := New(Config{Text: "abc"})
	typeString(s, "x")
	if s.Text() != "bc" {
		t.Errorf("Text() = %q, want %q", s.Text(), "bc")
	}
	if s.CursorOffset() != 0 {
		t.Errorf("cursor = %d, want 0", s.CursorOffset())
	}
}

func TestVisualYank(t *testing.T) {
	// Enter visual at 0, move right 5 times, yank: back to normal, cursor
	// still 5, selection captured as "hello".
	s := New(Config{Text: "hello world"})
	typeString(s, "v")
	typeString(s, "lllll")
	if s.SelectedText() != "hello" {
		t.Fatalf("SelectedText() = %q, want %q", s.SelectedText(), "hello")
	}
	typeString(s, "y")

	if s.Mode() != command.ModeVimNormal {
		t.Errorf("mode = %v, want normal", s.Mode())
	}
	if s.CursorOffset() != 5 {
		t.Errorf("cursor = %d, want 5", s.CursorOffset())
	}
	if s.Register() != "hello" {
		t.Errorf("register = %q, want %q", s.Register(), "hello")
	}
	if s.SelectedText() != "" {
		t.Errorf("selection must clear after yank, got %q", s.SelectedText())
	}
}

func TestVisualCutAndPaste(t *testing.T) {
	s := New(Config{Text: "hello world"})
	typeString(s, "vlllllx")
	if s.Text() != " world" {
		t.Fatalf("Text() = %q, want %q", s.Text(), " world")
	}
	if s.Register() != "hello" {
		t.Fatalf("register = %q, want %q", s.Register(), "hello")
	}
	if s.Mode() != command.ModeVimNormal {
		t.Fatalf("mode = %v, want normal", s.Mode())
	}

	// Visual paste replaces the selection with the register.
	typeString(s, "vllllllp")
	if s.Text() != "hello" {
		t.Errorf("Text() after paste = %q, want %q", s.Text(), "hello")
	}
}

func TestVisualChangeEntersInsert(t *testing.T) {
	s := New(Config{Text: "hello world"})
	typeString(s, "vlllllc")
	if s.Text() != " world" {
		t.Errorf("Text() = %q, want %q", s.Text(), " world")
	}
	if s.Mode() != command.ModeVimInsert {
		t.Errorf("mode = %v, want insert", s.Mode())
	}
	typeString(s, "bye")
	if s.Text() != "bye world" {
		t.Errorf("Text() = %q, want %q", s.Text(), "bye world")
	}
}

func TestInsertModeTyping(t *testing.T) {
	s := New(Config{})
	typeString(s, "i")
	typeString(s, "hi")
	s.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	typeString(s, "there")
	escape(s)

	if s.Text() != "hi\nthere" {
		t.Errorf("Text() = %q, want %q", s.Text(), "hi\nthere")
	}
	if s.Mode() != command.ModeVimNormal {
		t.Errorf("mode = %v, want normal", s.Mode())
	}
	if s.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", s.LineCount())
	}
}

func TestDeleteLine(t *testing.T) {
	s := New(Config{Text: "one\ntwo\nthree"})
	typeString(s, "j") // to line 1
	typeString(s, "dd")
	if s.Text() != "one\nthree" {
		t.Errorf("Text() = %q, want %q", s.Text(), "one\nthree")
	}

	// dd on the only line empties the buffer.
	s = New(Config{Text: "solo"})
	typeString(s, "dd")
	if s.Text() != "" {
		t.Errorf("Text() = %q, want empty", s.Text())
	}

	// dd on the last line also removes the preceding newline.
	s = New(Config{Text: "ab\ncd"})
	typeString(s, "j")
	typeString(s, "dd")
	if s.Text() != "ab" {
		t.Errorf("Text() = %q, want %q", s.Text(), "ab")
	}
}

func TestDeleteWord(t *testing.T) {
	s := New(Config{Text: "foo bar baz"})
	typeString(s, "dw")
	if s.Text() != "bar baz" {
		t.Errorf("dw = %q, want %q", s.Text(), "bar baz")
	}

	s = New(Config{Text: "foo bar baz"})
	typeString(s, "d2w")
	if s.Text() != "baz" {
		t.Errorf("d2w = %q, want %q", s.Text(), "baz")
	}
}

func TestOperatorCancelLeavesBufferUntouched(t *testing.T) {
	s := New(Config{Text: "hello"})
	typeString(s, "dq")
	if s.Text() != "hello" {
		t.Errorf("Text() = %q, buffer must be untouched", s.Text())
	}
}

func TestChangeWord(t *testing.T) {
	s := New(Config{Text: "foo bar"})
	typeString(s, "cw")
	if s.Mode() != command.ModeVimInsert {
		t.Fatalf("mode = %v, want insert", s.Mode())
	}
	typeString(s, "new ")
	if s.Text() != "new bar" {
		t.Errorf("Text() = %q, want %q", s.Text(), "new bar")
	}
}

func TestEventFiltering(t *testing.T) {
	// In normal mode, the navigation keys are consumed but unmatched
	// chords pass through.
	s := New(Config{Text: "abc"})
	events := []key.Event{
		key.NewRuneEvent('l', key.ModNone),
		key.NewRuneEvent('s', key.ModCtrl),
		key.NewRuneEvent('x', key.ModNone),
	}
	forward := s.ProcessEvents(events)

	if len(forward) != 1 || !forward[0].Equals(key.NewRuneEvent('s', key.ModCtrl)) {
		t.Errorf("forward = %v, want only C-s", forward)
	}
	// Input slice must be intact.
	if len(events) != 3 {
		t.Error("input slice mutated")
	}
	// And the consumed keys were executed: l moved, x deleted.
	if s.Text() != "ac" || s.CursorOffset() != 1 {
		t.Errorf("Text() = %q cursor %d, want %q cursor 1", s.Text(), s.CursorOffset(), "ac")
	}
}

func TestEmacsBasicEditing(t *testing.T) {
	s := New(Config{Mode: command.ModeEmacs, Text: "hello"})
	if !s.IsInsertMode() {
		t.Fatal("emacs must report insert mode")
	}

	// C-e to line end, then type.
	s.HandleKey(key.NewRuneEvent('e', key.ModCtrl))
	typeString(s, "!")
	if s.Text() != "hello!" {
		t.Errorf("Text() = %q, want %q", s.Text(), "hello!")
	}
}

func TestEmacsPrintablesNeverSuppressed(t *testing.T) {
	s := New(Config{Mode: command.ModeEmacs})

	// Even with a prefix pending, a printable resolves to insertion and is
	// forwarded.
	s.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	if s.HandleKey(key.NewRuneEvent('q', key.ModNone)) {
		t.Error("printable after spent prefix must not be suppressed")
	}
	if s.HandleKey(key.NewRuneEvent('a', key.ModNone)) {
		t.Error("plain printable must not be suppressed")
	}
	if s.Text() != "qa" {
		t.Errorf("Text() = %q, want %q", s.Text(), "qa")
	}
}

func TestEmacsMarkAndKill(t *testing.T) {
	s := New(Config{Mode: command.ModeEmacs, Text: "hello world"})

	// Set mark at 0, move right 5 with C-f, kill the region.
	s.HandleKey(key.NewSpecialEvent(key.KeySpace, key.ModCtrl))
	for i := 0; i < 5; i++ {
		s.HandleKey(key.NewRuneEvent('f', key.ModCtrl))
	}
	if s.SelectedText() != "hello" {
		t.Fatalf("SelectedText() = %q, want %q", s.SelectedText(), "hello")
	}

	s.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	s.HandleKey(key.NewRuneEvent('k', key.ModCtrl))
	if s.Text() != " world" {
		t.Errorf("Text() = %q, want %q", s.Text(), " world")
	}
	if s.Register() != "hello" {
		t.Errorf("register = %q, want %q", s.Register(), "hello")
	}

	// C-x v pastes it back.
	s.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	s.HandleKey(key.NewRuneEvent('v', key.ModNone))
	if s.Text() != "hello world" {
		t.Errorf("Text() = %q, want %q", s.Text(), "hello world")
	}
}

type stubHooks struct {
	calls []string
	err   error
}

func (h *stubHooks) Invoke(name string) error {
	h.calls = append(h.calls, name)
	return h.err
}

func TestCustomCommandReachesHooks(t *testing.T) {
	hooks := &stubHooks{}
	s := New(Config{Mode: command.ModeEmacs, Hooks: hooks})

	// C-x C-s emits Custom("save_buffer").
	s.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	s.HandleKey(key.NewRuneEvent('s', key.ModCtrl))

	if len(hooks.calls) != 1 || hooks.calls[0] != "save_buffer" {
		t.Errorf("hook calls = %v, want [save_buffer]", hooks.calls)
	}
}

func TestCustomCommandWithoutHooks(t *testing.T) {
	// Must not panic.
	s := New(Config{Mode: command.ModeEmacs})
	s.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	s.HandleKey(key.NewRuneEvent('s', key.ModCtrl))
}

func TestTracing(t *testing.T) {
	rec := trace.NewMemory()
	s := New(Config{Text: "abc", Tracer: rec})

	typeString(s, "x")

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(events))
	}
	if events[0].Key != "x" || !events[0].Suppressed {
		t.Errorf("event = %+v", events[0])
	}
	if len(events[0].Commands) != 1 {
		t.Errorf("commands = %v", events[0].Commands)
	}
	if events[0].Mode != "vim-normal" {
		t.Errorf("mode = %q", events[0].Mode)
	}
}

func TestStatusQueries(t *testing.T) {
	s := New(Config{Text: "abc\ndefg\nhi"})
	typeString(s, "jll")

	if s.Line() != 1 || s.Column() != 2 {
		t.Errorf("line %d col %d, want 1/2", s.Line(), s.Column())
	}
	if s.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", s.LineCount())
	}
	if s.CharCount() != 11 {
		t.Errorf("CharCount() = %d, want 11", s.CharCount())
	}
}

func TestCharCountGraphemes(t *testing.T) {
	// A combining sequence counts as one user-perceived character.
	s := New(Config{Text: "e\u0301x"}) // e + combining acute, then x
	if s.CharCount() != 2 {
		t.Errorf("CharCount() = %d, want 2", s.CharCount())
	}
}

func TestPendingKeys(t *testing.T) {
	s := New(Config{})
	typeString(s, "12d")
	if s.PendingKeys() != "12d" {
		t.Errorf("PendingKeys() = %q, want %q", s.PendingKeys(), "12d")
	}
	escape(s)
	if s.PendingKeys() != "" {
		t.Errorf("PendingKeys() after Escape = %q", s.PendingKeys())
	}

	e := New(Config{Mode: command.ModeEmacs})
	e.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	if e.PendingKeys() != "C-x" {
		t.Errorf("PendingKeys() = %q, want %q", e.PendingKeys(), "C-x")
	}
}

func TestInitialVisualMode(t *testing.T) {
	s := New(Config{Mode: command.ModeVimVisual, Text: "abc"})
	if s.Mode() != command.ModeVimVisual {
		t.Fatalf("mode = %v, want visual", s.Mode())
	}
	typeString(s, "lly")
	if s.Register() != "ab" {
		t.Errorf("register = %q, want %q", s.Register(), "ab")
	}
}
