package buffer

import "testing"

func TestInsertChar(t *testing.T) {
	b := New()
	for i, c := range "hello" {
		before := b.Cursor()
		b.InsertChar(c)
		if b.Cursor() != before+1 {
			t.Fatalf("cursor after insert %d = %d, want %d", i, b.Cursor(), before+1)
		}
	}
	if b.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", b.Text(), "hello")
	}

	// Insert in the middle: the character lands at the old cursor offset.
	b.SetCursor(2)
	b.InsertChar('X')
	if b.Text() != "heXllo" {
		t.Errorf("Text() = %q, want %q", b.Text(), "heXllo")
	}
	if b.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", b.Cursor())
	}
}

func TestDeleteBoundaries(t *testing.T) {
	b := NewFromString("ab")

	b.SetCursor(0)
	b.DeleteChar()
	if b.Text() != "ab" || b.Cursor() != 0 {
		t.Errorf("DeleteChar at 0 must be a no-op, got %q cursor %d", b.Text(), b.Cursor())
	}

	b.SetCursor(2)
	b.DeleteCharForward()
	if b.Text() != "ab" || b.Cursor() != 2 {
		t.Errorf("DeleteCharForward at end must be a no-op, got %q cursor %d", b.Text(), b.Cursor())
	}

	b.DeleteChar()
	if b.Text() != "a" || b.Cursor() != 1 {
		t.Errorf("DeleteChar = %q cursor %d, want %q cursor 1", b.Text(), b.Cursor(), "a")
	}

	b.SetCursor(0)
	b.DeleteCharForward()
	if b.Text() != "" || b.Cursor() != 0 {
		t.Errorf("DeleteCharForward = %q cursor %d, want empty cursor 0", b.Text(), b.Cursor())
	}
}

func TestSetTextClampsCursor(t *testing.T) {
	b := NewFromString("hello world")
	b.SetCursor(11)
	b.SetText("hi")
	if b.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", b.Cursor())
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	texts := []string{"", "a", "one\ntwo\nthree", "trailing newline\n"}
	for _, text := range texts {
		b := NewFromString(text)
		b.SetCursor(len(text) / 2)
		b.MoveCursorDocumentStart()
		if b.Cursor() != 0 {
			t.Errorf("%q: document start = %d, want 0", text, b.Cursor())
		}
		b.MoveCursorDocumentEnd()
		if b.Cursor() != b.Len() {
			t.Errorf("%q: document end = %d, want %d", text, b.Cursor(), b.Len())
		}
	}
}

func TestLineColumnRecombine(t *testing.T) {
	text := "abc\ndefg\nhi"
	b := NewFromString(text)
	for offset := 0; offset <= len(text); offset++ {
		b.SetCursor(offset)
		line := b.CurrentLine()
		column := b.CurrentColumn()
		b.MoveTo(line, column)
		if b.Cursor() != offset {
			t.Errorf("offset %d: recombined to %d (line %d col %d)", offset, b.Cursor(), line, column)
		}
	}
}

func TestLineStartEnd(t *testing.T) {
	b := NewFromString("abc\ndefg\nhi")

	b.SetCursor(6) // column 2 of "defg"
	b.MoveToLineStart()
	if b.Cursor() != 4 {
		t.Errorf("line start = %d, want 4", b.Cursor())
	}
	b.MoveToLineEnd()
	if b.Cursor() != 8 {
		t.Errorf("line end = %d, want 8", b.Cursor())
	}

	// First line: start lands at 0.
	b.SetCursor(2)
	b.MoveToLineStart()
	if b.Cursor() != 0 {
		t.Errorf("line start = %d, want 0", b.Cursor())
	}

	// Last line: end lands at buffer end.
	b.SetCursor(10)
	b.MoveToLineEnd()
	if b.Cursor() != 11 {
		t.Errorf("line end = %d, want 11", b.Cursor())
	}
}

func TestVerticalMovement(t *testing.T) {
	b := NewFromString("abc\ndefg\nhi")

	// Column preserved when the destination line is long enough.
	b.SetCursor(2) // line 0, column 2
	b.MoveCursorDown()
	if b.Cursor() != 6 {
		t.Errorf("down from offset 2 = %d, want 6", b.Cursor())
	}

	// Clamped when the destination line is shorter: line 2 is "hi".
	b.SetCursor(6) // line 1, column 2
	b.MoveCursorDown()
	if b.Cursor() != 11 {
		t.Errorf("down from offset 6 = %d, want 11", b.Cursor())
	}

	// Up restores the column where possible.
	b.SetCursor(7) // line 1, column 3
	b.MoveCursorUp()
	if b.Cursor() != 3 {
		t.Errorf("up from offset 7 = %d, want 3 (clamped to line 0 end)", b.Cursor())
	}

	// Boundary no-ops.
	b.SetCursor(1)
	b.MoveCursorUp()
	if b.Cursor() != 1 {
		t.Errorf("up on first line moved cursor to %d", b.Cursor())
	}
	b.SetCursor(10)
	b.MoveCursorDown()
	if b.Cursor() != 10 {
		t.Errorf("down on last line moved cursor to %d", b.Cursor())
	}
}

func TestWordMovement(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		right bool
		want  int
	}{
		{"right to next word", "foo bar baz", 0, true, 4},
		{"right from mid word", "foo bar baz", 1, true, 4},
		{"right across spaces", "foo   bar", 0, true, 6},
		{"right at end", "foo", 3, true, 3},
		{"right last word", "foo bar", 4, true, 7},
		{"left to word start", "foo bar baz", 8, false, 4},
		{"left from mid word", "foo bar baz", 9, false, 8},
		{"left across space", "foo bar", 4, false, 0},
		{"left at start", "foo", 0, false, 0},
		{"left from space run", "foo   bar", 5, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.text)
			b.SetCursor(tt.start)
			if tt.right {
				b.MoveCursorWordRight()
			} else {
				b.MoveCursorWordLeft()
			}
			if b.Cursor() != tt.want {
				t.Errorf("cursor = %d, want %d", b.Cursor(), tt.want)
			}
		})
	}
}

func TestWordMovementSingleRun(t *testing.T) {
	// One call skips exactly one word run, never more.
	b := NewFromString("one two three")
	b.MoveCursorWordRight()
	if b.Cursor() != 4 {
		t.Fatalf("first skip = %d, want 4", b.Cursor())
	}
	b.MoveCursorWordRight()
	if b.Cursor() != 8 {
		t.Fatalf("second skip = %d, want 8", b.Cursor())
	}
}

func TestHorizontalBoundaries(t *testing.T) {
	b := NewFromString("ab")
	b.SetCursor(0)
	b.MoveCursorLeft()
	if b.Cursor() != 0 {
		t.Errorf("left at 0 moved to %d", b.Cursor())
	}
	b.SetCursor(2)
	b.MoveCursorRight()
	if b.Cursor() != 2 {
		t.Errorf("right at end moved to %d", b.Cursor())
	}
}

func TestMoveToClamps(t *testing.T) {
	b := NewFromString("abc\nde")

	b.MoveTo(99, 99)
	if b.Cursor() != 6 {
		t.Errorf("MoveTo(99, 99) = %d, want 6", b.Cursor())
	}

	b.MoveTo(-1, -1)
	if b.Cursor() != 0 {
		t.Errorf("MoveTo(-1, -1) = %d, want 0", b.Cursor())
	}

	b.MoveTo(0, 99)
	if b.Cursor() != 3 {
		t.Errorf("MoveTo(0, 99) = %d, want 3 (line end, before newline)", b.Cursor())
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"a\nb", 2},
		{"a\nb\n", 3},
		{"\n\n", 3},
	}

	for _, tt := range tests {
		b := NewFromString(tt.text)
		if got := b.LineCount(); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestRangeOperations(t *testing.T) {
	b := NewFromString("hello world")

	if got := b.TextRange(0, 5); got != "hello" {
		t.Errorf("TextRange(0, 5) = %q, want %q", got, "hello")
	}
	if got := b.TextRange(5, 0); got != "hello" {
		t.Errorf("reversed TextRange = %q, want %q", got, "hello")
	}
	if got := b.TextRange(6, 99); got != "world" {
		t.Errorf("clamped TextRange = %q, want %q", got, "world")
	}

	b.SetCursor(8)
	b.DeleteRange(0, 6)
	if b.Text() != "world" {
		t.Errorf("Text() = %q, want %q", b.Text(), "world")
	}
	if b.Cursor() != 2 {
		t.Errorf("cursor after delete before it = %d, want 2", b.Cursor())
	}

	// Cursor inside the deleted span collapses to the span start.
	b = NewFromString("hello world")
	b.SetCursor(3)
	b.DeleteRange(1, 6)
	if b.Text() != "hworld" || b.Cursor() != 1 {
		t.Errorf("got %q cursor %d, want %q cursor 1", b.Text(), b.Cursor(), "hworld")
	}
}

func TestInsertText(t *testing.T) {
	b := NewFromString("ad")
	b.SetCursor(1)
	b.InsertText("bc")
	if b.Text() != "abcd" {
		t.Errorf("Text() = %q, want %q", b.Text(), "abcd")
	}
	if b.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", b.Cursor())
	}

	b.InsertText("")
	if b.Text() != "abcd" || b.Cursor() != 3 {
		t.Error("empty insert must be a no-op")
	}
}

func TestLineIndexConsistencyAfterMutation(t *testing.T) {
	b := NewFromString("ab")
	if b.LineCount() != 1 {
		t.Fatalf("LineCount = %d, want 1", b.LineCount())
	}
	b.SetCursor(1)
	b.InsertNewline()
	if b.LineCount() != 2 {
		t.Errorf("LineCount after newline = %d, want 2", b.LineCount())
	}
	if b.CurrentLine() != 1 || b.CurrentColumn() != 0 {
		t.Errorf("cursor at line %d col %d, want line 1 col 0", b.CurrentLine(), b.CurrentColumn())
	}
}
