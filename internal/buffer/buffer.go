// Package buffer implements the text buffer with cursor tracking.
//
// The buffer owns its content exclusively; all mutation flows through its
// methods so the cursor invariant (0 <= cursor <= len) always holds. Every
// operation is total: out-of-range requests clamp to the nearest boundary
// instead of failing, matching the degrade-to-no-op behavior an interactive
// editor needs.
package buffer

import (
	"sort"
	"unicode"
)

// Buffer holds text content and a cursor expressed as a rune offset.
// Line starts are cached and recomputed lazily behind a dirty flag.
type Buffer struct {
	content    []rune
	cursor     int
	lineStarts []int
	dirty      bool
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{
		lineStarts: []int{0},
	}
}

// NewFromString creates a buffer with initial content and the cursor at 0.
func NewFromString(s string) *Buffer {
	b := New()
	b.content = []rune(s)
	b.dirty = true
	return b
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return string(b.content)
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.content)
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to offset, clamped to [0, Len()].
func (b *Buffer) SetCursor(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.content) {
		offset = len(b.content)
	}
	b.cursor = offset
}

// SetText replaces the content. The cursor is clamped to the new length.
func (b *Buffer) SetText(s string) {
	b.content = []rune(s)
	if b.cursor > len(b.content) {
		b.cursor = len(b.content)
	}
	b.dirty = true
}

// InsertChar inserts c at the cursor and advances the cursor by one.
func (b *Buffer) InsertChar(c rune) {
	b.content = append(b.content, 0)
	copy(b.content[b.cursor+1:], b.content[b.cursor:])
	b.content[b.cursor] = c
	b.cursor++
	b.dirty = true
}

// InsertText inserts s at the cursor and advances the cursor past it.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	runes := []rune(s)
	b.content = append(b.content[:b.cursor], append(runes, b.content[b.cursor:]...)...)
	b.cursor += len(runes)
	b.dirty = true
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() {
	b.InsertChar('\n')
}

// DeleteChar removes the character before the cursor (backspace).
// No-op at offset 0.
func (b *Buffer) DeleteChar() {
	if b.cursor == 0 {
		return
	}
	b.cursor--
	b.content = append(b.content[:b.cursor], b.content[b.cursor+1:]...)
	b.dirty = true
}

// DeleteCharForward removes the character under the cursor.
// No-op at end of content.
func (b *Buffer) DeleteCharForward() {
	if b.cursor >= len(b.content) {
		return
	}
	b.content = append(b.content[:b.cursor], b.content[b.cursor+1:]...)
	b.dirty = true
}

// TextRange returns the text in [start, end). Offsets are clamped and
// swapped if reversed.
func (b *Buffer) TextRange(start, end int) string {
	start, end = b.clampRange(start, end)
	return string(b.content[start:end])
}

// DeleteRange removes the text in [start, end). The cursor shifts left if
// it sat inside or after the removed span.
func (b *Buffer) DeleteRange(start, end int) {
	start, end = b.clampRange(start, end)
	if start == end {
		return
	}
	b.content = append(b.content[:start], b.content[end:]...)
	switch {
	case b.cursor >= end:
		b.cursor -= end - start
	case b.cursor > start:
		b.cursor = start
	}
	b.dirty = true
}

func (b *Buffer) clampRange(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(b.content) {
		end = len(b.content)
	}
	if start > len(b.content) {
		start = len(b.content)
	}
	return start, end
}

// MoveCursorLeft moves one position left; no-op at offset 0.
func (b *Buffer) MoveCursorLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveCursorRight moves one position right; no-op at end of content.
func (b *Buffer) MoveCursorRight() {
	if b.cursor < len(b.content) {
		b.cursor++
	}
}

// MoveToLineStart moves to the start of the current line: the offset just
// after the preceding newline, or 0 if there is none.
func (b *Buffer) MoveToLineStart() {
	for b.cursor > 0 && b.content[b.cursor-1] != '\n' {
		b.cursor--
	}
}

// MoveToLineEnd moves to the end of the current line: the offset of the
// next newline, or the end of content.
func (b *Buffer) MoveToLineEnd() {
	for b.cursor < len(b.content) && b.content[b.cursor] != '\n' {
		b.cursor++
	}
}

// MoveCursorWordLeft moves to the beginning of the current or previous
// word. Words are whitespace-delimited runs: skip any whitespace to the
// left, then skip the non-whitespace run.
func (b *Buffer) MoveCursorWordLeft() {
	if b.cursor == 0 {
		return
	}
	for b.cursor > 0 && unicode.IsSpace(b.content[b.cursor-1]) {
		b.cursor--
	}
	for b.cursor > 0 && !unicode.IsSpace(b.content[b.cursor-1]) {
		b.cursor--
	}
}

// MoveCursorWordRight moves to the beginning of the next word: skip the
// rest of the current word, then the following whitespace run.
func (b *Buffer) MoveCursorWordRight() {
	if b.cursor >= len(b.content) {
		return
	}
	for b.cursor < len(b.content) && !unicode.IsSpace(b.content[b.cursor]) {
		b.cursor++
	}
	for b.cursor < len(b.content) && unicode.IsSpace(b.content[b.cursor]) {
		b.cursor++
	}
}

// MoveCursorDocumentStart moves to offset 0.
func (b *Buffer) MoveCursorDocumentStart() {
	b.cursor = 0
}

// MoveCursorDocumentEnd moves past the last character.
func (b *Buffer) MoveCursorDocumentEnd() {
	b.cursor = len(b.content)
}

// updateLineStarts recomputes the line-start index if content changed.
func (b *Buffer) updateLineStarts() {
	if !b.dirty {
		return
	}
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, c := range b.content {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	b.dirty = false
}

// CurrentLine returns the 0-based line containing the cursor.
func (b *Buffer) CurrentLine() int {
	b.updateLineStarts()
	i := sort.SearchInts(b.lineStarts, b.cursor)
	// Exact match means the cursor sits at a line start; otherwise the
	// insertion point is one past the containing line.
	if i < len(b.lineStarts) && b.lineStarts[i] == b.cursor {
		return i
	}
	return i - 1
}

// CurrentColumn returns the 0-based column of the cursor on its line.
func (b *Buffer) CurrentColumn() int {
	b.updateLineStarts()
	return b.cursor - b.lineStarts[b.CurrentLine()]
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.updateLineStarts()
	return len(b.lineStarts)
}

// LineRange returns the [start, end) offsets of the given line, excluding
// its trailing newline. The line number is clamped to the valid range.
func (b *Buffer) LineRange(line int) (start, end int) {
	b.updateLineStarts()
	if line < 0 {
		line = 0
	}
	if line > len(b.lineStarts)-1 {
		line = len(b.lineStarts) - 1
	}
	start = b.lineStarts[line]
	if line < len(b.lineStarts)-1 {
		end = b.lineStarts[line+1] - 1
	} else {
		end = len(b.content)
	}
	return start, end
}

// MoveTo places the cursor at the given line and column, clamping both to
// valid ranges. This is the single routing point for vertical movement.
func (b *Buffer) MoveTo(line, column int) {
	start, end := b.LineRange(line)
	maxColumn := end - start
	if column < 0 {
		column = 0
	}
	if column > maxColumn {
		column = maxColumn
	}
	b.cursor = start + column
}

// MoveCursorUp moves one line up, preserving the column where possible.
func (b *Buffer) MoveCursorUp() {
	line := b.CurrentLine()
	if line == 0 {
		return
	}
	column := b.CurrentColumn()
	b.MoveTo(line-1, column)
}

// MoveCursorDown moves one line down, preserving the column where possible.
func (b *Buffer) MoveCursorDown() {
	line := b.CurrentLine()
	if line >= b.LineCount()-1 {
		return
	}
	column := b.CurrentColumn()
	b.MoveTo(line+1, column)
}
