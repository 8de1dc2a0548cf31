// Package command defines the closed vocabulary of buffer-affecting
// operations shared between the mode state machines and the session.
//
// Commands are values: they carry no buffer-specific state and are safe to
// queue and replay. The mode machines produce them; the session executes
// them against a buffer.
package command

import "fmt"

// Movement identifies a cursor movement kind.
type Movement uint8

const (
	// MoveLeft moves one position left.
	MoveLeft Movement = iota
	// MoveRight moves one position right.
	MoveRight
	// MoveUp moves one line up, preserving the column where possible.
	MoveUp
	// MoveDown moves one line down, preserving the column where possible.
	MoveDown
	// MoveWordLeft moves to the start of the current or previous word.
	MoveWordLeft
	// MoveWordRight moves to the start of the next word.
	MoveWordRight
	// MoveLineStart moves to the start of the current line.
	MoveLineStart
	// MoveLineEnd moves to the end of the current line.
	MoveLineEnd
	// MoveDocumentStart moves to offset 0.
	MoveDocumentStart
	// MoveDocumentEnd moves past the last character.
	MoveDocumentEnd
)

// String returns a string representation of the movement.
func (m Movement) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveWordLeft:
		return "wordLeft"
	case MoveWordRight:
		return "wordRight"
	case MoveLineStart:
		return "lineStart"
	case MoveLineEnd:
		return "lineEnd"
	case MoveDocumentStart:
		return "documentStart"
	case MoveDocumentEnd:
		return "documentEnd"
	default:
		return "unknown"
	}
}

// Kind identifies a command variant.
type Kind uint8

const (
	// KindNone is the zero command; executing it is a no-op.
	KindNone Kind = iota
	// KindInsertChar inserts Rune at the cursor.
	KindInsertChar
	// KindDeleteChar deletes the character before the cursor (backspace).
	KindDeleteChar
	// KindDeleteCharForward deletes the character under the cursor.
	KindDeleteCharForward
	// KindMoveCursor moves the cursor by Movement.
	KindMoveCursor
	// KindNewLine inserts a line break at the cursor.
	KindNewLine
	// KindDeleteLine deletes the current line.
	KindDeleteLine
	// KindDeleteWord deletes from the cursor through the next word run.
	KindDeleteWord
	// KindCopy copies the active selection to the default register.
	KindCopy
	// KindCut copies then removes the active selection.
	KindCut
	// KindPaste inserts the default register, replacing any selection.
	KindPaste
	// KindChangeMode switches the active editing mode to Mode.
	KindChangeMode
	// KindCustom is a named hook for operations outside the core
	// vocabulary (e.g. "save_buffer").
	KindCustom
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInsertChar:
		return "insertChar"
	case KindDeleteChar:
		return "deleteChar"
	case KindDeleteCharForward:
		return "deleteCharForward"
	case KindMoveCursor:
		return "moveCursor"
	case KindNewLine:
		return "newLine"
	case KindDeleteLine:
		return "deleteLine"
	case KindDeleteWord:
		return "deleteWord"
	case KindCopy:
		return "copy"
	case KindCut:
		return "cut"
	case KindPaste:
		return "paste"
	case KindChangeMode:
		return "changeMode"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Command is a single buffer-affecting operation. Only the fields relevant
// to Kind are meaningful; the rest stay at their zero values.
type Command struct {
	// Kind selects the variant.
	Kind Kind

	// Rune is the character for KindInsertChar.
	Rune rune

	// Movement is the cursor movement for KindMoveCursor.
	Movement Movement

	// Mode is the target mode for KindChangeMode.
	Mode Mode

	// Name is the hook name for KindCustom.
	Name string
}

// InsertChar returns an insert-character command.
func InsertChar(r rune) Command {
	return Command{Kind: KindInsertChar, Rune: r}
}

// DeleteChar returns a backward-delete command.
func DeleteChar() Command {
	return Command{Kind: KindDeleteChar}
}

// DeleteCharForward returns a forward-delete command.
func DeleteCharForward() Command {
	return Command{Kind: KindDeleteCharForward}
}

// MoveCursor returns a cursor-movement command.
func MoveCursor(m Movement) Command {
	return Command{Kind: KindMoveCursor, Movement: m}
}

// NewLine returns a line-break command.
func NewLine() Command {
	return Command{Kind: KindNewLine}
}

// DeleteLine returns a whole-line delete command.
func DeleteLine() Command {
	return Command{Kind: KindDeleteLine}
}

// DeleteWord returns a word delete command.
func DeleteWord() Command {
	return Command{Kind: KindDeleteWord}
}

// Copy returns a copy-selection command.
func Copy() Command {
	return Command{Kind: KindCopy}
}

// Cut returns a cut-selection command.
func Cut() Command {
	return Command{Kind: KindCut}
}

// Paste returns a paste command.
func Paste() Command {
	return Command{Kind: KindPaste}
}

// ChangeMode returns a mode-change command.
func ChangeMode(m Mode) Command {
	return Command{Kind: KindChangeMode, Mode: m}
}

// Custom returns a named hook command.
func Custom(name string) Command {
	return Command{Kind: KindCustom, Name: name}
}

// String returns a compact representation for tracing.
func (c Command) String() string {
	switch c.Kind {
	case KindInsertChar:
		return fmt.Sprintf("insertChar(%q)", c.Rune)
	case KindMoveCursor:
		return "moveCursor(" + c.Movement.String() + ")"
	case KindChangeMode:
		return "changeMode(" + c.Mode.String() + ")"
	case KindCustom:
		return "custom(" + c.Name + ")"
	default:
		return c.Kind.String()
	}
}
