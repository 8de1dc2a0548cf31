package command

// Mode identifies the active interpretation of keystrokes. The Vim modes
// are sub-modes of one family; Emacs is a single mode.
type Mode uint8

const (
	// ModeVimNormal is Vim normal (navigation) mode.
	ModeVimNormal Mode = iota
	// ModeVimInsert is Vim insert mode.
	ModeVimInsert
	// ModeVimVisual is Vim visual (selection) mode.
	ModeVimVisual
	// ModeEmacs is Emacs chord-based editing.
	ModeEmacs
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeVimNormal:
		return "vim-normal"
	case ModeVimInsert:
		return "vim-insert"
	case ModeVimVisual:
		return "vim-visual"
	case ModeEmacs:
		return "emacs"
	default:
		return "unknown"
	}
}

// DisplayName returns a status-line friendly name.
func (m Mode) DisplayName() string {
	switch m {
	case ModeVimNormal:
		return "VIM: NORMAL"
	case ModeVimInsert:
		return "VIM: INSERT"
	case ModeVimVisual:
		return "VIM: VISUAL"
	case ModeEmacs:
		return "EMACS"
	default:
		return "UNKNOWN"
	}
}

// IsVim returns true for any Vim sub-mode.
func (m Mode) IsVim() bool {
	return m == ModeVimNormal || m == ModeVimInsert || m == ModeVimVisual
}

// IsInsert returns true if unhandled printable keys insert literally.
// Emacs has no navigation lockout, so it always counts as insert.
func (m Mode) IsInsert() bool {
	return m == ModeVimInsert || m == ModeEmacs
}

// ModeFromName parses a mode name as used in configuration.
// Returns ModeVimNormal, false for unrecognized names.
func ModeFromName(name string) (Mode, bool) {
	switch name {
	case "vim-normal", "vim", "normal":
		return ModeVimNormal, true
	case "vim-insert", "insert":
		return ModeVimInsert, true
	case "vim-visual", "visual":
		return ModeVimVisual, true
	case "emacs":
		return ModeEmacs, true
	default:
		return ModeVimNormal, false
	}
}
