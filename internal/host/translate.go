// Package host adapts a tcell terminal to the editor engine: it translates
// terminal key events into engine key events and renders the buffer and a
// status line for the demo binary.
package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modaledit/internal/key"
)

// TranslateKey converts a tcell key event into an engine key event.
// ok is false for events the engine has no representation for.
func TranslateKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := translateMods(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return key.NewSpecialEvent(key.KeySpace, mods), true
		}
		return key.NewRuneEvent(r, mods), true

	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true

	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true

	case tcell.KeyCtrlSpace:
		return key.NewSpecialEvent(key.KeySpace, mods|key.ModCtrl), true

	default:
		// Terminals fold Ctrl+letter into control codes. Recover the
		// letter so the machines see C-a .. C-z. The codes that double as
		// editing keys (Ctrl+H/I/M) were handled above.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := 'a' + rune(k-tcell.KeyCtrlA)
			return key.NewRuneEvent(r, mods|key.ModCtrl), true
		}
		return key.Event{}, false
	}
}

// translateMods converts tcell modifier bits.
func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}
