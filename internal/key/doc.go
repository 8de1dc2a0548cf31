// Package key defines key identities, modifier sets, and key events.
//
// The engine consumes a stream of key.Event values produced by a host
// adapter. Character keys are represented as KeyRune events carrying the
// character; everything else is a special key. Modifiers are a bitmask so
// chords like Ctrl+Alt+F compare with a single equality check.
package key
