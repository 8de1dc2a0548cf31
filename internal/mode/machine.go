// Package mode implements the editing-mode state machines.
//
// Each machine consumes raw key events and produces zero or more commands
// for the session to execute. Machines own only their parsing state (counts,
// pending operators, prefixes); buffer state belongs to the session.
package mode

import (
	"github.com/dshills/modaledit/internal/command"
	"github.com/dshills/modaledit/internal/key"
)

// Result describes the outcome of handling one key event.
type Result struct {
	// Commands to execute against the buffer, in order.
	Commands []command.Command

	// Consumed reports whether the raw event must be suppressed so a host
	// widget does not additionally process it.
	Consumed bool
}

// consume returns a consumed result with the given commands.
func consume(cmds ...command.Command) Result {
	return Result{Commands: cmds, Consumed: true}
}

// passthrough returns an unconsumed, empty result.
func passthrough() Result {
	return Result{}
}

// Machine is a mode state machine. Exactly one machine drives a session at
// a time.
type Machine interface {
	// Name returns the machine identifier ("vim" or "emacs").
	Name() string

	// Mode returns the current mode, including the Vim sub-mode.
	Mode() command.Mode

	// SetMode forces the machine into a mode, clearing any pending state.
	SetMode(m command.Mode)

	// IsInsertMode reports whether unhandled printable keys insert
	// literally in the current state.
	IsInsertMode() bool

	// HandleKey processes one key event.
	HandleKey(ev key.Event) Result
}
