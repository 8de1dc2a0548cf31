// Package plugin runs Lua hook scripts backing the editor's custom
// commands.
//
// A script registers hooks through the global modaledit table:
//
//	modaledit.on("save_buffer", function(name)
//	    -- handle the command
//	end)
//
// gopher-lua's LState is not goroutine-safe; a Runner belongs to the
// session's goroutine and must not be shared.
package plugin

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modaledit/internal/log"
)

// ErrClosed is returned when invoking hooks on a closed runner.
var ErrClosed = errors.New("plugin runner is closed")

// Runner owns a Lua state and the hooks scripts registered into it.
type Runner struct {
	state  *lua.LState
	hooks  map[string]*lua.LFunction
	logger *log.Logger
	closed bool
}

// NewRunner creates a runner with a fresh Lua state. A nil logger falls
// back to the process default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		state:  lua.NewState(),
		hooks:  make(map[string]*lua.LFunction),
		logger: logger.WithComponent("plugin"),
	}
	r.registerAPI()
	return r
}

// registerAPI installs the modaledit table into the Lua state.
func (r *Runner) registerAPI() {
	mod := r.state.NewTable()
	r.state.SetGlobal("modaledit", mod)

	r.state.SetField(mod, "on", r.state.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		r.hooks[name] = fn
		return 0
	}))

	r.state.SetField(mod, "log", r.state.NewFunction(func(L *lua.LState) int {
		r.logger.Info("%s", L.CheckString(1))
		return 0
	}))
}

// LoadFile executes a script file, letting it register hooks.
func (r *Runner) LoadFile(path string) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	return nil
}

// LoadString executes script source, letting it register hooks.
func (r *Runner) LoadString(src string) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.state.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// Has reports whether a hook is registered for name.
func (r *Runner) Has(name string) bool {
	_, ok := r.hooks[name]
	return ok
}

// Invoke runs the hook registered for name with the name as its argument.
// An unregistered name is not an error; the session emits custom commands
// whether or not a script cares about them.
func (r *Runner) Invoke(name string) error {
	if r.closed {
		return ErrClosed
	}
	fn, ok := r.hooks[name]
	if !ok {
		r.logger.Debug("no hook for %q", name)
		return nil
	}
	err := r.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(name))
	if err != nil {
		return fmt.Errorf("hook %s: %w", name, err)
	}
	return nil
}

// Close shuts down the Lua state. The runner cannot be reused.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.state.Close()
}
