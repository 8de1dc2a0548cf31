// Package trace provides optional diagnostic tracing of key handling:
// mode transitions, executed commands, and suppressed events.
package trace

import (
	"sync"
	"time"

	"github.com/dshills/modaledit/internal/log"
)

// Event is one traced key-handling step.
type Event struct {
	// Time is when the event was recorded.
	Time time.Time

	// Key is the canonical key representation ("a", "C-x", "Esc").
	Key string

	// Mode is the active mode after handling ("vim-normal", "emacs").
	Mode string

	// Commands are the string forms of the commands the key produced.
	Commands []string

	// Suppressed reports whether the raw event was consumed.
	Suppressed bool
}

// Recorder receives trace events. Implementations must tolerate being
// called from the session's goroutine only; no internal synchronization is
// required.
type Recorder interface {
	Record(ev Event)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

// Record discards the event.
func (Nop) Record(Event) {}

// LogRecorder writes trace events to a logger at debug level.
type LogRecorder struct {
	logger *log.Logger
}

// NewLogRecorder creates a recorder backed by the given logger.
// A nil logger falls back to the process default.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	if logger == nil {
		logger = log.Default()
	}
	return &LogRecorder{logger: logger.WithComponent("trace")}
}

// Record logs the event.
func (r *LogRecorder) Record(ev Event) {
	r.logger.WithFields(map[string]any{
		"key":        ev.Key,
		"mode":       ev.Mode,
		"commands":   len(ev.Commands),
		"suppressed": ev.Suppressed,
	}).Debug("key handled")
}

// Memory is a Recorder that keeps every event in memory. Useful in tests
// and for in-editor trace inspection.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends the event.
func (m *Memory) Record(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// Events returns a copy of all recorded events.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Len returns the number of recorded events.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// Reset discards all recorded events.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
