package host

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modaledit/internal/log"
	"github.com/dshills/modaledit/internal/session"
)

// Terminal drives a session from a tcell screen.
type Terminal struct {
	screen tcell.Screen
	logger *log.Logger
}

// New creates a terminal host on a real screen.
func New(logger *log.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen, logger), nil
}

// NewWithScreen creates a terminal host on the given screen. Tests pass a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen, logger *log.Logger) *Terminal {
	if logger == nil {
		logger = log.Default()
	}
	return &Terminal{
		screen: screen,
		logger: logger.WithComponent("host"),
	}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Run polls events and feeds them to the session until Ctrl+Q.
func (t *Terminal) Run(s *session.Session) error {
	t.Render(s)
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				return nil
			}
			kev, ok := TranslateKey(ev)
			if !ok {
				continue
			}
			consumed := s.HandleKey(kev)
			t.logger.Debug("key %s consumed=%v", kev, consumed)
		case nil:
			// Screen was finalized.
			return nil
		default:
			continue
		}
		t.Render(s)
	}
}

// Render draws the buffer and a status line.
func (t *Terminal) Render(s *session.Session) {
	t.screen.Clear()
	width, height := t.screen.Size()
	if height < 1 {
		return
	}

	style := tcell.StyleDefault
	lines := strings.Split(s.Text(), "\n")
	for y, line := range lines {
		if y >= height-1 {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			t.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}

	t.renderStatus(s, width, height-1)

	if s.Line() < height-1 {
		t.screen.ShowCursor(s.Column(), s.Line())
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

// renderStatus draws the status line: mode, cursor position, size, pending
// keys.
func (t *Terminal) renderStatus(s *session.Session, width, y int) {
	status := fmt.Sprintf(" %s | Ln %d, Col %d | %d chars",
		s.Mode().DisplayName(), s.Line()+1, s.Column()+1, s.CharCount())
	if pending := s.PendingKeys(); pending != "" {
		status += " | " + pending
	}

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}
