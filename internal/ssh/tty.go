// Package ssh adapts gliderlabs SSH sessions into tcell screens.
package ssh

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned for sessions opened without a pseudo-terminal.
var ErrNoPTY = errors.New("session has no PTY")

// DefaultTerm is used when the client sends no TERM or an unknown one.
const DefaultTerm = "xterm-256color"

// allowedTerms lists the TERM values passed through to terminfo. Anything
// else falls back to DefaultTerm so clients cannot steer the lookup.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// Term picks the terminal type from a session environment.
func Term(environ []string) string {
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok {
			if allowedTerms[v] {
				return v
			}
			break
		}
	}
	return DefaultTerm
}

// Tty implements tcell.Tty backed by a gliderlabs/ssh session.
// Each connected client gets its own Tty and tcell.Screen.
type Tty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	cb      func() // resize callback registered by tcell
	watch   sync.Once
}

// NewTty wraps a session as a tcell Tty. pty holds the initial window size;
// winCh delivers later resizes.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start, Stop and Drain are no-ops; the channel lives as long as the handler.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers the callback run on every window change. The
// window-change channel is drained by a single goroutine that exits when
// the session closes it.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.watch.Do(func() {
		go func() {
			for win := range t.winCh {
				t.mu.Lock()
				t.window = win
				fn := t.cb
				t.mu.Unlock()
				if fn != nil {
					fn()
				}
			}
		}()
	})
}

// termMu serialises os.Setenv("TERM") around terminfo screen creation.
var termMu sync.Mutex

// NewScreen builds and initialises a tcell screen for s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewTty(s, pty, winCh)

	// tcell reads TERM from the process environment.
	termMu.Lock()
	_ = os.Setenv("TERM", Term(s.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}
