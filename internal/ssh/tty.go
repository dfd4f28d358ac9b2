// Package ssh adapts gliderlabs SSH sessions into tcell screens and caps
// how many of them play at once.
package ssh

import (
	"fmt"
	"os"
	"sync"

	"robosim/internal/sim"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty is a tcell.Tty over one SSH session. Keyboard bytes come from the
// session's stdin and frames go to its stdout.
type Tty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu       sync.Mutex
	size     gossh.Window
	onResize func()
	watching bool
}

// NewTty wraps s. pty carries the initial size; winCh the later ones.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{session: s, size: pty.Window, winCh: winCh}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is already open
// and the handler goroutine owns its lifetime.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize reports the last size the client sent.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.size.Width, Height: t.size.Height}, nil
}

// NotifyResize registers cb for window changes. The first call starts
// the goroutine that follows the client's window-change requests.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.winCh != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watch()
	}
}

func (t *Tty) watch() {
	for win := range t.winCh {
		t.mu.Lock()
		t.size = win
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

// termMu serialises the TERM override around terminfo lookup, which reads
// the process environment.
var termMu sync.Mutex

// NewScreen builds and initialises a tcell screen on the session, using
// the terminfo entry for term.
func NewScreen(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window, term string) (tcell.Screen, error) {
	tty := NewTty(s, pty, winCh)

	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%w: terminal %q: %w", sim.ErrContextUnavailable, term, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init screen: %w", sim.ErrContextUnavailable, err)
	}
	return screen, nil
}
