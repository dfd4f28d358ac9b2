package game

import (
	"fmt"
	"strings"
	"time"

	"robosim/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// keyFor maps a tcell key event to a simulation key.
func keyFor(ev *tcell.EventKey) (sim.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return sim.KeyUp, true
	case tcell.KeyDown:
		return sim.KeyDown, true
	case tcell.KeyLeft:
		return sim.KeyLeft, true
	case tcell.KeyRight:
		return sim.KeyRight, true
	case tcell.KeyPgUp:
		return sim.KeyPageUp, true
	case tcell.KeyPgDn:
		return sim.KeyPageDown, true
	case tcell.KeyRune:
		return runeKey(ev.Rune())
	}
	return 0, false
}

func runeKey(r rune) (sim.Key, bool) {
	switch r {
	case 'w', 'W':
		return sim.KeyW, true
	case 'a', 'A':
		return sim.KeyA, true
	case 's', 'S':
		return sim.KeyS, true
	case 'd', 'D':
		return sim.KeyD, true
	case 'q', 'Q':
		return sim.KeyQ, true
	case 'e', 'E':
		return sim.KeyE, true
	case ' ':
		return sim.KeySpace, true
	}
	return 0, false
}

// isQuit reports whether ev ends the session.
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

var keyNames = map[string]sim.Key{
	"up":    sim.KeyUp,
	"down":  sim.KeyDown,
	"left":  sim.KeyLeft,
	"right": sim.KeyRight,
	"pgup":  sim.KeyPageUp,
	"pgdn":  sim.KeyPageDown,
	"space": sim.KeySpace,
}

// ParseKeys parses a comma separated key list such as "w,q" or "up,pgdn".
func ParseKeys(list string) ([]sim.Key, error) {
	var keys []sim.Key
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if k, ok := keyNames[name]; ok {
			keys = append(keys, k)
			continue
		}
		if r := []rune(name); len(r) == 1 {
			if k, ok := runeKey(r[0]); ok {
				keys = append(keys, k)
				continue
			}
		}
		return nil, fmt.Errorf("unknown key %q", name)
	}
	return keys, nil
}

// keyLatch turns terminal key presses into held keys. A press holds its
// key until the latch expires; auto-repeat keeps extending it. The first
// expiry is longer to cover the terminal's delay before repeating.
type keyLatch struct {
	repeatDelay time.Duration
	holdWindow  time.Duration
	expires     map[sim.Key]time.Time
}

func newKeyLatch(repeatDelay, holdWindow time.Duration) *keyLatch {
	return &keyLatch{
		repeatDelay: repeatDelay,
		holdWindow:  holdWindow,
		expires:     make(map[sim.Key]time.Time),
	}
}

func (l *keyLatch) press(keys sim.KeySet, k sim.Key, now time.Time) {
	window := l.holdWindow
	if !keys.Held(k) && k != sim.KeySpace {
		window = l.repeatDelay
	}
	keys.Press(k)
	l.expires[k] = now.Add(window)
}

// sweep releases every key whose latch has expired at now.
func (l *keyLatch) sweep(keys sim.KeySet, now time.Time) {
	for k, at := range l.expires {
		if !now.Before(at) {
			keys.Release(k)
			delete(l.expires, k)
		}
	}
}
