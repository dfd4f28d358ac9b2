package game

import (
	"testing"
	"time"

	"robosim/internal/sim"

	"github.com/gdamore/tcell/v2"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want sim.Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), sim.KeyUp, true},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), sim.KeyDown, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), sim.KeyLeft, true},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), sim.KeyRight, true},
		{tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), sim.KeyPageUp, true},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), sim.KeyPageDown, true},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), sim.KeyW, true},
		{tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone), sim.KeyA, true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), sim.KeyQ, true},
		{tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), sim.KeyE, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), sim.KeySpace, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		got, ok := keyFor(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyFor(%s) = %d, %v; want %d, %v", tt.ev.Name(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsQuit(t *testing.T) {
	if !isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if !isQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("Ctrl-C should quit")
	}
	if isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q turns the camera, it must not quit")
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys("w, Q,pgdn,space")
	if err != nil {
		t.Fatalf("ParseKeys: %v", err)
	}
	want := []sim.Key{sim.KeyW, sim.KeyQ, sim.KeyPageDown, sim.KeySpace}
	if len(keys) != len(want) {
		t.Fatalf("got %v; want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %d; want %d", i, keys[i], want[i])
		}
	}

	if keys, err := ParseKeys(""); err != nil || len(keys) != 0 {
		t.Errorf("empty list = %v, %v", keys, err)
	}
	if _, err := ParseKeys("w,jump"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestKeyLatchFirstPressWaitsForRepeat(t *testing.T) {
	keys := make(sim.KeySet)
	l := newKeyLatch(500*time.Millisecond, 150*time.Millisecond)
	t0 := time.Unix(0, 0)

	l.press(keys, sim.KeyW, t0)
	l.sweep(keys, t0.Add(499*time.Millisecond))
	if !keys.Held(sim.KeyW) {
		t.Fatal("key released before the repeat delay")
	}
	l.sweep(keys, t0.Add(500*time.Millisecond))
	if keys.Held(sim.KeyW) {
		t.Error("key still held after the repeat delay")
	}
}

func TestKeyLatchRepeatsExtendHold(t *testing.T) {
	keys := make(sim.KeySet)
	l := newKeyLatch(500*time.Millisecond, 150*time.Millisecond)
	t0 := time.Unix(0, 0)

	l.press(keys, sim.KeyW, t0)
	l.press(keys, sim.KeyW, t0.Add(100*time.Millisecond))
	l.sweep(keys, t0.Add(200*time.Millisecond))
	if !keys.Held(sim.KeyW) {
		t.Fatal("repeat did not keep the key held")
	}
	l.sweep(keys, t0.Add(250*time.Millisecond))
	if keys.Held(sim.KeyW) {
		t.Error("key held past the hold window after the last repeat")
	}
}

func TestKeyLatchShootKeyReleasesQuickly(t *testing.T) {
	keys := make(sim.KeySet)
	l := newKeyLatch(500*time.Millisecond, 150*time.Millisecond)
	t0 := time.Unix(0, 0)

	l.press(keys, sim.KeySpace, t0)
	l.sweep(keys, t0.Add(150*time.Millisecond))
	if keys.Held(sim.KeySpace) {
		t.Error("space should release after the hold window so taps re-arm")
	}
}
