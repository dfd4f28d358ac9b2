package sim

// Key is a numeric key code. Values follow the DOM keyCode numbering so
// every host maps its native key events onto the same set.
type Key int

const (
	KeySpace    Key = 32
	KeyPageUp   Key = 33
	KeyPageDown Key = 34
	KeyLeft     Key = 37
	KeyUp       Key = 38
	KeyRight    Key = 39
	KeyDown     Key = 40
	KeyA        Key = 65
	KeyD        Key = 68
	KeyE        Key = 69
	KeyQ        Key = 81
	KeyS        Key = 83
	KeyW        Key = 87
)

// KeySet holds the keys currently held down.
type KeySet map[Key]bool

// Press marks k as held.
func (s KeySet) Press(k Key) { s[k] = true }

// Release marks k as no longer held.
func (s KeySet) Release(k Key) { delete(s, k) }

// Held reports whether k is held.
func (s KeySet) Held(k Key) bool { return s[k] }

// Any reports whether at least one of keys is held.
func (s KeySet) Any(keys ...Key) bool {
	for _, k := range keys {
		if s[k] {
			return true
		}
	}
	return false
}

// Clear releases every key.
func (s KeySet) Clear() { clear(s) }

// axis pairs the keys driving one rate in opposite directions.
type axis struct {
	positive []Key
	negative []Key
}

var (
	pitchAxis   = axis{positive: []Key{KeyPageUp}, negative: []Key{KeyPageDown}}
	yawAxis     = axis{positive: []Key{KeyQ}, negative: []Key{KeyE}}
	strafeAxis  = axis{positive: []Key{KeyRight, KeyD}, negative: []Key{KeyLeft, KeyA}}
	forwardAxis = axis{positive: []Key{KeyUp, KeyW}, negative: []Key{KeyDown, KeyS}}
)

// resolve turns the held keys of one axis into a signed rate. Only one
// side is honoured; when both are held the negative side wins.
func (a axis) resolve(keys KeySet, rate float64) float64 {
	switch {
	case keys.Any(a.negative...):
		return -rate
	case keys.Any(a.positive...):
		return rate
	}
	return 0
}
