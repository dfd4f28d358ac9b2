package sim

import "math"

// Pose is the camera's position, orientation and current rates.
// Angles are in degrees, rates per millisecond.
type Pose struct {
	X, Y, Z float64
	Yaw     float64
	Pitch   float64

	YawRate   float64
	PitchRate float64
	Speed     float64 // forward, world units per ms
	SideSpeed float64 // strafe, world units per ms

	// JogAngle accumulates while moving and drives the vertical bob.
	JogAngle float64
}

// StartPose is where every session begins.
func StartPose() Pose {
	return Pose{Y: 1}
}

// Moving reports whether the pose carries any horizontal speed.
func (p Pose) Moving() bool {
	return p.Speed != 0 || p.SideSpeed != 0
}

// Bob height constants.
const (
	JogDegreesPerMs = 0.6
	JogAmplitude    = 1.0 / 20
	JogBaseHeight   = 0.4
)

// JogHeight is the eye height for a given jogging angle.
func JogHeight(jogAngle float64) float64 {
	return math.Sin(degToRad(jogAngle))*JogAmplitude + JogBaseHeight
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
