package scene

import (
	"robosim/internal/sim"

	"github.com/go-gl/mathgl/mgl64"
)

// Fixed projection parameters.
const (
	FieldOfView = 60.0 // vertical, degrees
	Near        = 0.1
	Far         = 50.0
)

// View builds the world-to-eye transform for a pose: pitch about X, then
// yaw about Y, then translation to the eye position.
func View(p sim.Pose) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(-p.Pitch)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(-p.Yaw))).
		Mul4(mgl64.Translate3D(-p.X, -p.Y, -p.Z))
}

// Projection builds the perspective transform for a surface aspect ratio.
func Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(FieldOfView), aspect, Near, Far)
}
