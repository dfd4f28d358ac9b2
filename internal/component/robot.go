package component

import "robosim/internal/ecs"

const CRobot ecs.ComponentType = 2

// Robot marks an enemy placeholder. Slot identifies which arena corner
// the robot was spawned for, so a missing one can be recreated in place.
type Robot struct {
	Slot  int
	Yaw   float64 // degrees
	Speed float64 // world units per ms
}

func (Robot) Type() ecs.ComponentType { return CRobot }
