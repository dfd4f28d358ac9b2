package component

import "robosim/internal/ecs"

const CPosition ecs.ComponentType = 1

// Position is a point in world space. Y is up.
type Position struct {
	X, Y, Z float64
}

func (Position) Type() ecs.ComponentType { return CPosition }
