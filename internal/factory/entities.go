package factory

import (
	"robosim/internal/component"
	"robosim/internal/ecs"
)

// NewRobot creates a robot for the given arena slot at pos.
func NewRobot(w *ecs.World, slot int, pos component.Position, speed float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, pos)
	w.Add(id, component.Robot{Slot: slot, Speed: speed})
	return id
}
