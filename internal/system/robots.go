package system

import (
	"robosim/internal/component"
	"robosim/internal/ecs"
	"robosim/internal/factory"

	"github.com/rs/zerolog"
)

// RobotSpeed is the speed every spawned robot is given. Nothing applies it yet.
const RobotSpeed = 0.01

// RobotSpawns lists the spawn point of each robot slot, in slot order.
var RobotSpawns = [4]component.Position{
	{X: 10, Z: 10},
	{X: 10, Z: -10},
	{X: -10, Z: 10},
	{X: -10, Z: -10},
}

// Repopulate recreates any robot slot that has no live robot. Robots that
// still exist are left alone. Returns the number of robots created.
func Repopulate(w *ecs.World) int {
	var present [len(RobotSpawns)]bool
	for _, id := range w.Query(component.CRobot) {
		r, _ := ecs.Lookup[component.Robot](w, id)
		if r.Slot >= 0 && r.Slot < len(present) {
			present[r.Slot] = true
		}
	}

	created := 0
	for slot, spawn := range RobotSpawns {
		if present[slot] {
			continue
		}
		factory.NewRobot(w, slot, spawn, RobotSpeed)
		created++
	}
	return created
}

// MoveRobots reports where the first robot stands. Robots do not move.
func MoveRobots(w *ecs.World, log zerolog.Logger) {
	ids := w.Query(component.CRobot, component.CPosition)
	if len(ids) == 0 {
		return
	}
	pos, _ := ecs.Lookup[component.Position](w, ids[0])
	log.Debug().
		Float64("x", pos.X).
		Float64("z", pos.Z).
		Msg("robot position")
}
