package sim

import (
	"math"
	"time"

	"robosim/internal/ecs"
	"robosim/internal/system"

	"github.com/rs/zerolog"
)

// Rates are the magnitudes a held key applies to the pose.
type Rates struct {
	Forward float64 // world units per ms
	Strafe  float64 // world units per ms
	Yaw     float64 // degrees per ms
	Pitch   float64 // degrees per ms
}

// DefaultRates returns the stock key rates.
func DefaultRates() Rates {
	return Rates{
		Forward: 0.004,
		Strafe:  0.004,
		Yaw:     0.15,
		Pitch:   0.1,
	}
}

// State is everything one simulation owns. Exactly one loop may drive it.
type State struct {
	Pose    Pose
	Keys    KeySet
	Enemies *ecs.World

	Kills int
	Shots int
	Ticks uint64

	last      time.Time
	started   bool
	shotArmed bool
}

// NewState returns a fresh simulation at the start pose.
func NewState() *State {
	return &State{
		Pose:      StartPose(),
		Keys:      make(KeySet),
		Enemies:   ecs.NewWorld(),
		shotArmed: true,
	}
}

// LastTick returns the timestamp recorded by the previous tick, and
// whether any tick has run.
func (s *State) LastTick() (time.Time, bool) {
	return s.last, s.started
}

// TickResult describes what a tick did.
type TickResult struct {
	First   bool          // seeding tick, no motion integrated
	Elapsed time.Duration // time since the previous tick
	Moved   bool          // horizontal displacement was applied
	Shot    bool          // the shoot key went down this tick
}

// Driver advances a State by one tick at a time.
type Driver struct {
	rates  Rates
	bounds BoundsPolicy
	log    zerolog.Logger
}

// NewDriver builds a Driver.
func NewDriver(rates Rates, bounds BoundsPolicy, log zerolog.Logger) *Driver {
	return &Driver{rates: rates, bounds: bounds, log: log}
}

// Bounds returns the driver's boundary policy.
func (d *Driver) Bounds() BoundsPolicy { return d.bounds }

// Tick reads the held keys, integrates the pose over the time since the
// previous tick and records now as the new previous tick.
func (d *Driver) Tick(s *State, now time.Time) TickResult {
	var res TickResult
	res.Shot = d.handleKeys(s)

	if !s.started {
		res.First = true
	} else {
		res.Elapsed = now.Sub(s.last)
		res.Moved = d.animate(s, res.Elapsed)
	}

	s.last = now
	s.started = true
	s.Ticks++
	return res
}

// handleKeys resolves held keys into rates and reports a fresh shot.
func (d *Driver) handleKeys(s *State) bool {
	p := &s.Pose
	p.PitchRate = pitchAxis.resolve(s.Keys, d.rates.Pitch)
	p.YawRate = yawAxis.resolve(s.Keys, d.rates.Yaw)
	p.SideSpeed = strafeAxis.resolve(s.Keys, d.rates.Strafe)
	p.Speed = forwardAxis.resolve(s.Keys, d.rates.Forward)

	if !s.Keys.Held(KeySpace) {
		s.shotArmed = true
		return false
	}
	if !s.shotArmed {
		return false
	}
	s.shotArmed = false
	s.Shots++
	d.log.Info().
		Float64("x", p.X).
		Float64("y", p.Y).
		Float64("z", p.Z).
		Msg("shot fired")
	return true
}

// animate integrates one tick of motion. Reports whether the camera
// was asked to move horizontally.
func (d *Driver) animate(s *State, elapsed time.Duration) bool {
	ms := float64(elapsed) / float64(time.Millisecond)
	p := &s.Pose

	system.Repopulate(s.Enemies)
	system.MoveRobots(s.Enemies, d.log)

	moving := p.Moving()
	if moving {
		yaw := degToRad(p.Yaw)
		side := degToRad(p.Yaw - 90)
		dxF := math.Sin(yaw) * p.Speed * ms
		dxS := math.Sin(side) * p.SideSpeed * ms
		dzF := math.Cos(yaw) * p.Speed * ms
		dzS := math.Cos(side) * p.SideSpeed * ms

		p.X = d.bounds.Apply(p.X, dxF, dxS)
		p.Z = d.bounds.Apply(p.Z, dzF, dzS)

		p.JogAngle += ms * JogDegreesPerMs
		p.Y = JogHeight(p.JogAngle)
	}

	p.Yaw += p.YawRate * ms
	p.Pitch += p.PitchRate * ms
	return moving
}
