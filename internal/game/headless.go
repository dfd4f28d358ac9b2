package game

import (
	"context"
	"errors"
	"time"

	"robosim/internal/config"
	"robosim/internal/sim"

	"github.com/rs/zerolog"
)

// HeadlessOptions configures a run without a screen.
type HeadlessOptions struct {
	Config config.Config
	Logger zerolog.Logger
	Clock  sim.Clock
	Held   []sim.Key // held for the whole run
	Ticks  int
}

// RunHeadless ticks the frame driver opts.Ticks times at the configured
// period with a fixed set of held keys and returns the final state.
func RunHeadless(ctx context.Context, opts HeadlessOptions) (*sim.State, error) {
	if opts.Ticks <= 0 {
		return nil, errors.New("headless run needs a positive tick count")
	}
	clock := opts.Clock
	if clock == nil {
		clock = sim.SystemClock{}
	}

	cfg := opts.Config
	driver := sim.NewDriver(cfg.DriverRates(), cfg.BoundsPolicy(), opts.Logger)
	state := sim.NewState()
	for _, k := range opts.Held {
		state.Keys.Press(k)
	}

	ticker := time.NewTicker(cfg.Tick.Period)
	defer ticker.Stop()

	for range opts.Ticks {
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-ticker.C:
			driver.Tick(state, clock.Now())
		}
	}

	p := state.Pose
	opts.Logger.Info().
		Uint64("ticks", state.Ticks).
		Float64("x", p.X).
		Float64("y", p.Y).
		Float64("z", p.Z).
		Float64("yaw", p.Yaw).
		Float64("pitch", p.Pitch).
		Msg("headless run finished")
	return state, nil
}
