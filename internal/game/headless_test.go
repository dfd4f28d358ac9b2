package game

import (
	"context"
	"errors"
	"testing"

	"robosim/internal/sim"

	"github.com/rs/zerolog"
)

func TestRunHeadlessHoldsKeys(t *testing.T) {
	cfg := testConfig()
	state, err := RunHeadless(context.Background(), HeadlessOptions{
		Config: cfg,
		Logger: zerolog.Nop(),
		Held:   []sim.Key{sim.KeyW, sim.KeyQ},
		Ticks:  10,
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if state.Ticks != 10 {
		t.Errorf("Ticks = %d; want 10", state.Ticks)
	}
	if state.Pose.Yaw <= 0 {
		t.Errorf("Yaw = %f; Q should turn positive", state.Pose.Yaw)
	}
	if state.Pose.JogAngle <= 0 {
		t.Errorf("JogAngle = %f; W should bob the camera", state.Pose.JogAngle)
	}
}

func TestRunHeadlessNeedsTicks(t *testing.T) {
	if _, err := RunHeadless(context.Background(), HeadlessOptions{Config: testConfig()}); err == nil {
		t.Error("expected error for zero ticks")
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunHeadless(ctx, HeadlessOptions{Config: testConfig(), Logger: zerolog.Nop(), Ticks: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
}
