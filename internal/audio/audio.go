// Package audio plays the shot blip.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	ShotFrequency = 880.0
	ShotLength    = 50 * time.Millisecond
	shotGain      = -0.7 // scales the tone to 30%
)

// Player mixes short sound effects onto the speaker. A nil *Player is
// valid and silent, so hosts keep running when no audio device exists.
type Player struct {
	mixer *beep.Mixer
}

// NewPlayer opens the speaker. On failure the caller should continue
// with a nil Player.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &Player{mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// PlayShot queues one shot blip.
func (p *Player) PlayShot() {
	if p == nil {
		return
	}
	s, err := shotStreamer(sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything still queued.
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// shotStreamer returns the blip: a quiet sine tone cut to ShotLength.
func shotStreamer(sr beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, ShotFrequency)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	quiet := &effects.Gain{Streamer: tone, Gain: shotGain}
	return beep.Take(sr.N(ShotLength), quiet), nil
}
