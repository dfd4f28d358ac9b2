package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"robosim/internal/sim"
)

// SessionLog records one play session.
type SessionLog struct {
	Started   time.Time `json:"started"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Ticks     uint64    `json:"ticks"`
	Shots     int       `json:"shots"`
	Kills     int       `json:"kills"`
	Bounds    string    `json:"bounds"`
	Remote    string    `json:"remote,omitempty"`
	Final     FinalPose `json:"final"`
}

// FinalPose is the camera pose when the session ended.
type FinalPose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

// FinalPoseOf copies the loggable part of p.
func FinalPoseOf(p sim.Pose) FinalPose {
	return FinalPose{X: p.X, Y: p.Y, Z: p.Z, Yaw: p.Yaw, Pitch: p.Pitch}
}

// SaveSessionLog appends the session as one JSON line to runs.jsonl.
func SaveSessionLog(entry SessionLog) error {
	dir, err := sessionLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode session log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	return nil
}

// sessionLogDir returns $XDG_DATA_HOME/robosim, defaulting to
// ~/.local/share/robosim.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "robosim"), nil
}
