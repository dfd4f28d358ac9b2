package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"robosim/internal/config"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"Warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robosim.log")
	var console bytes.Buffer

	log, closer, err := New(config.LogConfig{Level: "info", File: path}, &console)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Int("kills", 2).Msg("shot fired")
	log.Debug().Msg("filtered out")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	file := string(data)
	if !strings.Contains(file, "shot fired") || !strings.Contains(file, "kills=2") {
		t.Errorf("log file = %q", file)
	}
	if strings.Contains(file, "filtered out") {
		t.Errorf("debug record written at info level: %q", file)
	}
	if !strings.Contains(console.String(), "shot fired") {
		t.Errorf("console = %q", console.String())
	}
}

func TestNewAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robosim.log")
	for i := 0; i < 2; i++ {
		log, closer, err := New(config.LogConfig{Level: "info", File: path}, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		log.Info().Msg("started")
		closer.Close()
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "started"); n != 2 {
		t.Errorf("found %d records; want 2", n)
	}
}

func TestNewBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "robosim.log")
	if _, _, err := New(config.LogConfig{File: path}, nil); err == nil {
		t.Error("expected error for unwritable log path")
	}
}
