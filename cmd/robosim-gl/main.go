// robosim-gl plays the arena in a desktop window.
//
//	go build -o robosim-gl ./cmd/robosim-gl
//	./robosim-gl [--bounds clamp] [--world file] [--texture file]
package main

import (
	"fmt"
	"os"

	"robosim/assets"
	"robosim/internal/audio"
	"robosim/internal/config"
	"robosim/internal/game"
	"robosim/internal/logging"
	"robosim/internal/texture"
	"robosim/internal/window"
	"robosim/internal/world"

	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("robosim-gl", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if err := run(fs); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *pflag.FlagSet) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	var sound game.Sound
	if cfg.Audio.Enabled {
		p, err := audio.NewPlayer()
		if err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer p.Close()
			sound = p
		}
	}

	log.Info().
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Str("bounds", cfg.BoundsPolicy().String()).
		Msg("opening window")
	return window.Run(window.Options{
		Config: cfg,
		Logger: log,
		Sound:  sound,
		LoadMesh: func() (*world.Mesh, error) {
			return assets.LoadWorld(cfg.Assets.World)
		},
		LoadTexture: func() (*texture.Texture, error) {
			return assets.LoadTexture(cfg.Assets.Texture)
		},
	})
}
