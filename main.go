// robosim is a small first-person arena played in the terminal. Move with
// WASD or the arrow keys, turn with Q/E, look up and down with PgUp/PgDn,
// shoot with Space, leave with Esc.
//
//	robosim [--bounds clamp] [--world file] [--texture file]
//	robosim --headless --ticks 200 --hold w,q
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"robosim/assets"
	"robosim/internal/audio"
	"robosim/internal/config"
	"robosim/internal/game"
	"robosim/internal/logging"
	"robosim/internal/texture"
	"robosim/internal/world"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("robosim", pflag.ExitOnError)
	config.RegisterFlags(fs)
	headless := fs.Bool("headless", false, "run the frame driver without a screen")
	ticks := fs.Int("ticks", 200, "ticks to run in headless mode")
	hold := fs.String("hold", "", "keys held during a headless run, e.g. w,q")
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *headless {
		err = runHeadless(ctx, fs, *ticks, *hold)
	} else {
		err = runTerminal(ctx, fs)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(fs *pflag.FlagSet, console bool) (config.Config, zerolog.Logger, io.Closer, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	var out io.Writer
	if console {
		out = os.Stderr
	}
	log, closer, err := logging.New(cfg.Log, out)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	return cfg, log, closer, nil
}

func runTerminal(ctx context.Context, fs *pflag.FlagSet) error {
	// The screen belongs to tcell, so logs only go to the file.
	cfg, log, closer, err := setup(fs, false)
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

	screen, err := game.NewScreen()
	if err != nil {
		return err
	}

	log.Info().Str("bounds", cfg.BoundsPolicy().String()).Msg("starting local session")
	g := game.New(screen, game.Options{
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
	return g.Run(ctx)
}

func runHeadless(ctx context.Context, fs *pflag.FlagSet, ticks int, hold string) error {
	cfg, log, closer, err := setup(fs, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	held, err := game.ParseKeys(hold)
	if err != nil {
		return fmt.Errorf("--hold: %w", err)
	}
	state, err := game.RunHeadless(ctx, game.HeadlessOptions{
		Config: cfg,
		Logger: log,
		Held:   held,
		Ticks:  ticks,
	})
	if err != nil {
		return err
	}
	p := state.Pose
	fmt.Printf("x=%.4f y=%.4f z=%.4f yaw=%.2f pitch=%.2f\n", p.X, p.Y, p.Z, p.Yaw, p.Pitch)
	return nil
}
