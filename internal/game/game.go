// Package game runs the frame driver against a tcell screen: local
// terminals and SSH sessions both go through Game.
package game

import (
	"context"
	"fmt"
	"time"

	"robosim/internal/config"
	"robosim/internal/render"
	"robosim/internal/sim"
	"robosim/internal/texture"
	"robosim/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// MeshLoader and TextureLoader fetch the assets. They run on their own
// goroutine so a slow disk never stalls the frame loop.
type (
	MeshLoader    func() (*world.Mesh, error)
	TextureLoader func() (*texture.Texture, error)
)

// Sound plays the firing cue. *audio.Player satisfies it.
type Sound interface {
	PlayShot()
}

// Options configures a Game.
type Options struct {
	Config      config.Config
	Logger      zerolog.Logger
	Clock       sim.Clock // defaults to sim.SystemClock
	Sound       Sound     // nil plays nothing
	LoadMesh    MeshLoader
	LoadTexture TextureLoader
	Remote      string // peer address recorded in the session log
}

// Game owns one simulation state and the screen it is drawn on.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	driver   *sim.Driver
	state    *sim.State
	latch    *keyLatch
	clock    sim.Clock
	sound    Sound
	log      zerolog.Logger
	period   time.Duration
	remote   string

	loadMesh    MeshLoader
	loadTexture TextureLoader
	mesh        *world.Mesh
	meshDone    bool
	tex         *texture.Texture

	started time.Time
}

type meshResult struct {
	mesh *world.Mesh
	err  error
}

type textureResult struct {
	tex *texture.Texture
	err error
}

// NewScreen creates and initialises the local terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: create screen: %w", sim.ErrContextUnavailable, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init screen: %w", sim.ErrContextUnavailable, err)
	}
	return screen, nil
}

// New prepares a Game on an initialised screen. Run takes ownership of
// the screen and finalises it on return.
func New(screen tcell.Screen, opts Options) *Game {
	clock := opts.Clock
	if clock == nil {
		clock = sim.SystemClock{}
	}
	cfg := opts.Config
	return &Game{
		screen:      screen,
		renderer:    render.NewRenderer(screen),
		driver:      sim.NewDriver(cfg.DriverRates(), cfg.BoundsPolicy(), opts.Logger),
		state:       sim.NewState(),
		latch:       newKeyLatch(cfg.Input.RepeatDelay, cfg.Input.HoldWindow),
		clock:       clock,
		sound:       opts.Sound,
		log:         opts.Logger,
		period:      cfg.Tick.Period,
		remote:      opts.Remote,
		loadMesh:    opts.LoadMesh,
		loadTexture: opts.LoadTexture,
	}
}

// State exposes the simulation state.
func (g *Game) State() *sim.State { return g.state }

// Run drives the game until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 32)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	meshCh := make(chan meshResult, 1)
	texCh := make(chan textureResult, 1)
	g.startLoaders(meshCh, texCh)

	g.started = g.clock.Now()
	g.renderer.DrawHUD(0, true)

	ticker := time.NewTicker(g.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.finish()
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				g.finish()
				return nil
			}
			if g.handleEvent(ev) {
				ticker.Stop()
				g.finish()
				return g.awaitDismiss(ctx, events)
			}

		case r := <-meshCh:
			g.meshDone = true
			if r.err != nil {
				g.log.Error().Err(r.err).Msg("load world")
				break
			}
			g.mesh = r.mesh
			if r.mesh != nil {
				g.log.Info().Int("vertices", r.mesh.VertexCount()).Msg("world loaded")
			}

		case r := <-texCh:
			if r.err != nil {
				g.log.Error().Err(r.err).Msg("load texture")
				break
			}
			if r.tex == nil {
				break
			}
			g.tex = r.tex
			w, h := r.tex.Size()
			g.log.Info().Int("width", w).Int("height", h).Msg("texture loaded")

		case <-ticker.C:
			g.step(g.clock.Now())
		}
	}
}

func (g *Game) startLoaders(meshCh chan<- meshResult, texCh chan<- textureResult) {
	if g.loadMesh != nil {
		go func() {
			m, err := g.loadMesh()
			meshCh <- meshResult{mesh: m, err: err}
		}()
	} else {
		meshCh <- meshResult{}
	}
	if g.loadTexture != nil {
		go func() {
			t, err := g.loadTexture()
			texCh <- textureResult{tex: t, err: err}
		}()
	}
}

// handleEvent applies one terminal event and reports whether it quits.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		if isQuit(ev) {
			return true
		}
		if k, ok := keyFor(ev); ok {
			g.latch.press(g.state.Keys, k, g.clock.Now())
		}
	}
	return false
}

// step runs one tick. Nothing advances or draws until the texture is in.
func (g *Game) step(now time.Time) {
	g.latch.sweep(g.state.Keys, now)
	if g.tex == nil {
		return
	}

	res := g.driver.Tick(g.state, now)
	if res.Shot && g.sound != nil {
		g.sound.PlayShot()
	}
	g.renderer.DrawFrame(g.state.Pose, g.mesh, g.tex)
	g.renderer.DrawHUD(g.state.Kills, !g.meshDone)
}

// finish shows the summary and records the session.
func (g *Game) finish() {
	g.renderer.DrawGameOver(g.state.Kills)

	entry := SessionLog{
		Started:   g.started,
		ElapsedMs: g.clock.Now().Sub(g.started).Milliseconds(),
		Ticks:     g.state.Ticks,
		Shots:     g.state.Shots,
		Kills:     g.state.Kills,
		Bounds:    g.driver.Bounds().String(),
		Remote:    g.remote,
		Final:     FinalPoseOf(g.state.Pose),
	}
	if err := SaveSessionLog(entry); err != nil {
		g.log.Warn().Err(err).Msg("save session log")
	}
	g.log.Info().
		Uint64("ticks", entry.Ticks).
		Int("shots", entry.Shots).
		Float64("x", entry.Final.X).
		Float64("z", entry.Final.Z).
		Msg("session over")
}

// awaitDismiss keeps the summary up until any key is pressed.
func (g *Game) awaitDismiss(ctx context.Context, events <-chan tcell.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.(type) {
			case *tcell.EventKey:
				return nil
			case *tcell.EventResize:
				g.screen.Sync()
				g.renderer.DrawGameOver(g.state.Kills)
			}
		}
	}
}
