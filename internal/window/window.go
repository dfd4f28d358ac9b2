// Package window hosts the arena in a desktop window. The scene is
// rasterised in software, uploaded once per frame and composed through a
// Kage shader.
package window

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"time"

	"robosim/internal/config"
	"robosim/internal/game"
	"robosim/internal/render"
	"robosim/internal/scene"
	"robosim/internal/sim"
	"robosim/internal/texture"
	"robosim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/gomono"
)

//go:embed vignette.kage
var vignetteSrc []byte

const vignetteDarkness = 0.6

var keyMap = map[ebiten.Key]sim.Key{
	ebiten.KeyW:          sim.KeyW,
	ebiten.KeyA:          sim.KeyA,
	ebiten.KeyS:          sim.KeyS,
	ebiten.KeyD:          sim.KeyD,
	ebiten.KeyQ:          sim.KeyQ,
	ebiten.KeyE:          sim.KeyE,
	ebiten.KeyArrowUp:    sim.KeyUp,
	ebiten.KeyArrowDown:  sim.KeyDown,
	ebiten.KeyArrowLeft:  sim.KeyLeft,
	ebiten.KeyArrowRight: sim.KeyRight,
	ebiten.KeyPageUp:     sim.KeyPageUp,
	ebiten.KeyPageDown:   sim.KeyPageDown,
	ebiten.KeySpace:      sim.KeySpace,
}

var (
	colorKills    = color.RGBA{R: 0xff, A: 0xff}
	colorGameOver = color.RGBA{R: 0xff, G: 0x75, A: 0xff}
	colorLoading  = color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// Options configures the window host.
type Options struct {
	Config      config.Config
	Logger      zerolog.Logger
	Sound       game.Sound
	LoadMesh    game.MeshLoader
	LoadTexture game.TextureLoader
}

// Game implements ebiten.Game.
type Game struct {
	driver *sim.Driver
	state  *sim.State
	clock  sim.Clock
	log    zerolog.Logger
	sound  game.Sound

	width, height int
	raster        *scene.Raster
	frame         *ebiten.Image
	shader        *ebiten.Shader
	face          *text.GoTextFace
	bigFace       *text.GoTextFace

	meshCh   chan *world.Mesh
	texCh    chan *texture.Texture
	mesh     *world.Mesh
	meshDone bool
	tex      *texture.Texture

	started time.Time
	over    bool
}

// New compiles the shader and starts loading the assets.
func New(opts Options) (*Game, error) {
	shader, err := ebiten.NewShader(vignetteSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: vignette: %w", sim.ErrShaderBuild, err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load HUD font: %w", err)
	}

	cfg := opts.Config
	w := max(cfg.Window.Width/cfg.Window.Scale, 1)
	h := max(cfg.Window.Height/cfg.Window.Scale, 1)
	g := &Game{
		driver:  sim.NewDriver(cfg.DriverRates(), cfg.BoundsPolicy(), opts.Logger),
		state:   sim.NewState(),
		clock:   sim.SystemClock{},
		log:     opts.Logger,
		sound:   opts.Sound,
		width:   w,
		height:  h,
		raster:  scene.NewRaster(w, h),
		frame:   ebiten.NewImage(w, h),
		shader:  shader,
		face:    &text.GoTextFace{Source: src, Size: 10},
		bigFace: &text.GoTextFace{Source: src, Size: 28},
		meshCh:  make(chan *world.Mesh, 1),
		texCh:   make(chan *texture.Texture, 1),
		started: time.Now(),
	}
	g.load(opts.LoadMesh, opts.LoadTexture)
	return g, nil
}

func (g *Game) load(loadMesh game.MeshLoader, loadTexture game.TextureLoader) {
	go func() {
		if loadMesh == nil {
			g.meshCh <- nil
			return
		}
		m, err := loadMesh()
		if err != nil {
			g.log.Error().Err(err).Msg("load world")
		}
		g.meshCh <- m
	}()
	if loadTexture == nil {
		return
	}
	go func() {
		t, err := loadTexture()
		if err != nil {
			g.log.Error().Err(err).Msg("load texture")
			return
		}
		g.texCh <- t
	}()
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	cfg := opts.Config
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(sim.TicksPerSecond(cfg.Tick.Period))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("%w: %w", sim.ErrContextUnavailable, err)
	}
	return nil
}

func (g *Game) Update() error {
	g.receive()

	if g.over {
		if len(inpututil.AppendJustPressedKeys(nil)) > 0 {
			return ebiten.Termination
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.finish()
		return nil
	}

	g.state.Keys.Clear()
	for ek, k := range keyMap {
		if ebiten.IsKeyPressed(ek) {
			g.state.Keys.Press(k)
		}
	}

	if g.tex == nil {
		return nil
	}
	if res := g.driver.Tick(g.state, g.clock.Now()); res.Shot && g.sound != nil {
		g.sound.PlayShot()
	}
	return nil
}

func (g *Game) receive() {
	select {
	case m := <-g.meshCh:
		g.mesh, g.meshDone = m, true
		if m != nil {
			g.log.Info().Int("vertices", m.VertexCount()).Msg("world loaded")
		}
	default:
	}
	select {
	case t := <-g.texCh:
		g.tex = t
		g.log.Info().Msg("texture loaded")
	default:
	}
}

func (g *Game) finish() {
	g.over = true
	entry := game.SessionLog{
		Started:   g.started,
		ElapsedMs: time.Since(g.started).Milliseconds(),
		Ticks:     g.state.Ticks,
		Shots:     g.state.Shots,
		Kills:     g.state.Kills,
		Bounds:    g.driver.Bounds().String(),
		Final:     game.FinalPoseOf(g.state.Pose),
	}
	if err := game.SaveSessionLog(entry); err != nil {
		g.log.Warn().Err(err).Msg("save session log")
	}
	g.log.Info().Uint64("ticks", entry.Ticks).Int("shots", entry.Shots).Msg("session over")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.over {
		g.drawGameOver(screen)
		return
	}
	if g.tex == nil {
		g.drawHUD(screen, true)
		return
	}

	g.raster.Clear()
	if g.mesh != nil {
		g.raster.Draw(g.state.Pose, g.mesh, g.tex)
	}
	g.frame.WritePixels(g.raster.Image().Pix)

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = g.frame
	op.Uniforms = map[string]any{"Darkness": float32(vignetteDarkness)}
	screen.DrawRectShader(g.width, g.height, g.shader, op)

	g.drawHUD(screen, !g.meshDone)
}

func (g *Game) drawHUD(screen *ebiten.Image, loading bool) {
	g.drawText(screen, fmt.Sprintf("ENEMIES KILLED: %d", g.state.Kills), g.face, 4, 4, colorKills)
	if loading {
		g.drawText(screen, "Loading world...", g.face, 4, 18, colorLoading)
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	title := render.GameOverTitle
	tw, _ := text.Measure(title, g.bigFace, 0)
	g.drawText(screen, title, g.bigFace, (float64(g.width)-tw)/2, float64(g.height)/2-40, colorGameOver)

	sub := render.KillSummary(g.state.Kills)
	sw, _ := text.Measure(sub, g.face, 0)
	g.drawText(screen, sub, g.face, (float64(g.width)-sw)/2, float64(g.height)/2+10, colorKills)
}

func (g *Game) drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Layout pins the logical screen to the raster size; ebiten scales it up
// to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
