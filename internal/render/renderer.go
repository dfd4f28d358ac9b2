package render

import (
	"robosim/internal/scene"
	"robosim/internal/sim"
	"robosim/internal/texture"
	"robosim/internal/world"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the upper pixel as foreground, the lower as background.
const halfBlock = '▀'

// Renderer draws the world and HUD onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	view   Viewport
	raster *scene.Raster
}

// NewRenderer creates a Renderer sized to the screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize picks up the current screen size.
func (r *Renderer) Resize() {
	r.view = NewViewport(r.screen.Size())
	w, h := r.view.PixelSize()
	if r.raster == nil {
		r.raster = scene.NewRaster(w, h)
		return
	}
	r.raster.Resize(w, h)
}

// Viewport returns the current cell layout.
func (r *Renderer) Viewport() Viewport { return r.view }

// DrawFrame clears the scene area and, once a mesh is available, draws it
// from the pose. Returns the number of triangles rasterised.
func (r *Renderer) DrawFrame(p sim.Pose, m *world.Mesh, tex *texture.Texture) int {
	r.raster.Clear()
	n := 0
	if m != nil {
		n = r.raster.Draw(p, m, tex)
	}
	r.blit()
	return n
}

// blit copies the framebuffer to the screen, two pixels per cell.
func (r *Renderer) blit() {
	w, h := r.raster.Size()
	for py := 0; py+1 < h; py += 2 {
		for px := 0; px < w; px++ {
			top := cellColor(r.raster.At(px, py))
			bottom := cellColor(r.raster.At(px, py+1))
			col, row := r.view.CellOf(px, py)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			r.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}
