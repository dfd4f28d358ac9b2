package scene

import (
	"image"
	"image/color"
	"math"

	"robosim/internal/sim"
	"robosim/internal/texture"
	"robosim/internal/world"
)

// Raster is a software framebuffer with a depth buffer.
type Raster struct {
	img   *image.RGBA
	depth []float64
	tris  []Triangle
	clear color.RGBA
}

// NewRaster allocates a w×h framebuffer.
func NewRaster(w, h int) *Raster {
	r := &Raster{clear: color.RGBA{A: 255}}
	r.Resize(w, h)
	return r
}

// Resize reallocates the buffers when the size changes.
func (r *Raster) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.img != nil && r.img.Rect.Dx() == w && r.img.Rect.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.depth = make([]float64, w*h)
}

// Size returns the framebuffer dimensions.
func (r *Raster) Size() (int, int) { return r.img.Rect.Dx(), r.img.Rect.Dy() }

// Image exposes the colour buffer.
func (r *Raster) Image() *image.RGBA { return r.img }

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA { return r.img.RGBAAt(x, y) }

// Clear fills the colour buffer with black and resets depth.
func (r *Raster) Clear() {
	c := r.clear
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

// Draw renders the mesh from the pose with one texture bound and returns
// the number of triangles rasterised after clipping.
func (r *Raster) Draw(p sim.Pose, m *world.Mesh, tex *texture.Texture) int {
	w, h := r.Size()
	r.tris = NewProjector(p, w, h).Project(m, r.tris[:0])
	for _, t := range r.tris {
		r.fill(t, tex)
	}
	return len(r.tris)
}

func edge(a, b Vertex, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
}

// fill rasterises one triangle with a depth test and perspective-correct
// texture lookup. Pixels are sampled at their centres.
func (r *Raster) fill(t Triangle, tex *texture.Texture) {
	w, h := r.Size()
	a, b, c := t[0], t[1], t[2]
	area := edge(a, b, c.X, c.Y)
	if area == 0 {
		return
	}

	minX := max(int(math.Floor(min(a.X, b.X, c.X))), 0)
	maxX := min(int(math.Ceil(max(a.X, b.X, c.X))), w-1)
	minY := max(int(math.Floor(min(a.Y, b.Y, c.Y))), 0)
	maxY := min(int(math.Ceil(max(a.Y, b.Y, c.Y))), h-1)

	inv := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) * inv
			w1 := edge(c, a, px, py) * inv
			w2 := edge(a, b, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.Depth + w1*b.Depth + w2*c.Depth
			i := y*w + x
			if z < 0 || z > 1 || z >= r.depth[i] {
				continue
			}
			r.depth[i] = z

			invW := w0*a.InvW + w1*b.InvW + w2*c.InvW
			u := (w0*a.UOverW + w1*b.UOverW + w2*c.UOverW) / invW
			v := (w0*a.VOverW + w1*b.VOverW + w2*c.VOverW) / invW
			r.img.SetRGBA(x, y, shade(tex, u, v))
		}
	}
}

func shade(tex *texture.Texture, u, v float64) color.RGBA {
	if tex == nil {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	c := tex.At(u, v)
	c.A = 255
	return c
}
