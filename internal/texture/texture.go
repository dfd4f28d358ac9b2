package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// MaxSize bounds either side of a loaded texture.
const MaxSize = 128

// Texture is a decoded, bounded RGBA image sampled with repeat wrapping.
type Texture struct {
	img *image.RGBA
	w   int
	h   int
}

// FromImage copies src into a Texture, downscaling it if either side
// exceeds MaxSize.
func FromImage(src image.Image) *Texture {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxSize || h > MaxSize {
		scale := float64(MaxSize) / float64(max(w, h))
		w = max(1, int(math.Round(float64(w)*scale)))
		h = max(1, int(math.Round(float64(h)*scale)))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	return &Texture{img: dst, w: w, h: h}
}

// Decode reads an encoded image.
func Decode(data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return FromImage(img), nil
}

// Load reads and decodes the image file at path.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	return Decode(data)
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (int, int) { return t.w, t.h }

// Image exposes the texel data.
func (t *Texture) Image() *image.RGBA { return t.img }

// At samples the texel under (u, v). Coordinates wrap, and v runs from
// the bottom row upward.
func (t *Texture) At(u, v float64) color.RGBA {
	x := int(wrap(u) * float64(t.w))
	y := int((1 - wrap(v)) * float64(t.h))
	x = min(max(x, 0), t.w-1)
	y = min(max(y, 0), t.h-1)
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func wrap(f float64) float64 {
	f -= math.Floor(f)
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return f
}
