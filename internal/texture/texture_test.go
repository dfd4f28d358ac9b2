package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// split returns a w×h image whose top half is red and bottom half blue.
func split(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := red
			if y >= h/2 {
				c = blue
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAtFlipsV(t *testing.T) {
	tex := FromImage(split(4, 4))
	if got := tex.At(0.5, 0.1); got != blue {
		t.Fatalf("At(0.5, 0.1) = %v, want bottom row colour %v", got, blue)
	}
	if got := tex.At(0.5, 0.9); got != red {
		t.Fatalf("At(0.5, 0.9) = %v, want top row colour %v", got, red)
	}
}

func TestAtWraps(t *testing.T) {
	tex := FromImage(split(4, 4))
	if tex.At(3.5, 2.1) != tex.At(0.5, 0.1) {
		t.Fatal("positive coordinates do not wrap")
	}
	if tex.At(-0.5, -0.9) != tex.At(0.5, 0.1) {
		t.Fatal("negative coordinates do not wrap")
	}
	// v = 1.0 wraps to 0, the bottom row.
	if got := tex.At(0, 1); got != blue {
		t.Fatalf("At(0, 1) = %v, want %v", got, blue)
	}
}

func TestFromImageDownscales(t *testing.T) {
	tex := FromImage(split(512, 256))
	w, h := tex.Size()
	if w != MaxSize || h != MaxSize/2 {
		t.Fatalf("Size = %dx%d, want %dx%d", w, h, MaxSize, MaxSize/2)
	}
	small := FromImage(split(8, 8))
	if w, h := small.Size(); w != 8 || h != 8 {
		t.Fatalf("small texture resized to %dx%d", w, h)
	}
}

func TestLoadPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, split(16, 16)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "wall.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w, h := tex.Size(); w != 16 || h != 16 {
		t.Fatalf("Size = %dx%d", w, h)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
