package world

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseLines(t *testing.T) {
	cases := []struct {
		name string
		line string
		keep bool
	}{
		{"five numbers", "-3.0 0.0 -3.0 0.0 6.0", true},
		{"leading whitespace", "   \t1 2 3 0.5 0.5", true},
		{"four fields", "1 2 3 4", false},
		{"six fields", "1 2 3 4 5 6", false},
		{"comment with five fields", "// 1 2 3 4", false},
		{"comment exactly five tokens", "// a b c d", false},
		{"header line", "NUMPOLLIES 36", false},
		{"blank", "", false},
		{"non numeric", "1 2 three 4 5", false},
		{"exponent", "1e1 -2E-1 0 1 1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tc.line + "\n"))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := m.VertexCount() == 1; got != tc.keep {
				t.Fatalf("kept = %v, want %v", got, tc.keep)
			}
		})
	}
}

func TestParseValuesAndCount(t *testing.T) {
	src := `NUMPOLLIES 2

// Floor 1
-3.0  0.0 -3.0 0.0 6.0
-3.0  0.0  3.0 0.0 0.0
 3.0  0.0  3.0 6.0 0.0
not a vertex line
-3.0  0.0 -3.0 0.0 6.0
 3.0  0.0 -3.0 6.0 6.0
 3.0  0.0  3.0 6.0 0.0
-1.0 -1.0`
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.VertexCount() != 6 || m.TriangleCount() != 2 {
		t.Fatalf("vertices=%d triangles=%d, want 6 and 2", m.VertexCount(), m.TriangleCount())
	}
	want := Vertex{X: 3, Y: 0, Z: -3, U: 6, V: 6}
	if got := m.Triangle(1)[1]; got != want {
		t.Fatalf("Triangle(1)[1] = %+v, want %+v", got, want)
	}
}

func TestTrailingVerticesNotATriangle(t *testing.T) {
	m, err := Parse(strings.NewReader("0 0 0 0 0\n1 0 0 1 0\n0 1 0 0 1\n0 0 1 0 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 1 {
		t.Fatalf("vertices=%d triangles=%d", m.VertexCount(), m.TriangleCount())
	}
}

func TestParseOverlongLineSkipped(t *testing.T) {
	junk := strings.Repeat("x", 70000)
	src := "0 0 0 0 0\n1 0 0 1 0\n0 1 0 0 1\n" + junk + "\n0 0 1 0 0\n1 0 1 1 0\n0 1 1 0 1"
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.VertexCount() != 6 || m.TriangleCount() != 2 {
		t.Fatalf("vertices=%d triangles=%d, want 6 and 2", m.VertexCount(), m.TriangleCount())
	}
	want := Vertex{X: 0, Y: 1, Z: 1, U: 0, V: 1}
	if got := m.Triangle(1)[2]; got != want {
		t.Fatalf("Triangle(1)[2] = %+v, want %+v", got, want)
	}
}

func TestParseReadError(t *testing.T) {
	boom := errors.New("disk gone")
	r := io.MultiReader(strings.NewReader("0 0 0 0 0\n"), iotest.ErrReader(boom))
	if _, err := Parse(r); !errors.Is(err, boom) {
		t.Fatalf("Parse = %v, want %v", err, boom)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.txt")
	if err := os.WriteFile(path, []byte("0 0 0 0 0\n1 0 0 1 0\n0 1 0 0 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", m.TriangleCount())
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load missing = %v, want ErrNotExist", err)
	}
}
