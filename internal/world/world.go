// Package world reads the static world description: a plain-text list of
// textured triangle vertices.
//
// Each vertex is one line of five whitespace-separated numbers:
//
//	x y z u v
//
// Lines with any other field count, lines starting with "//" and lines
// whose fields are not numbers are skipped. Every three accepted lines
// form a triangle.
package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CommentMarker opens a comment line.
const CommentMarker = "//"

// Vertex is one textured mesh vertex.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// Mesh is a flat triangle list.
type Mesh struct {
	Vertices []Vertex
}

// VertexCount returns the number of accepted vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of whole triangles. Trailing vertices
// that do not complete a triangle are never drawn.
func (m *Mesh) TriangleCount() int { return len(m.Vertices) / 3 }

// Triangle returns the i'th triangle's vertices.
func (m *Mesh) Triangle(i int) [3]Vertex {
	return [3]Vertex{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// Parse reads a world description. Only read errors are returned;
// malformed lines are dropped.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if v, ok := parseLine(line); ok {
				m.Vertices = append(m.Vertices, v)
			}
		}
		if errors.Is(err, io.EOF) {
			return m, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read world: %w", err)
		}
	}
}

// Load parses the world file at path.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open world: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func parseLine(line string) (Vertex, bool) {
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[0] == CommentMarker {
		return Vertex{}, false
	}
	var vals [5]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Vertex{}, false
		}
		vals[i] = v
	}
	return Vertex{X: vals[0], Y: vals[1], Z: vals[2], U: vals[3], V: vals[4]}, true
}
