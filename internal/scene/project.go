package scene

import (
	"robosim/internal/sim"
	"robosim/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a projected vertex in surface pixels. Texture coordinates are
// stored divided by clip w so they can be interpolated linearly in
// screen space.
type Vertex struct {
	X, Y   float64 // pixels, origin top-left
	Depth  float64 // 0 at the near plane, 1 at the far plane
	InvW   float64
	UOverW float64
	VOverW float64
}

// Triangle is a projected triangle.
type Triangle [3]Vertex

// clipVertex is a vertex in homogeneous clip space.
type clipVertex struct {
	pos  mgl64.Vec4
	u, v float64
}

// Projector maps mesh triangles onto a surface of a given size.
type Projector struct {
	mvp           mgl64.Mat4
	width, height float64
}

// NewProjector prepares a projector for one frame.
func NewProjector(p sim.Pose, width, height int) *Projector {
	aspect := float64(width) / float64(max(height, 1))
	return &Projector{
		mvp:    Projection(aspect).Mul4(View(p)),
		width:  float64(width),
		height: float64(height),
	}
}

// Project appends the visible parts of every mesh triangle to dst.
func (pr *Projector) Project(m *world.Mesh, dst []Triangle) []Triangle {
	var poly [4]clipVertex
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		var in [3]clipVertex
		for j, v := range tri {
			in[j] = clipVertex{
				pos: pr.mvp.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1}),
				u:   v.U,
				v:   v.V,
			}
		}
		if outsideFrustum(in) {
			continue
		}
		n := clipNear(in, &poly)
		for k := 1; k+1 < n; k++ {
			dst = append(dst, Triangle{
				pr.toScreen(poly[0]),
				pr.toScreen(poly[k]),
				pr.toScreen(poly[k+1]),
			})
		}
	}
	return dst
}

// outsideFrustum reports whether all three vertices lie beyond the same
// side plane or the far plane.
func outsideFrustum(t [3]clipVertex) bool {
	planes := []func(mgl64.Vec4) bool{
		func(p mgl64.Vec4) bool { return p[0] < -p[3] },
		func(p mgl64.Vec4) bool { return p[0] > p[3] },
		func(p mgl64.Vec4) bool { return p[1] < -p[3] },
		func(p mgl64.Vec4) bool { return p[1] > p[3] },
		func(p mgl64.Vec4) bool { return p[2] > p[3] },
	}
	for _, out := range planes {
		if out(t[0].pos) && out(t[1].pos) && out(t[2].pos) {
			return true
		}
	}
	return false
}

// nearDistance is positive on the visible side of the near plane.
func nearDistance(p mgl64.Vec4) float64 { return p[2] + p[3] }

// clipNear clips a triangle against the near plane into poly and returns
// the resulting vertex count (0, 3 or 4).
func clipNear(in [3]clipVertex, poly *[4]clipVertex) int {
	n := 0
	for i := range in {
		a, b := in[i], in[(i+1)%3]
		da, db := nearDistance(a.pos), nearDistance(b.pos)
		if da >= 0 {
			poly[n] = a
			n++
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			poly[n] = clipVertex{
				pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
				u:   a.u + (b.u-a.u)*t,
				v:   a.v + (b.v-a.v)*t,
			}
			n++
		}
	}
	if n < 3 {
		return 0
	}
	return n
}

func (pr *Projector) toScreen(c clipVertex) Vertex {
	w := c.pos[3]
	if w < 1e-9 {
		w = 1e-9
	}
	inv := 1 / w
	ndcX, ndcY, ndcZ := c.pos[0]*inv, c.pos[1]*inv, c.pos[2]*inv
	return Vertex{
		X:      (ndcX*0.5 + 0.5) * pr.width,
		Y:      (0.5 - ndcY*0.5) * pr.height,
		Depth:  ndcZ*0.5 + 0.5,
		InvW:   inv,
		UOverW: c.u * inv,
		VOverW: c.v * inv,
	}
}
