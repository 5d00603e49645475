package grid

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/crust/geom"
)

// VertexCount returns the number of vertices in the grid.
func (g *Grid) VertexCount() int { return len(g.positions) }

// Idx returns the vertex id of cell (i, j) on the given cube face.
func (g *Grid) Idx(face, i, j int) int {
	n := g.FaceCells
	return face*n*n + j*n + i
}

// Coords returns the cube face and lattice coordinates of a vertex.
func (g *Grid) Coords(id int) (face, i, j int) {
	n := g.FaceCells
	face = id / (n * n)
	i = id % n
	j = (id % (n * n)) / n
	return face, i, j
}

func (g *Grid) check(id int) {
	if id < 0 || id >= len(g.positions) {
		panic(fmt.Sprintf(
			"Vertex id %d out of range [0, %d).", id, len(g.positions),
		))
	}
}

func (g *Grid) arrow(id, k int) *Arrow {
	g.check(id)
	if k < 0 || k >= ArrowsPerVertex {
		panic(fmt.Sprintf(
			"Arrow index %d out of range [0, %d).", k, ArrowsPerVertex,
		))
	}
	return &g.arrows[id*ArrowsPerVertex+k]
}

// Position returns the position of a vertex on the sphere.
func (g *Grid) Position(id int) geom.Vec {
	g.check(id)
	return g.positions[id]
}

// Normal returns the outward unit normal of the sphere at a vertex.
func (g *Grid) Normal(id int) geom.Vec {
	g.check(id)
	return g.normals[id]
}

// Area returns the area of a vertex's dual cell.
func (g *Grid) Area(id int) float64 {
	g.check(id)
	return g.areas[id]
}

// Arrow returns arrow k of a vertex.
func (g *Grid) Arrow(id, k int) Arrow { return *g.arrow(id, k) }

// Arrows returns the arrows leaving a vertex. The slice aliases the grid's
// storage and must not be modified.
func (g *Grid) Arrows(id int) []Arrow {
	g.check(id)
	return g.arrows[id*ArrowsPerVertex : (id+1)*ArrowsPerVertex]
}

// Neighbor returns the id of the vertex at the end of arrow k.
func (g *Grid) Neighbor(id, k int) int { return g.arrow(id, k).To }

// Length returns the surface distance spanned by arrow k.
func (g *Grid) Length(id, k int) float64 { return g.arrow(id, k).Length }

// DualLength returns the length of the dual cell boundary crossed by arrow k.
func (g *Grid) DualLength(id, k int) float64 { return g.arrow(id, k).DualLength }

// DualNormal returns the outward unit normal of the dual cell boundary
// crossed by arrow k.
func (g *Grid) DualNormal(id, k int) geom.Vec { return g.arrow(id, k).DualNormal }

// Irregular returns true if arrow k crosses a seam between cube faces.
func (g *Grid) Irregular(id, k int) bool { return g.arrow(id, k).Kind == Seam }

// Areas returns the dual cell area of every vertex. The slice aliases the
// grid's storage and must not be modified.
func (g *Grid) Areas() []float64 { return g.areas }

// Positions returns the position of every vertex. The slice aliases the
// grid's storage and must not be modified.
func (g *Grid) Positions() []geom.Vec { return g.positions }

// FlatPositions returns vertex positions as a flat x, y, z array, which is
// the layout renderers expect.
func (g *Grid) FlatPositions() []float32 {
	out := make([]float32, 3*len(g.positions))
	for i, p := range g.positions {
		out[3*i], out[3*i+1], out[3*i+2] =
			float32(p[0]), float32(p[1]), float32(p[2])
	}
	return out
}

// Nearest returns the vertex whose dual cell contains the direction of p.
func (g *Grid) Nearest(p geom.Vec) int {
	axis := 0
	for d := 1; d < 3; d++ {
		if math.Abs(p[d]) > math.Abs(p[axis]) {
			axis = d
		}
	}
	if p[axis] == 0 {
		panic("Grid.Nearest() given the zero vector.")
	}
	sgn := 1
	if p[axis] < 0 {
		sgn = -1
	}
	f := faceIdx(axis, sgn)
	fc := &faces[f]

	depth := math.Abs(p[axis])
	n := g.FaceCells
	return g.Idx(f, cellOf(p, fc.u, depth, n), cellOf(p, fc.v, depth, n))
}

func cellOf(p geom.Vec, axis [3]int, depth float64, n int) int {
	var x float64
	for d := 0; d < 3; d++ {
		x += p[d] * float64(axis[d])
	}
	a := math.Atan(x/depth) / (math.Pi / 4)
	c := int(math.Floor((a + 1) / 2 * float64(n)))
	if c < 0 {
		return 0
	} else if c >= n {
		return n - 1
	}
	return c
}
