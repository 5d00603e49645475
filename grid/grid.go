/*package grid discretizes the surface of a sphere into a closed, vertex-indexed
mesh with a fixed number of neighbors per vertex.

The mesh is a cube-sphere: each of the six faces of a cube is cut into a
FaceCells x FaceCells lattice of cells, and each cell is pushed onto the
sphere with an equiangular gnomonic projection. Vertices sit at cell
centers and every vertex has exactly four arrows, one across each edge of
its cell. The cell itself is the vertex's dual cell, so the dual area is the
spherical area of the cell and the dual length of an arrow is the length of
the edge it crosses.

Arrows which cross from one cube face to another are tagged as Seam arrows.
Face lattices are unfolded differently on either side of a seam, so the
neighbor and the reverse arrow of a Seam arrow are found by folding the
lattice offset onto the adjacent face rather than by stepping the index.
*/
package grid

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/parallel"
)

// ArrowsPerVertex is the fixed number of outgoing arrows at every vertex.
// Arrow k points in the direction +u, +v, -u, -v of the vertex's face for
// k = 0, 1, 2, 3.
const ArrowsPerVertex = 4

// ArrowKind tags an arrow as either staying on its cube face or crossing a
// seam between two faces.
type ArrowKind uint8

const (
	// Regular arrows connect two cells on the same face. The reverse arrow
	// of arrow k is arrow (k+2) % ArrowsPerVertex of the target.
	Regular ArrowKind = iota
	// Seam arrows cross onto an adjacent face, where the lattice is rotated
	// or mirrored relative to the source face.
	Seam
)

func (k ArrowKind) String() string {
	switch k {
	case Regular:
		return "Regular"
	case Seam:
		return "Seam"
	}
	return fmt.Sprintf("ArrowKind(%d)", uint8(k))
}

// Arrow is a directed link from a vertex to one of its neighbors together
// with the dual-mesh geometry used by finite volume operators.
type Arrow struct {
	// To is the id of the target vertex and Reverse is the index of the
	// arrow at To which points back to the source.
	To, Reverse int
	// Length is the surface distance between the two vertices.
	Length float64
	// DualLength is the length of the dual cell boundary the arrow crosses.
	DualLength float64
	// DualNormal is the unit outward normal of that boundary, tangent to the
	// sphere.
	DualNormal geom.Vec
	Kind       ArrowKind
}

// Grid is a cube-sphere discretization of a sphere.
type Grid struct {
	Radius    float64
	FaceCells int

	positions []geom.Vec
	normals   []geom.Vec
	areas     []float64
	arrows    []Arrow
}

// face describes one face of the cube by integer axes. The axes are chosen
// so that U x V = N, which makes lattice corners counter-clockwise when seen
// from outside the sphere.
type face struct {
	n, u, v [3]int
}

var faces = [6]face{
	{n: [3]int{1, 0, 0}, u: [3]int{0, 1, 0}, v: [3]int{0, 0, 1}},
	{n: [3]int{-1, 0, 0}, u: [3]int{0, 0, 1}, v: [3]int{0, 1, 0}},
	{n: [3]int{0, 1, 0}, u: [3]int{0, 0, 1}, v: [3]int{1, 0, 0}},
	{n: [3]int{0, -1, 0}, u: [3]int{1, 0, 0}, v: [3]int{0, 0, 1}},
	{n: [3]int{0, 0, 1}, u: [3]int{1, 0, 0}, v: [3]int{0, 1, 0}},
	{n: [3]int{0, 0, -1}, u: [3]int{0, 1, 0}, v: [3]int{1, 0, 0}},
}

// lattice steps for arrows +u, +v, -u, -v.
var steps = [ArrowsPerVertex][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// edges gives the lattice corner offsets (relative to corner (i, j) of the
// cell) of the edge crossed by each arrow, ordered counter-clockwise.
var edges = [ArrowsPerVertex][2][2]int{
	{{1, 0}, {1, 1}},
	{{1, 1}, {0, 1}},
	{{0, 1}, {0, 0}},
	{{0, 0}, {1, 0}},
}

// New creates a cube-sphere grid with the given radius and faceCells cells
// along each edge of each cube face. The result depends only on its
// arguments.
func New(radius float64, faceCells int) *Grid {
	if !(radius > 0) {
		panic(fmt.Sprintf("Grid radius must be positive, but is %g.", radius))
	} else if faceCells < 1 {
		panic(fmt.Sprintf(
			"Grid must have at least one cell per face, but has %d.", faceCells,
		))
	}

	n := faceCells
	g := &Grid{Radius: radius, FaceCells: n}
	count := 6 * n * n
	g.positions = make([]geom.Vec, count)
	g.normals = make([]geom.Vec, count)
	g.areas = make([]float64, count)
	g.arrows = make([]Arrow, count*ArrowsPerVertex)

	ts := tangents(n)

	parallel.Each(count, 0, func(id int) {
		f, i, j := g.Coords(id)
		fc := &faces[f]

		s := math.Tan((-1 + float64(2*i+1)/float64(n)) * math.Pi / 4)
		t := math.Tan((-1 + float64(2*j+1)/float64(n)) * math.Pi / 4)
		g.normals[id] = project(fc, s, t)
		g.positions[id] = g.normals[id].Scale(radius)

		c := [4]geom.Vec{
			project(fc, ts[i], ts[j]), project(fc, ts[i+1], ts[j]),
			project(fc, ts[i+1], ts[j+1]), project(fc, ts[i], ts[j+1]),
		}
		g.areas[id] = radius * radius *
			(geom.TriangleArea(c[0], c[1], c[2]) +
				geom.TriangleArea(c[0], c[2], c[3]))

		for k := 0; k < ArrowsPerVertex; k++ {
			a := &g.arrows[id*ArrowsPerVertex+k]
			a.To, a.Kind = g.step(f, i, j, k)

			e0 := project(fc, ts[i+edges[k][0][0]], ts[j+edges[k][0][1]])
			e1 := project(fc, ts[i+edges[k][1][0]], ts[j+edges[k][1][1]])
			mid := e0.Add(e1).Normalize()

			a.DualLength = radius * geom.Arc(e0, e1)
			a.DualNormal = e1.Sub(e0).Cross(mid).Normalize()
		}
	})

	for id := 0; id < count; id++ {
		for k := 0; k < ArrowsPerVertex; k++ {
			a := &g.arrows[id*ArrowsPerVertex+k]
			a.Length = radius * geom.Arc(g.normals[id], g.normals[a.To])

			switch a.Kind {
			case Regular:
				a.Reverse = (k + 2) % ArrowsPerVertex
			case Seam:
				a.Reverse = g.findReverse(id, a.To)
			}
		}
	}

	// Seam edges are shared by cells from two differently unfolded faces.
	// The lower-indexed cell owns the edge and the other side copies its
	// geometry with the normal flipped, so fluxes across seams cancel
	// exactly.
	for id := 0; id < count; id++ {
		for k := 0; k < ArrowsPerVertex; k++ {
			a := &g.arrows[id*ArrowsPerVertex+k]
			if a.Kind != Seam || a.To > id {
				continue
			}
			owner := g.arrows[a.To*ArrowsPerVertex+a.Reverse]
			a.DualLength = owner.DualLength
			a.DualNormal = owner.DualNormal.Scale(-1)
			a.Length = owner.Length
		}
	}

	return g
}

// tangents returns the gnomonic coordinate of each lattice corner line. The
// end points and the mirror symmetry are set exactly so that corners on
// seams come out bit-identical from either face.
func tangents(n int) []float64 {
	ts := make([]float64, n+1)
	for c := 0; c <= n; c++ {
		ts[c] = math.Tan((-1 + 2*float64(c)/float64(n)) * math.Pi / 4)
	}
	ts[0], ts[n] = -1, 1
	for c := 0; c < (n+1)/2; c++ {
		ts[n-c] = -ts[c]
	}
	if n%2 == 0 {
		ts[n/2] = 0
	}
	return ts
}

// project maps the gnomonic coordinates (s, t) on a face to the unit sphere.
func project(fc *face, s, t float64) geom.Vec {
	var p geom.Vec
	for d := 0; d < 3; d++ {
		p[d] = float64(fc.n[d]) + s*float64(fc.u[d]) + t*float64(fc.v[d])
	}
	return p.Normalize()
}

// step returns the vertex reached by following arrow k from cell (i, j) of
// face f.
func (g *Grid) step(f, i, j, k int) (int, ArrowKind) {
	n := g.FaceCells
	ni, nj := i+steps[k][0], j+steps[k][1]
	if ni >= 0 && ni < n && nj >= 0 && nj < n {
		return g.Idx(f, ni, nj), Regular
	}

	// Work on the integer lattice of cell centers, where the cube has
	// half-width n and centers sit at odd offsets.
	fc := &faces[f]
	var p [3]int
	for d := 0; d < 3; d++ {
		p[d] = n*fc.n[d] + (2*ni+1-n)*fc.u[d] + (2*nj+1-n)*fc.v[d]
	}

	// Fold the point which overhangs the edge down onto the adjacent face.
	over, axis := -1, -1
	for d := 0; d < 3; d++ {
		if abs(p[d]) == n+1 {
			over = d
		}
		if fc.n[d] != 0 {
			axis = d
		}
	}
	if over < 0 {
		panic("Internal grid error: seam step did not leave the face.")
	}
	p[over] = sign(p[over]) * n
	p[axis] = fc.n[axis] * (n - 1)

	nf := faceIdx(over, sign(p[over]))
	nfc := &faces[nf]
	fi := (dot(p, nfc.u) + n - 1) / 2
	fj := (dot(p, nfc.v) + n - 1) / 2
	if fi < 0 || fi >= n || fj < 0 || fj >= n {
		panic(fmt.Sprintf(
			"Internal grid error: seam fold of (%d, %d, %d) landed on "+
				"(%d, %d, %d).", f, i, j, nf, fi, fj,
		))
	}
	return g.Idx(nf, fi, fj), Seam
}

func (g *Grid) findReverse(from, to int) int {
	for k := 0; k < ArrowsPerVertex; k++ {
		if g.arrows[to*ArrowsPerVertex+k].To == from {
			return k
		}
	}
	panic(fmt.Sprintf(
		"Internal grid error: vertex %d has no arrow back to %d.", to, from,
	))
}

func faceIdx(axis, sgn int) int {
	for f := range faces {
		if faces[f].n[axis] == sgn {
			return f
		}
	}
	panic("Internal grid error: no face for axis.")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}

func dot(a, b [3]int) int {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
