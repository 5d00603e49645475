/*package calculus estimates spatial derivatives of fields defined on the
vertices of a grid.Grid.

Every operator is a finite volume estimate: the Gauss-Green theorem turns the
integral of a derivative over a vertex's dual cell into a flux through the
cell boundary, and the flux is summed over the arrows leaving the vertex and
divided by the dual cell area. Differences (neighbor - own) are used instead
of boundary averages, which makes the response to constant fields exactly
zero.

Cube-sphere cells are skewed, and the skew jumps across seams, so the raw
Gauss-Green sums are not consistent there. Two corrections are applied,
both computed once by New:

  - the flux weights of each vertex are multiplied by the inverse of the
    tensor the raw sum produces for linear fields, which makes the gradient,
    divergence and curl exact for fields that vary linearly in the tangent
    plane.
  - the Laplacian's two-point flux is measured along the arrow and only the
    part of the boundary normal parallel to the arrow uses it. The remainder
    is taken from the averaged gradient of the two endpoints.
*/
package calculus

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/parallel"
)

// Operators evaluates differential operators over a grid. Workers is the
// number of goroutines used per call; zero means one per core. Results do
// not depend on Workers.
//
// Operators must be created with New.
type Operators struct {
	Grid    *grid.Grid
	Workers int

	// Per arrow, indexed by id*ArrowsPerVertex + k.
	weights []geom.Vec // gradient weight of f[To] - f[id]
	ortho   []float64  // 1 / (dual normal . arrow direction)
	skew    []geom.Vec // dual normal - ortho * arrow direction
}

// New returns Operators for the given grid.
func New(g *grid.Grid, workers int) *Operators {
	n := g.VertexCount() * grid.ArrowsPerVertex
	ops := &Operators{
		Grid: g, Workers: workers,
		weights: make([]geom.Vec, n),
		ortho:   make([]float64, n),
		skew:    make([]geom.Vec, n),
	}
	parallel.Each(g.VertexCount(), workers, ops.initVertex)
	return ops
}

// tangentBasis returns two orthonormal vectors spanning the plane tangent to
// the unit vector n.
func tangentBasis(n geom.Vec) (e1, e2 geom.Vec) {
	a := geom.Vec{1, 0, 0}
	if math.Abs(n[0]) > 0.9 {
		a = geom.Vec{0, 1, 0}
	}
	e1 = a.Tangent(n).Normalize()
	return e1, n.Cross(e1)
}

func (ops *Operators) initVertex(i int) {
	g := ops.Grid
	ni := g.Normal(i)
	e1, e2 := tangentBasis(ni)
	arrows := g.Arrows(i)

	// m is the raw Gauss-Green response to the linear field x . e_b,
	// written in the (e1, e2) basis.
	var flux [grid.ArrowsPerVertex]geom.Vec
	var m [2][2]float64
	for k, a := range arrows {
		nj := g.Normal(a.To)
		flux[k] = a.DualNormal.Scale(0.5 * a.DualLength / g.Area(i))
		disp := nj.Sub(ni).Tangent(ni).Normalize().Scale(a.Length)

		f1, f2 := flux[k].Dot(e1), flux[k].Dot(e2)
		d1, d2 := disp.Dot(e1), disp.Dot(e2)
		m[0][0] += f1 * d1
		m[0][1] += f1 * d2
		m[1][0] += f2 * d1
		m[1][1] += f2 * d2

		// Both endpoints of an arrow compute bit-identical values with
		// opposite signs here, so Laplacian fluxes cancel exactly.
		dir := nj.Sub(ni).Tangent(ni.Add(nj).Normalize()).Normalize()
		j := i*grid.ArrowsPerVertex + k
		ops.ortho[j] = 1 / a.DualNormal.Dot(dir)
		ops.skew[j] = a.DualNormal.Sub(dir.Scale(ops.ortho[j]))
	}

	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	if !(math.Abs(det) > 0) {
		panic(fmt.Sprintf(
			"Dual cell of vertex %d has a degenerate flux tensor.", i,
		))
	}
	inv := [2][2]float64{
		{m[1][1] / det, -m[0][1] / det},
		{-m[1][0] / det, m[0][0] / det},
	}
	for k := range arrows {
		f1, f2 := flux[k].Dot(e1), flux[k].Dot(e2)
		w := e1.Scale(inv[0][0]*f1 + inv[0][1]*f2)
		ops.weights[i*grid.ArrowsPerVertex+k] =
			w.Add(e2.Scale(inv[1][0]*f1 + inv[1][1]*f2))
	}
}

func (ops *Operators) checkLen(name string, n int) {
	if n != ops.Grid.VertexCount() {
		panic(fmt.Sprintf(
			"%s has length %d, but grid has %d vertices.",
			name, n, ops.Grid.VertexCount(),
		))
	}
}

func (ops *Operators) scalarOut(out [][]float64) []float64 {
	if len(out) == 0 {
		return make([]float64, ops.Grid.VertexCount())
	}
	ops.checkLen("Output field", len(out[0]))
	return out[0]
}

func (ops *Operators) vectorOut(out [][]geom.Vec) []geom.Vec {
	if len(out) == 0 {
		return make([]geom.Vec, ops.Grid.VertexCount())
	}
	ops.checkLen("Output field", len(out[0]))
	return out[0]
}

// Gradient computes the gradient of a scalar field. If an output array is
// given, the output is written to that array (the array is still returned as
// a convenience).
func (ops *Operators) Gradient(f []float64, out ...[]geom.Vec) []geom.Vec {
	ops.checkLen("Scalar field", len(f))
	grad := ops.vectorOut(out)
	g := ops.Grid

	parallel.Each(len(f), ops.Workers, func(i int) {
		var sum geom.Vec
		w := ops.weights[i*grid.ArrowsPerVertex:]
		for k, a := range g.Arrows(i) {
			sum.AddSelf(w[k].Scale(f[a.To] - f[i]))
		}
		grad[i] = sum
	})
	return grad
}

// Divergence computes the divergence of a vector field. If an output array
// is given, the output is written to that array (the array is still returned
// as a convenience).
func (ops *Operators) Divergence(v []geom.Vec, out ...[]float64) []float64 {
	ops.checkLen("Vector field", len(v))
	div := ops.scalarOut(out)
	g := ops.Grid

	parallel.Each(len(v), ops.Workers, func(i int) {
		sum := 0.0
		w := ops.weights[i*grid.ArrowsPerVertex:]
		for k, a := range g.Arrows(i) {
			sum += w[k].Dot(v[a.To].Sub(v[i]))
		}
		div[i] = sum
	})
	return div
}

// Curl computes the curl of a vector field. If an output array is given, the
// output is written to that array (the array is still returned as a
// convenience).
func (ops *Operators) Curl(v []geom.Vec, out ...[]geom.Vec) []geom.Vec {
	ops.checkLen("Vector field", len(v))
	curl := ops.vectorOut(out)
	g := ops.Grid

	parallel.Each(len(v), ops.Workers, func(i int) {
		var sum geom.Vec
		w := ops.weights[i*grid.ArrowsPerVertex:]
		for k, a := range g.Arrows(i) {
			sum.AddSelf(w[k].Cross(v[a.To].Sub(v[i])))
		}
		curl[i] = sum
	})
	return curl
}

// Laplacian computes the Laplacian of a scalar field from the flux of its
// gradient across each dual boundary. If an output array is given, the
// output is written to that array (the array is still returned as a
// convenience).
func (ops *Operators) Laplacian(f []float64, out ...[]float64) []float64 {
	ops.checkLen("Scalar field", len(f))
	lap := ops.scalarOut(out)
	grad := ops.Gradient(f)
	g := ops.Grid

	parallel.Each(len(f), ops.Workers, func(i int) {
		sum := 0.0
		for k, a := range g.Arrows(i) {
			j := i*grid.ArrowsPerVertex + k
			mean := grad[i].Add(grad[a.To]).Scale(0.5)
			normal := ops.ortho[j]*(f[a.To]-f[i])/a.Length + mean.Dot(ops.skew[j])
			sum += normal * a.DualLength
		}
		lap[i] = sum / g.Area(i)
	})
	return lap
}
