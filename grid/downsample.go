package grid

import (
	"fmt"

	"github.com/phil-mansfield/crust/parallel"
)

func (g *Grid) checkFactor(factor int) {
	if factor < 1 || g.FaceCells%factor != 0 {
		panic(fmt.Sprintf(
			"Downsampling factor %d does not divide FaceCells = %d.",
			factor, g.FaceCells,
		))
	}
}

// Downsample returns the coarser grid whose cells each cover factor x factor
// cells of g.
func (g *Grid) Downsample(factor int) *Grid {
	g.checkFactor(factor)
	return New(g.Radius, g.FaceCells/factor)
}

// Parent returns the id of the coarse vertex (see Downsample) which covers
// the fine vertex id.
func (g *Grid) Parent(id, factor int) int {
	g.check(id)
	g.checkFactor(factor)
	f, i, j := g.Coords(id)
	m := g.FaceCells / factor
	return f*m*m + (j/factor)*m + i/factor
}

// DownsampleTotal sums a field over the fine vertices under each coarse
// vertex. It is meant for extensive quantities like mass. If an output array
// is given, the output is written to that array (the array is still returned
// as a convenience).
func (g *Grid) DownsampleTotal(
	fine []float64, factor, workers int, out ...[]float64,
) []float64 {
	g.checkFactor(factor)
	if len(fine) != g.VertexCount() {
		panic(fmt.Sprintf(
			"Field has length %d, but grid has %d vertices.",
			len(fine), g.VertexCount(),
		))
	}

	n, m := g.FaceCells, g.FaceCells/factor
	coarseCount := 6 * m * m
	if len(out) == 0 {
		out = [][]float64{make([]float64, coarseCount)}
	} else if len(out[0]) != coarseCount {
		panic(fmt.Sprintf(
			"Output has length %d, but coarse grid has %d vertices.",
			len(out[0]), coarseCount,
		))
	}
	coarse := out[0]

	// Each coarse vertex gathers its own children in a fixed order, so the
	// sum does not depend on how the work is split.
	parallel.Each(coarseCount, workers, func(c int) {
		f, ci, cj := c/(m*m), c%m, (c%(m*m))/m
		sum := 0.0
		for dj := 0; dj < factor; dj++ {
			row := f*n*n + (cj*factor+dj)*n + ci*factor
			for di := 0; di < factor; di++ {
				sum += fine[row+di]
			}
		}
		coarse[c] = sum
	})
	return coarse
}

// DownsampleField averages an intensive field over the fine vertices under
// each coarse vertex: the sum over the children divided by factor^2.
func (g *Grid) DownsampleField(
	fine []float64, factor, workers int, out ...[]float64,
) []float64 {
	coarse := g.DownsampleTotal(fine, factor, workers, out...)
	norm := 1 / float64(factor*factor)
	for i := range coarse {
		coarse[i] *= norm
	}
	return coarse
}
