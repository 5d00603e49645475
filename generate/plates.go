package generate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/parallel"
	"github.com/phil-mansfield/crust/rock"
)

// PlateCenters returns n random directions, uniformly distributed over the
// sphere.
func PlateCenters(n int, seed int64) []geom.Vec {
	gen := rand.New(rand.NewSource(seed))
	out := make([]geom.Vec, n)
	for i := range out {
		lat := math.Asin(2*gen.Float64() - 1)
		lon := 2 * math.Pi * gen.Float64()
		out[i] = geom.Cartesian(lat, lon, 1)
	}
	return out
}

// Plates assigns every vertex of g to the closest of n plate centers, a
// Voronoi partition of the sphere. Ties go to the lower plate.
func Plates(g *grid.Grid, n int, seed int64, workers int) []int {
	if n < 1 {
		panic(fmt.Sprintf("Plates() given %d plates.", n))
	}
	centers := PlateCenters(n, seed)
	out := make([]int, g.VertexCount())
	parallel.Each(g.VertexCount(), workers, func(i int) {
		nrm := g.Normal(i)
		best, bestDot := 0, math.Inf(-1)
		for k, c := range centers {
			if d := nrm.Dot(c); d > bestDot {
				best, bestDot = k, d
			}
		}
		out[i] = best
	})
	return out
}

// Split separates f into n Formations, one per plate. Formation k holds the
// columns of the vertices in plate k and is empty elsewhere.
func Split(f *rock.Formation, plates []int, n, workers int) []*rock.Formation {
	if len(plates) != f.VertexCount() {
		panic(fmt.Sprintf(
			"Plate map has length %d, but Formation covers %d vertices.",
			len(plates), f.VertexCount(),
		))
	}
	out := make([]*rock.Formation, n)
	for k := range out {
		out[k] = rock.NewFormation(f.VertexCount())
	}
	parallel.Each(f.VertexCount(), workers, func(i int) {
		k := plates[i]
		if k < 0 || k >= n {
			panic(fmt.Sprintf(
				"Vertex %d assigned to plate %d of %d.", i, k, n,
			))
		}
		copy(out[k].Column(i), f.Column(i))
	})
	return out
}
