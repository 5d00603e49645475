package generate

import (
	"fmt"

	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/parallel"
	"github.com/phil-mansfield/crust/rock"
)

// Sediment creates a Formation of clastic sediment over the sea floor. Its
// thickness grows linearly from zero at sea level to p.SedimentThickness at
// p.MinElevation, and it fines with depth: sand near the coast, clay in the
// abyss. The sediment is deposited at the current world age.
func Sediment(g *grid.Grid, elevation []float64, p Params, workers int) *rock.Formation {
	if len(elevation) != g.VertexCount() {
		panic(fmt.Sprintf(
			"Elevation field has length %d, but grid has %d vertices.",
			len(elevation), g.VertexCount(),
		))
	}

	f := rock.NewFormation(g.VertexCount())
	if p.SedimentThickness == 0 || p.MinElevation >= 0 {
		return f
	}
	rho := Clastic.Density()

	parallel.Each(g.VertexCount(), workers, func(i int) {
		if elevation[i] >= 0 {
			return
		}
		depth := elevation[i] / p.MinElevation
		if depth > 1 {
			depth = 1
		}
		h := depth * p.SedimentThickness
		mass := h * rho * g.Area(i)

		var grains [rock.GrainCount]float64
		grains[rock.Sand] = 1 - depth
		grains[rock.Silt] = 0.5
		grains[rock.Clay] = depth
		f.Deposit(i, rock.NewStratum(Clastic.Masses(mass), grains, p.WorldAge))
	})
	return f
}

// Crust generates the full crust for an elevation field: one igneous
// Formation per plate followed by a sediment Formation.
func Crust(g *grid.Grid, elevation []float64, p Params, workers int) *rock.Crust {
	igneous := Igneous(g, elevation, p, workers)
	plates := Plates(g, p.Plates, p.Seed, workers)
	c := rock.NewCrust(g.VertexCount(), Split(igneous, plates, p.Plates, workers)...)
	c.Add(Sediment(g, elevation, p, workers))
	return c
}
