/*package generate builds deterministic crusts from noise-driven elevation
fields.

Igneous crust is generated so that, once summarized at zero age, every column
floats at exactly its target elevation. Continental columns (elevation above
sea level) are felsic and oceanic columns are mafic.
*/
package generate

import (
	"fmt"

	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/math/interpolate"
	"github.com/phil-mansfield/crust/noise"
	"github.com/phil-mansfield/crust/parallel"
	"github.com/phil-mansfield/crust/rock"
)

// Params controls crust generation.
type Params struct {
	Seed   int64
	Plates int

	// Elevations are in meters relative to sea level. ReferenceElevation is
	// the level which the mantle surface sits at; every column must rise
	// above it.
	MinElevation, MaxElevation, ReferenceElevation float64

	// WorldAge is the current age of the world in Myr. Igneous layers are
	// deposited over the first half of it.
	WorldAge float64
	// Layers is the number of strata each igneous column is split into.
	Layers int

	MantleDensity float64
	// SedimentThickness is the thickness of sediment on the deepest sea
	// floor, in meters.
	SedimentThickness float64
}

// DefaultParams returns an Earth-like set of generation parameters.
func DefaultParams() Params {
	return Params{
		Seed: 1, Plates: 7,
		MinElevation: -4000, MaxElevation: 6000, ReferenceElevation: -5000,
		WorldAge: 4000, Layers: 4,
		MantleDensity: 3300, SedimentThickness: 300,
	}
}

// Check returns an error if the parameters cannot produce a valid crust.
func (p *Params) Check() error {
	switch {
	case p.Plates < 1:
		return fmt.Errorf("Plates must be positive, but is %d.", p.Plates)
	case !(p.MaxElevation > p.MinElevation):
		return fmt.Errorf(
			"MaxElevation (%g) must be larger than MinElevation (%g).",
			p.MaxElevation, p.MinElevation,
		)
	case !(p.MinElevation > p.ReferenceElevation):
		return fmt.Errorf(
			"MinElevation (%g) must be above ReferenceElevation (%g).",
			p.MinElevation, p.ReferenceElevation,
		)
	case p.WorldAge < 0:
		return fmt.Errorf("WorldAge must be non-negative, but is %g.", p.WorldAge)
	case p.Layers < 1 || p.Layers > rock.MaxStrata:
		return fmt.Errorf(
			"Layers must be in range [1, %d], but is %d.", rock.MaxStrata, p.Layers,
		)
	case !(p.MantleDensity > Mafic.Density()):
		return fmt.Errorf(
			"MantleDensity (%g) must be larger than oceanic crust density (%g).",
			p.MantleDensity, Mafic.Density(),
		)
	case p.SedimentThickness < 0:
		return fmt.Errorf(
			"SedimentThickness must be non-negative, but is %g.",
			p.SedimentThickness,
		)
	}
	return nil
}

// Hypsometry returns the relation between noise values in [-1, 1] and
// elevation. Most of the surface is ocean floor, with a sharp continental
// shelf and a long tail of mountains.
func Hypsometry(minElev, maxElev float64) interpolate.Relation {
	fracs := []float64{0, 0.08, 0.25, 0.38, 0.45, 0.6, 1}
	xs := []float64{-1, -0.6, -0.2, 0.05, 0.15, 0.5, 1}
	ys := make([]float64, len(fracs))
	for i, f := range fracs {
		ys[i] = minElev + f*(maxElev-minElev)
	}
	return interpolate.NewClamped(interpolate.NewSpline(xs, ys), -1, 1)
}

// Elevation samples f at every vertex and maps it onto [minElev, maxElev].
func Elevation(
	g *grid.Grid, f noise.Field, minElev, maxElev float64, workers int,
) []float64 {
	return noise.Sample(g, f, Hypsometry(minElev, maxElev), workers)
}

// Field returns the default elevation noise field for a seed.
func Field(seed int64) noise.Field {
	return noise.NewFractal(uint32(seed), 1.5, 6)
}

// IntendedDisplacement returns the height at which each column should float
// above the mantle surface.
func IntendedDisplacement(elevation []float64, ref float64) []float64 {
	out := make([]float64, len(elevation))
	for i, e := range elevation {
		out[i] = e - ref
	}
	return out
}

// ColumnComposition returns the composition of igneous crust under the
// given elevation.
func ColumnComposition(elevation float64) *Composition {
	if elevation > 0 {
		return &Felsic
	}
	return &Mafic
}

// Igneous creates a Formation of igneous crust whose columns float at the
// given elevations under the intrinsic densities of their minerals. Each
// column is split into p.Layers strata, older at the bottom.
func Igneous(g *grid.Grid, elevation []float64, p Params, workers int) *rock.Formation {
	if len(elevation) != g.VertexCount() {
		panic(fmt.Sprintf(
			"Elevation field has length %d, but grid has %d vertices.",
			len(elevation), g.VertexCount(),
		))
	}
	if err := p.Check(); err != nil {
		panic(err.Error())
	}

	f := rock.NewFormation(g.VertexCount())
	parallel.Each(g.VertexCount(), workers, func(i int) {
		freeboard := elevation[i] - p.ReferenceElevation
		if !(freeboard > 0) {
			panic(fmt.Sprintf(
				"Elevation %g at vertex %d is not above the reference "+
					"elevation %g.", elevation[i], i, p.ReferenceElevation,
			))
		}
		comp := ColumnComposition(elevation[i])
		rho := comp.Density()
		h := freeboard / (1 - rho/p.MantleDensity)
		mass := h * rho * g.Area(i)

		var grains [rock.GrainCount]float64
		grains[rock.Bedrock] = 1
		masses := comp.Masses(mass / float64(p.Layers))
		for k := 0; k < p.Layers; k++ {
			deposited := p.WorldAge / 2 * float64(k) / float64(p.Layers)
			f.Deposit(i, rock.NewStratum(masses, grains, deposited))
		}
	})
	return f
}
