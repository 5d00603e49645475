package summary

import (
	"fmt"

	"github.com/phil-mansfield/crust/math/interpolate"
	"github.com/phil-mansfield/crust/rock"
)

// DensityModel gives the density (kg/m^3) of each mineral as a function of
// the age (Myr) of the stratum holding it. Rock compacts as it is buried, so
// old strata are denser than freshly deposited ones.
type DensityModel struct {
	Relations [rock.MineralCount]interpolate.Relation
}

var (
	// Ages at which the default compaction curves are tabulated.
	compactionAges = []float64{0, 10, 100, 1000, 4500}
	// Fractional density increase of crystalline minerals at those ages.
	crystalCompaction = []float64{1, 1.005, 1.015, 1.03, 1.04}
	// Organic material compacts much more strongly (peat -> coal).
	organicCompaction = []float64{1, 1.05, 1.15, 1.25, 1.3}
)

// DefaultDensityModel returns a model which starts every mineral at its
// intrinsic density and compacts it slowly with age. Ages outside
// [0, 4500] Myr are clamped.
func DefaultDensityModel() *DensityModel {
	m := &DensityModel{}
	for i, rho := range rock.IntrinsicDensities {
		factors := crystalCompaction
		if rock.Mineral(i) == rock.Organics {
			factors = organicCompaction
		}
		vals := make([]float64, len(factors))
		for j := range vals {
			vals[j] = rho * factors[j]
		}
		m.Relations[i] = interpolate.NewLinear(compactionAges, vals)
	}
	return m
}

// ConstantDensityModel returns a model where every mineral keeps its
// intrinsic density forever.
func ConstantDensityModel() *DensityModel {
	m := &DensityModel{}
	for i, rho := range rock.IntrinsicDensities {
		m.Relations[i] = interpolate.Constant(rho)
	}
	return m
}

// Density returns the density of mineral m in a stratum of the given age.
// Non-positive densities are a broken model and cause a panic.
func (model *DensityModel) Density(m rock.Mineral, age float64) float64 {
	rho := model.Relations[m].Eval(age)
	if !(rho > 0) {
		panic(fmt.Sprintf(
			"Density model gives %v a density of %g at age %g.", m, rho, age,
		))
	}
	return rho
}
