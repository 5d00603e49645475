package rock

import (
	"fmt"
	"math"
)

// Stratum is a single layer of rock at one vertex.
//
// Masses are indexed by Mineral and Grains by Grain. Grains holds relative
// volumes; only their ratios matter. FirstDeposited and LastDeposited bound
// the world ages (Myr) over which the material was laid down.
//
// The zero value is the empty Stratum.
type Stratum struct {
	Masses [MineralCount]float64
	Grains [GrainCount]float64

	FirstDeposited, LastDeposited float64
}

// NewStratum creates a Stratum deposited at the given world age. Negative
// masses or grain volumes cause a panic.
func NewStratum(
	masses [MineralCount]float64, grains [GrainCount]float64, deposited float64,
) Stratum {
	for i, m := range masses {
		if !(m >= 0) {
			panic(fmt.Sprintf(
				"Mass of %v given to NewStratum() is %g.", Mineral(i), m,
			))
		}
	}
	for i, g := range grains {
		if !(g >= 0) {
			panic(fmt.Sprintf(
				"Volume of %v grains given to NewStratum() is %g.", Grain(i), g,
			))
		}
	}
	return Stratum{
		Masses: masses, Grains: grains,
		FirstDeposited: deposited, LastDeposited: deposited,
	}
}

// Pool returns the mass pool of the given mineral.
func (s Stratum) Pool(m Mineral) MassPool {
	return MassPool{Kind: m, Mass: s.Masses[m]}
}

// Pools returns every mass pool in the stratum.
func (s Stratum) Pools() [MineralCount]MassPool {
	var pools [MineralCount]MassPool
	for i, m := range s.Masses {
		pools[i] = MassPool{Kind: Mineral(i), Mass: m}
	}
	return pools
}

// Mass returns the total mass of the stratum.
func (s Stratum) Mass() float64 {
	sum := 0.0
	for _, m := range s.Masses {
		sum += m
	}
	return sum
}

// Volume returns the volume of the stratum at intrinsic mineral densities.
func (s Stratum) Volume() float64 {
	sum := 0.0
	for i, m := range s.Masses {
		sum += m / IntrinsicDensities[i]
	}
	return sum
}

// IsZero returns true if the stratum holds no mass.
func (s Stratum) IsZero() bool {
	for _, m := range s.Masses {
		if m != 0 {
			return false
		}
	}
	return true
}

// GrainFractions returns the grain histogram normalized to sum to one. An
// empty histogram stays empty.
func (s Stratum) GrainFractions() [GrainCount]float64 {
	sum := 0.0
	for _, g := range s.Grains {
		sum += g
	}
	var out [GrainCount]float64
	if sum == 0 {
		return out
	}
	for i, g := range s.Grains {
		out[i] = g / sum
	}
	return out
}

// Combine merges two strata into one. Mass pools are summed and particle
// size histograms are averaged, weighted by each stratum's volume. The
// deposition interval covers both inputs.
//
// The empty Stratum is an identity: Combine(s, Stratum{}) == s.
func Combine(a, b Stratum) Stratum {
	if b.IsZero() {
		return a
	} else if a.IsZero() {
		return b
	}

	out := Stratum{
		FirstDeposited: math.Min(a.FirstDeposited, b.FirstDeposited),
		LastDeposited:  math.Max(a.LastDeposited, b.LastDeposited),
	}
	for i := range out.Masses {
		out.Masses[i] = a.Masses[i] + b.Masses[i]
	}

	va, vb := a.Volume(), b.Volume()
	ga, gb := a.GrainFractions(), b.GrainFractions()
	for i := range out.Grains {
		out.Grains[i] = (va*ga[i] + vb*gb[i]) / (va + vb)
	}
	return out
}

// Scale multiplies every mass pool of a stratum by k, which must not be
// negative.
func Scale(a Stratum, k float64) Stratum {
	if !(k >= 0) {
		panic(fmt.Sprintf("Stratum scaled by invalid factor %g.", k))
	}
	for i := range a.Masses {
		a.Masses[i] *= k
	}
	return a
}
