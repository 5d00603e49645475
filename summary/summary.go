/*package summary reduces rock columns to the scalar fields which drive
isostasy: mass, volume, thickness, density and area density.

Summaries of a whole Crust are built by summarizing each Formation and adding
the results, and agree with the summary of the flattened Crust. This holds
exactly when overlapping strata share deposition ages and to within the
compaction difference of their merged ages otherwise.
*/
package summary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/rock"
)

// Summary holds the aggregate properties of some amount of rock above a
// single vertex. Thickness and AreaDensity are per unit dual-cell area.
type Summary struct {
	Mass        float64 // kg
	Volume      float64 // m^3
	Thickness   float64 // m
	Density     float64 // kg/m^3
	AreaDensity float64 // kg/m^2
}

// Add combines two summaries of rock above the same vertex. Extensive
// quantities add and the density of the result is its total mass over its
// total volume.
func (s Summary) Add(other Summary) Summary {
	out := Summary{
		Mass:        s.Mass + other.Mass,
		Volume:      s.Volume + other.Volume,
		Thickness:   s.Thickness + other.Thickness,
		AreaDensity: s.AreaDensity + other.AreaDensity,
	}
	if out.Volume > 0 {
		out.Density = out.Mass / out.Volume
	}
	return out
}

// Summarizer summarizes strata, Formations and Crusts laid over a grid at a
// fixed world age (Myr). Workers is the number of goroutines used for
// whole-grid summaries; zero means one per core.
type Summarizer struct {
	Grid     *grid.Grid
	Model    *DensityModel
	WorldAge float64
	Workers  int
}

// New returns a Summarizer for the given grid and density model.
func New(g *grid.Grid, model *DensityModel, worldAge float64, workers int) *Summarizer {
	return &Summarizer{Grid: g, Model: model, WorldAge: worldAge, Workers: workers}
}

// Age returns the age of a stratum at the Summarizer's world age, measured
// from the middle of its deposition interval.
func (sz *Summarizer) Age(s *rock.Stratum) float64 {
	return sz.WorldAge - (s.FirstDeposited+s.LastDeposited)/2
}

// Stratum summarizes a stratum of the given age spread over the given area.
func (sz *Summarizer) Stratum(s rock.Stratum, age, area float64) Summary {
	if !(area > 0) {
		panic(fmt.Sprintf("Stratum summarized over area %g.", area))
	}

	out := Summary{}
	for i, m := range s.Masses {
		if m == 0 {
			continue
		}
		out.Mass += m
		out.Volume += m / sz.Model.Density(rock.Mineral(i), age)
	}
	if out.Volume > 0 {
		out.Density = out.Mass / out.Volume
	}
	out.Thickness = out.Volume / area
	out.AreaDensity = out.Mass / area
	return out
}

// Column summarizes a stack of strata at vertex i, top to bottom.
func (sz *Summarizer) Column(i int, col []rock.Stratum) Summary {
	area := sz.Grid.Area(i)
	out := Summary{}
	for k := range col {
		if col[k].IsZero() {
			continue
		}
		out = out.Add(sz.Stratum(col[k], sz.Age(&col[k]), area))
	}
	return out
}

func (sz *Summarizer) out(out [][]Summary) []Summary {
	n := sz.Grid.VertexCount()
	if len(out) == 0 {
		return make([]Summary, n)
	} else if len(out[0]) != n {
		panic(fmt.Sprintf(
			"Output buffer has length %d, but grid has %d vertices.",
			len(out[0]), n,
		))
	}
	return out[0]
}

func (sz *Summarizer) checkFormation(f *rock.Formation) {
	if f.VertexCount() != sz.Grid.VertexCount() {
		panic(fmt.Sprintf(
			"Formation covers %d vertices, but grid has %d.",
			f.VertexCount(), sz.Grid.VertexCount(),
		))
	}
}

// Formation summarizes every column of a Formation. If an output array is
// given, the output is written to that array (the array is still returned
// as a convenience).
func (sz *Summarizer) Formation(f *rock.Formation, out ...[]Summary) []Summary {
	sz.checkFormation(f)
	res := sz.out(out)
	rock.EachColumn([]*rock.Formation{f}, sz.Workers,
		func(i int, cols [][]rock.Stratum) {
			res[i] = sz.Column(i, cols[0])
		})
	return res
}

// Crust summarizes every Formation of a Crust and adds the results at each
// vertex.
func (sz *Summarizer) Crust(c *rock.Crust, out ...[]Summary) []Summary {
	res := sz.out(out)
	fs := c.Formations()
	if len(fs) == 0 {
		for i := range res {
			res[i] = Summary{}
		}
		return res
	}
	for _, f := range fs {
		sz.checkFormation(f)
	}

	rock.EachColumn(fs, sz.Workers, func(i int, cols [][]rock.Stratum) {
		sum := Summary{}
		for _, col := range cols {
			sum = sum.Add(sz.Column(i, col))
		}
		res[i] = sum
	})
	return res
}

// Fields splits summaries into plain per-vertex arrays for rendering and
// output.
func Fields(s []Summary) (thickness, density, areaDensity []float64) {
	thickness = make([]float64, len(s))
	density = make([]float64, len(s))
	areaDensity = make([]float64, len(s))
	for i := range s {
		thickness[i] = s[i].Thickness
		density[i] = s[i].Density
		areaDensity[i] = s[i].AreaDensity
	}
	return thickness, density, areaDensity
}

// Masses returns the mass of every summary.
func Masses(s []Summary) []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Mass
	}
	return out
}

// Volumes returns the volume of every summary.
func Volumes(s []Summary) []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Volume
	}
	return out
}

// Distance returns the largest difference in mass or volume between two sets
// of summaries, as a fraction of the mean column mass or volume. Two sets of
// empty summaries are a distance of zero apart.
func Distance(a, b []Summary) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf(
			"Summaries have lengths %d and %d.", len(a), len(b),
		))
	} else if len(a) == 0 {
		return 0
	}

	dm := relativeDistance(Masses(a), Masses(b))
	dv := relativeDistance(Volumes(a), Volumes(b))
	return math.Max(dm, dv)
}

func relativeDistance(xs, ys []float64) float64 {
	d := floats.Distance(xs, ys, math.Inf(1))
	if d == 0 {
		return 0
	}
	mean := (floats.Sum(xs) + floats.Sum(ys)) / float64(2*len(xs))
	return d / mean
}
