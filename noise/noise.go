/*package noise contains deterministic scalar fields defined over directions
on the sphere. Every field returns values in [-1, 1] and only depends on the
direction of its input, not on its length.
*/
package noise

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/math/interpolate"
	"github.com/phil-mansfield/crust/parallel"
)

// Field is a scalar function of position.
type Field interface {
	At(p geom.Vec) float64
}

var (
	_ Field = &Sines{}
	_ Field = &Value{}
	_ Field = &Fractal{}
	_ Field = FieldFunc(nil)
)

// FieldFunc adapts an ordinary function into a Field.
type FieldFunc func(p geom.Vec) float64

// At calls f(p).
func (f FieldFunc) At(p geom.Vec) float64 { return f(p) }

// Sines is a cheap, smooth field made of a few products of sine waves. The
// waves are rotated by a random orientation so different seeds give
// different continents.
type Sines struct {
	Frequency float64
	rot       [9]float64
}

// NewSines creates a Sines field with a seeded orientation.
func NewSines(seed int64, frequency float64) *Sines {
	gen := rand.New(rand.NewSource(seed))
	return &Sines{
		Frequency: frequency,
		rot: geom.EulerMatrix(
			2*math.Pi*gen.Float64(),
			math.Acos(2*gen.Float64()-1),
			2*math.Pi*gen.Float64(),
		),
	}
}

// At evaluates the field in the direction of p.
func (s *Sines) At(p geom.Vec) float64 {
	q := p.Normalize().Rotate(&s.rot).Scale(s.Frequency)
	x, y, z := q[0], q[1], q[2]
	n1 := math.Sin(x*3.14159) * math.Cos(y*2.71828) * math.Sin(z*1.41421)
	n2 := math.Sin(x*1.73205) * math.Sin(y*2.23607) * math.Cos(z*3.16227)
	n3 := math.Cos(x*2.44949) * math.Sin(y*1.61803) * math.Sin(z*2.64575)
	return (n1 + n2*0.5 + n3*0.25) / 1.75
}

// Value is lattice value noise: random values at the corners of a cubic
// lattice, blended with a smoothstep.
type Value struct {
	Seed      uint32
	Frequency float64
}

func (v *Value) hash(ix, iy, iz int) float64 {
	x, y, z := uint32(ix), uint32(iy), uint32(iz)
	h := x*374761393 + y*668265263 + z*1013904223 + v.Seed*1442695041
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return 2*float64(h&0x00ffffff)/float64(0x01000000) - 1
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// At evaluates the field in the direction of p.
func (v *Value) At(p geom.Vec) float64 {
	q := p.Normalize().Scale(v.Frequency)
	var i [3]int
	var u [3]float64
	for k := range q {
		fl := math.Floor(q[k])
		i[k] = int(fl)
		u[k] = smoothstep(q[k] - fl)
	}

	n00 := lerp(v.hash(i[0], i[1], i[2]), v.hash(i[0]+1, i[1], i[2]), u[0])
	n10 := lerp(v.hash(i[0], i[1]+1, i[2]), v.hash(i[0]+1, i[1]+1, i[2]), u[0])
	n01 := lerp(v.hash(i[0], i[1], i[2]+1), v.hash(i[0]+1, i[1], i[2]+1), u[0])
	n11 := lerp(v.hash(i[0], i[1]+1, i[2]+1), v.hash(i[0]+1, i[1]+1, i[2]+1), u[0])

	n0 := lerp(n00, n10, u[1])
	n1 := lerp(n01, n11, u[1])
	return lerp(n0, n1, u[2])
}

// Fractal sums Octaves layers of value noise, each Lacunarity times finer and
// Gain times weaker than the last. The sum is normalized back into [-1, 1].
type Fractal struct {
	Seed             uint32
	Frequency        float64
	Octaves          int
	Lacunarity, Gain float64
}

// NewFractal returns a Fractal with the usual doubling lacunarity and
// halving gain.
func NewFractal(seed uint32, frequency float64, octaves int) *Fractal {
	if octaves < 1 {
		panic(fmt.Sprintf("Fractal noise given %d octaves.", octaves))
	}
	return &Fractal{
		Seed: seed, Frequency: frequency, Octaves: octaves,
		Lacunarity: 2, Gain: 0.5,
	}
}

// At evaluates the field in the direction of p.
func (f *Fractal) At(p geom.Vec) float64 {
	sum, norm := 0.0, 0.0
	amp, freq := 1.0, f.Frequency
	for o := 0; o < f.Octaves; o++ {
		v := Value{Seed: f.Seed + uint32(o)*0x9e3779b9, Frequency: freq}
		sum += amp * v.At(p)
		norm += amp
		freq *= f.Lacunarity
		amp *= f.Gain
	}
	return sum / norm
}

// Sample evaluates a field at every vertex of a grid and maps the result
// through r. A nil r leaves the values unchanged. If an output array is
// given, the output is written to that array.
func Sample(
	g *grid.Grid, f Field, r interpolate.Relation, workers int,
	out ...[]float64,
) []float64 {
	n := g.VertexCount()
	if len(out) == 0 {
		out = [][]float64{make([]float64, n)}
	} else if len(out[0]) != n {
		panic(fmt.Sprintf(
			"Output buffer has length %d, but grid has %d vertices.",
			len(out[0]), n,
		))
	}
	vals := out[0]

	parallel.Each(n, workers, func(i int) {
		x := f.At(g.Position(i))
		if r != nil {
			x = r.Eval(x)
		}
		vals[i] = x
	})
	return vals
}
