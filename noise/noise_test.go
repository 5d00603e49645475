package noise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/math/interpolate"
)

func randomDirection(gen *rand.Rand) geom.Vec {
	for {
		v := geom.Vec{2*gen.Float64() - 1, 2*gen.Float64() - 1, 2*gen.Float64() - 1}
		if n := v.Norm(); n > 0.1 && n < 1 {
			return v.Normalize()
		}
	}
}

func fields() map[string]Field {
	return map[string]Field{
		"Sines":   NewSines(3, 2),
		"Value":   &Value{Seed: 3, Frequency: 4},
		"Fractal": NewFractal(3, 2, 6),
	}
}

func TestRange(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	for name, f := range fields() {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < 5000; i++ {
			x := f.At(randomDirection(gen))
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
		assert.True(t, lo >= -1 && hi <= 1, "%s: [%g, %g]", name, lo, hi)
		assert.True(t, hi-lo > 0.3, "%s is nearly constant: [%g, %g]", name, lo, hi)
	}
}

func TestDirectionOnly(t *testing.T) {
	gen := rand.New(rand.NewSource(2))
	for name, f := range fields() {
		for i := 0; i < 100; i++ {
			p := randomDirection(gen)
			assert.InDelta(t, f.At(p), f.At(p.Scale(6.371e6)), 1e-9, name)
		}
	}
}

func TestContinuous(t *testing.T) {
	gen := rand.New(rand.NewSource(3))
	for name, f := range fields() {
		for i := 0; i < 100; i++ {
			p := randomDirection(gen)
			q := p.Add(geom.Vec{1e-7, -1e-7, 1e-7})
			assert.InDelta(t, f.At(p), f.At(q), 1e-4, name)
		}
	}
}

func TestSeeds(t *testing.T) {
	p := geom.Vec{0.3, -0.5, 0.8}
	assert.Equal(t, NewSines(7, 2).At(p), NewSines(7, 2).At(p))
	assert.NotEqual(t, NewSines(7, 2).At(p), NewSines(8, 2).At(p))
	assert.NotEqual(t, NewFractal(7, 2, 4).At(p), NewFractal(8, 2, 4).At(p))
	assert.Panics(t, func() { NewFractal(1, 1, 0) })
}

func TestSample(t *testing.T) {
	g := grid.New(1, 4)
	f := FieldFunc(func(p geom.Vec) float64 { return p[2] })
	remap := interpolate.NewLinear([]float64{-1, 1}, []float64{-5000, 3000})

	raw := Sample(g, f, nil, 2)
	vals := Sample(g, f, remap, 3)
	require.Len(t, vals, g.VertexCount())
	for i := range vals {
		assert.InDelta(t, g.Position(i)[2], raw[i], 1e-12)
		assert.InDelta(t, -1000+4000*raw[i], vals[i], 1e-6)
	}
	assert.Panics(t, func() { Sample(g, f, nil, 1, make([]float64, 2)) })
}
