package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	// The formula above can round past hi.
	xs[n-1] = hi
	return xs
}

func TestLinear(t *testing.T) {
	table := []struct {
		xs, vals []float64
		x, val   float64
	}{
		{[]float64{0, 1, 2}, []float64{0, 10, 30}, 0.5, 5},
		{[]float64{0, 1, 2}, []float64{0, 10, 30}, 1.5, 20},
		{[]float64{0, 1, 2}, []float64{0, 10, 30}, 2, 30},
		{[]float64{0, 1, 2}, []float64{0, 10, 30}, -1, 0},
		{[]float64{0, 1, 2}, []float64{0, 10, 30}, 5, 30},
		{[]float64{2, 1, 0}, []float64{30, 10, 0}, 0.25, 2.5},
		{[]float64{2, 1, 0}, []float64{30, 10, 0}, 3, 30},
		{[]float64{0, 1, 5, 6}, []float64{1, 2, 3, 4}, 3, 2.5},
	}

	for i, test := range table {
		lin := NewLinear(test.xs, test.vals)
		assert.InDelta(t, test.val, lin.Eval(test.x), 1e-12, "%d) x = %g", i+1, test.x)
	}
}

func TestUniformLinear(t *testing.T) {
	lin := NewUniformLinear(-1, 0.5, []float64{4, 3, 2, 1, 0})
	xs := linspace(-1, 1, 17)
	out := make([]float64, len(xs))
	res := lin.EvalAll(xs, out)
	assert.Same(t, &out[0], &res[0])
	for i, x := range xs {
		assert.InDelta(t, 2-2*x, out[i], 1e-12)
	}
}

func TestLinearPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{0, 1}, []float64{0}) })
	assert.Panics(t, func() { NewLinear([]float64{0}, []float64{0}) })
	assert.Panics(t, func() { NewLinear([]float64{0, 1, 1}, []float64{0, 1, 2}) })
	assert.Panics(t, func() { NewLinear([]float64{0, 2, 1}, []float64{0, 1, 2}) })
	lin := NewLinear([]float64{0, 1}, []float64{0, 1})
	assert.Panics(t, func() { lin.EvalAll([]float64{0, 1}, make([]float64, 3)) })
}

func TestSplineReproducesLines(t *testing.T) {
	xs := []float64{0, 0.5, 1.5, 2, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 3*x - 2
	}
	sp := NewSpline(xs, ys)
	for _, x := range linspace(0, 4, 41) {
		assert.InDelta(t, 3*x-2, sp.Eval(x), 1e-10)
		assert.InDelta(t, 3, sp.Diff(x, 1), 1e-10)
		assert.InDelta(t, 0, sp.Diff(x, 2), 1e-10)
	}
}

func TestSplineKnots(t *testing.T) {
	xs := linspace(0, math.Pi, 12)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = math.Sin(x)
	}
	sp := NewSpline(xs, ys)
	for i, x := range xs {
		assert.InDelta(t, ys[i], sp.Eval(x), 1e-12)
	}
	samples := linspace(0, math.Pi, 100)
	assert.Equal(t, xs[len(xs)-1], samples[len(samples)-1])
	for _, x := range samples {
		assert.InDelta(t, math.Sin(x), sp.Eval(x), 2e-3)
	}

	rev := NewSpline([]float64{3, 2, 1, 0}, []float64{9, 4, 1, 0})
	assert.InDelta(t, 4, rev.Eval(2), 1e-12)
	assert.Panics(t, func() { sp.Eval(4) })
	assert.Panics(t, func() { sp.Eval(math.NaN()) })
}

func TestTriDiag(t *testing.T) {
	// [2 1 0; 1 3 1; 0 1 2] x = [4 10 8] -> x = [1 2 3]
	out := make([]float64, 3)
	TriDiagAt(
		[]float64{0, 1, 1}, []float64{2, 3, 2},
		[]float64{1, 1, 0}, []float64{4, 10, 8}, out,
	)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, out, 1e-12)
}

func TestClampedConstant(t *testing.T) {
	sp := NewSpline([]float64{0, 1, 2}, []float64{0, 1, 4})
	c := NewClamped(sp, 0, 2)
	assert.Equal(t, sp.Eval(0), c.Eval(-10))
	assert.Equal(t, sp.Eval(2), c.Eval(10))
	assert.Panics(t, func() { NewClamped(sp, 1, 0) })

	k := Constant(7)
	assert.Equal(t, 7.0, k.Eval(-3))
	assert.Equal(t, []float64{7, 7}, k.EvalAll([]float64{1, 2}))
}
