package interpolate

import (
	"fmt"
)

// Linear is a linear interpolator. Inputs outside the table are clamped to
// its end points.
type Linear struct {
	xs, vals []float64
	incr     bool
	// Usually the input data is uniform. This is our estimate of the point
	// spacing.
	dx float64
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing or strictly decreasing points, xs, which take on the values
// given by vals. Both slices are copied.
//
// Lookups will occur in O(log |xs|), and in O(1) for uniform tables.
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic(fmt.Sprintf(
			"Table given to NewLinear() has len(xs) = %d but len(vals) = %d.",
			len(xs), len(vals),
		))
	} else if len(xs) < 2 {
		panic(fmt.Sprintf("Table given to NewLinear() has length %d.", len(xs)))
	}
	incr := checkMonotonic("NewLinear", xs)

	lin := &Linear{
		xs:   append([]float64(nil), xs...),
		vals: append([]float64(nil), vals...),
		incr: incr,
		dx:   (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1),
	}
	return lin
}

// NewUniformLinear creates a linear interpolator over a uniformly spaced
// sequence of x values starting at x0 and separated by dx, whose values are
// given by vals.
func NewUniformLinear(x0, dx float64, vals []float64) *Linear {
	xs := make([]float64, len(vals))
	for i := range xs {
		xs[i] = x0 + dx*float64(i)
	}
	return NewLinear(xs, vals)
}

// Eval returns the interpolated value at x.
func (lin *Linear) Eval(x float64) float64 {
	n := len(lin.xs)
	lo, hi := lin.xs[0], lin.xs[n-1]
	if lin.incr == (x <= lo) {
		return lin.vals[0]
	} else if lin.incr == (x >= hi) {
		return lin.vals[n-1]
	}

	i1 := search(lin.xs, lin.incr, lin.dx, x)
	i2 := i1 + 1
	x1, x2 := lin.xs[i1], lin.xs[i2]
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	out = outBuffer(len(xs), out)
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}

// checkMonotonic panics if xs is not strictly monotonic and otherwise
// reports whether it is increasing.
func checkMonotonic(name string, xs []float64) bool {
	incr := xs[0] < xs[1]
	for i := 0; i < len(xs)-1; i++ {
		if (xs[i+1] > xs[i]) != incr || xs[i+1] == xs[i] {
			panic(fmt.Sprintf("Table given to %s() not sorted.", name))
		}
	}
	return incr
}

// search returns the index of the last element of xs which is not past x.
// x must lie strictly inside the table.
func search(xs []float64, incr bool, dx, x float64) int {
	// Guess under the assumption of uniform spacing.
	guess := int((x - xs[0]) / dx)
	if guess >= 0 && guess < len(xs)-1 &&
		(xs[guess] <= x == incr) &&
		(xs[guess+1] >= x == incr) {

		return guess
	}

	// Binary search.
	lo, hi := 0, len(xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if incr == (x >= xs[mid]) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
