/*package interpolate contains one-dimensional scalar relations: tables of
(x, y) points which can be evaluated anywhere between their end points.

Relations are used for the age dependence of mineral densities and for
remapping noise values onto physical elevations.
*/
package interpolate

import (
	"fmt"
	"math"
)

// Relation is a pure function of one scalar to another.
type Relation interface {
	Eval(x float64) float64
}

// Interpolator is a Relation which can also be evaluated on slices.
type Interpolator interface {
	Relation
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
	_ Interpolator = Constant(0)
	_ Relation     = &Clamped{}
)

// Constant is a Relation which ignores its input.
type Constant float64

// Eval returns c.
func (c Constant) Eval(x float64) float64 { return float64(c) }

// EvalAll sets every output value to c.
func (c Constant) EvalAll(xs []float64, out ...[]float64) []float64 {
	out = outBuffer(len(xs), out)
	for i := range xs {
		out[0][i] = float64(c)
	}
	return out[0]
}

// Clamped restricts the input of a Relation to the range [Lo, Hi] before
// evaluating it. This lets relations which panic outside their tables be
// evaluated anywhere.
type Clamped struct {
	Relation
	Lo, Hi float64
}

// NewClamped wraps r so that inputs are clamped to [lo, hi].
func NewClamped(r Relation, lo, hi float64) *Clamped {
	if !(lo <= hi) {
		panic(fmt.Sprintf("Clamp range [%g, %g] is empty.", lo, hi))
	}
	return &Clamped{Relation: r, Lo: lo, Hi: hi}
}

// Eval evaluates the wrapped Relation at x clamped to [Lo, Hi].
func (c *Clamped) Eval(x float64) float64 {
	return c.Relation.Eval(math.Max(c.Lo, math.Min(c.Hi, x)))
}

// outBuffer returns out if an output buffer was supplied and allocates one
// otherwise. If more than one output array is provided, only the first is
// used.
func outBuffer(n int, out [][]float64) [][]float64 {
	if len(out) == 0 {
		return [][]float64{make([]float64, n)}
	} else if len(out[0]) != n {
		panic(fmt.Sprintf(
			"Output buffer has length %d, but %d inputs were given.",
			len(out[0]), n,
		))
	}
	return out
}
