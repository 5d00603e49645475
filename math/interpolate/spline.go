package interpolate

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points.
type Spline struct {
	xs, ys, y2s []float64
	coeffs      []splineCoeff

	incr bool
	dx   float64
}

// NewSpline creates a spline based off a table of x and y values. The values
// must be sorted in increasing or decreasing order in x. Both slices are
// copied.
func NewSpline(xs, ys []float64) *Spline {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf(
			"Table given to NewSpline() has len(xs) = %d but len(ys) = %d.",
			len(xs), len(ys),
		))
	} else if len(xs) <= 1 {
		panic(fmt.Sprintf("Table given to NewSpline() has length of %d.", len(xs)))
	}

	sp := &Spline{
		xs:     append([]float64(nil), xs...),
		ys:     append([]float64(nil), ys...),
		y2s:    make([]float64, len(xs)),
		coeffs: make([]splineCoeff, len(xs)-1),
		incr:   checkMonotonic("NewSpline", xs),
		dx:     (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1),
	}

	sp.calcY2s()
	sp.calcCoeffs()
	return sp
}

func (sp *Spline) checkBounds(x float64) {
	lo, hi := sp.xs[0], sp.xs[len(sp.xs)-1]
	if !sp.incr {
		lo, hi = hi, lo
	}
	if !(x >= lo && x <= hi) {
		panic(fmt.Sprintf(
			"Point %g given to Spline out of bounds [%g, %g].", x, lo, hi,
		))
	}
}

// Eval computes the value of the spline at the given point.
//
// x must be within the range of x values given to NewSpline().
func (sp *Spline) Eval(x float64) float64 {
	return sp.Diff(x, 0)
}

// EvalAll evaluates the spline at all the given x values, writing to out if
// it is supplied.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	out = outBuffer(len(xs), out)
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

// Diff computes the derivative of spline at the given point to the
// specified order.
//
// x must be within the range of x values given to NewSpline().
func (sp *Spline) Diff(x float64, order int) float64 {
	sp.checkBounds(x)

	i := sp.bsearch(x)
	dx := x - sp.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d
	case 1:
		return 3*a*dx*dx + 2*b*dx + c
	case 2:
		return 6*a*dx + 2*b
	case 3:
		return 6 * a
	default:
		return 0
	}
}

// bsearch returns the index of the segment containing x.
func (sp *Spline) bsearch(x float64) int {
	n := len(sp.xs)
	if x == sp.xs[n-1] {
		return n - 2
	}
	return search(sp.xs, sp.incr, sp.dx, x)
}

// calcY2s computes the second derivative at every point in the table given
// to NewSpline. The boundaries are set to zero (a natural spline).
func (sp *Spline) calcY2s() {
	n := len(sp.xs)
	if n < 3 {
		return
	}
	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	coeffs, xs, ys, y2s := sp.coeffs, sp.xs, sp.ys, sp.y2s
	for i := range coeffs {
		h := xs[i+1] - xs[i]
		coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * h)
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6
		coeffs[i].d = ys[i]
	}
}

// TriDiagAt solves the tridiagonal system with sub-diagonal as, diagonal bs,
// super-diagonal cs and right-hand side rs, writing the solution to out.
// as[0] and cs[len(cs)-1] are ignored. The system must be diagonally
// dominant.
func TriDiagAt(as, bs, cs, rs, out []float64) {
	n := len(bs)
	if len(as) != n || len(cs) != n || len(rs) != n || len(out) != n {
		panic("Length of input slices to TriDiagAt() are not equal.")
	}
	if n == 0 {
		return
	}

	cPrime := make([]float64, n)
	cPrime[0] = cs[0] / bs[0]
	out[0] = rs[0] / bs[0]
	for i := 1; i < n; i++ {
		m := bs[i] - as[i]*cPrime[i-1]
		cPrime[i] = cs[i] / m
		out[i] = (rs[i] - as[i]*out[i-1]) / m
	}
	for i := n - 2; i >= 0; i-- {
		out[i] -= cPrime[i] * out[i+1]
	}
}
