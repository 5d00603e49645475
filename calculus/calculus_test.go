package calculus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/grid"
)

var zHat = geom.Vec{0, 0, 1}

func TestConstantFields(t *testing.T) {
	for _, n := range []int{1, 3, 12} {
		ops := New(grid.New(6.371e6, n), 0)
		count := ops.Grid.VertexCount()

		f := make([]float64, count)
		v := make([]geom.Vec, count)
		for i := range f {
			f[i] = 2.718e3
			v[i] = geom.Vec{1, -2, 3}
		}

		for i, g := range ops.Gradient(f) {
			require.Equal(t, geom.Vec{}, g, "gradient at %d", i)
		}
		for i, l := range ops.Laplacian(f) {
			require.Equal(t, 0.0, l, "laplacian at %d", i)
		}
		for i, d := range ops.Divergence(v) {
			require.Equal(t, 0.0, d, "divergence at %d", i)
		}
		for i, c := range ops.Curl(v) {
			require.Equal(t, geom.Vec{}, c, "curl at %d", i)
		}
	}
}

// rms returns the root mean square of xs.
func rms(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func TestGradientOfLinearField(t *testing.T) {
	ops := New(grid.New(1, 24), 4)
	g := ops.Grid
	grad := ops.Gradient(zField(g))

	errs := make([]float64, len(grad))
	for i := range grad {
		r := g.Normal(i)
		want := zHat.Tangent(r)
		errs[i] = grad[i].Tangent(r).Sub(want).Norm()
	}
	assert.True(t, rms(errs) < 0.005, "rms gradient error = %g", rms(errs))

	// On the equator the surface gradient of z points north.
	eq := g.Nearest(geom.Vec{1, 0, 0})
	assert.True(t, grad[eq][2] > 0.9, "%v", grad[eq])
}

func TestGradientScalesWithRadius(t *testing.T) {
	small, big := New(grid.New(1, 6), 1), New(grid.New(1000, 6), 1)
	f := make([]float64, small.Grid.VertexCount())
	for i := range f {
		f[i] = small.Grid.Normal(i)[0]
	}
	gs, gb := small.Gradient(f), big.Gradient(f)
	for i := range gs {
		assert.True(t, gs[i].Scale(1e-3).EpsEq(gb[i], 1e-12))
	}
}

// seamVertices returns the vertices with at least one Irregular arrow.
func seamVertices(g *grid.Grid) []int {
	var ids []int
	for i := 0; i < g.VertexCount(); i++ {
		for k := 0; k < grid.ArrowsPerVertex; k++ {
			if g.Irregular(i, k) {
				ids = append(ids, i)
				break
			}
		}
	}
	return ids
}

// zField returns the z coordinate of every vertex of a unit grid.
func zField(g *grid.Grid) []float64 {
	f := make([]float64, g.VertexCount())
	for i := range f {
		f[i] = g.Normal(i)[2]
	}
	return f
}

func TestGradientConvergesAtSeams(t *testing.T) {
	prev := math.Inf(+1)
	for _, n := range []int{8, 16, 32} {
		ops := New(grid.New(1, n), 0)
		g := ops.Grid
		grad := ops.Gradient(zField(g))

		worst := 0.0
		for _, i := range seamVertices(g) {
			r := g.Normal(i)
			err := grad[i].Tangent(r).Sub(zHat.Tangent(r)).Norm()
			worst = math.Max(worst, err)
		}
		assert.True(t, worst < prev, "n = %d: max seam error %g, was %g",
			n, worst, prev)
		assert.True(t, worst < 0.01, "n = %d: max seam error %g", n, worst)
		prev = worst
	}
}

func TestDivergenceOfGradient(t *testing.T) {
	for _, n := range []int{8, 16, 32} {
		ops := New(grid.New(1, n), 0)
		f := zField(ops.Grid)
		lap := ops.Divergence(ops.Gradient(f))

		worst := 0.0
		for i := range f {
			worst = math.Max(worst, math.Abs(lap[i]+2*f[i]))
		}
		assert.True(t, worst < 0.1, "n = %d: max error %g", n, worst)
	}
}

func TestLaplacianOfHarmonic(t *testing.T) {
	ops := New(grid.New(1, 24), 0)
	f := zField(ops.Grid)
	lap := ops.Laplacian(f)

	// z is a degree one spherical harmonic, so its Laplacian is -2z.
	errs, want := make([]float64, len(f)), make([]float64, len(f))
	for i := range f {
		want[i] = -2 * f[i]
		errs[i] = lap[i] - want[i]
	}
	assert.True(t, rms(errs)/rms(want) < 0.01, "relative rms = %g", rms(errs)/rms(want))
}

func TestLaplacianConverges(t *testing.T) {
	prevAll, prevSeam := math.Inf(+1), math.Inf(+1)
	for _, n := range []int{8, 16, 32} {
		ops := New(grid.New(1, n), 0)
		g := ops.Grid
		f := zField(g)
		lap := ops.Laplacian(f)

		errs, want := make([]float64, len(f)), make([]float64, len(f))
		for i := range f {
			want[i] = -2 * f[i]
			errs[i] = lap[i] - want[i]
		}
		seam := seamVertices(g)
		seamErrs := make([]float64, len(seam))
		for k, i := range seam {
			seamErrs[k] = errs[i]
		}

		all := rms(errs) / rms(want)
		assert.True(t, all < prevAll, "n = %d: relative rms %g, was %g",
			n, all, prevAll)
		assert.True(t, rms(seamErrs) < prevSeam, "n = %d: seam rms %g, was %g",
			n, rms(seamErrs), prevSeam)
		assert.True(t, rms(seamErrs) < 0.02, "n = %d: seam rms %g",
			n, rms(seamErrs))
		prevAll, prevSeam = all, rms(seamErrs)
	}
}

func TestLaplacianConservesFlux(t *testing.T) {
	ops := New(grid.New(1, 12), 0)
	g := ops.Grid
	f := make([]float64, g.VertexCount())
	for i := range f {
		p := g.Normal(i)
		f[i] = math.Sin(3*p[0]) * math.Cos(2*p[1]) * math.Exp(p[2])
	}

	// Every boundary flux enters one cell and leaves another.
	sum, scale := 0.0, 0.0
	for i, l := range ops.Laplacian(f) {
		sum += l * g.Area(i)
		scale += math.Abs(l) * g.Area(i)
	}
	assert.InDelta(t, 0, sum/scale, 1e-12)
}

func TestRotationField(t *testing.T) {
	ops := New(grid.New(1, 24), 3)
	g := ops.Grid

	// Solid body rotation around z: divergence free with radial curl 2z.
	v := make([]geom.Vec, g.VertexCount())
	for i := range v {
		v[i] = zHat.Cross(g.Position(i))
	}
	div := ops.Divergence(v)
	curl := ops.Curl(v)

	curlErrs, want := make([]float64, len(v)), make([]float64, len(v))
	for i := range v {
		want[i] = 2 * g.Position(i)[2]
		curlErrs[i] = curl[i].Dot(g.Normal(i)) - want[i]
	}
	assert.True(t, rms(div) < 0.1, "rms divergence = %g", rms(div))
	assert.True(t, rms(curlErrs)/rms(want) < 0.1,
		"relative rms curl error = %g", rms(curlErrs)/rms(want))
}

func TestWorkerIndependence(t *testing.T) {
	g := grid.New(6.371e6, 10)
	f := make([]float64, g.VertexCount())
	for i := range f {
		p := g.Normal(i)
		f[i] = math.Sin(3*p[0]) * math.Cos(2*p[1])
	}
	one, many := New(g, 1), New(g, 7)
	assert.Equal(t, one.Gradient(f), many.Gradient(f))
	assert.Equal(t, one.Laplacian(f), many.Laplacian(f))
}

func TestOutputBuffer(t *testing.T) {
	ops := New(grid.New(1, 4), 2)
	f := make([]float64, ops.Grid.VertexCount())
	buf := make([]geom.Vec, len(f))
	out := ops.Gradient(f, buf)
	assert.Equal(t, &buf[0], &out[0])
}

func TestLengthMismatchPanics(t *testing.T) {
	ops := New(grid.New(1, 4), 2)
	assert.Panics(t, func() { ops.Gradient(make([]float64, 3)) })
	assert.Panics(t, func() { ops.Divergence(make([]geom.Vec, 3)) })
	assert.Panics(t, func() {
		n := ops.Grid.VertexCount()
		ops.Laplacian(make([]float64, n), make([]float64, n-1))
	})
}

func BenchmarkGradient(b *testing.B) {
	ops := New(grid.New(6.371e6, 64), 0)
	f := make([]float64, ops.Grid.VertexCount())
	for i := range f {
		f[i] = ops.Grid.Normal(i)[1]
	}
	out := make([]geom.Vec, len(f))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ops.Gradient(f, out)
	}
}
