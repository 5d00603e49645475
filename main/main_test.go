package main

import (
	"math"
	"testing"

	"github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/io"
	"github.com/phil-mansfield/crust/summary"
)

func testConfig(faceCells int) *io.CrustConfig {
	con := io.DefaultCrustWrapper().Crust
	con.Radius = 6.371e6
	con.FaceCells = faceCells
	con.Output = "crust.txt"
	con.Threads = 2
	return &con
}

func TestCoarseField(t *testing.T) {
	even, odd := grid.New(1, 4), grid.New(1, 5)

	f := make([]float64, even.VertexCount())
	for i := range f {
		f[i] = 3
	}
	coarse := coarseField(even, f, 2)
	require.Len(t, coarse, even.VertexCount()/4)
	for _, x := range coarse {
		assert.InDelta(t, 3, x, 1e-12)
	}

	assert.Nil(t, coarseField(odd, make([]float64, odd.VertexCount()), 2))
}

func TestRunCrust(t *testing.T) {
	log.SetHandler(log15.DiscardHandler())

	for _, n := range []int{4, 5} {
		con := testConfig(n)
		require.NoError(t, con.CheckInit("test"))
		res := runCrust(con, summary.DefaultDensityModel())

		count := 6 * n * n
		require.Len(t, res.Positions, count)
		cols := [][]float64{
			res.Elevation, res.Thickness, res.Density, res.AreaDensity,
			res.Buoyancy, res.Displacement, res.Intended,
		}
		for _, col := range cols {
			require.Len(t, col, count)
			for i, x := range col {
				assert.False(t, math.IsNaN(x) || math.IsInf(x, 0),
					"n = %d, vertex %d", n, i)
			}
		}
		for i := range res.Density {
			assert.True(t, res.Thickness[i] > 0, "n = %d, vertex %d", n, i)
			assert.True(t, res.Density[i] < con.MantleDensity,
				"n = %d, vertex %d", n, i)
		}
	}
}
