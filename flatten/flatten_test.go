package flatten

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/crust/rock"
)

func randomFormation(gen *rand.Rand, n, depth int) *rock.Formation {
	f := rock.NewFormation(n)
	for i := 0; i < n; i++ {
		for k := 0; k < depth; k++ {
			var masses [rock.MineralCount]float64
			var grains [rock.GrainCount]float64
			masses[gen.Intn(rock.MineralCount)] = 1 + gen.Float64()*1e9
			grains[gen.Intn(rock.GrainCount)] = 1
			f.Deposit(i, rock.NewStratum(masses, grains, gen.Float64()*100))
		}
	}
	return f
}

func TestFormations(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	fs := []*rock.Formation{
		randomFormation(gen, 20, 3),
		randomFormation(gen, 20, 5),
		randomFormation(gen, 20, 1),
	}
	before := fs[0].Copy()

	flat := Formations(fs, 3)
	assert.Equal(t, before, fs[0])
	for i := 0; i < 20; i++ {
		assert.Equal(t, 5, flat.Depth(i))
		total := fs[0].Mass(i) + fs[1].Mass(i) + fs[2].Mass(i)
		assert.InEpsilon(t, total, flat.Mass(i), 1e-12)

		want := rock.Combine(rock.Combine(fs[0].Stratum(i, 0), fs[1].Stratum(i, 0)), fs[2].Stratum(i, 0))
		assert.Equal(t, want, flat.Stratum(i, 0))
	}
}

func TestMatchesCrustFlatten(t *testing.T) {
	gen := rand.New(rand.NewSource(2))
	c := rock.NewCrust(30)
	for k := 0; k < 4; k++ {
		c.Add(randomFormation(gen, 30, 1+k))
	}
	assert.Equal(t, c.Flatten(1), Crust(c, 4))
}

func TestWorkerIndependence(t *testing.T) {
	gen := rand.New(rand.NewSource(3))
	fs := []*rock.Formation{randomFormation(gen, 50, 4), randomFormation(gen, 50, 2)}
	assert.Equal(t, Formations(fs, 1), Formations(fs, 7))
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, 0, Crust(rock.NewCrust(4), 1).Depth(3))
	assert.Equal(t, 4, Crust(rock.NewCrust(4), 1).VertexCount())
	assert.Panics(t, func() { Formations(nil, 1) })
	assert.Panics(t, func() {
		Formations([]*rock.Formation{rock.NewFormation(2), rock.NewFormation(3)}, 1)
	})
}
