package rock

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit(t *testing.T) {
	gen := rand.New(rand.NewSource(10))
	f := NewFormation(3)
	first, second := randomStratum(gen), randomStratum(gen)

	f.Deposit(1, first)
	f.Deposit(1, second)
	f.Deposit(1, Stratum{})

	assert.Equal(t, 2, f.Depth(1))
	assert.Equal(t, 0, f.Depth(0))
	assert.Equal(t, second, f.Stratum(1, 0))
	assert.Equal(t, first, f.Stratum(1, 1))
	assert.True(t, f.Stratum(1, 2).IsZero())
}

func TestDepositFullColumnKeepsMass(t *testing.T) {
	gen := rand.New(rand.NewSource(11))
	f := NewFormation(1)
	total := 0.0
	var last Stratum
	for k := 0; k < 3*MaxStrata; k++ {
		last = randomStratum(gen)
		total += last.Mass()
		f.Deposit(0, last)
	}
	assert.Equal(t, MaxStrata, f.Depth(0))
	assert.InEpsilon(t, total, f.Mass(0), 1e-12)
	assert.Equal(t, last, f.Stratum(0, 0))
}

func TestFormationBounds(t *testing.T) {
	f := NewFormation(2)
	assert.Panics(t, func() { f.Stratum(2, 0) })
	assert.Panics(t, func() { f.Stratum(0, MaxStrata) })
	assert.Panics(t, func() { f.SetStratum(-1, 0, Stratum{}) })
	assert.Panics(t, func() { f.Combine(NewFormation(3), 1) })
	assert.Panics(t, func() { NewCrust(3, f) })
}

func TestFormationCombine(t *testing.T) {
	gen := rand.New(rand.NewSource(12))
	a, b := NewFormation(4), NewFormation(4)
	for i := 0; i < 4; i++ {
		for layer := 0; layer < 3; layer++ {
			a.SetStratum(i, layer, randomStratum(gen))
		}
		b.SetStratum(i, 0, randomStratum(gen))
	}
	aCopy := a.Copy()

	c := a.Combine(b, 2)
	assert.Equal(t, aCopy, a, "Combine modified its receiver")
	for i := 0; i < 4; i++ {
		assert.Equal(t, Combine(a.Stratum(i, 0), b.Stratum(i, 0)), c.Stratum(i, 0))
		assert.Equal(t, a.Stratum(i, 1), c.Stratum(i, 1))
		assert.InEpsilon(t, a.Mass(i)+b.Mass(i), c.Mass(i), 1e-12)
	}
}

func TestCrustFlatten(t *testing.T) {
	gen := rand.New(rand.NewSource(13))
	c := NewCrust(5)
	for k := 0; k < 3; k++ {
		f := NewFormation(5)
		for i := 0; i < 5; i++ {
			f.Deposit(i, randomStratum(gen))
			f.Deposit(i, randomStratum(gen))
		}
		c.Add(f)
	}
	require.Equal(t, 3, c.Len())

	flat := c.Flatten(3)
	for i := 0; i < 5; i++ {
		assert.InEpsilon(t, c.Mass(i), flat.Mass(i), 1e-12)
	}
	assert.Equal(t, 0, NewCrust(5).Flatten(1).Depth(0))

	count := 0
	c.Each(func(k int, f *Formation) {
		assert.Equal(t, c.Formation(k), f)
		count++
	})
	assert.Equal(t, 3, count)
}

func TestEachColumn(t *testing.T) {
	a, b := NewFormation(10), NewFormation(10)
	visits := make([]int, 10)
	EachColumn([]*Formation{a, b}, 4, func(i int, cols [][]Stratum) {
		assert.Len(t, cols, 2)
		assert.Len(t, cols[0], MaxStrata)
		visits[i]++
	})
	for _, v := range visits {
		assert.Equal(t, 1, v)
	}
	assert.Panics(t, func() {
		EachColumn([]*Formation{a, NewFormation(3)}, 1, func(int, [][]Stratum) {})
	})
}

func TestStoredFormation(t *testing.T) {
	gen := rand.New(rand.NewSource(14))
	f := NewFormation(6)
	for i := 0; i < 6; i++ {
		for k := 0; k < 4; k++ {
			f.Deposit(i, randomStratum(gen))
		}
	}

	sf := Store(f, DefaultCodec, 3)
	loaded := sf.Load(2)
	for i := 0; i < 6; i++ {
		assert.InEpsilon(t, f.Mass(i), loaded.Mass(i), 1e-4)
		assert.Equal(t, f.Depth(i), loaded.Depth(i))
	}

	s := randomStratum(gen)
	sf.SetStratum(2, 5, s)
	assert.InEpsilon(t, s.Mass(), sf.Stratum(2, 5).Mass(), 1e-4)

	buf := sf.Bytes()
	back, err := LoadBytes(buf, 6, DefaultCodec)
	require.NoError(t, err)
	assert.Equal(t, sf.Load(1), back.Load(1))

	_, err = LoadBytes(buf[1:], 6, DefaultCodec)
	assert.Error(t, err)
}
