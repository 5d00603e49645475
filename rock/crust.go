package rock

import (
	"fmt"
)

// Crust is the full set of Formations describing all the rock at every
// vertex. Formations may be split by origin (igneous, sedimentary, ...), by
// tectonic plate, or both.
type Crust struct {
	vertexCount int
	formations  []*Formation
}

// NewCrust creates a Crust over vertexCount vertices holding the given
// Formations.
func NewCrust(vertexCount int, fs ...*Formation) *Crust {
	c := &Crust{vertexCount: vertexCount}
	for _, f := range fs {
		c.Add(f)
	}
	return c
}

// Add appends a Formation to the Crust.
func (c *Crust) Add(f *Formation) {
	if f.VertexCount() != c.vertexCount {
		panic(fmt.Sprintf(
			"Formation covers %d vertices, but Crust covers %d.",
			f.VertexCount(), c.vertexCount,
		))
	}
	c.formations = append(c.formations, f)
}

// VertexCount returns the number of vertices the Crust covers.
func (c *Crust) VertexCount() int { return c.vertexCount }

// Len returns the number of Formations in the Crust.
func (c *Crust) Len() int { return len(c.formations) }

// Formation returns the k-th Formation.
func (c *Crust) Formation(k int) *Formation {
	if k < 0 || k >= len(c.formations) {
		panic(fmt.Sprintf(
			"Formation index %d out of range [0, %d).", k, len(c.formations),
		))
	}
	return c.formations[k]
}

// Formations returns the Formations of the Crust in order. The returned
// slice is a copy, but the Formations themselves are shared.
func (c *Crust) Formations() []*Formation {
	out := make([]*Formation, len(c.formations))
	copy(out, c.formations)
	return out
}

// Each calls fn on every Formation in order.
func (c *Crust) Each(fn func(k int, f *Formation)) {
	for k, f := range c.formations {
		fn(k, f)
	}
}

// Mass returns the total mass of all Formations at vertex i.
func (c *Crust) Mass(i int) float64 {
	sum := 0.0
	for _, f := range c.formations {
		sum += f.Mass(i)
	}
	return sum
}

// Flatten folds every Formation into a single new Formation with repeated
// Formation.Combine. An empty Crust flattens to an empty Formation.
func (c *Crust) Flatten(workers int) *Formation {
	if len(c.formations) == 0 {
		return NewFormation(c.vertexCount)
	}
	out := c.formations[0].Copy()
	for _, f := range c.formations[1:] {
		out.Overlay(f, workers)
	}
	return out
}
