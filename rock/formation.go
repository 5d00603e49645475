package rock

import (
	"fmt"

	"github.com/phil-mansfield/crust/parallel"
)

// MaxStrata is the depth of the stratum stack at every vertex of a
// Formation.
const MaxStrata = 16

// Formation is a stack of MaxStrata strata at each vertex of a grid for one
// category of rock. Strata are stored with a fixed stride so that the column
// at a vertex is a contiguous slice.
type Formation struct {
	vertexCount int
	strata      []Stratum
}

// NewFormation creates an empty Formation over vertexCount vertices.
func NewFormation(vertexCount int) *Formation {
	if vertexCount < 0 {
		panic(fmt.Sprintf("Formation given negative vertex count %d.", vertexCount))
	}
	return &Formation{
		vertexCount: vertexCount,
		strata:      make([]Stratum, vertexCount*MaxStrata),
	}
}

// VertexCount returns the number of vertices the Formation covers.
func (f *Formation) VertexCount() int { return f.vertexCount }

func (f *Formation) idx(i, layer int) int {
	if i < 0 || i >= f.vertexCount {
		panic(fmt.Sprintf(
			"Vertex id %d out of range [0, %d).", i, f.vertexCount,
		))
	} else if layer < 0 || layer >= MaxStrata {
		panic(fmt.Sprintf(
			"Stratum layer %d out of range [0, %d).", layer, MaxStrata,
		))
	}
	return i*MaxStrata + layer
}

// Stratum returns the stratum at the given layer of vertex i.
func (f *Formation) Stratum(i, layer int) Stratum {
	return f.strata[f.idx(i, layer)]
}

// SetStratum overwrites the stratum at the given layer of vertex i.
func (f *Formation) SetStratum(i, layer int, s Stratum) {
	f.strata[f.idx(i, layer)] = s
}

// Column returns the stack of strata at vertex i, top first. The slice
// aliases the Formation's storage.
func (f *Formation) Column(i int) []Stratum {
	start := f.idx(i, 0)
	return f.strata[start : start+MaxStrata]
}

// Depth returns the number of layers down to and including the deepest
// non-empty stratum at vertex i.
func (f *Formation) Depth(i int) int {
	col := f.Column(i)
	for layer := MaxStrata - 1; layer >= 0; layer-- {
		if !col[layer].IsZero() {
			return layer + 1
		}
	}
	return 0
}

// Mass returns the total mass of the column at vertex i.
func (f *Formation) Mass(i int) float64 {
	sum := 0.0
	for _, s := range f.Column(i) {
		sum += s.Mass()
	}
	return sum
}

// Deposit places s on top of the column at vertex i, pushing older strata
// down. If the column is full, its two deepest strata are combined so that no
// mass is lost. Depositing the empty Stratum does nothing.
func (f *Formation) Deposit(i int, s Stratum) {
	if s.IsZero() {
		return
	}
	col := f.Column(i)
	depth := f.Depth(i)

	if depth == MaxStrata {
		bottom := Combine(col[MaxStrata-2], col[MaxStrata-1])
		copy(col[1:MaxStrata-1], col[:MaxStrata-2])
		col[MaxStrata-1] = bottom
	} else {
		copy(col[1:depth+1], col[:depth])
	}
	col[0] = s
}

// Copy returns a deep copy of the Formation.
func (f *Formation) Copy() *Formation {
	out := &Formation{
		vertexCount: f.vertexCount,
		strata:      make([]Stratum, len(f.strata)),
	}
	copy(out.strata, f.strata)
	return out
}

func (f *Formation) checkSize(other *Formation) {
	if f.vertexCount != other.vertexCount {
		panic(fmt.Sprintf(
			"Formations cover %d and %d vertices.",
			f.vertexCount, other.vertexCount,
		))
	}
}

// Overlay combines other into f layer by layer: after the call, layer k of f
// at every vertex is Combine(f's layer k, other's layer k).
func (f *Formation) Overlay(other *Formation, workers int) {
	f.checkSize(other)
	parallel.Each(f.vertexCount, workers, func(i int) {
		dst, src := f.Column(i), other.Column(i)
		for k := range dst {
			dst[k] = Combine(dst[k], src[k])
		}
	})
}

// Combine returns a new Formation which overlays f and other layer by layer.
// Neither input is modified.
func (f *Formation) Combine(other *Formation, workers int) *Formation {
	out := f.Copy()
	out.Overlay(other, workers)
	return out
}
