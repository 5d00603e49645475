package rock

import (
	"fmt"

	"github.com/phil-mansfield/crust/parallel"
)

// StoredFormation is a Formation held in compressed form. Strata are decoded
// on demand and re-encoded on write.
type StoredFormation struct {
	codec       Codec
	vertexCount int
	stores      []StratumStore
}

// Store compresses a Formation with the given codec.
func Store(f *Formation, codec Codec, workers int) *StoredFormation {
	sf := &StoredFormation{
		codec:       codec,
		vertexCount: f.vertexCount,
		stores:      make([]StratumStore, len(f.strata)),
	}
	parallel.Each(len(f.strata), workers, func(i int) {
		sf.stores[i] = codec.Compress(f.strata[i])
	})
	return sf
}

// Load decompresses the entire Formation.
func (sf *StoredFormation) Load(workers int) *Formation {
	f := NewFormation(sf.vertexCount)
	parallel.Each(len(sf.stores), workers, func(i int) {
		f.strata[i] = sf.codec.Decompress(sf.stores[i])
	})
	return f
}

// VertexCount returns the number of vertices the Formation covers.
func (sf *StoredFormation) VertexCount() int { return sf.vertexCount }

func (sf *StoredFormation) idx(i, layer int) int {
	if i < 0 || i >= sf.vertexCount || layer < 0 || layer >= MaxStrata {
		panic(fmt.Sprintf(
			"Layer %d of vertex %d out of range for a StoredFormation "+
				"covering %d vertices.", layer, i, sf.vertexCount,
		))
	}
	return i*MaxStrata + layer
}

// Stratum decodes the stratum at the given layer of vertex i.
func (sf *StoredFormation) Stratum(i, layer int) Stratum {
	return sf.codec.Decompress(sf.stores[sf.idx(i, layer)])
}

// SetStratum encodes s into the given layer of vertex i.
func (sf *StoredFormation) SetStratum(i, layer int, s Stratum) {
	sf.stores[sf.idx(i, layer)] = sf.codec.Compress(s)
}

// Bytes packs every store into one contiguous buffer of
// StoreSize * VertexCount * MaxStrata bytes.
func (sf *StoredFormation) Bytes() []byte {
	buf := make([]byte, StoreSize*len(sf.stores))
	for i := range sf.stores {
		sf.stores[i].put(buf[i*StoreSize : (i+1)*StoreSize])
	}
	return buf
}

// LoadBytes unpacks a buffer written by Bytes.
func LoadBytes(
	buf []byte, vertexCount int, codec Codec,
) (*StoredFormation, error) {
	n := vertexCount * MaxStrata
	if len(buf) != n*StoreSize {
		return nil, fmt.Errorf(
			"Buffer of %d bytes cannot hold %d strata of %d bytes.",
			len(buf), n, StoreSize,
		)
	}
	sf := &StoredFormation{
		codec: codec, vertexCount: vertexCount,
		stores: make([]StratumStore, n),
	}
	for i := range sf.stores {
		err := sf.stores[i].UnmarshalBinary(buf[i*StoreSize : (i+1)*StoreSize])
		if err != nil {
			return nil, err
		}
	}
	return sf, nil
}
