package rock

import (
	"encoding/binary"
	"fmt"
	"math"
)

/*
The binary layout of a StratumStore is as follows (little endian):

    |-1-||--2--||--3--||----- 4 -----||--- 5 ---||--6--||--7--|

    1 - (uint8) Codec version.
    2 - (float32) Mass scale: the mass encoded by the largest integer.
    3 - (float32) Grain scale: the relative volume encoded by 255.
    4 - ([MineralCount]uint16) Quantized mineral masses.
    5 - ([GrainCount]uint8) Quantized particle size histogram.
    6 - (float32) First deposition age.
    7 - (float32) Last deposition age.
*/

const (
	// CodecVersion is the only quantization layout currently understood.
	CodecVersion uint8 = 1

	massLevels  = math.MaxUint16
	grainLevels = math.MaxUint8

	// StoreSize is the size in bytes of a marshaled StratumStore.
	StoreSize = 1 + 4 + 4 + 2*MineralCount + GrainCount + 4 + 4
)

// Codec holds the quantization parameters used to compress strata. If
// GlobalMax is positive, every mass is quantized against it; otherwise each
// stratum is quantized against its own largest mass pool.
type Codec struct {
	Version   uint8
	GlobalMax float64
}

// DefaultCodec quantizes each stratum against its own maximum.
var DefaultCodec = Codec{Version: CodecVersion}

// StratumStore is the compressed form of a Stratum.
type StratumStore struct {
	Version    uint8
	MassScale  float32
	GrainScale float32
	Masses     [MineralCount]uint16
	Grains     [GrainCount]uint8

	FirstDeposited, LastDeposited float32
}

// MassStep returns the quantization step of the masses in a store. Decoded
// masses are within one step of the originals.
func (st StratumStore) MassStep() float64 {
	return float64(st.MassScale) / massLevels
}

// Compress quantizes a Stratum. Masses larger than a positive GlobalMax
// cause a panic.
func (c Codec) Compress(s Stratum) StratumStore {
	if c.Version != CodecVersion {
		panic(fmt.Sprintf("Unsupported stratum codec version %d.", c.Version))
	}

	st := StratumStore{
		Version:        c.Version,
		FirstDeposited: float32(s.FirstDeposited),
		LastDeposited:  float32(s.LastDeposited),
	}

	scale := c.GlobalMax
	if scale <= 0 {
		for _, m := range s.Masses {
			scale = math.Max(scale, m)
		}
	} else {
		for i, m := range s.Masses {
			if m > scale {
				panic(fmt.Sprintf(
					"Mass %g of %v exceeds the codec's global maximum %g.",
					m, Mineral(i), scale,
				))
			}
		}
	}
	// Rounding the scale up keeps every quantized value in range.
	st.MassScale = float32(scale)
	if float64(st.MassScale) < scale {
		st.MassScale = math.Nextafter32(st.MassScale, float32(math.Inf(1)))
	}
	if st.MassScale > 0 {
		for i, m := range s.Masses {
			st.Masses[i] = uint16(math.Round(m / float64(st.MassScale) * massLevels))
		}
	}

	gMax := 0.0
	for _, g := range s.Grains {
		gMax = math.Max(gMax, g)
	}
	st.GrainScale = float32(gMax)
	if float64(st.GrainScale) < gMax {
		st.GrainScale = math.Nextafter32(st.GrainScale, float32(math.Inf(1)))
	}
	if st.GrainScale > 0 {
		for i, g := range s.Grains {
			st.Grains[i] = uint8(math.Round(g / float64(st.GrainScale) * grainLevels))
		}
	}

	return st
}

// Decompress restores a Stratum from its compressed form. Malformed stores
// cause a panic.
func (c Codec) Decompress(st StratumStore) Stratum {
	if st.Version != CodecVersion {
		panic(fmt.Sprintf("Unsupported stratum store version %d.", st.Version))
	}
	ms, gs := float64(st.MassScale), float64(st.GrainScale)
	if !(ms >= 0) || !(gs >= 0) || math.IsInf(ms, 0) || math.IsInf(gs, 0) {
		panic(fmt.Sprintf(
			"Stratum store has invalid scales %g and %g.", ms, gs,
		))
	}

	s := Stratum{
		FirstDeposited: float64(st.FirstDeposited),
		LastDeposited:  float64(st.LastDeposited),
	}
	for i, q := range st.Masses {
		s.Masses[i] = float64(q) * ms / massLevels
	}
	for i, q := range st.Grains {
		s.Grains[i] = float64(q) * gs / grainLevels
	}
	return s
}

// MarshalBinary packs the store into StoreSize bytes.
func (st *StratumStore) MarshalBinary() ([]byte, error) {
	buf := make([]byte, StoreSize)
	st.put(buf)
	return buf, nil
}

func (st *StratumStore) put(buf []byte) {
	order := binary.LittleEndian
	buf[0] = st.Version
	order.PutUint32(buf[1:], math.Float32bits(st.MassScale))
	order.PutUint32(buf[5:], math.Float32bits(st.GrainScale))
	off := 9
	for _, q := range st.Masses {
		order.PutUint16(buf[off:], q)
		off += 2
	}
	copy(buf[off:], st.Grains[:])
	off += GrainCount
	order.PutUint32(buf[off:], math.Float32bits(st.FirstDeposited))
	order.PutUint32(buf[off+4:], math.Float32bits(st.LastDeposited))
}

// UnmarshalBinary unpacks a store written by MarshalBinary.
func (st *StratumStore) UnmarshalBinary(buf []byte) error {
	if len(buf) != StoreSize {
		return fmt.Errorf(
			"Stratum store must be %d bytes, but %d were given.",
			StoreSize, len(buf),
		)
	} else if buf[0] != CodecVersion {
		return fmt.Errorf("Unsupported stratum store version %d.", buf[0])
	}

	order := binary.LittleEndian
	st.Version = buf[0]
	st.MassScale = math.Float32frombits(order.Uint32(buf[1:]))
	st.GrainScale = math.Float32frombits(order.Uint32(buf[5:]))
	off := 9
	for i := range st.Masses {
		st.Masses[i] = order.Uint16(buf[off:])
		off += 2
	}
	copy(st.Grains[:], buf[off:off+GrainCount])
	off += GrainCount
	st.FirstDeposited = math.Float32frombits(order.Uint32(buf[off:]))
	st.LastDeposited = math.Float32frombits(order.Uint32(buf[off+4:]))
	return nil
}
