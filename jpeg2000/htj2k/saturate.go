package htj2k

import (
	"math"

	"golang.org/x/exp/constraints"
)

// saturate clamps v to [lo, hi].
func saturate[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sampleRange is the inclusive range of values an output sample can hold.
type sampleRange struct {
	lo, hi int32
}

// rangeFor returns the saturation range for components of the given depth
// and signedness written at precision p. Signed ranges keep the full
// component depth; the pipeline stores the low 16 bits of the clamped value.
// Depths above 31 are treated as 31.
func rangeFor(bitDepth uint32, signed bool, p Precision) sampleRange {
	d := min(max(bitDepth, 1), 31)
	if p == Precision8 {
		return sampleRange{0, int32(min(uint32(1)<<d-1, math.MaxUint8))}
	}
	if signed {
		return sampleRange{-int32(1) << (d - 1), int32(1)<<(d-1) - 1}
	}
	return sampleRange{0, int32(min(uint32(1)<<d-1, math.MaxUint16))}
}

func (r sampleRange) fromInt(v int32) int32 {
	return saturate(v, r.lo, r.hi)
}

// fromFloat rounds half away from zero and saturates. NaN maps to lo.
func (r sampleRange) fromFloat(v float32) int32 {
	f := math.Round(float64(v))
	if math.IsNaN(f) {
		return r.lo
	}
	return int32(saturate(f, float64(r.lo), float64(r.hi)))
}
