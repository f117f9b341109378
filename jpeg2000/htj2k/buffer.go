package htj2k

import (
	"math"
	"math/bits"
	"sync"
)

// maxPooledSamples bounds the working buffers kept for reuse.
const maxPooledSamples = 1 << 24

// scratchPool recycles working buffers between decode calls.
type scratchPool[T sample] struct {
	pool sync.Pool
}

var (
	scratch8  scratchPool[uint8]
	scratch16 scratchPool[uint16]
)

// get returns a zeroed buffer of n samples.
func (s *scratchPool[T]) get(n int) (buf *[]T, derr *Error) {
	if b, ok := s.pool.Get().(*[]T); ok && cap(*b) >= n {
		*b = (*b)[:n]
		clear(*b)
		return b, nil
	}
	defer func() {
		if r := recover(); r != nil {
			buf, derr = nil, internal(ErrAllocation)
		}
	}()
	b := make([]T, n)
	return &b, nil
}

func (s *scratchPool[T]) put(b *[]T) {
	if cap(*b) > maxPooledSamples {
		return
	}
	s.pool.Put(b)
}

// sampleCount returns Width*Height*Components, failing when the product
// overflows or exceeds limit (0 means no limit).
func sampleCount(l Layout, limit int) (int, *Error) {
	hi, total := bits.Mul64(uint64(l.Width)*uint64(l.Height), uint64(l.Components))
	if hi != 0 || total > math.MaxInt/2 {
		return 0, internal(ErrAllocation)
	}
	if limit > 0 && total > uint64(limit) {
		return 0, internal(ErrAllocation)
	}
	return int(total), nil
}

// adopt copies the working buffer into a caller-owned slice.
func adopt[T sample](work []T) (owned []T, derr *Error) {
	defer func() {
		if r := recover(); r != nil {
			owned, derr = nil, internal(ErrAllocation)
		}
	}()
	owned = make([]T, len(work))
	copy(owned, work)
	return owned, nil
}

// decodeSamples runs the pipeline into a pooled working buffer and hands
// back an owned copy.
func decodeSamples[T sample](eng Engine, l Layout, n int, pool *scratchPool[T]) ([]T, *Error) {
	work, err := pool.get(n)
	if err != nil {
		return nil, err
	}
	defer pool.put(work)

	if err := convertLines(eng, l, *work); err != nil {
		return nil, err
	}
	return adopt(*work)
}
