package htj2k

import "fmt"

// sample is an output sample type.
type sample interface {
	~uint8 | ~uint16
}

// convertLines pulls H*N lines from eng and writes them interleaved into
// work, which must hold Width*Height*Components zeroed samples.
func convertLines[T sample](eng Engine, l Layout, work []T) *Error {
	w := int(l.Width)
	n := int(l.Components)
	r := rangeFor(l.BitDepth, l.Signed, l.Precision)
	consumed := make([]bool, n)

	for row := 0; row < int(l.Height); row++ {
		clear(consumed)
		for comp := 0; comp < n; comp++ {
			line, got, err := eng.Pull(comp)
			if err != nil {
				return internal(err)
			}
			if line == nil {
				return unsupported(ErrPullFailed)
			}
			// Engines may hand back a different component than asked for.
			// Follow them as long as no component is written twice per row.
			if got < 0 || got >= n || consumed[got] {
				return internal(fmt.Errorf("%w: requested %d, got %d", ErrComponentOrder, comp, got))
			}
			comp = got
			consumed[comp] = true

			if err := writeLine(work, row*w*n+comp, n, w, line, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeLine writes the usable samples of line to dst[base], dst[base+stride], ...
func writeLine[T sample](dst []T, base, stride, width int, line *Line, r sampleRange) *Error {
	count := line.usable(width)
	switch line.Layout {
	case LayoutInt32:
		for x, v := range line.Int32[:count] {
			dst[base+x*stride] = T(r.fromInt(v))
		}
	case LayoutFloat32:
		for x, v := range line.Float32[:count] {
			dst[base+x*stride] = T(r.fromFloat(v))
		}
	default:
		return unsupported(ErrUnsupportedLayout)
	}
	return nil
}
