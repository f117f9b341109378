package htj2k

// Layout is the common geometry and format shared by every component of a
// validated codestream.
type Layout struct {
	Width      uint32
	Height     uint32
	Components uint16
	BitDepth   uint32
	Signed     bool
	Precision  Precision
}

// maxBitDepth is the largest component precision a SIZ segment can signal.
const maxBitDepth = 38

// ValidateComponents checks that all components share the geometry and
// sample format of component 0 and derives the output layout. Every
// failure is an UnsupportedFeature *Error.
func ValidateComponents(comps []ComponentInfo) (Layout, error) {
	if len(comps) == 0 {
		return Layout{}, unsupported(ErrNoComponents)
	}
	if len(comps) > 0xFFFF {
		return Layout{}, unsupported(ErrTooManyComponents)
	}

	ref := comps[0]
	if ref.BitDepth == 0 || ref.BitDepth > maxBitDepth {
		return Layout{}, unsupported(ErrInvalidBitDepth)
	}

	for _, c := range comps[1:] {
		switch {
		case c.Width != ref.Width || c.Height != ref.Height:
			return Layout{}, unsupported(ErrSubsampled)
		case c.DownsampleX != ref.DownsampleX || c.DownsampleY != ref.DownsampleY:
			return Layout{}, unsupported(ErrDownsamplingMismatch)
		case c.BitDepth != ref.BitDepth:
			return Layout{}, unsupported(ErrBitDepthMismatch)
		case c.Signed != ref.Signed:
			return Layout{}, unsupported(ErrSignednessMismatch)
		}
	}

	l := Layout{
		Width:      ref.Width,
		Height:     ref.Height,
		Components: uint16(len(comps)),
		BitDepth:   ref.BitDepth,
		Signed:     ref.Signed,
		Precision:  Precision16,
	}
	if ref.BitDepth <= 8 && !ref.Signed {
		l.Precision = Precision8
	}
	return l, nil
}
