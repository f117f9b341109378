package htj2k

// Decoder turns an HTJ2K codestream into an interleaved pixel buffer using
// a pluggable line decoding engine.
type Decoder struct {
	opts Options
}

// NewDecoder creates a decoder. A nil opts uses DefaultOptions.
func NewDecoder(opts *Options) *Decoder {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Decoder{opts: *opts}
}

// Decode decodes data with default options. See (*Decoder).Decode.
func Decode(data []byte, out *DecodedImage, errBuf []byte) Status {
	return NewDecoder(nil).Decode(data, out, errBuf)
}

// DecodeImage decodes data with default options and returns the image or
// an *Error.
func DecodeImage(data []byte) (*DecodedImage, error) {
	return NewDecoder(nil).DecodeImage(data)
}

// Decode decodes data into out. On failure out is left zeroed and, when
// errBuf has room, the failure message is written to it. errBuf is not
// touched on success.
func (d *Decoder) Decode(data []byte, out *DecodedImage, errBuf []byte) Status {
	out.Release()
	if len(data) == 0 || out == nil {
		WriteMessage(errBuf, ErrInvalidArguments.Error())
		return StatusError
	}

	if err := d.decode(data, out); err != nil {
		out.Release()
		WriteMessage(errBuf, err.Msg)
		return err.Status()
	}
	return StatusOK
}

// DecodeImage decodes data and returns the image or an *Error.
func (d *Decoder) DecodeImage(data []byte) (*DecodedImage, error) {
	if len(data) == 0 {
		return nil, newError(KindInvalidArgument, ErrInvalidArguments)
	}
	img := &DecodedImage{}
	if err := d.decode(data, img); err != nil {
		return nil, err
	}
	return img, nil
}

// decode runs one decode. No panic escapes it.
func (d *Decoder) decode(data []byte, out *DecodedImage) (derr *Error) {
	defer func() {
		if r := recover(); r != nil {
			derr = faultError(r)
		}
	}()

	if err := d.opts.Validate(); err != nil {
		return newError(KindInvalidArgument, err)
	}
	open, err := d.opts.opener()
	if err != nil {
		return internal(err)
	}
	eng, err := open(data)
	if err != nil {
		return internal(err)
	}
	if eng == nil {
		return internal(ErrNoEngine)
	}
	defer func() {
		if err := eng.Close(); err != nil && derr == nil {
			derr = internal(err)
		}
	}()

	comps, err := eng.ReadHeader()
	if err != nil {
		return internal(err)
	}
	layout, err := ValidateComponents(comps)
	if err != nil {
		return err.(*Error)
	}
	n, derr := sampleCount(layout, d.opts.MaxSamples)
	if derr != nil {
		return derr
	}
	if err := eng.Create(); err != nil {
		return internal(err)
	}

	var pixels PixelBuffer
	switch layout.Precision {
	case Precision8:
		p, derr := decodeSamples(eng, layout, n, &scratch8)
		if derr != nil {
			return derr
		}
		pixels = Pixels8(p)
	default:
		p, derr := decodeSamples(eng, layout, n, &scratch16)
		if derr != nil {
			return derr
		}
		pixels = Pixels16(p)
	}

	*out = DecodedImage{
		Width:       layout.Width,
		Height:      layout.Height,
		Components:  layout.Components,
		BitDepth:    uint16(layout.BitDepth),
		Signed:      layout.Signed,
		SampleCount: n,
		Pixels:      pixels,
	}
	return nil
}
