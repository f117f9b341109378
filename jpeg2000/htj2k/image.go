package htj2k

// Precision is the width in bits of one output sample.
type Precision uint8

const (
	// Precision8 is one byte per sample
	Precision8 Precision = 8
	// Precision16 is one 16-bit word per sample
	Precision16 Precision = 16
)

// PixelBuffer is the interleaved sample buffer of a decoded image. It is
// either Pixels8 or Pixels16.
type PixelBuffer interface {
	Precision() Precision
	Len() int
	pixelBuffer()
}

// Pixels8 holds 8-bit samples.
type Pixels8 []uint8

// Pixels16 holds 16-bit samples. Signed images store the two's-complement
// bit pattern.
type Pixels16 []uint16

// Precision returns Precision8
func (Pixels8) Precision() Precision { return Precision8 }

// Len returns the number of samples
func (p Pixels8) Len() int { return len(p) }

func (Pixels8) pixelBuffer() {}

// Precision returns Precision16
func (Pixels16) Precision() Precision { return Precision16 }

// Len returns the number of samples
func (p Pixels16) Len() int { return len(p) }

func (Pixels16) pixelBuffer() {}

// DecodedImage is the result of a decode call. Samples are interleaved
// component by component: index (y*Width+x)*Components + c.
type DecodedImage struct {
	Width       uint32
	Height      uint32
	Components  uint16
	BitDepth    uint16
	Signed      bool
	Float       bool   // always false
	Reserved    uint16 // always 0
	SampleCount int
	Pixels      PixelBuffer
}

// Samples8 returns the 8-bit samples, or nil when the image holds none.
func (img *DecodedImage) Samples8() []uint8 {
	if img == nil {
		return nil
	}
	p, _ := img.Pixels.(Pixels8)
	return p
}

// Samples16 returns the 16-bit samples, or nil when the image holds none.
func (img *DecodedImage) Samples16() []uint16 {
	if img == nil {
		return nil
	}
	p, _ := img.Pixels.(Pixels16)
	return p
}

// Precision returns the output precision, or 0 when no buffer is held.
func (img *DecodedImage) Precision() Precision {
	if img == nil || img.Pixels == nil {
		return 0
	}
	return img.Pixels.Precision()
}

// Release drops the pixel buffer and resets every field. It is safe on a
// nil image and may be called any number of times.
func (img *DecodedImage) Release() {
	if img == nil {
		return
	}
	*img = DecodedImage{}
}
