package htj2k

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ codec.Codec = (*Codec)(nil)

// ErrEncodeNotSupported is returned by Codec.Encode
var ErrEncodeNotSupported = errors.New("htj2k: encoding is not supported")

// Codec decodes HTJ2K encapsulated pixel data into native little-endian
// frames.
// Reference: ITU-T T.814 | ISO/IEC 15444-15:2019
//
// Supported Transfer Syntaxes:
// - 1.2.840.10008.1.2.4.201: HTJ2K Lossless
// - 1.2.840.10008.1.2.4.202: HTJ2K Lossless RPCL
// - 1.2.840.10008.1.2.4.203: HTJ2K
type Codec struct {
	transferSyntax *transfer.Syntax
	name           string
	engine         Opener
}

// NewLosslessCodec creates a new HTJ2K lossless codec
func NewLosslessCodec() *Codec {
	return &Codec{transferSyntax: transfer.HTJ2KLossless, name: "HTJ2K Lossless"}
}

// NewLosslessRPCLCodec creates a new HTJ2K lossless RPCL codec
func NewLosslessRPCLCodec() *Codec {
	return &Codec{transferSyntax: transfer.HTJ2KLosslessRPCL, name: "HTJ2K Lossless RPCL"}
}

// NewCodec creates a new HTJ2K codec for the lossy-capable transfer syntax
func NewCodec() *Codec {
	return &Codec{transferSyntax: transfer.HTJ2K, name: "HTJ2K"}
}

// WithEngine makes the codec use open instead of a registered engine
func (c *Codec) WithEngine(open Opener) *Codec {
	c.engine = open
	return c
}

// Name returns the codec name
func (c *Codec) Name() string {
	return c.name
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *Codec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	return NewParameters()
}

// Encode is not supported
func (c *Codec) Encode(_ imagetypes.PixelData, _ imagetypes.PixelData, _ codec.Parameters) error {
	return ErrEncodeNotSupported
}

// Decode decodes every frame of oldPixelData and appends the native frames
// to newPixelData
func (c *Codec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameCount := oldPixelData.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source pixel data is empty (no frames)")
	}

	params := parametersFrom(parameters)
	if err := params.Validate(); err != nil {
		return err
	}
	opts := params.options()
	if c.engine != nil {
		opts.WithEngine(c.engine)
	}
	decoder := NewDecoder(opts)
	frameInfo := oldPixelData.GetFrameInfo()

	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		img, err := decoder.DecodeImage(frameData)
		if err != nil {
			return fmt.Errorf("HTJ2K decode failed for frame %d: %w", frameIndex, err)
		}
		if err := checkFrameInfo(img, frameInfo); err != nil {
			img.Release()
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}

		native := nativeBytes(img, frameInfo)
		img.Release()
		if err := newPixelData.AddFrame(native); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// checkFrameInfo compares the decoded geometry with the DICOM attributes.
// Zero attributes are not checked.
func checkFrameInfo(img *DecodedImage, fi *imagetypes.FrameInfo) error {
	if fi == nil {
		return nil
	}
	if fi.Width != 0 && int(fi.Width) != int(img.Width) {
		return fmt.Errorf("decoded width %d does not match Columns %d", img.Width, fi.Width)
	}
	if fi.Height != 0 && int(fi.Height) != int(img.Height) {
		return fmt.Errorf("decoded height %d does not match Rows %d", img.Height, fi.Height)
	}
	if fi.SamplesPerPixel != 0 && int(fi.SamplesPerPixel) != int(img.Components) {
		return fmt.Errorf("decoded %d components, SamplesPerPixel is %d", img.Components, fi.SamplesPerPixel)
	}
	if fi.BitsAllocated != 0 && int(fi.BitsAllocated) < int(img.BitDepth) && int(img.BitDepth) <= 16 {
		return fmt.Errorf("decoded bit depth %d exceeds BitsAllocated %d", img.BitDepth, fi.BitsAllocated)
	}
	return nil
}

// nativeBytes lays the samples out as DICOM native pixel data: one byte
// per sample when BitsAllocated is 8, little-endian words otherwise.
func nativeBytes(img *DecodedImage, fi *imagetypes.FrameInfo) []byte {
	if p := img.Samples8(); p != nil {
		return p
	}
	p := img.Samples16()
	if fi != nil && int(fi.BitsAllocated) == 8 {
		out := make([]byte, len(p))
		for i, v := range p {
			out[i] = byte(v)
		}
		return out
	}
	out := make([]byte, 2*len(p))
	for i, v := range p {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

// RegisterHTJ2KCodecs registers all HTJ2K codecs with the global registry.
// RegisterEngine calls it, so this is only needed for codecs that are given
// an engine through WithEngine.
func RegisterHTJ2KCodecs() {
	registerCodecs(codec.GetGlobalRegistry())
}

func registerCodecs(registry *codec.Registry) {
	for _, c := range []*Codec{NewLosslessCodec(), NewLosslessRPCLCodec(), NewCodec()} {
		registry.RegisterCodec(c.TransferSyntax(), c)
	}
}

// registerCodecsFor registers the codecs with registry once engines holds at
// least one engine. It reports whether it did.
func registerCodecsFor(registry *codec.Registry, engines *EngineRegistry) bool {
	if len(engines.Names()) == 0 {
		return false
	}
	registerCodecs(registry)
	return true
}
