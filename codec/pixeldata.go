// Package codec holds helpers shared by the codecs of this module.
package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ imagetypes.PixelData = (*FramePixelData)(nil)

// FramePixelData is an in-memory imagetypes.PixelData holding one byte
// slice per frame.
type FramePixelData struct {
	frames       [][]byte
	frameInfo    *imagetypes.FrameInfo
	encapsulated bool
}

// NewFramePixelData creates native (unencapsulated) pixel data with the
// given frame info
func NewFramePixelData(frameInfo *imagetypes.FrameInfo) *FramePixelData {
	return &FramePixelData{
		frames:    make([][]byte, 0),
		frameInfo: frameInfo,
	}
}

// NewEncapsulatedPixelData creates pixel data whose frames are compressed
// codestreams
func NewEncapsulatedPixelData(frameInfo *imagetypes.FrameInfo, frames ...[]byte) *FramePixelData {
	p := &FramePixelData{frameInfo: frameInfo, encapsulated: true}
	p.frames = append(p.frames, frames...)
	return p
}

// GetFrame returns the pixel data for the specified frame (0-indexed)
func (p *FramePixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, fmt.Errorf("frame index %d out of range [0, %d)", frameIndex, len(p.frames))
	}
	return p.frames[frameIndex], nil
}

// AddFrame appends a new frame to the pixel data
func (p *FramePixelData) AddFrame(frameData []byte) error {
	if frameData == nil {
		return fmt.Errorf("frame data cannot be nil")
	}
	p.frames = append(p.frames, frameData)
	return nil
}

// FrameCount returns the number of frames in the pixel data
func (p *FramePixelData) FrameCount() int {
	return len(p.frames)
}

// GetFrameInfo returns frame metadata for codec operations
func (p *FramePixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

// IsEncapsulated returns true if the frames are compressed
func (p *FramePixelData) IsEncapsulated() bool {
	return p.encapsulated
}
