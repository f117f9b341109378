package htj2k

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-dicom-htj2k/jpeg2000/codestream"
)

// Plane is one fully reconstructed component, row-major. Exactly one of
// Int32 and Float32 holds the samples.
type Plane struct {
	Width   int
	Height  int
	Int32   []int32
	Float32 []float32
}

// PlaneFunc reconstructs every component plane of a codestream whose main
// header has already been parsed.
type PlaneFunc func(h *codestream.Header, data []byte) ([]Plane, error)

// ErrEngineState is returned when engine steps are called out of order.
var ErrEngineState = errors.New("htj2k: engine used out of order")

// PlaneEngine adapts a whole-image decoder to the line-oriented Engine
// interface. The header read comes from the codestream main header and
// lines are served from the planes produced by the decoder.
type PlaneEngine struct {
	data   []byte
	decode PlaneFunc
	header *codestream.Header
	planes []Plane
	rows   []int
	line   Line
}

// NewPlaneEngine creates an engine over data
func NewPlaneEngine(data []byte, decode PlaneFunc) *PlaneEngine {
	return &PlaneEngine{data: data, decode: decode}
}

// NewPlaneOpener returns an Opener that creates plane engines
func NewPlaneOpener(decode PlaneFunc) Opener {
	return func(data []byte) (Engine, error) {
		if decode == nil {
			return nil, fmt.Errorf("htj2k: nil plane decoder")
		}
		return NewPlaneEngine(data, decode), nil
	}
}

// ComponentsFromHeader converts the SIZ segment into component descriptors
func ComponentsFromHeader(h *codestream.Header) []ComponentInfo {
	if h == nil || h.SIZ == nil {
		return nil
	}
	comps := make([]ComponentInfo, len(h.SIZ.Components))
	for i, c := range h.SIZ.Components {
		comps[i] = ComponentInfo{
			Width:       h.SIZ.ReconWidth(i),
			Height:      h.SIZ.ReconHeight(i),
			DownsampleX: uint32(c.XRsiz),
			DownsampleY: uint32(c.YRsiz),
			BitDepth:    uint32(c.BitDepth()),
			Signed:      c.IsSigned(),
		}
	}
	return comps
}

// ReadHeader parses the main header
func (e *PlaneEngine) ReadHeader() ([]ComponentInfo, error) {
	h, err := codestream.ParseHeader(e.data)
	if err != nil {
		return nil, err
	}
	e.header = h
	return ComponentsFromHeader(h), nil
}

// Create runs the plane decoder and checks its output against the header
func (e *PlaneEngine) Create() error {
	if e.header == nil {
		return ErrEngineState
	}
	planes, err := e.decode(e.header, e.data)
	if err != nil {
		return fmt.Errorf("htj2k: plane decode failed: %w", err)
	}

	siz := e.header.SIZ
	if len(planes) != len(siz.Components) {
		return fmt.Errorf("htj2k: decoder returned %d planes for %d components", len(planes), len(siz.Components))
	}
	for i, p := range planes {
		if p.Width != int(siz.ReconWidth(i)) || p.Height != int(siz.ReconHeight(i)) {
			return fmt.Errorf("htj2k: plane %d is %dx%d, header says %dx%d",
				i, p.Width, p.Height, siz.ReconWidth(i), siz.ReconHeight(i))
		}
		if (p.Int32 == nil) == (p.Float32 == nil) {
			return fmt.Errorf("htj2k: plane %d must hold exactly one sample type", i)
		}
		if n := max(len(p.Int32), len(p.Float32)); n < p.Width*p.Height {
			return fmt.Errorf("htj2k: plane %d holds %d samples, need %d", i, n, p.Width*p.Height)
		}
	}

	e.planes = planes
	e.rows = make([]int, len(planes))
	return nil
}

// Pull returns the next row of component c. The returned line is reused
// by the following call.
func (e *PlaneEngine) Pull(c int) (*Line, int, error) {
	if e.planes == nil {
		return nil, c, ErrEngineState
	}
	if c < 0 || c >= len(e.planes) {
		return nil, c, fmt.Errorf("htj2k: component %d out of range", c)
	}
	p := &e.planes[c]
	row := e.rows[c]
	if row >= p.Height {
		return nil, c, nil
	}
	e.rows[c]++

	start := row * p.Width
	e.line = Line{Size: p.Width}
	if p.Int32 != nil {
		e.line.Layout = LayoutInt32
		e.line.Int32 = p.Int32[start : start+p.Width]
	} else {
		e.line.Layout = LayoutFloat32
		e.line.Float32 = p.Float32[start : start+p.Width]
	}
	return &e.line, c, nil
}

// Close drops the planes
func (e *PlaneEngine) Close() error {
	e.planes = nil
	e.rows = nil
	e.header = nil
	return nil
}
