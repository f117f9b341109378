package htj2k

// ComponentInfo describes one image component as reported by an engine's
// header read.
type ComponentInfo struct {
	Width       uint32
	Height      uint32
	DownsampleX uint32
	DownsampleY uint32
	BitDepth    uint32
	Signed      bool
}

// LineLayout is the sample representation of a Line.
type LineLayout int

const (
	LayoutUnknown LineLayout = iota
	LayoutInt32
	LayoutFloat32
)

// String returns the layout name
func (l LineLayout) String() string {
	switch l {
	case LayoutInt32:
		return "int32"
	case LayoutFloat32:
		return "float32"
	default:
		return "unknown"
	}
}

// Line is one row of one component. Size may exceed the image width and
// the backing slice; only min(Size, width, len(slice)) samples are read.
type Line struct {
	Layout  LineLayout
	Int32   []int32
	Float32 []float32
	Size    int
}

// usable returns the number of samples that may be read for an image of
// the given width.
func (l *Line) usable(width int) int {
	n := min(l.Size, width)
	switch l.Layout {
	case LayoutInt32:
		n = min(n, len(l.Int32))
	case LayoutFloat32:
		n = min(n, len(l.Float32))
	}
	return max(n, 0)
}

// Engine is a wavelet/entropy decoder that yields reconstructed lines.
//
// ReadHeader is called once and reports every component. Create prepares
// line decoding. Pull returns the next row of the requested component
// together with the index of the component the line actually belongs to;
// a nil line means the engine has nothing to give. Close releases the
// engine and is always called once the engine has been opened.
type Engine interface {
	ReadHeader() ([]ComponentInfo, error)
	Create() error
	Pull(component int) (line *Line, got int, err error)
	Close() error
}

// Opener opens an engine over a complete codestream.
type Opener func(data []byte) (Engine, error)
