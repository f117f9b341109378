package codestream

// Header holds the main header of a JPEG 2000 / HTJ2K codestream, i.e. every
// marker segment between SOC and the first SOT.
type Header struct {
	SIZ *SIZSegment  // Image and tile size
	CAP *CAPSegment  // Extended capabilities (optional, required for HTJ2K)
	COD *CODSegment  // Coding style default
	QCD *QCDSegment  // Quantization default
	COM []COMSegment // Comments (optional)

	// Markers lists every main header marker in the order it was read.
	Markers []uint16

	// Length is the number of bytes consumed, SOC included.
	Length int
}

// SIZSegment - Image and tile size marker segment
// ISO/IEC 15444-1 A.5.1
type SIZSegment struct {
	Rsiz   uint16 // Capabilities
	Xsiz   uint32 // Width of reference grid
	Ysiz   uint32 // Height of reference grid
	XOsiz  uint32 // Horizontal offset
	YOsiz  uint32 // Vertical offset
	XTsiz  uint32 // Width of one reference tile
	YTsiz  uint32 // Height of one reference tile
	XTOsiz uint32 // Horizontal offset of first tile
	YTOsiz uint32 // Vertical offset of first tile
	Csiz   uint16 // Number of components

	// Per-component parameters
	Components []ComponentSize
}

// ComponentSize holds per-component sizing information
type ComponentSize struct {
	Ssiz  uint8 // Precision and sign (bit 7 = sign, bits 0-6 = depth-1)
	XRsiz uint8 // Horizontal separation
	YRsiz uint8 // Vertical separation
}

// BitDepth returns the bit depth of the component
func (c *ComponentSize) BitDepth() int {
	return int(c.Ssiz&0x7F) + 1
}

// IsSigned returns true if the component is signed
func (c *ComponentSize) IsSigned() bool {
	return (c.Ssiz & 0x80) != 0
}

// ReconWidth returns the reconstructed width of component c: the number of
// component samples covering [XOsiz, Xsiz) on the reference grid.
func (s *SIZSegment) ReconWidth(c int) uint32 {
	xr := uint32(s.Components[c].XRsiz)
	return ceilDiv(s.Xsiz, xr) - ceilDiv(s.XOsiz, xr)
}

// ReconHeight returns the reconstructed height of component c.
func (s *SIZSegment) ReconHeight(c int) uint32 {
	yr := uint32(s.Components[c].YRsiz)
	return ceilDiv(s.Ysiz, yr) - ceilDiv(s.YOsiz, yr)
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return uint32((uint64(a) + uint64(b) - 1) / uint64(b))
}

// Rsiz bit signalling that HT code-blocks may be present (ISO/IEC 15444-15 A.2).
const RsizHTJ2K uint16 = 0x4000

// CAPSegment - Extended capabilities marker segment
// ISO/IEC 15444-1 A.5.2
type CAPSegment struct {
	Pcap uint32   // Bit (32 - i) set when Part i capabilities are used
	Ccap []uint16 // One entry per set Pcap bit
}

// PcapPart15 is the Pcap bit announcing Part 15 (HTJ2K) capabilities.
const PcapPart15 uint32 = 1 << (32 - 15)

// CODSegment - Coding style default marker segment
// ISO/IEC 15444-1 A.6.1
type CODSegment struct {
	Scod uint8 // Coding style for all components

	// SGcod
	ProgressionOrder           uint8  // 0=LRCP, 1=RLCP, 2=RPCL, 3=PCRL, 4=CPRL
	NumberOfLayers             uint16 // Number of layers
	MultipleComponentTransform uint8  // 0=none, 1=RCT or ICT

	// SPcod
	NumberOfDecompositionLevels uint8
	CodeBlockWidth              uint8 // exponent, 2^(n+2)
	CodeBlockHeight             uint8 // exponent, 2^(n+2)
	CodeBlockStyle              uint8
	Transformation              uint8 // 0=9-7 irreversible, 1=5-3 reversible

	// Precinct sizes (if Scod bit 0 is set)
	PrecinctSizes []PrecinctSize
}

// Code-block style flag selecting the HT block coder.
const CodeBlockStyleHT uint8 = 0x40

// PrecinctSize holds precinct dimensions for a resolution level
type PrecinctSize struct {
	PPx uint8 // Precinct width exponent
	PPy uint8 // Precinct height exponent
}

// CodeBlockSize returns the actual code-block dimensions
func (c *CODSegment) CodeBlockSize() (width, height int) {
	width = 1 << (c.CodeBlockWidth + 2)
	height = 1 << (c.CodeBlockHeight + 2)
	return
}

// Reversible reports whether the 5-3 reversible wavelet is used.
func (c *CODSegment) Reversible() bool {
	return c.Transformation == 1
}

// QCDSegment - Quantization default marker segment
// ISO/IEC 15444-1 A.6.4
type QCDSegment struct {
	Sqcd  uint8  // Quantization style, bits 0-4 guard bits, bits 5-7 type
	SPqcd []byte // Quantization step size values
}

// QuantizationType returns the quantization type
func (q *QCDSegment) QuantizationType() int {
	return int(q.Sqcd >> 5)
}

// GuardBits returns the number of guard bits
func (q *QCDSegment) GuardBits() int {
	return int(q.Sqcd & 0x1F)
}

// COMSegment - Comment marker segment
type COMSegment struct {
	Rcom uint16 // Registration value (0=binary, 1=ISO/IEC 8859-15)
	Data []byte // Comment data
}

// IsHTJ2K reports whether the main header announces HT block coding through
// the CAP marker, the Rsiz capability bit or the default code-block style.
func (h *Header) IsHTJ2K() bool {
	if h.CAP != nil && h.CAP.Pcap&PcapPart15 != 0 {
		return true
	}
	if h.SIZ != nil && h.SIZ.Rsiz&RsizHTJ2K != 0 {
		return true
	}
	return h.COD != nil && h.COD.CodeBlockStyle&CodeBlockStyleHT != 0
}
