// Package testdata generates synthetic codestreams for tests.
package testdata

import (
	"bytes"
	"encoding/binary"
)

// ComponentSpec describes one component written into a generated SIZ segment.
type ComponentSpec struct {
	BitDepth int
	Signed   bool
	XRsiz    uint8 // 0 means 1
	YRsiz    uint8 // 0 means 1
}

// HeaderSpec describes a generated codestream main header.
type HeaderSpec struct {
	Width, Height       int
	XOffset, YOffset    int
	Components          []ComponentSpec
	HT                  bool   // write CAP with the Part 15 bit and HT code-block style
	Comment             string // optional COM segment
	DecompositionLevels int
}

// GenerateSimpleHTJ2K generates a single-tile HTJ2K codestream header with
// identical components. The tile body is a placeholder: it exists so that
// the header is terminated by SOT the way real codestreams are.
func GenerateSimpleHTJ2K(width, height, bitDepth, components int, signed bool) []byte {
	spec := HeaderSpec{Width: width, Height: height, HT: true}
	for i := 0; i < components; i++ {
		spec.Components = append(spec.Components, ComponentSpec{BitDepth: bitDepth, Signed: signed})
	}
	return GenerateCodestream(spec)
}

// GenerateCodestream writes SOC, SIZ, an optional CAP, COD, QCD, an optional
// COM, one empty tile-part and EOC.
func GenerateCodestream(spec HeaderSpec) []byte {
	buf := bytes.Buffer{}

	writeMarker(&buf, 0xFF4F) // SOC
	writeSIZ(&buf, spec)
	if spec.HT {
		writeCAP(&buf)
	}
	writeCOD(&buf, spec.DecompositionLevels, spec.HT)
	writeQCD(&buf, spec)
	if spec.Comment != "" {
		writeCOM(&buf, spec.Comment)
	}
	writeSOT(&buf, 0, 14)
	writeMarker(&buf, 0xFF93) // SOD
	buf.WriteByte(0x00)       // empty packet
	writeMarker(&buf, 0xFFD9) // EOC

	return buf.Bytes()
}

// writeMarker writes a 2-byte marker
func writeMarker(buf *bytes.Buffer, marker uint16) {
	_ = binary.Write(buf, binary.BigEndian, marker)
}

// writeSegment writes marker, length and body
func writeSegment(buf *bytes.Buffer, marker uint16, body []byte) {
	writeMarker(buf, marker)
	_ = binary.Write(buf, binary.BigEndian, uint16(len(body)+2))
	buf.Write(body)
}

// writeSIZ writes the SIZ (Image and Tile Size) segment
func writeSIZ(buf *bytes.Buffer, spec HeaderSpec) {
	sizData := bytes.Buffer{}

	rsiz := uint16(0)
	if spec.HT {
		rsiz = 0x4000
	}
	xsiz := uint32(spec.XOffset + spec.Width)
	ysiz := uint32(spec.YOffset + spec.Height)

	_ = binary.Write(&sizData, binary.BigEndian, rsiz)
	_ = binary.Write(&sizData, binary.BigEndian, xsiz)
	_ = binary.Write(&sizData, binary.BigEndian, ysiz)
	_ = binary.Write(&sizData, binary.BigEndian, uint32(spec.XOffset))
	_ = binary.Write(&sizData, binary.BigEndian, uint32(spec.YOffset))
	// single tile covering the whole reference grid
	_ = binary.Write(&sizData, binary.BigEndian, xsiz)
	_ = binary.Write(&sizData, binary.BigEndian, ysiz)
	_ = binary.Write(&sizData, binary.BigEndian, uint32(0))
	_ = binary.Write(&sizData, binary.BigEndian, uint32(0))
	_ = binary.Write(&sizData, binary.BigEndian, uint16(len(spec.Components)))

	for _, c := range spec.Components {
		ssiz := uint8(c.BitDepth - 1)
		if c.Signed {
			ssiz |= 0x80
		}
		_ = binary.Write(&sizData, binary.BigEndian, ssiz)
		_ = binary.Write(&sizData, binary.BigEndian, orOne(c.XRsiz))
		_ = binary.Write(&sizData, binary.BigEndian, orOne(c.YRsiz))
	}

	writeSegment(buf, 0xFF51, sizData.Bytes())
}

// writeCAP writes a CAP segment announcing Part 15
func writeCAP(buf *bytes.Buffer) {
	capData := bytes.Buffer{}
	_ = binary.Write(&capData, binary.BigEndian, uint32(1)<<(32-15))
	_ = binary.Write(&capData, binary.BigEndian, uint16(0)) // Ccap15: HTONLY, no MAGB
	writeSegment(buf, 0xFF50, capData.Bytes())
}

// writeCOD writes the COD (Coding Style Default) segment
func writeCOD(buf *bytes.Buffer, numLevels int, ht bool) {
	codData := bytes.Buffer{}

	cbStyle := uint8(0)
	if ht {
		cbStyle = 0x40
	}

	_ = binary.Write(&codData, binary.BigEndian, uint8(0))         // Scod
	_ = binary.Write(&codData, binary.BigEndian, uint8(0))         // Progression order (LRCP)
	_ = binary.Write(&codData, binary.BigEndian, uint16(1))        // Number of layers
	_ = binary.Write(&codData, binary.BigEndian, uint8(0))         // Multiple component transform (none)
	_ = binary.Write(&codData, binary.BigEndian, uint8(numLevels)) // Decomposition levels
	_ = binary.Write(&codData, binary.BigEndian, uint8(4))         // Code-block width (2^(4+2) = 64)
	_ = binary.Write(&codData, binary.BigEndian, uint8(4))         // Code-block height (2^(4+2) = 64)
	_ = binary.Write(&codData, binary.BigEndian, cbStyle)          // Code-block style
	_ = binary.Write(&codData, binary.BigEndian, uint8(1))         // Transformation (5-3 reversible)

	writeSegment(buf, 0xFF52, codData.Bytes())
}

// writeQCD writes the QCD (Quantization Default) segment
func writeQCD(buf *bytes.Buffer, spec HeaderSpec) {
	bitDepth := 8
	if len(spec.Components) > 0 {
		bitDepth = spec.Components[0].BitDepth
	}

	qcdData := bytes.Buffer{}
	_ = binary.Write(&qcdData, binary.BigEndian, uint8(0x40)) // no quantization, 2 guard bits
	for i := 0; i < 3*spec.DecompositionLevels+1; i++ {
		_ = binary.Write(&qcdData, binary.BigEndian, uint8((bitDepth+1)<<3))
	}

	writeSegment(buf, 0xFF5C, qcdData.Bytes())
}

// writeCOM writes a Latin-1 comment
func writeCOM(buf *bytes.Buffer, text string) {
	comData := bytes.Buffer{}
	_ = binary.Write(&comData, binary.BigEndian, uint16(1))
	comData.WriteString(text)
	writeSegment(buf, 0xFF64, comData.Bytes())
}

// writeSOT writes the SOT (Start of Tile) segment
func writeSOT(buf *bytes.Buffer, tileIndex int, tileLength uint32) {
	writeMarker(buf, 0xFF90)
	_ = binary.Write(buf, binary.BigEndian, uint16(10))
	_ = binary.Write(buf, binary.BigEndian, uint16(tileIndex))
	_ = binary.Write(buf, binary.BigEndian, tileLength)
	_ = binary.Write(buf, binary.BigEndian, uint8(0))
	_ = binary.Write(buf, binary.BigEndian, uint8(1))
}

func orOne(v uint8) uint8 {
	if v == 0 {
		return 1
	}
	return v
}
