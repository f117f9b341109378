package codestream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncated is returned when the data ends inside the main header.
	ErrTruncated = errors.New("codestream: truncated main header")

	// ErrNotCodestream is returned when the data does not start with SOC.
	ErrNotCodestream = errors.New("codestream: missing SOC marker")
)

// Parser reads the main header of a JPEG 2000 codestream
type Parser struct {
	data   []byte
	offset int
}

// NewParser creates a new codestream parser
func NewParser(data []byte) *Parser {
	return &Parser{
		data:   data,
		offset: 0,
	}
}

// ParseHeader parses the main header of data.
func ParseHeader(data []byte) (*Header, error) {
	return NewParser(data).ParseHeader()
}

// ParseHeader reads SOC and every main header segment up to the first SOT
// (or EOC). Tile-parts are left untouched.
func (p *Parser) ParseHeader() (*Header, error) {
	marker, err := p.readMarker()
	if err != nil || marker != MarkerSOC {
		return nil, ErrNotCodestream
	}

	h := &Header{}
	if err := p.parseMainHeader(h); err != nil {
		return nil, fmt.Errorf("failed to parse main header: %w", err)
	}
	h.Length = p.offset
	return h, nil
}

// parseMainHeader parses the main header segments
func (p *Parser) parseMainHeader(h *Header) error {
	for {
		marker, err := p.peekMarker()
		if err != nil {
			return err
		}

		// Main header ends when we hit SOT or EOC
		if marker == MarkerSOT || marker == MarkerEOC {
			break
		}

		if marker, err = p.readMarker(); err != nil {
			return err
		}
		if h.SIZ == nil && marker != MarkerSIZ {
			return fmt.Errorf("unexpected marker before SIZ: 0x%04X (%s)", marker, MarkerName(marker))
		}
		h.Markers = append(h.Markers, marker)

		switch marker {
		case MarkerSIZ:
			if h.SIZ != nil {
				return fmt.Errorf("duplicate SIZ segment")
			}
			siz, err := p.parseSIZ()
			if err != nil {
				return fmt.Errorf("failed to parse SIZ: %w", err)
			}
			h.SIZ = siz

		case MarkerCAP:
			if h.CAP != nil {
				return fmt.Errorf("duplicate CAP segment")
			}
			capSeg, err := p.parseCAP()
			if err != nil {
				return fmt.Errorf("failed to parse CAP: %w", err)
			}
			h.CAP = capSeg

		case MarkerCOD:
			if h.COD != nil {
				return fmt.Errorf("duplicate COD segment")
			}
			cod, err := p.parseCOD()
			if err != nil {
				return fmt.Errorf("failed to parse COD: %w", err)
			}
			h.COD = cod

		case MarkerQCD:
			if h.QCD != nil {
				return fmt.Errorf("duplicate QCD segment")
			}
			qcd, err := p.parseQCD()
			if err != nil {
				return fmt.Errorf("failed to parse QCD: %w", err)
			}
			h.QCD = qcd

		case MarkerCOM:
			com, err := p.parseCOM()
			if err != nil {
				return fmt.Errorf("failed to parse COM: %w", err)
			}
			h.COM = append(h.COM, *com)

		default:
			// COC, QCC, RGN, POC, TLM, PLM, PPM, CRG, CPF and unknown
			// segments do not affect the component layout.
			if err := p.skipSegment(); err != nil {
				return fmt.Errorf("failed to skip segment 0x%04X (%s): %w", marker, MarkerName(marker), err)
			}
		}
	}

	// Verify required segments
	if h.SIZ == nil {
		return fmt.Errorf("missing required SIZ segment")
	}
	if h.COD == nil {
		return fmt.Errorf("missing required COD segment")
	}
	if h.QCD == nil {
		return fmt.Errorf("missing required QCD segment")
	}
	return nil
}

// parseSIZ parses the SIZ marker segment
func (p *Parser) parseSIZ() (*SIZSegment, error) {
	length, err := p.readUint16()
	if err != nil {
		return nil, err
	}

	siz := &SIZSegment{}
	if siz.Rsiz, err = p.readUint16(); err != nil {
		return nil, err
	}
	for _, field := range []*uint32{
		&siz.Xsiz, &siz.Ysiz, &siz.XOsiz, &siz.YOsiz,
		&siz.XTsiz, &siz.YTsiz, &siz.XTOsiz, &siz.YTOsiz,
	} {
		if *field, err = p.readUint32(); err != nil {
			return nil, err
		}
	}
	if siz.Csiz, err = p.readUint16(); err != nil {
		return nil, err
	}

	expectedLength := 38 + 3*int(siz.Csiz)
	if int(length) != expectedLength {
		return nil, fmt.Errorf("SIZ segment length mismatch: expected %d, got %d", expectedLength, length)
	}

	siz.Components = make([]ComponentSize, siz.Csiz)
	for i := range siz.Components {
		comp := &siz.Components[i]
		if comp.Ssiz, err = p.readUint8(); err != nil {
			return nil, err
		}
		if comp.XRsiz, err = p.readUint8(); err != nil {
			return nil, err
		}
		if comp.YRsiz, err = p.readUint8(); err != nil {
			return nil, err
		}
		if comp.XRsiz == 0 || comp.YRsiz == 0 {
			return nil, fmt.Errorf("component %d has zero sub-sampling factor", i)
		}
		if comp.BitDepth() > 38 {
			return nil, fmt.Errorf("component %d bit depth %d out of range", i, comp.BitDepth())
		}
	}

	if siz.Xsiz <= siz.XOsiz || siz.Ysiz <= siz.YOsiz {
		return nil, fmt.Errorf("empty image area: %dx%d at offset %d,%d", siz.Xsiz, siz.Ysiz, siz.XOsiz, siz.YOsiz)
	}

	return siz, nil
}

// parseCAP parses the CAP marker segment
func (p *Parser) parseCAP() (*CAPSegment, error) {
	length, err := p.readUint16()
	if err != nil {
		return nil, err
	}

	capSeg := &CAPSegment{}
	if capSeg.Pcap, err = p.readUint32(); err != nil {
		return nil, err
	}

	// One Ccap word follows for every bit set in Pcap.
	count := (int(length) - 6) / 2
	if count < 0 {
		return nil, fmt.Errorf("CAP segment too short: %d", length)
	}
	capSeg.Ccap = make([]uint16, count)
	for i := range capSeg.Ccap {
		if capSeg.Ccap[i], err = p.readUint16(); err != nil {
			return nil, err
		}
	}
	return capSeg, nil
}

// parseCOD parses the COD marker segment
func (p *Parser) parseCOD() (*CODSegment, error) {
	length, err := p.readUint16()
	if err != nil {
		return nil, err
	}

	cod := &CODSegment{}
	start := p.offset

	fields := []*uint8{&cod.Scod, &cod.ProgressionOrder}
	for _, f := range fields {
		if *f, err = p.readUint8(); err != nil {
			return nil, err
		}
	}
	if cod.NumberOfLayers, err = p.readUint16(); err != nil {
		return nil, err
	}
	fields = []*uint8{
		&cod.MultipleComponentTransform,
		&cod.NumberOfDecompositionLevels,
		&cod.CodeBlockWidth,
		&cod.CodeBlockHeight,
		&cod.CodeBlockStyle,
		&cod.Transformation,
	}
	for _, f := range fields {
		if *f, err = p.readUint8(); err != nil {
			return nil, err
		}
	}

	if cod.Scod&0x01 != 0 {
		cod.PrecinctSizes = make([]PrecinctSize, int(cod.NumberOfDecompositionLevels)+1)
		for i := range cod.PrecinctSizes {
			ppxppy, err := p.readUint8()
			if err != nil {
				return nil, err
			}
			cod.PrecinctSizes[i].PPx = ppxppy & 0x0F
			cod.PrecinctSizes[i].PPy = ppxppy >> 4
		}
	}

	consumed := p.offset - start
	expected := int(length) - 2
	if consumed > expected {
		return nil, fmt.Errorf("COD segment length mismatch: expected %d, got %d", expected, consumed)
	}
	if consumed < expected {
		if p.offset+expected-consumed > len(p.data) {
			return nil, ErrTruncated
		}
		p.offset += expected - consumed
	}

	return cod, nil
}

// parseQCD parses the QCD marker segment
func (p *Parser) parseQCD() (*QCDSegment, error) {
	length, err := p.readUint16()
	if err != nil {
		return nil, err
	}
	if length < 3 {
		return nil, fmt.Errorf("QCD segment too short: %d", length)
	}

	qcd := &QCDSegment{}
	if qcd.Sqcd, err = p.readUint8(); err != nil {
		return nil, err
	}

	// length includes itself (2) and Sqcd (1)
	qcd.SPqcd = make([]byte, int(length)-3)
	if err := p.read(qcd.SPqcd); err != nil {
		return nil, err
	}

	return qcd, nil
}

// parseCOM parses the COM marker segment
func (p *Parser) parseCOM() (*COMSegment, error) {
	length, err := p.readUint16()
	if err != nil {
		return nil, err
	}
	if length < 4 {
		return nil, fmt.Errorf("COM segment too short: %d", length)
	}

	com := &COMSegment{}
	if com.Rcom, err = p.readUint16(); err != nil {
		return nil, err
	}

	// length includes itself (2) and Rcom (2)
	com.Data = make([]byte, int(length)-4)
	if err := p.read(com.Data); err != nil {
		return nil, err
	}

	return com, nil
}

// Helper methods for reading data

func (p *Parser) readMarker() (uint16, error) {
	return p.readUint16()
}

func (p *Parser) peekMarker() (uint16, error) {
	if p.offset+2 > len(p.data) {
		return 0, ErrTruncated
	}
	return binary.BigEndian.Uint16(p.data[p.offset : p.offset+2]), nil
}

func (p *Parser) readUint8() (uint8, error) {
	if p.offset+1 > len(p.data) {
		return 0, ErrTruncated
	}
	val := p.data[p.offset]
	p.offset++
	return val, nil
}

func (p *Parser) readUint16() (uint16, error) {
	if p.offset+2 > len(p.data) {
		return 0, ErrTruncated
	}
	val := binary.BigEndian.Uint16(p.data[p.offset : p.offset+2])
	p.offset += 2
	return val, nil
}

func (p *Parser) readUint32() (uint32, error) {
	if p.offset+4 > len(p.data) {
		return 0, ErrTruncated
	}
	val := binary.BigEndian.Uint32(p.data[p.offset : p.offset+4])
	p.offset += 4
	return val, nil
}

func (p *Parser) read(buf []byte) error {
	if p.offset+len(buf) > len(p.data) {
		return ErrTruncated
	}
	copy(buf, p.data[p.offset:p.offset+len(buf)])
	p.offset += len(buf)
	return nil
}

func (p *Parser) skipSegment() error {
	length, err := p.readUint16()
	if err != nil {
		return err
	}
	// length includes the 2 bytes for length itself
	skip := int(length) - 2
	if skip < 0 {
		return io.ErrUnexpectedEOF
	}
	if p.offset+skip > len(p.data) {
		return ErrTruncated
	}
	p.offset += skip
	return nil
}
