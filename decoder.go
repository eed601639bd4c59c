// Package jpeg decodes baseline and progressive DCT JPEG images into
// raw pixel buffers.
package jpeg

import (
	"bytes"
	"fmt"
)

// Logger receives one-line diagnostic messages the decoder considers
// worth surfacing (stray restart markers and skipped unrecognised
// markers, which are not fatal, and the expected-vs-found detail of a
// restart-marker mismatch, logged just before that error is returned;
// APPn/COM segments are skipped without a message). Grounded on the
// teacher's Warn/Control pattern (jpeg.go); nil means discard, matching
// the teacher's default.
type Logger func(format string, args ...interface{})

// scanComponentParam is one component's participation in a single scan,
// assigned by the SOS marker per spec.md §4.1/§4.3: which Huffman tables
// it draws from, paired with the component it refers to.
type scanComponentParam struct {
	comp  *component
	dcSel uint8
	acSel uint8
}

// scanHeader is the parsed body of one SOS marker, per spec.md §3/§4.1.
type scanHeader struct {
	comps []scanComponentParam
	ss    uint8
	se    uint8
	ah    uint8
	al    uint8
}

// Decoder holds all mutable state for one decode, mirroring the
// teacher's Desc (jpeg.go): a single struct threaded through every
// stage of the marker-driven state machine, built once via NewDecoder
// and then driven through ReadHeaders/Decode.
type Decoder struct {
	opts   DecoderOptions
	Logger Logger

	info        ImageInfo
	comps       []component
	geo         frameGeometry
	quant       [4]*quantTable
	dcTables    [4]*huffmanTable
	acTables    [4]*huffmanTable
	restartInterval int
	progressive bool

	pendingDensityUnits uint8
	pendingDensityX     uint16
	pendingDensityY     uint16
	pendingAdobeTransform int8

	sawSOF bool
	sawSOS bool
}

// NewDecoder builds a Decoder with the given options applied over the
// spec.md §6 defaults (RGB output, single-threaded).
func NewDecoder(opts ...Option) *Decoder {
	o := DecoderOptions{OutputColorSpace: RGB}
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder{opts: o}
}

func (d *Decoder) logf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger(format, args...)
	}
}

func (d *Decoder) reset() {
	d.info = ImageInfo{}
	d.comps = nil
	d.geo = frameGeometry{}
	d.quant = [4]*quantTable{}
	d.dcTables = [4]*huffmanTable{}
	d.acTables = [4]*huffmanTable{}
	d.restartInterval = 0
	d.progressive = false
	d.pendingDensityUnits = 0
	d.pendingDensityX = 0
	d.pendingDensityY = 0
	d.pendingAdobeTransform = -1
	d.sawSOF = false
	d.sawSOS = false
}

// ReadHeaders parses every marker segment up to and including the first
// SOS, and returns the resulting ImageInfo without touching any entropy-
// coded data, per spec.md §6.
func (d *Decoder) ReadHeaders(data []byte) (ImageInfo, error) {
	d.reset()
	br := newByteReader(bytes.NewReader(data))
	if err := d.readMagic(br); err != nil {
		return ImageInfo{}, err
	}
	if err := d.run(br, true); err != nil {
		return ImageInfo{}, err
	}
	return d.info, nil
}

// Decode fully decodes the image and returns a packed pixel buffer in
// the configured output color space, per spec.md §4.9/§6.
func (d *Decoder) Decode(data []byte) ([]byte, error) {
	d.reset()
	br := newByteReader(bytes.NewReader(data))
	if err := d.readMagic(br); err != nil {
		return nil, err
	}
	if err := d.run(br, false); err != nil {
		return nil, err
	}
	return d.postProcess()
}

func (d *Decoder) readMagic(br *byteReader) error {
	const op = "readMagic"
	b0, err := br.readByte(op)
	if err != nil {
		return newErr(IllegalMagicBytes, op, "stream too short for SOI marker")
	}
	b1, err := br.readByte(op)
	if err != nil {
		return newErr(IllegalMagicBytes, op, "stream too short for SOI marker")
	}
	if b0 != 0xFF || b1 != markerSOI {
		return newErr(IllegalMagicBytes, op, "missing SOI marker")
	}
	return nil
}

// run drives the marker loop of spec.md §4.9: scan markers one at a
// time, dispatch each to its parser, and hand entropy-coded segments to
// the baseline or progressive decoder. When headersOnly is set it
// returns as soon as the first SOS header has been parsed, before any
// entropy-coded data is touched.
func (d *Decoder) run(br *byteReader, headersOnly bool) error {
	const op = "run"
	var pending uint16 // marker already identified by the last entropy scan, if any

	for {
		m, err := d.readMarker(br, pending)
		if err != nil {
			return err
		}
		pending = 0

		switch {
		case m == markerEOI:
			if !d.sawSOS {
				return newErr(FormatViolation, op, "EOI before any scan")
			}
			return nil

		case m == markerDQT:
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			if err := d.parseDQT(payload); err != nil {
				return err
			}

		case m == markerDHT:
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			if err := d.parseDHT(payload); err != nil {
				return err
			}

		case m == markerDRI:
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			if err := d.parseDRI(payload); err != nil {
				return err
			}

		case m == markerDAC:
			return newErr(UnsupportedMode, op, "arithmetic coding is not supported")

		case isAnySOF(m):
			if !isSupportedSOF(m) {
				return newErr(UnsupportedMode, op, fmt.Sprintf("SOF marker 0x%02X is not baseline or progressive DCT", m))
			}
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			if err := d.parseSOF(m, payload); err != nil {
				return err
			}

		case m == markerSOS:
			if !d.sawSOF {
				return newErr(FormatViolation, op, "SOS before any SOF")
			}
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			sh, err := d.parseSOS(payload)
			if err != nil {
				return err
			}
			d.sawSOS = true
			if headersOnly {
				return nil
			}
			bitR := newBitReader(br)
			if err := d.decodeScan(bitR, sh); err != nil {
				return err
			}
			marker, err := bitR.pendingMarker(op)
			if err != nil {
				return err
			}
			if marker != 0 {
				pending = marker
			}

		case m == markerAPP0:
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			d.parseAPP0(payload)

		case m == markerAPP14:
			payload, err := readSegment(br, op)
			if err != nil {
				return err
			}
			d.parseAPP14(payload)

		case isAPPn(m) || m == markerCOM:
			if _, err := readSegment(br, op); err != nil {
				return err
			}

		case isRST(m):
			d.logf("run: stray restart marker 0x%02X outside entropy segment", m)

		default:
			d.logf("run: skipping unrecognised marker 0x%02X", m)
			if _, err := readSegment(br, op); err != nil {
				return err
			}
		}
	}
}

// readMarker returns the next marker's low byte. If pending is nonzero
// (a marker already identified by the bit reader while decoding the
// previous scan) it is consumed directly instead of re-reading from br.
// Any non-0xFF bytes found where a marker prefix is expected are
// treated as stray padding and skipped, matching the tolerance real
// encoders' garbage/fill bytes between segments require.
func (d *Decoder) readMarker(br *byteReader, pending uint16) (byte, error) {
	const op = "readMarker"
	if pending != 0 {
		return byte(pending & 0xFF), nil
	}
	c, err := br.readByte(op)
	if err != nil {
		return 0, err
	}
	for c != 0xFF {
		c, err = br.readByte(op)
		if err != nil {
			return 0, err
		}
	}
	for {
		c, err = br.readByte(op)
		if err != nil {
			return 0, err
		}
		if c == 0xFF {
			continue // fill bytes before a marker
		}
		if c == 0x00 {
			return 0, newErr(FormatViolation, op, "stray stuffed byte outside entropy-coded segment")
		}
		return c, nil
	}
}

// readSegment reads a marker segment's 2-byte length (which counts
// itself) and returns the remaining payload bytes.
func readSegment(br *byteReader, op string) ([]byte, error) {
	length, err := br.readU16BE(op)
	if err != nil {
		return nil, err
	}
	if length < 2 {
		return nil, newErr(FormatViolation, op, "marker segment length shorter than its own length field")
	}
	payload := make([]byte, int(length)-2)
	for i := range payload {
		b, err := br.readByte(op)
		if err != nil {
			return nil, err
		}
		payload[i] = b
	}
	return payload, nil
}

// postProcess runs dequantize+IDCT, chroma upsampling, and color
// conversion over the fully-decoded coefficient planes, per spec.md
// §4.6-§4.9. The IDCT stage is split into row bands and, when
// NumThreads > 1, run concurrently per spec.md §5; upsampling and color
// conversion run over the whole frame since they are comparatively
// cheap and the (2,2) upsample filter reads adjacent chroma rows.
func (d *Decoder) postProcess() ([]byte, error) {
	const op = "postProcess"
	planes := make([][]byte, len(d.comps))
	for i := range d.comps {
		c := &d.comps[i]
		q := d.quant[c.qs]
		if q == nil {
			return nil, newErr(FormatViolation, op, "component has no quantization table at decode time")
		}
		plane := make([]byte, c.widthStride*c.heightStride)
		runRowBands(c.blocksPerCol, d.opts.NumThreads, func(rowStart, rowEnd int) {
			for blockRow := rowStart; blockRow < rowEnd; blockRow++ {
				for blockCol := 0; blockCol < c.blocksPerLine; blockCol++ {
					dequantizeIDCT(c, q, blockRow, blockCol, plane, c.widthStride)
				}
			}
		})
		planes[i] = plane
	}

	if len(d.comps) == 1 {
		return d.colorConvert(planes, d.comps[0].widthStride), nil
	}

	fullStride := d.geo.mcusPerLine * 8 * d.geo.hMax
	fullRows := d.geo.mcusPerCol * 8 * d.geo.vMax
	fullPlanes := make([][]byte, len(d.comps))
	for i := range d.comps {
		c := &d.comps[i]
		sx := d.geo.hMax / int(c.h)
		sy := d.geo.vMax / int(c.v)
		fullPlanes[i] = upsampleComponent(planes[i], c.widthStride, c.blocksPerCol*8, sx, sy, fullStride, fullRows)
	}
	return d.colorConvert(fullPlanes, fullStride), nil
}
