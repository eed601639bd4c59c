package jpeg

// quantTable holds the 64 dequantization multipliers for one destination
// slot, in natural (row-major, already un-zig-zagged) order, per
// spec.md §3. Grounded on the teacher's qdef (jpeg.go), generalised from
// uint16 (8-bit precision only, per spec §1's explicit precision
// restriction) to the signed 32-bit values spec.md's data model calls
// for.
type quantTable struct {
	values [64]int32
}

// component is one image channel, grounded on the teacher's Component
// (jpeg.go) plus scanComp (segment.go) — the teacher splits "declared at
// SOF" fields (Id/HSF/VSF/QS) from "assigned at SOS" fields (dcId/acId)
// across two structs; this module keeps them together since the spec's
// data model describes a single component lifecycle across both stages.
type component struct {
	id uint8 // 1=Y, 2=Cb, 3=Cr, others accepted for 4-component (K) frames
	h  uint8 // horizontal sampling factor, 1..4
	v  uint8 // vertical sampling factor, 1..4
	qs uint8 // quantization table selector, 0..3

	dcSel uint8 // DC huffman table selector, assigned at SOS
	acSel uint8 // AC huffman table selector, assigned at SOS

	dcPred int16 // DC predictor, reset to 0 at scan start and at every restart

	widthStride  int // per spec.md §3 width_stride
	heightStride int

	// coefficients holds the dequantize-ready 16-bit coefficient plane
	// for this component: widthStride*heightStride samples, laid out as a
	// 2D raster of widthStride samples per row, each 8x8 block's
	// natural-order coefficients sitting at that block's position (see
	// coeffAt/naturalAt). Used
	// directly by the baseline decoder and persisted across scans for
	// the progressive decoder (spec.md §4.5, §9).
	coefficients []int16

	blocksPerLine int // widthStride/8
	blocksPerCol  int // heightStride/8
}

// frameGeometry captures the MCU/plane sizing rules of spec.md §3.
type frameGeometry struct {
	width, height int
	hMax, vMax    int
	mcuWidth      int // 8 * hMax
	mcuHeight     int // 8 * vMax
	mcusPerLine   int
	mcusPerCol    int
}

func computeFrameGeometry(width, height int, comps []component) frameGeometry {
	hMax, vMax := 1, 1
	for _, c := range comps {
		if int(c.h) > hMax {
			hMax = int(c.h)
		}
		if int(c.v) > vMax {
			vMax = int(c.v)
		}
	}
	mcuWidth := 8 * hMax
	mcuHeight := 8 * vMax
	mcusPerLine := (width + mcuWidth - 1) / mcuWidth
	mcusPerCol := (height + mcuHeight - 1) / mcuHeight
	return frameGeometry{
		width: width, height: height,
		hMax: hMax, vMax: vMax,
		mcuWidth: mcuWidth, mcuHeight: mcuHeight,
		mcusPerLine: mcusPerLine, mcusPerCol: mcusPerCol,
	}
}

// sizeComponent sets the per-component stride and allocates its
// coefficient plane, per spec.md §3: width_stride = mcusPerLine*8*h, and
// the plane is mcusPerCol*8*v rows of that stride, zero-padded on the
// right/bottom.
func sizeComponent(c *component, geo frameGeometry) {
	c.widthStride = geo.mcusPerLine * 8 * int(c.h)
	c.heightStride = geo.mcusPerCol * 8 * int(c.v)
	c.blocksPerLine = c.widthStride / 8
	c.blocksPerCol = c.heightStride / 8
	c.coefficients = make([]int16, c.widthStride*c.heightStride)
}

// coeffAt returns a pointer to the coefficient at zig-zag position k
// (0..63) of the block at (blockRow, blockCol) in this component's
// plane. The plane is a true 2D raster (widthStride samples per row),
// not a block-contiguous array, so a block's 64 coefficients are not
// adjacent in memory — each of its 8 rows is offset by widthStride.
func (c *component) coeffAt(blockRow, blockCol, k int) *int16 {
	natural := unZigZag[k]
	r := natural >> 3
	cc := natural & 7
	idx := (blockRow*8+r)*c.widthStride + blockCol*8 + cc
	return &c.coefficients[idx]
}

// naturalAt returns a pointer to the coefficient at natural (row, col)
// position (0..7 each) of the block at (blockRow, blockCol). Used by
// dequantize+IDCT, which walks blocks in natural order rather than the
// zig-zag order the entropy decoder fills them in.
func (c *component) naturalAt(blockRow, blockCol, row, col int) *int16 {
	idx := (blockRow*8+row)*c.widthStride + blockCol*8 + col
	return &c.coefficients[idx]
}

// componentBlockDims returns the number of 8x8 blocks this component
// occupies when it is the sole component of a non-interleaved scan,
// computed from its own sample dimensions rather than the shared MCU
// grid (spec.md §4 segment.go-style commentary on interleaved vs
// non-interleaved row/column counts in the teacher).
func componentBlockDims(c *component, geo frameGeometry) (blocksX, blocksY int) {
	sx := (geo.width*int(c.h) + geo.hMax - 1) / geo.hMax
	sy := (geo.height*int(c.v) + geo.vMax - 1) / geo.vMax
	blocksX = (sx + 7) / 8
	blocksY = (sy + 7) / 8
	return
}

// ImageInfo is the public, post-header-parse description of the image,
// per spec.md §6.
type ImageInfo struct {
	Width           int
	Height          int
	Precision       int
	SOF             SOFKind
	NumComponents   int
	ComponentIDs    []uint8 // spec.md §4 supplement: raw per-component ids
	DensityUnits    uint8   // JFIF APP0 density unit: 0 none, 1 dpi, 2 dpcm
	DensityX        uint16
	DensityY        uint16
	AdobeTransform  int8 // -1 if no Adobe APP14 marker was present
}
