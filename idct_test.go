package jpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidQuantTable(v int32) *quantTable {
	q := &quantTable{}
	for i := range q.values {
		q.values[i] = v
	}
	return q
}

// TestDequantizeIDCT_AllZeroACFastPath checks the DC-only fast path
// against its closed-form formula directly, for several DC magnitudes.
func TestDequantizeIDCT_AllZeroACFastPath(t *testing.T) {
	q := solidQuantTable(1)
	for _, dc := range []int16{0, 1, -1, 100, -100, 1023, -1024} {
		c := &component{h: 1, v: 1}
		sizeComponent(c, frameGeometry{mcusPerLine: 1, mcusPerCol: 1})
		*c.naturalAt(0, 0, 0, 0) = dc

		samples := make([]byte, 64)
		dequantizeIDCT(c, q, 0, 0, samples, 8)

		want := clampByte((int64(dc) >> 3) + 128)
		for i, got := range samples {
			assert.Equalf(t, want, got, "sample %d: dc=%d", i, dc)
		}
	}
}

// TestDequantizeIDCT_SolidBlockUniform confirms that a block with only a
// DC coefficient produces a perfectly uniform 8x8 patch, matching the
// all-MCUs-equal scenario used by the end-to-end solid-color test.
func TestDequantizeIDCT_SolidBlockUniform(t *testing.T) {
	q := solidQuantTable(2)
	c := &component{h: 1, v: 1}
	sizeComponent(c, frameGeometry{mcusPerLine: 2, mcusPerCol: 1})
	*c.naturalAt(0, 0, 0, 0) = 40
	*c.naturalAt(0, 1, 0, 0) = 40

	samples := make([]byte, c.widthStride*c.heightStride)
	dequantizeIDCT(c, q, 0, 0, samples, c.widthStride)
	dequantizeIDCT(c, q, 0, 1, samples, c.widthStride)

	first := samples[0]
	for row := 0; row < 8; row++ {
		for col := 0; col < 16; col++ {
			assert.Equal(t, first, samples[row*c.widthStride+col])
		}
	}
}

// TestDequantizeIDCT_OutputAlwaysInRange checks that the full butterfly
// path (non-zero AC coefficients) always clamps into a valid byte,
// across a spread of coefficient magnitudes that would overflow an
// unclamped fixed-point computation.
func TestDequantizeIDCT_OutputAlwaysInRange(t *testing.T) {
	q := solidQuantTable(16)
	c := &component{h: 1, v: 1}
	sizeComponent(c, frameGeometry{mcusPerLine: 1, mcusPerCol: 1})
	for k := 0; k < 64; k++ {
		v := int16(((k%7)-3) * 400)
		*c.coeffAt(0, 0, k) = v
	}
	samples := make([]byte, 64)
	dequantizeIDCT(c, q, 0, 0, samples, 8)
	for _, s := range samples {
		assert.GreaterOrEqual(t, int(s), 0)
		assert.LessOrEqual(t, int(s), 255)
	}
}

// TestDequantizeIDCT_FullButterflyMatchesReference exercises the non-
// zero-AC path (the full row/column butterfly, not the DC-only fast
// path) and checks every output sample against a precomputed reference
// obtained from a direct floating-point IDCT-III evaluation of the same
// coefficients, rather than merely checking the output stays in
// [0,255]. This is the path the DC-only fast path never reaches, and
// the one in which a wrong even-part scale constant (e.g. an extra
// factor of sqrt(2) on the DC/coefficient-4 combination) would show up
// as every sample several levels too bright — in-range-only assertions
// cannot catch that class of bug.
func TestDequantizeIDCT_FullButterflyMatchesReference(t *testing.T) {
	q := solidQuantTable(1)
	c := &component{h: 1, v: 1}
	sizeComponent(c, frameGeometry{mcusPerLine: 1, mcusPerCol: 1})
	*c.naturalAt(0, 0, 0, 0) = 32
	*c.naturalAt(0, 0, 0, 1) = 96
	*c.naturalAt(0, 0, 1, 0) = -64
	*c.naturalAt(0, 0, 2, 2) = 48

	// Reference samples from a direct float64 IDCT-III evaluation of
	// the same four coefficients, rounded to the nearest byte; every
	// row/column butterfly output must land within +/-1 of these.
	want := [8][8]int{
		{148, 139, 126, 114, 107, 107, 111, 115},
		{143, 138, 130, 122, 115, 111, 110, 110},
		{138, 138, 137, 133, 127, 118, 110, 105},
		{136, 140, 143, 143, 137, 125, 111, 103},
		{141, 144, 148, 148, 141, 129, 116, 107},
		{151, 151, 149, 146, 139, 131, 122, 117},
		{162, 157, 149, 140, 134, 130, 129, 129},
		{170, 161, 148, 136, 130, 129, 133, 137},
	}

	samples := make([]byte, 64)
	dequantizeIDCT(c, q, 0, 0, samples, 8)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			got := int(samples[row*8+col])
			assert.InDeltaf(t, want[row][col], got, 1,
				"row=%d col=%d: got %d want %d+/-1", row, col, got, want[row][col])
		}
	}
}

func TestClampByte(t *testing.T) {
	assert.Equal(t, byte(0), clampByte(-5))
	assert.Equal(t, byte(255), clampByte(300))
	assert.Equal(t, byte(128), clampByte(128))
}
