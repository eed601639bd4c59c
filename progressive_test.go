package jpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// progressiveSolidGray8x8 builds a minimal progressive image: one 8x8
// block, a DC first scan carrying a single zero-category DC symbol,
// followed by an AC first scan whose first symbol establishes an
// immediate (zero-length) EOB run, leaving every AC coefficient at
// zero. The result should match the equivalent baseline solid-gray
// fixture exactly.
func progressiveSolidGray8x8() []byte {
	buf := []byte{0xFF, 0xD8}

	dqt := []byte{0xFF, 0xDB, 0x00, 0x43, 0x00}
	for i := 0; i < 64; i++ {
		dqt = append(dqt, 0x01)
	}
	buf = append(buf, dqt...)

	// SOF2 (progressive): 8x8, 1 component.
	buf = append(buf, 0xFF, 0xC2, 0x00, 0x0B, 0x08,
		0x00, 0x08, 0x00, 0x08, 0x01,
		0x01, 0x11, 0x00)

	dcCounts := make([]byte, 16)
	dcCounts[0] = 1
	buf = append(buf, 0xFF, 0xC4, 0x00, 0x14, 0x00)
	buf = append(buf, dcCounts...)
	buf = append(buf, 0x00)

	acCounts := make([]byte, 16)
	acCounts[0] = 1
	buf = append(buf, 0xFF, 0xC4, 0x00, 0x14, 0x10)
	buf = append(buf, acCounts...)
	buf = append(buf, 0x00)

	// SOS 1: DC first scan, Ss=Se=0, Ah=Al=0.
	buf = append(buf, 0xFF, 0xDA, 0x00, 0x08, 0x01,
		0x01, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, 0x7F) // DC category-0 bit "0", padded with 1s

	// SOS 2: AC first scan, Ss=1, Se=63, Ah=Al=0.
	buf = append(buf, 0xFF, 0xDA, 0x00, 0x08, 0x01,
		0x01, 0x00, 0x01, 0x3F, 0x00)
	buf = append(buf, 0x7F) // EOB-run-establishing symbol "0", padded

	buf = append(buf, 0xFF, 0xD9)
	return buf
}

func TestDecode_ProgressiveSolidGray8x8(t *testing.T) {
	d := NewDecoder(WithColorSpace(Grayscale))
	out, err := d.Decode(progressiveSolidGray8x8())
	require.NoError(t, err)
	require.Len(t, out, 64)
	for i, v := range out {
		assert.Equalf(t, byte(128), v, "pixel %d", i)
	}
}

func TestReadHeaders_ProgressiveSolidGray8x8(t *testing.T) {
	d := NewDecoder()
	info, err := d.ReadHeaders(progressiveSolidGray8x8())
	require.NoError(t, err)
	assert.Equal(t, SOFProgressive, info.SOF)
}
