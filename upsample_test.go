package jpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsampleComponent_NoSubsamplingIsIdentity(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	out := upsampleComponent(src, 8, 1, 1, 1, 8, 1)
	assert.Same(t, &src[0], &out[0], "(1,1) must return the same backing array, not a copy")
	assert.Equal(t, src, out)
}

func TestUpsampleComponent_HorizontalPreservesRowCount(t *testing.T) {
	src := []byte{10, 20, 30, 40}
	out := upsampleComponent(src, 4, 1, 2, 1, 8, 1)
	assert.Len(t, out, 8)
	// Edge replication: first/last output columns equal the source edges.
	assert.Equal(t, byte(10), out[0])
	assert.Equal(t, byte(40), out[7])
}

func TestUpsampleComponent_VerticalDoublesRows(t *testing.T) {
	src := []byte{10, 20, 30, 40} // 1 column, 4 rows
	out := upsampleComponent(src, 1, 4, 1, 2, 1, 8)
	assert.Len(t, out, 8)
	assert.Equal(t, byte(10), out[0])
	assert.Equal(t, byte(40), out[7])
}

func TestUpsampleComponent_BothDirections(t *testing.T) {
	src := []byte{
		100, 100,
		100, 100,
	}
	out := upsampleComponent(src, 2, 2, 2, 2, 4, 4)
	assert.Len(t, out, 16)
	for _, v := range out {
		assert.Equal(t, byte(100), v, "a flat source must upsample to a flat plane")
	}
}

func TestFancyUpsampleRow_DoublesLength(t *testing.T) {
	src := []byte{50, 100, 150}
	out := fancyUpsampleRow(src)
	assert.Len(t, out, 6)
	assert.Equal(t, byte(50), out[0], "left edge replicates")
	assert.Equal(t, byte(150), out[5], "right edge replicates")
}

func TestFancyUpsampleRow_SingleSample(t *testing.T) {
	out := fancyUpsampleRow([]byte{77})
	assert.Equal(t, []byte{77, 77}, out)
}

func TestFancyUpsampleRow_ConstantRowStaysConstant(t *testing.T) {
	src := []byte{200, 200, 200, 200}
	out := fancyUpsampleRow(src)
	for _, v := range out {
		assert.Equal(t, byte(200), v)
	}
}
