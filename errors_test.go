package jpeg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := wrapErr(ExhaustedData, "op", "detail", cause)
	assert.ErrorIs(t, err, cause)
}

func TestError_KindString(t *testing.T) {
	cases := map[Kind]string{
		IllegalMagicBytes: "illegal magic bytes",
		ExhaustedData:     "exhausted data",
		FormatViolation:   "format violation",
		HuffmanDecode:     "huffman decode",
		UnsupportedMode:   "unsupported mode",
		DimensionError:    "dimension error",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestErrKind_NonJPEGError(t *testing.T) {
	assert.Equal(t, Kind(0), errKind(errors.New("plain")))
}

func TestColorSpace_BytesPerPixel(t *testing.T) {
	assert.Equal(t, 3, RGB.BytesPerPixel())
	assert.Equal(t, 3, YCbCr.BytesPerPixel())
	assert.Equal(t, 4, RGBA.BytesPerPixel())
	assert.Equal(t, 4, RGBX.BytesPerPixel())
	assert.Equal(t, 1, Grayscale.BytesPerPixel())
}

func TestWithNumThreads_NonPositiveIsSequential(t *testing.T) {
	d := NewDecoder(WithNumThreads(0))
	assert.Equal(t, 0, d.opts.NumThreads)
	d = NewDecoder(WithNumThreads(-3))
	assert.Equal(t, -3, d.opts.NumThreads)
}
