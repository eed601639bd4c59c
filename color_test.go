package jpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYCbCrToRGB_GrayIsIdentity(t *testing.T) {
	for y := 0; y <= 255; y += 5 {
		r, g, b := ycbcrToRGB(byte(y), 128, 128)
		assert.Equal(t, byte(y), r)
		assert.Equal(t, byte(y), g)
		assert.Equal(t, byte(y), b)
	}
}

func TestWritePixel_Layouts(t *testing.T) {
	out := make([]byte, 4)
	writePixel(out, 0, RGB, 10, 20, 30)
	assert.Equal(t, []byte{10, 20, 30, 0}, out)

	out = make([]byte, 4)
	writePixel(out, 0, RGBA, 10, 20, 30)
	assert.Equal(t, []byte{10, 20, 30, 255}, out)

	out = make([]byte, 1)
	writePixel(out, 0, Grayscale, 77, 0, 0)
	assert.Equal(t, []byte{77}, out)
}

func newTestDecoder(cs ColorSpace) *Decoder {
	d := NewDecoder(WithColorSpace(cs))
	return d
}

// TestColorConvert_GrayscaleEquivalence checks that for a single-plane
// (grayscale) input, output byte i*width+j equals the plane's sample at
// (j, i), per the byte-for-byte grayscale-equivalence property.
func TestColorConvert_GrayscaleEquivalence(t *testing.T) {
	d := newTestDecoder(Grayscale)
	d.info.Width, d.info.Height = 3, 2
	stride := 4 // padded wider than width
	plane := []byte{1, 2, 3, 9, 4, 5, 6, 9}
	out := d.colorConvert([][]byte{plane}, stride)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, plane[row*stride+col], out[row*3+col])
		}
	}
}

func TestColorConvert_OutputSize(t *testing.T) {
	d := newTestDecoder(RGBA)
	d.info.Width, d.info.Height = 5, 4
	stride := 8
	planes := make([][]byte, 3)
	for i := range planes {
		planes[i] = make([]byte, stride*4)
	}
	out := d.colorConvert(planes, stride)
	assert.Len(t, out, 5*4*4)
}

func TestColorConvert_ThreeComponentRawRGBPassthrough(t *testing.T) {
	d := newTestDecoder(RGB)
	d.info.Width, d.info.Height = 1, 1
	d.info.AdobeTransform = 0
	planes := [][]byte{{11}, {22}, {33}}
	out := d.colorConvert(planes, 1)
	assert.Equal(t, []byte{11, 22, 33}, out)
}

func TestColorConvertFourComponent_CMYKRoundTrip(t *testing.T) {
	d := newTestDecoder(RGB)
	d.info.Width, d.info.Height = 1, 1
	d.info.AdobeTransform = -1 // no Adobe marker: plain CMYK
	// Stored values of 255 mean zero ink on every channel -> white.
	planes := [][]byte{{255}, {255}, {255}, {255}}
	out := d.colorConvert(planes, 1)
	assert.Equal(t, []byte{255, 255, 255}, out)

	// Stored zero on C/M/Y means full ink there, zero K -> black.
	planes = [][]byte{{0}, {0}, {0}, {255}}
	out = d.colorConvert(planes, 1)
	assert.Equal(t, []byte{0, 0, 0}, out)
}
