package jpeg

// ycbcrToRGB converts one YCbCr sample triple to RGB using the
// fixed-point integer coefficients of spec.md §4.8.
func ycbcrToRGB(y, cb, cr byte) (r, g, b byte) {
	yy := int64(y)
	cbv := int64(cb) - 128
	crv := int64(cr) - 128
	r = clampByte(yy + ((45 * crv) >> 5))
	g = clampByte(yy - ((11*cbv + 23*crv) >> 5))
	b = clampByte(yy + ((113 * cbv) >> 6))
	return
}

// writePixel packs one already-computed (or grayscale) sample into out
// at the given offset, in the layout the output color space demands.
func writePixel(out []byte, offset int, cs ColorSpace, r, g, b byte) {
	switch cs {
	case RGB:
		out[offset], out[offset+1], out[offset+2] = r, g, b
	case RGBA:
		out[offset], out[offset+1], out[offset+2], out[offset+3] = r, g, b, 255
	case RGBX:
		out[offset], out[offset+1], out[offset+2] = r, g, b
	case YCbCr:
		out[offset], out[offset+1], out[offset+2] = r, g, b
	case Grayscale:
		out[offset] = r
	}
}

// colorConvert walks the full-resolution per-component sample planes
// and writes the packed output buffer, per spec.md §4.8. planes are
// already upsampled to identical (width, height, stride); for
// single-component frames color conversion is skipped entirely and the
// Y plane is copied with padding stripped, per spec.md §4.8's explicit
// grayscale-input rule.
func (d *Decoder) colorConvert(planes [][]byte, stride int) []byte {
	w, h := d.info.Width, d.info.Height
	cs := d.opts.OutputColorSpace
	bpp := cs.BytesPerPixel()
	out := make([]byte, w*h*bpp)

	switch len(planes) {
	case 1:
		for y := 0; y < h; y++ {
			rowOff := y * stride
			outOff := y * w * bpp
			for x := 0; x < w; x++ {
				yv := planes[0][rowOff+x]
				writePixel(out, outOff+x*bpp, cs, yv, yv, yv)
			}
		}
	case 3:
		transform := d.info.AdobeTransform
		rawRGB := transform == 0
		for y := 0; y < h; y++ {
			rowOff := y * stride
			outOff := y * w * bpp
			for x := 0; x < w; x++ {
				c0 := planes[0][rowOff+x]
				c1 := planes[1][rowOff+x]
				c2 := planes[2][rowOff+x]
				if rawRGB {
					writePixel(out, outOff+x*bpp, cs, c0, c1, c2)
					continue
				}
				if cs == YCbCr {
					writePixel(out, outOff+x*bpp, cs, c0, c1, c2)
					continue
				}
				r, g, b := ycbcrToRGB(c0, c1, c2)
				writePixel(out, outOff+x*bpp, cs, r, g, b)
			}
		}
	case 4:
		d.colorConvertFourComponent(planes, stride, out, w, h, cs, bpp)
	}
	return out
}

// colorConvertFourComponent handles the SPEC_FULL.md 4-component
// supplement: Adobe APP14 transform byte 2 means YCCK (YCbCr plus a raw
// K channel), anything else is treated as CMYK. Adobe CMYK/YCCK JPEGs
// store ink amounts inverted (stored = 255 - ink); the conversion to
// RGB undoes that before combining channels.
func (d *Decoder) colorConvertFourComponent(planes [][]byte, stride int, out []byte, w, h int, cs ColorSpace, bpp int) {
	ycck := d.info.AdobeTransform == 2
	for y := 0; y < h; y++ {
		rowOff := y * stride
		outOff := y * w * bpp
		for x := 0; x < w; x++ {
			var c, m, ye, k byte
			if ycck {
				r, g, b := ycbcrToRGB(planes[0][rowOff+x], planes[1][rowOff+x], planes[2][rowOff+x])
				c, m, ye = 255-r, 255-g, 255-b
			} else {
				c = 255 - planes[0][rowOff+x]
				m = 255 - planes[1][rowOff+x]
				ye = 255 - planes[2][rowOff+x]
			}
			k = 255 - planes[3][rowOff+x]
			r := clampByte(255 - (int64(c) + int64(k)))
			g := clampByte(255 - (int64(m) + int64(k)))
			b := clampByte(255 - (int64(ye) + int64(k)))
			writePixel(out, outOff+x*bpp, cs, r, g, b)
		}
	}
}
