package jpeg

// upsampleComponent expands one component's sample plane to full
// (luma) resolution, per spec.md §4.7. sx/sy are the component's
// horizontal/vertical subsampling factors relative to the frame's
// (H_max, V_max); (1,1) is a no-op, and only (2,1), (1,2), (2,2) need
// actual filtering — any other ratio was already rejected at SOF time.
func upsampleComponent(src []byte, srcStride, srcRows, sx, sy int, dstStride, dstRows int) []byte {
	if sx == 1 && sy == 1 {
		return src
	}

	// Horizontal-only: widen each row into a newly allocated plane.
	if sx == 2 && sy == 1 {
		out := make([]byte, dstStride*dstRows)
		for row := 0; row < srcRows; row++ {
			s := src[row*srcStride : row*srcStride+srcStride]
			copy(out[row*dstStride:row*dstStride+dstStride], fancyUpsampleRow(s))
		}
		return out
	}

	// Vertical-only: widen each column by duplicating the row filter
	// down columns instead of across rows.
	if sx == 1 && sy == 2 {
		out := make([]byte, dstStride*dstRows)
		for col := 0; col < srcStride; col++ {
			colSrc := make([]byte, srcRows)
			for row := 0; row < srcRows; row++ {
				colSrc[row] = src[row*srcStride+col]
			}
			colOut := fancyUpsampleRow(colSrc)
			for row := 0; row < dstRows; row++ {
				out[row*dstStride+col] = colOut[row]
			}
		}
		return out
	}

	// Both directions: vertical fancy filter first to double the row
	// count, then horizontal fancy filter on each resulting row, per
	// spec.md §4.7's (2,2) description.
	vertRows := 2 * srcRows
	vert := make([]byte, srcStride*vertRows)
	for row := 0; row < srcRows; row++ {
		above := row - 1
		if above < 0 {
			above = 0
		}
		below := row + 1
		if below >= srcRows {
			below = srcRows - 1
		}
		upOff := (2 * row) * srcStride
		downOff := (2*row + 1) * srcStride
		for col := 0; col < srcStride; col++ {
			near := int(src[row*srcStride+col])
			far := int(src[above*srcStride+col])
			vert[upOff+col] = clampByte(int64(3*near+far+2) >> 2)
			far = int(src[below*srcStride+col])
			vert[downOff+col] = clampByte(int64(3*near+far+2) >> 2)
		}
	}

	out := make([]byte, dstStride*dstRows)
	for row := 0; row < vertRows && row < dstRows; row++ {
		s := vert[row*srcStride : row*srcStride+srcStride]
		copy(out[row*dstStride:row*dstStride+dstStride], fancyUpsampleRow(s))
	}
	return out
}

// fancyUpsampleRow doubles the length of a row of n samples using the
// 3-tap fancy filter of spec.md §4.7: interior outputs blend 3:1 with
// their nearer and farther source samples, and the two edge outputs
// replicate the first/last source sample untouched.
func fancyUpsampleRow(src []byte) []byte {
	n := len(src)
	out := make([]byte, 2*n)
	if n == 1 {
		out[0] = src[0]
		out[1] = src[0]
		return out
	}
	out[0] = src[0]
	out[1] = clampByte(int64(3*int(src[0])+int(src[1])+2) >> 2)
	for i := 1; i < n-1; i++ {
		out[2*i] = clampByte(int64(3*int(src[i])+int(src[i-1])+2) >> 2)
		out[2*i+1] = clampByte(int64(3*int(src[i])+int(src[i+1])+2) >> 2)
	}
	out[2*(n-1)] = clampByte(int64(3*int(src[n-1])+int(src[n-2])+2) >> 2)
	out[2*(n-1)+1] = src[n-1]
	return out
}
