package jpeg

// clampByte clamps v to [0,255], per the clamping rule repeated through
// spec.md §4.6/§4.7/§4.8.
func clampByte(v int64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// idct1D runs one butterfly pass of the scaled-integer 8-point IDCT of
// spec.md §4.6 over eight coefficients. x0..x3 are the even-part
// combinations and t0..t3 the odd-part combinations; the caller adds
// them (x_i ± t_(3-i)) and applies its own rounding shift, since the
// row and column passes use different output scales.
//
// The multipliers are spec.md's literal fixed-point constants
// (2217, 7567, 3135, 4816, 3685, 10497, 8034, 1597, 1223, 8410, 12586,
// 6149), all CONST_BITS=12 truncations (`(int)(x*4096+0.5)`) of the same
// reference algorithm's float coefficients; neither the teacher nor the
// retrieved original Rust source implements this exact bit-exact
// construction (see DESIGN.md), so this is grounded directly on spec.md's
// numeric contract, following the classic even/odd 8-point butterfly
// shape the teacher's decode.go row/column IDCT passes already use (there
// via float64 Nayuki coefficients instead of this fixed-point set). The
// even part's DC/coefficient-4 combination uses the same plain <<12 scale
// as every other constant here, not a separate factor.
func idct1D(s0, s1, s2, s3, s4, s5, s6, s7 int64) (x0, x1, x2, x3, t0, t1, t2, t3 int64) {
	// Even part: s0, s2, s4, s6.
	p2 := s2
	p3 := s6
	p1 := (p2 + p3) * 2217
	et2 := p1 + p3*(-7567)
	et3 := p1 + p2*3135
	e2 := s0
	e3 := s4
	et0 := (e2 + e3) << 12
	et1 := (e2 - e3) << 12
	x0 = et0 + et3
	x3 = et0 - et3
	x1 = et1 + et2
	x2 = et1 - et2

	// Odd part: s1, s3, s5, s7.
	o0 := s7
	o1 := s5
	o2 := s3
	o3 := s1
	op3 := o0 + o2
	op4 := o1 + o3
	op1 := o0 + o3
	op2 := o1 + o2
	op5 := (op3 + op4) * 4816
	oo0 := o0 * 1223
	oo1 := o1 * 8410
	oo2 := o2 * 12586
	oo3 := o3 * 6149
	op1 = op5 + op1*(-3685)
	op2 = op5 + op2*(-10497)
	op3 = op3 * (-8034)
	op4 = op4 * (-1597)
	t3 = oo3 + op1 + op4
	t2 = oo2 + op2 + op3
	t1 = oo1 + op2 + op4
	t0 = oo0 + op1 + op3
	return
}

// dequantizeIDCT dequantizes one 8x8 block and performs the row-then-
// column IDCT of spec.md §4.6, writing clamped samples into the
// component's sample plane at its natural block position.
func dequantizeIDCT(c *component, q *quantTable, blockRow, blockCol int, samples []byte, stride int) {
	var coeff [64]int64
	allACZero := true
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			i := row*8 + col
			v := int64(*c.naturalAt(blockRow, blockCol, row, col)) * int64(q.values[i])
			coeff[i] = v
			if i != 0 && v != 0 {
				allACZero = false
			}
		}
	}

	base := blockRow*8*stride + blockCol*8
	if allACZero {
		dc := clampByte((coeff[0] >> 3) + 128)
		for row := 0; row < 8; row++ {
			off := base + row*stride
			for col := 0; col < 8; col++ {
				samples[off+col] = dc
			}
		}
		return
	}

	const rowBias = int64(1) << 9
	var rowOut [8][8]int64
	for row := 0; row < 8; row++ {
		o := row * 8
		x0, x1, x2, x3, t0, t1, t2, t3 := idct1D(
			coeff[o+0], coeff[o+1], coeff[o+2], coeff[o+3],
			coeff[o+4], coeff[o+5], coeff[o+6], coeff[o+7],
		)
		rowOut[row][0] = (x0 + t3 + rowBias) >> 10
		rowOut[row][7] = (x0 - t3 + rowBias) >> 10
		rowOut[row][1] = (x1 + t2 + rowBias) >> 10
		rowOut[row][6] = (x1 - t2 + rowBias) >> 10
		rowOut[row][2] = (x2 + t1 + rowBias) >> 10
		rowOut[row][5] = (x2 - t1 + rowBias) >> 10
		rowOut[row][3] = (x3 + t0 + rowBias) >> 10
		rowOut[row][4] = (x3 - t0 + rowBias) >> 10
	}

	const colBias = int64(128)<<17 + int64(1)<<16
	for col := 0; col < 8; col++ {
		x0, x1, x2, x3, t0, t1, t2, t3 := idct1D(
			rowOut[0][col], rowOut[1][col], rowOut[2][col], rowOut[3][col],
			rowOut[4][col], rowOut[5][col], rowOut[6][col], rowOut[7][col],
		)
		vals := [8]int64{
			x0 + t3 + colBias,
			x1 + t2 + colBias,
			x2 + t1 + colBias,
			x3 + t0 + colBias,
			x3 - t0 + colBias,
			x2 - t1 + colBias,
			x1 - t2 + colBias,
			x0 - t3 + colBias,
		}
		for row := 0; row < 8; row++ {
			samples[base+row*stride+col] = clampByte(vals[row] >> 17)
		}
	}
}
