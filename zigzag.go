package jpeg

// unZigZag maps the k-th coefficient as serialised in an entropy-coded
// block to its natural (row-major) index in an 8x8 block, per spec.md's
// GLOSSARY. Grounded in shape on the teacher's decode.go zigZagRowCol
// table (there expressed as an 8x8 [r][c] matrix for the dequantize
// step); flattened here to the single 64-entry permutation the spec
// names directly, since every consumer (entropy decode, dequantize)
// indexes it by the serialised coefficient position k.
var unZigZag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}
