package jpeg

// decodeBaselineScan decodes a full baseline (SOF0) entropy-coded
// segment, per spec.md §4.4: every block carries its complete DC value
// and all 63 AC coefficients in a single pass.
func (d *Decoder) decodeBaselineScan(br *bitReader, sh *scanHeader) error {
	const op = "decodeBaselineScan"
	return iterateUnits(sh, d.geo, d.restartInterval, op, br, nil, d.Logger,
		func(sc *scanComponentParam, blockRow, blockCol int) error {
			return d.decodeBaselineBlock(op, br, sc, blockRow, blockCol)
		})
}

// decodeBaselineBlock decodes one 8x8 block's DC and AC coefficients,
// per spec.md §4.4: a DC magnitude category plus its extra bits,
// followed by (run, size) AC symbols until an end-of-block code or all
// 63 AC positions are filled.
func (d *Decoder) decodeBaselineBlock(op string, br *bitReader, sc *scanComponentParam, blockRow, blockCol int) error {
	dcTable := d.dcTables[sc.dcSel]
	acTable := d.acTables[sc.acSel]

	s, err := dcTable.decodeHuffman(op, br)
	if err != nil {
		return err
	}
	if s > 11 {
		return newErr(HuffmanDecode, op, "DC magnitude category out of range")
	}
	diff, err := br.receiveExtend(op, uint(s))
	if err != nil {
		return err
	}
	sc.comp.dcPred += diff
	*sc.comp.coeffAt(blockRow, blockCol, 0) = sc.comp.dcPred

	k := 1
	for k < 64 {
		run, size, val, fast, err := decodeACSymbol(op, br, acTable)
		if err != nil {
			return err
		}
		if fast {
			k += run
			if k >= 64 {
				return newErr(HuffmanDecode, op, "AC coefficient index out of range")
			}
			*sc.comp.coeffAt(blockRow, blockCol, k) = val
			k++
			continue
		}
		if size == 0 {
			if run == 15 {
				k += 16 // ZRL: 16 zero coefficients
				continue
			}
			break // EOB
		}
		k += run
		if k >= 64 {
			return newErr(HuffmanDecode, op, "AC coefficient index out of range")
		}
		ext, err := br.receiveExtend(op, size)
		if err != nil {
			return err
		}
		*sc.comp.coeffAt(blockRow, blockCol, k) = ext
		k++
	}
	return nil
}
