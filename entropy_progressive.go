package jpeg

// decodeProgressiveDC decodes a DC scan (Ss = Se = 0), per spec.md
// §4.5: the first DC scan carries a full DC magnitude category and
// value, shifted left by Al; later DC refinement scans carry one
// correction bit per block.
func (d *Decoder) decodeProgressiveDC(br *bitReader, sh *scanHeader) error {
	const op = "decodeProgressiveDC"
	if sh.ah == 0 {
		return iterateUnits(sh, d.geo, d.restartInterval, op, br, nil, d.Logger,
			func(sc *scanComponentParam, blockRow, blockCol int) error {
				dcTable := d.dcTables[sc.dcSel]
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
				*sc.comp.coeffAt(blockRow, blockCol, 0) = sc.comp.dcPred << sh.al
				return nil
			})
	}
	return iterateUnits(sh, d.geo, d.restartInterval, op, br, nil, d.Logger,
		func(sc *scanComponentParam, blockRow, blockCol int) error {
			bit, err := br.receiveBits(op, 1)
			if err != nil {
				return err
			}
			if bit != 0 {
				ptr := sc.comp.coeffAt(blockRow, blockCol, 0)
				*ptr |= int16(1) << sh.al
			}
			return nil
		})
}

// decodeProgressiveAC decodes an AC scan (Ss > 0, single component),
// per spec.md §4.5. The EOB run is scan-local state threaded through
// every block and reset on restart.
func (d *Decoder) decodeProgressiveAC(br *bitReader, sh *scanHeader) error {
	const op = "decodeProgressiveAC"
	sc := sh.comps[0]
	acTable := d.acTables[sc.acSel]
	eobRun := 0

	if sh.ah == 0 {
		return iterateUnits(sh, d.geo, d.restartInterval, op, br, &eobRun, d.Logger,
			func(scp *scanComponentParam, blockRow, blockCol int) error {
				return progressiveACFirstBlock(op, br, acTable, scp, blockRow, blockCol, sh.ss, sh.se, sh.al, &eobRun)
			})
	}
	return iterateUnits(sh, d.geo, d.restartInterval, op, br, &eobRun, d.Logger,
		func(scp *scanComponentParam, blockRow, blockCol int) error {
			return progressiveACRefineBlock(op, br, acTable, scp, blockRow, blockCol, sh.ss, sh.se, sh.al, &eobRun)
		})
}

// progressiveACFirstBlock decodes one block of a first (Ah = 0) AC
// scan, per spec.md §4.5: (run, size) symbols place new coefficients
// shifted left by Al, until an EOB run is established or the band ends.
func progressiveACFirstBlock(op string, br *bitReader, acTable *huffmanTable, sc *scanComponentParam, blockRow, blockCol int, ss, se, al uint8, eobRun *int) error {
	if *eobRun > 0 {
		*eobRun--
		return nil
	}
	k := int(ss)
	for k <= int(se) {
		run, size, val, fast, err := decodeACSymbol(op, br, acTable)
		if err != nil {
			return err
		}
		if fast {
			k += run
			if k > int(se) {
				return newErr(HuffmanDecode, op, "AC coefficient index out of range")
			}
			*sc.comp.coeffAt(blockRow, blockCol, k) = val << al
			k++
			continue
		}
		if size == 0 {
			if run < 15 {
				extra, err := br.receiveBits(op, uint(run))
				if err != nil {
					return err
				}
				*eobRun = (1 << uint(run)) + extra - 1
				break
			}
			k += 16 // ZRL
			continue
		}
		k += run
		if k > int(se) {
			return newErr(HuffmanDecode, op, "AC coefficient index out of range")
		}
		ext, err := br.receiveExtend(op, size)
		if err != nil {
			return err
		}
		*sc.comp.coeffAt(blockRow, blockCol, k) = ext << al
		k++
	}
	return nil
}

// progressiveACRefineBlock decodes one block of an AC refinement scan
// (Ah > 0), per spec.md §4.5. Every already-nonzero coefficient in the
// band gets a correction bit; zero coefficients are counted down by the
// decoded run until a new coefficient is placed, or the scan is simply
// running out an established EOB run.
func progressiveACRefineBlock(op string, br *bitReader, acTable *huffmanTable, sc *scanComponentParam, blockRow, blockCol int, ss, se, al uint8, eobRun *int) error {
	p1 := int16(1) << al
	m1 := -p1
	k := int(ss)

	if *eobRun == 0 {
		for k <= int(se) {
			rs, err := acTable.decodeHuffman(op, br)
			if err != nil {
				return err
			}
			r := int(rs >> 4)
			s := rs & 0x0F
			var newnz int16
			if s != 0 {
				bit, err := br.receiveBits(op, 1)
				if err != nil {
					return err
				}
				if bit != 0 {
					newnz = p1
				} else {
					newnz = m1
				}
			} else if r != 15 {
				extra, err := br.receiveBits(op, uint(r))
				if err != nil {
					return err
				}
				*eobRun = (1 << uint(r)) + extra
				break
			}
			// r == 15 (ZRL, s == 0) falls through with newnz == 0.

			for k <= int(se) {
				ptr := sc.comp.coeffAt(blockRow, blockCol, k)
				if *ptr != 0 {
					bit, err := br.receiveBits(op, 1)
					if err != nil {
						return err
					}
					if bit != 0 {
						if *ptr >= 0 {
							*ptr += p1
						} else {
							*ptr += m1
						}
					}
					k++
				} else {
					if r == 0 {
						break
					}
					r--
					k++
				}
			}
			if newnz != 0 && k <= int(se) {
				*sc.comp.coeffAt(blockRow, blockCol, k) = newnz
			}
			k++
		}
	}

	if *eobRun > 0 {
		for ; k <= int(se); k++ {
			ptr := sc.comp.coeffAt(blockRow, blockCol, k)
			if *ptr != 0 {
				bit, err := br.receiveBits(op, 1)
				if err != nil {
					return err
				}
				if bit != 0 {
					if *ptr >= 0 {
						*ptr += p1
					} else {
						*ptr += m1
					}
				}
			}
		}
		*eobRun--
	}
	return nil
}
