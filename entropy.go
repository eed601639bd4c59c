package jpeg

import "fmt"

// decodeScan dispatches an entropy-coded segment to the baseline or
// progressive decoder, per spec.md §4.4/§4.5: progressive scans are
// further split by spectral selection into DC and AC scans.
func (d *Decoder) decodeScan(br *bitReader, sh *scanHeader) error {
	if !d.progressive {
		return d.decodeBaselineScan(br, sh)
	}
	if sh.ss == 0 {
		return d.decodeProgressiveDC(br, sh)
	}
	return d.decodeProgressiveAC(br, sh)
}

// decodeACSymbol decodes one AC (run, size) Huffman symbol, resolving
// the common case in a single fast_ac lookup per spec.md §4.3/§4.4.
// When fastResolved is true, value already holds the sign-extended
// coefficient and size is meaningless; fast_ac only ever fires for
// symbols with size > 0 (EOB/ZRL always fall through to the slow path).
func decodeACSymbol(op string, br *bitReader, ac *huffmanTable) (run int, size uint, value int16, fastResolved bool, err error) {
	if err = br.ensure(op, 16); err != nil {
		return
	}
	c := br.peek(fastBits)
	if fac := ac.fastAC[c]; fac != 0 {
		run = int((fac >> 4) & 0xF)
		bits := uint(fac & 0xF)
		br.consume(bits)
		value = fac >> 8
		fastResolved = true
		return
	}
	rs, decErr := ac.decodeHuffman(op, br)
	if decErr != nil {
		err = decErr
		return
	}
	run = int(rs >> 4)
	size = uint(rs & 0x0F)
	return
}

// iterateUnits walks every coding unit of a scan in spec.md §3 MCU
// order: interleaved scans (more than one scan component) walk the
// shared MCU grid, expanding each MCU into its components' h*v blocks;
// non-interleaved single-component scans walk that component's own
// block grid directly. Restart markers are consumed and DC predictors
// (and the progressive EOB run, if any) reset every restartInterval
// units, per spec.md §3/§4.4.
func iterateUnits(
	sh *scanHeader,
	geo frameGeometry,
	restartInterval int,
	op string,
	br *bitReader,
	eobRun *int,
	logf Logger,
	processBlock func(sc *scanComponentParam, blockRow, blockCol int) error,
) error {
	interleaved := len(sh.comps) > 1
	var totalUnits, blocksX int
	if interleaved {
		totalUnits = geo.mcusPerLine * geo.mcusPerCol
	} else {
		bx, by := componentBlockDims(sh.comps[0].comp, geo)
		blocksX = bx
		totalUnits = bx * by
	}

	restartCounter := 0
	expectedRST := 0
	for unit := 0; unit < totalUnits; unit++ {
		if interleaved {
			mcuCol := unit % geo.mcusPerLine
			mcuRow := unit / geo.mcusPerLine
			for i := range sh.comps {
				sc := sh.comps[i]
				for dy := 0; dy < int(sc.comp.v); dy++ {
					for dx := 0; dx < int(sc.comp.h); dx++ {
						blockRow := mcuRow*int(sc.comp.v) + dy
						blockCol := mcuCol*int(sc.comp.h) + dx
						if err := processBlock(&sc, blockRow, blockCol); err != nil {
							return err
						}
					}
				}
			}
		} else {
			blockCol := unit % blocksX
			blockRow := unit / blocksX
			sc := sh.comps[0]
			if err := processBlock(&sc, blockRow, blockCol); err != nil {
				return err
			}
		}

		restartCounter++
		if restartInterval > 0 && restartCounter == restartInterval && unit != totalUnits-1 {
			restartCounter = 0
			if err := handleRestart(op, br, sh, expectedRST, eobRun, logf); err != nil {
				return err
			}
			expectedRST = (expectedRST + 1) % 8
		}
	}
	return nil
}

// handleRestart aligns to a byte boundary, verifies the expected RSTn
// marker, and resets per-scan decode state, per spec.md §3/§4.4. A
// mismatch is always a FormatViolation (no partial-image recovery),
// but the expected-vs-found marker is logged first for diagnostics.
func handleRestart(op string, br *bitReader, sh *scanHeader, expectedRST int, eobRun *int, logf Logger) error {
	br.alignToByte()
	marker, err := br.pendingMarker(op)
	if err != nil {
		return err
	}
	want := uint16(0xFF00) | uint16(byte(markerRST0+expectedRST))
	if marker != want {
		if logf != nil {
			logf("handleRestart: expected RST%d (0x%04X), found marker 0x%04X", expectedRST, want, marker)
		}
		return newErr(FormatViolation, op, fmt.Sprintf("expected restart marker RST%d, found marker 0x%04X", expectedRST, marker))
	}
	br.consumeMarker()
	for i := range sh.comps {
		sh.comps[i].comp.dcPred = 0
	}
	if eobRun != nil {
		*eobRun = 0
	}
	return nil
}
