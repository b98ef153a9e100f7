package raster

import "github.com/xionluhnis/knitc/alphabet"

// Run is one (palette index, run length) pair of the RLE stream.
type Run struct {
	Index  uint8
	Length uint8
}

// EncodeRLE run-length-encodes the full (margin-inclusive) buffer row-major,
// top-down, breaking runs at row boundaries and at length 255.
// Row order is top-down even though row 0 of the in-memory store is the
// bottom of the garment, so rows are walked in reverse.
func (s *Store) EncodeRLE() []Run {
	runs := make([]Run, 0, len(s.cells)*4)
	for r := len(s.cells) - 1; r >= 0; r-- {
		row := s.cells[r]
		i := 0
		for i < len(row) {
			code := row[i]
			j := i + 1
			for j < len(row) && row[j] == code && j-i < 255 {
				j++
			}
			runs = append(runs, Run{Index: uint8(code), Length: uint8(j - i)})
			i = j
		}
	}
	return runs
}

// DecodeRLE reverses EncodeRLE given the full dimensions, for the P7
// round-trip testable property.
func DecodeRLE(runs []Run, fullWidth, fullHeight int) [][]alphabet.Code {
	rows := make([][]alphabet.Code, fullHeight)
	for i := range rows {
		rows[i] = make([]alphabet.Code, 0, fullWidth)
	}
	row := 0
	for _, run := range runs {
		for k := uint8(0); k < run.Length; k++ {
			if row >= fullHeight {
				return rows
			}
			rows[row] = append(rows[row], alphabet.Code(run.Index))
			if len(rows[row]) == fullWidth {
				row++
			}
		}
	}
	return rows
}
