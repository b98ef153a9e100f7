package raster

import "github.com/xionluhnis/knitc/alphabet"

func (s *Store) fillFabricRow(row int, code alphabet.Code) error {
	s.EnsureLine(row)
	for col := 0; col < s.Width; col++ {
		if err := s.SetFabric(row, col, code); err != nil {
			return err
		}
	}
	return nil
}

type bedClearLine struct {
	code alphabet.Code
	dir  alphabet.Direction
}

// Preamble emits the three fixed bed-clearing lines the raster format
// requires (216 right, 51 left, 52 right) at the start of the raster, then
// returns the row index the caster should resume writing to.
func (s *Store) Preamble() (nextRow int, err error) {
	lines := []bedClearLine{
		{alphabet.MissSplitBack, alphabet.DirRight},
		{alphabet.KnitFrontSlider, alphabet.DirLeft},
		{alphabet.KnitBackSlider, alphabet.DirRight},
	}
	for _, l := range lines {
		row := s.NewLine()
		if err = s.fillFabricRow(row, l.code); err != nil {
			return 0, err
		}
		// R5 = DirLeft/DirRight (the independent-direction modes 6/7) pins
		// the line to its listed direction in SetLineDirections.
		r5 := uint8(l.dir)
		if err = s.SetLineOption(row, alphabet.R5, r5, true); err != nil {
			return 0, err
		}
	}
	return len(s.cells), nil
}

// Postamble emits the closing five-line bed-clearing sequence, an end-bar
// row of 1s, and the two-cell needle-position encoding in the top margin
// before control returns to the pass compiler.
//
// needlePos selects the encoding: for any value other than "right" the
// stored value is MaxWidth-20-Width, split into hundreds/units digit
// cells; for "right" the source writes a literal 0 and defers
// interpretation to the downstream compiler/controller.
func (s *Store) Postamble(needlePos string) error {
	lines := []bedClearLine{
		{alphabet.MissSplitBack, alphabet.DirRight},
		{alphabet.KnitFrontSlider, alphabet.DirLeft},
		{alphabet.KnitBackSlider, alphabet.DirRight},
		{alphabet.MissSplitFront, alphabet.DirLeft},
		{alphabet.KnitFront, alphabet.DirRight},
	}
	for _, l := range lines {
		row := s.NewLine()
		if err := s.fillFabricRow(row, l.code); err != nil {
			return err
		}
		if err := s.SetLineOption(row, alphabet.R5, uint8(l.dir), true); err != nil {
			return err
		}
	}

	endBar := s.NewLine()
	if err := s.fillFabricRow(endBar, alphabet.KnitFront); err != nil {
		return err
	}

	posRow := s.NewLine()
	var value int
	if needlePos == "right" {
		value = 0
	} else {
		value = s.MaxWidth - 20 - s.Width
	}
	hundreds := alphabet.Code((value / 100) % 256)
	units := alphabet.Code((value % 100) % 256)
	if err := s.set(posRow, 0, hundreds); err != nil {
		return err
	}
	return s.set(posRow, 1, units)
}
