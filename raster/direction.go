package raster

import (
	"github.com/xionluhnis/knitc/alphabet"
)

// leftDirCol/rightDirCol border the fabric, one cell in from each option
// bar (the two direction cells bordering the option-bar
// region").
func (s *Store) leftDirCol() int  { return LeftMargin - 1 }
func (s *Store) rightDirCol() int { return s.fabricCol(s.Width) }

// SetLineDirection writes dir for row. The on-disk convention stores the
// *inverse* of the logical travel direction, so DirLeft is
// recorded as DirRight and vice versa; DirTransfer is recorded unchanged.
func (s *Store) SetLineDirection(row int, dir alphabet.Direction) error {
	s.EnsureLine(row)
	stored := dir
	if dir == alphabet.DirLeft || dir == alphabet.DirRight {
		stored = dir.Invert()
	}
	if err := s.set(row, s.leftDirCol(), alphabet.Code(stored)); err != nil {
		return err
	}
	return s.set(row, s.rightDirCol(), alphabet.Code(stored))
}

// SetLineDirections sweeps every row, deriving each line's direction from
// its R5 carrier-mode option:
//
//	R5 in {1, ModeKnitCancel}: DirTransfer, no flip of the running direction
//	R5 == ModeCarriageMove:     flip the running direction and assign it
//	R5 in {ModeIndependentL, ModeIndependentR}: assign R5 itself as the new direction
//	otherwise:                  assign the running direction unchanged
//
// After every non-transfer line the running direction flips for the next
// line.
func (s *Store) SetLineDirections(startDir alphabet.Direction) error {
	dir := startDir
	for row := 0; row < len(s.cells); row++ {
		r5, _ := s.GetLineOption(row, alphabet.R5)
		var lineDir alphabet.Direction
		switch {
		case r5 == alphabet.ModeKnitCancel || r5 == 1:
			lineDir = alphabet.DirTransfer
		case r5 == alphabet.ModeCarriageMove:
			lineDir = dir.Invert()
		case r5 == alphabet.ModeIndependentL || r5 == alphabet.ModeIndependentR:
			lineDir = alphabet.Direction(r5)
		default:
			lineDir = dir
		}
		if err := s.SetLineDirection(row, lineDir); err != nil {
			return err
		}
		if lineDir != alphabet.DirTransfer {
			dir = lineDir.Invert()
		}
	}
	return nil
}
