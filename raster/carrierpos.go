package raster

import "github.com/xionluhnis/knitc/alphabet"

// SetCarrierPositions must run after SetLineDirections. For every
// non-transfer row it locates the leftmost and rightmost fabric cell that is
// neither empty nor link-process, and writes alphabet.CarrierPosition
// immediately outside that span.
func (s *Store) SetCarrierPositions() error {
	for row := 0; row < len(s.cells); row++ {
		r5, _ := s.GetLineOption(row, alphabet.R5)
		if r5 == alphabet.ModeKnitCancel || r5 == 1 {
			continue // transfer line: zero carrier-position markers
		}
		left, right, ok := s.nonEmptySpan(row)
		if !ok {
			continue
		}
		if left-1 >= 0 {
			if err := s.SetFabric(row, left-1, alphabet.CarrierPosition); err != nil {
				return err
			}
		}
		if right+1 < s.Width {
			if err := s.SetFabric(row, right+1, alphabet.CarrierPosition); err != nil {
				return err
			}
		}
	}
	return nil
}

// nonEmptySpan returns the fabric-relative indices of the leftmost and
// rightmost cell that is neither empty nor link-process.
func (s *Store) nonEmptySpan(row int) (left, right int, ok bool) {
	fabric := s.FabricRow(row)
	left, right = -1, -1
	for i, c := range fabric {
		if c.IsZeroOrLinkProcess() {
			continue
		}
		if left < 0 {
			left = i
		}
		right = i
	}
	return left, right, left >= 0
}
