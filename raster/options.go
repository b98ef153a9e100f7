package raster

import (
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/alphabet"
)

// leftOptionBase/rightOptionBase anchor the Ln/Rn cell formulas of
// leftOptionBase − 2·n for Ln, rightOptionBase + 2·n for
// Rn". Two columns are reserved on each side for spacing and the direction
// code (see direction.go).
const (
	leftOptionBase  = LeftMargin - 3
	rightOptionFrom = 2 // rightOptionBase is computed per-store, relative to fabric end
)

func (s *Store) rightOptionBase() int { return s.fabricCol(s.Width) + rightOptionFrom }

// optionCols returns (valueCol, identCol) for key, in absolute column
// coordinates.
func (s *Store) optionCols(key alphabet.OptionKey) (value, ident int) {
	if key.Right {
		base := s.rightOptionBase()
		value = base + 2*key.N
		ident = value - 1
	} else {
		value = leftOptionBase - 2*key.N
		ident = value + 1
	}
	return
}

// SetLineOption writes value for key on row. If replace is false and an
// identifier was already written for this key on this row, the value is
// left untouched (identifier written at most once; values
// may be overwritten when replace is true").
func (s *Store) SetLineOption(row int, key alphabet.OptionKey, value uint8, replace bool) error {
	if key.N < 1 || key.N > 20 {
		return errors.Errorf("raster: option %v out of range [1,20]", key)
	}
	s.EnsureLine(row)
	valueCol, identCol := s.optionCols(key)
	cell := s.options[row][key]
	if cell.identWritten && !replace {
		return nil
	}
	if err := s.set(row, identCol, alphabet.Code(key.N)); err != nil {
		return err
	}
	if err := s.set(row, valueCol, alphabet.Code(value)); err != nil {
		return err
	}
	cell.identWritten = true
	cell.value = value
	s.options[row][key] = cell
	return nil
}

// GetLineOption returns the value last written for key on row, and whether
// it was ever set.
func (s *Store) GetLineOption(row int, key alphabet.OptionKey) (uint8, bool) {
	if row < 0 || row >= len(s.options) {
		return 0, false
	}
	cell, ok := s.options[row][key]
	return cell.value, ok
}

// SetLineOptions writes every (key, value) pair in opts to row, honoring
// replace the same way SetLineOption does for each key.
func (s *Store) SetLineOptions(row int, opts map[alphabet.OptionKey]uint8, replace bool) error {
	for key, value := range opts {
		if err := s.SetLineOption(row, key, value, replace); err != nil {
			return err
		}
	}
	return nil
}
