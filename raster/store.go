// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package raster holds the two-dimensional instruction grid that a compile
// emits into: cell storage, the left/right option bars, direction and
// carrier-position sweeps, the preamble/postamble, and the run-length
// encoded palette-indexed binary writer.
package raster

import (
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/alphabet"
)

// Margins: 20 L-options and 20 R-options at 2 cells each,
// plus spacing and a direction-code cell, on both sides; 5 rows below the
// fabric, 8 above it.
const (
	LeftMargin   = 55
	RightMargin  = 55
	BottomMargin = 5
	TopMargin    = 8
)

// Store is the raw cell grid for one compile. Row 0 is the bottom of the
// garment (cast-on); rows grow upward as the garment is knit.
type Store struct {
	Width, Height         int
	FullWidth, FullHeight int
	cells                 [][]alphabet.Code // [row][col], row-major, bottom-up

	// MaxWidth is the machine's total needle count, used by the needle
	// position encoding in the postamble.
	MaxWidth int

	options   []map[alphabet.OptionKey]optionCell
	current   int // streaming cursor (row index); only RemoveLine reads or updates it
}

type optionCell struct {
	value       uint8
	identWritten bool
}

// New allocates an empty store fabricWidth cells wide, with no rows yet.
func New(fabricWidth, maxWidth int) *Store {
	return &Store{
		Width:     fabricWidth,
		FullWidth: fabricWidth + LeftMargin + RightMargin,
		MaxWidth:  maxWidth,
		cells:     make([][]alphabet.Code, 0, 64),
		options:   make([]map[alphabet.OptionKey]optionCell, 0, 64),
	}
}

// NewLine appends one blank row and returns its index. In streaming mode
// (the normal caster flush path) this is called automatically whenever a
// line is committed past the current height.
func (s *Store) NewLine() int {
	row := make([]alphabet.Code, s.FullWidth)
	s.cells = append(s.cells, row)
	s.options = append(s.options, map[alphabet.OptionKey]optionCell{})
	s.Height++
	s.FullHeight = s.Height + BottomMargin + TopMargin
	return len(s.cells) - 1
}

// RemoveLine pops the most recently appended row.
func (s *Store) RemoveLine() {
	if len(s.cells) == 0 {
		return
	}
	s.cells = s.cells[:len(s.cells)-1]
	s.options = s.options[:len(s.options)-1]
	s.Height--
	s.FullHeight = s.Height + BottomMargin + TopMargin
	if s.current > len(s.cells) {
		s.current = len(s.cells)
	}
}

// EnsureLine grows the store so that row index exists, for streaming
// callers that address a line before explicitly allocating it.
func (s *Store) EnsureLine(row int) {
	for len(s.cells) <= row {
		s.NewLine()
	}
}

// fabricCol converts a 0-based fabric column to its absolute column in the
// full (margin-inclusive) row.
func (s *Store) fabricCol(col int) int { return col + LeftMargin }

// set writes code at absolute (margin-inclusive) column absCol of row, so
// the margins can be addressed directly (used by preamble/postamble and
// option-bar writers); it fails when row or absCol lies outside the store.
// SetFabric is the fabric-relative form for ordinary instruction writes.
func (s *Store) set(row, absCol int, code alphabet.Code) error {
	if row < 0 || row >= len(s.cells) {
		return errors.Errorf("raster: row %d out of range [0,%d)", row, len(s.cells))
	}
	if absCol < 0 || absCol >= s.FullWidth {
		return errors.Errorf("raster: column %d out of range [0,%d)", absCol, s.FullWidth)
	}
	s.cells[row][absCol] = code
	return nil
}

// SetFabric writes code at fabric-relative column col (0-based) of row.
func (s *Store) SetFabric(row, col int, code alphabet.Code) error {
	return s.set(row, s.fabricCol(col), code)
}

// GetFabric reads the code at fabric-relative column col of row.
func (s *Store) GetFabric(row, col int) alphabet.Code {
	absCol := s.fabricCol(col)
	if row < 0 || row >= len(s.cells) || absCol < 0 || absCol >= s.FullWidth {
		return 0
	}
	return s.cells[row][absCol]
}

// FabricRow returns the fabric-only slice (no margins) of row, for scanning
// left/rightmost non-empty cells.
func (s *Store) FabricRow(row int) []alphabet.Code {
	if row < 0 || row >= len(s.cells) {
		return nil
	}
	return s.cells[row][LeftMargin : LeftMargin+s.Width]
}

// NumLines returns the number of fabric rows allocated so far.
func (s *Store) NumLines() int { return len(s.cells) }
