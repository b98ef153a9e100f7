package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/alphabet"
)

func TestOptionRoundTrip(t *testing.T) {
	s := New(10, 200)
	row := s.NewLine()
	require.NoError(t, s.SetLineOption(row, alphabet.R6, 33, false))
	v, ok := s.GetLineOption(row, alphabet.R6)
	assert.True(t, ok)
	assert.Equal(t, uint8(33), v)

	// identifier written once: without replace, a second write is ignored.
	require.NoError(t, s.SetLineOption(row, alphabet.R6, 5, false))
	v, _ = s.GetLineOption(row, alphabet.R6)
	assert.Equal(t, uint8(33), v)

	require.NoError(t, s.SetLineOption(row, alphabet.R6, 5, true))
	v, _ = s.GetLineOption(row, alphabet.R6)
	assert.Equal(t, uint8(5), v)
}

func TestDirectionAlternation(t *testing.T) {
	s := New(5, 200)
	r0 := s.NewLine()
	r1 := s.NewLine()
	require.NoError(t, s.SetLineDirections(alphabet.DirRight))
	// The stored code is the inverse of the logical direction: row 0 travels
	// right (stored DirLeft), row 1 travels left (stored DirRight).
	assert.Equal(t, alphabet.Code(alphabet.DirLeft), s.cells[r0][s.leftDirCol()])
	assert.Equal(t, alphabet.Code(alphabet.DirRight), s.cells[r1][s.leftDirCol()])
}

func TestCarrierPositionMarksSpan(t *testing.T) {
	s := New(10, 200)
	row := s.NewLine()
	require.NoError(t, s.SetFabric(row, 2, alphabet.KnitFront))
	require.NoError(t, s.SetFabric(row, 5, alphabet.KnitFront))
	require.NoError(t, s.SetLineDirections(alphabet.DirRight))
	require.NoError(t, s.SetCarrierPositions())
	assert.Equal(t, alphabet.CarrierPosition, s.GetFabric(row, 1))
	assert.Equal(t, alphabet.CarrierPosition, s.GetFabric(row, 6))
}

func TestNoCarrierPositionOnTransferLine(t *testing.T) {
	s := New(10, 200)
	row := s.NewLine()
	require.NoError(t, s.SetFabric(row, 2, alphabet.TransferSwitchF2B))
	require.NoError(t, s.SetLineOption(row, alphabet.R5, alphabet.ModeKnitCancel, true))
	require.NoError(t, s.SetLineDirections(alphabet.DirRight))
	require.NoError(t, s.SetCarrierPositions())
	assert.Equal(t, alphabet.Code(0), s.GetFabric(row, 1))
	assert.Equal(t, alphabet.Code(0), s.GetFabric(row, 3))
}

func TestRLERoundTrip(t *testing.T) {
	s := New(8, 200)
	row := s.NewLine()
	require.NoError(t, s.fillFabricRow(row, alphabet.KnitFront))
	buf, digest, err := s.ToBuffer(nil)
	require.NoError(t, err)
	assert.NotZero(t, digest)
	assert.True(t, len(buf) > dataOffset)

	runs := s.EncodeRLE()
	decoded := DecodeRLE(runs, s.FullWidth, s.FullHeight)
	reEncoded := make([]Run, 0)
	for r := len(decoded) - 1; r >= 0; r-- {
		i := 0
		for i < len(decoded[r]) {
			code := decoded[r][i]
			j := i + 1
			for j < len(decoded[r]) && decoded[r][j] == code && j-i < 255 {
				j++
			}
			reEncoded = append(reEncoded, Run{Index: uint8(code), Length: uint8(j - i)})
			i = j
		}
	}
	assert.Equal(t, runs, reEncoded)
}

func TestPreambleAndPostamble(t *testing.T) {
	s := New(10, 200)
	next, err := s.Preamble()
	require.NoError(t, err)
	assert.Equal(t, 3, next)
	require.NoError(t, s.Postamble("left"))
	// 3 preamble + 5 bed-clear + 1 end bar + 1 position row.
	assert.Equal(t, 10, s.NumLines())
}
