package caster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/raster"
)

func newTestCaster(width int) *Caster {
	store := raster.New(width, width)
	return New(store, width, 3)
}

func TestKnitAdvancesAndOccupies(t *testing.T) {
	c := newTestCaster(8)
	c.Flags = c.Flags.With(AutoMove)
	c.Current = 2
	c.Knit()
	assert.True(t, c.Bed[2].Front)
	assert.Equal(t, 3, c.Current, "AutoMove should step to the next needle")
}

func TestFlushWritesLinkProcessSpan(t *testing.T) {
	c := newTestCaster(8)
	c.Current = 1
	c.Knit()
	c.Current = 5
	c.Knit()
	ok := c.Flush(nil, alphabet.DirRight)
	require.True(t, ok)

	for i := 2; i < 5; i++ {
		code := c.Store.GetFabric(0, i)
		assert.Equal(t, alphabet.LinkProcess, code, "gap between two knits should be filled")
	}
	assert.Equal(t, 1, c.Row)
}

func TestFlushNoOpOnEmptyLine(t *testing.T) {
	c := newTestCaster(8)
	ok := c.Flush(nil, alphabet.DirRight)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Row)
}

func TestFlushInvertsDirectionExceptForTransfer(t *testing.T) {
	c := newTestCaster(8)
	c.Dir = alphabet.DirRight
	c.Current = 0
	c.Knit()
	c.Flush(nil, alphabet.DirRight)
	assert.Equal(t, alphabet.DirLeft, c.Dir)

	c.Current = 0
	c.Knit()
	c.Flush(nil, alphabet.DirTransfer)
	assert.Equal(t, alphabet.DirLeft, c.Dir, "transfer lines do not flip the running direction")
}

func TestSplitIntoWritesBothCells(t *testing.T) {
	c := newTestCaster(8)
	c.Current = 4
	c.SplitInto(5)
	assert.Equal(t, alphabet.SplitFront, c.line[4])
	code, err := alphabet.SplitIntoCode(1)
	require.NoError(t, err)
	assert.Equal(t, code, c.line[5])
	assert.True(t, c.Bed[4].Front)
	assert.True(t, c.Bed[5].Back)
}

func TestTransferFlipsSideAndOccupancy(t *testing.T) {
	c := newTestCaster(8)
	c.Current = 3
	c.Side = alphabet.SideFront
	c.Knit()
	c.Bed[3].Front = true
	c.Transfer()
	assert.Equal(t, alphabet.SideBack, c.Side)
	assert.False(t, c.Bed[3].Front)
	assert.True(t, c.Bed[3].Back)
	_, hasL13 := c.Options[alphabet.L13]
	assert.True(t, hasL13, "Transfer should record an L13 transfer type")
}

func TestMoveShiftsCurrentNeedle(t *testing.T) {
	c := newTestCaster(8)
	c.Current = 2
	c.Move(3)
	assert.Equal(t, 5, c.Current)
}

func TestNextSkipsEmptyWithFlag(t *testing.T) {
	c := newTestCaster(8)
	c.Flags = c.Flags.With(SkipEmpty)
	c.Bed[3].Front = true
	c.Current = 0
	c.Dir = alphabet.DirRight
	c.Side = alphabet.SideFront
	c.Next(1, false)
	assert.Equal(t, 3, c.Current)
}

func TestNextWrapsUnlessMirrored(t *testing.T) {
	c := newTestCaster(4)
	c.Current = 3
	c.Dir = alphabet.DirRight
	c.Next(1, false)
	assert.Equal(t, 0, c.Current)

	c2 := newTestCaster(4)
	c2.Flags = c2.Flags.With(MirrorRight)
	c2.Current = 3
	c2.Dir = alphabet.DirRight
	c2.Next(1, false)
	assert.Equal(t, 3, c2.Current, "MirrorRight forbids wrapping past the right edge")
}

func TestUsingRestoresPreviousOption(t *testing.T) {
	c := newTestCaster(8)
	c.Options[alphabet.R6] = alphabet.TensionNormal
	c.Using(alphabet.R6, alphabet.TensionTightStart, func() {
		assert.Equal(t, uint8(alphabet.TensionTightStart), c.Options[alphabet.R6])
	})
	assert.Equal(t, uint8(alphabet.TensionNormal), c.Options[alphabet.R6])
}

func TestModeFlags(t *testing.T) {
	var m Mode
	m = m.With(SkipEmpty)
	assert.True(t, m.Has(SkipEmpty))
	m = m.Without(SkipEmpty)
	assert.False(t, m.Has(SkipEmpty))
}
