package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferCodeSameBed(t *testing.T) {
	c, err := TransferCode(3, SideFront, 6, SideFront, false)
	require.NoError(t, err)
	assert.Equal(t, transferSameBedBase+3, c)
}

func TestTransferCodeSwitchNoShift(t *testing.T) {
	c, err := TransferCode(4, SideFront, 4, SideBack, false)
	require.NoError(t, err)
	assert.Equal(t, TransferSwitchF2B, c)

	c, err = TransferCode(4, SideBack, 4, SideFront, false)
	require.NoError(t, err)
	assert.Equal(t, TransferSwitchB2F, c)
}

func TestTransferCodeSwitchWithShift(t *testing.T) {
	c, err := TransferCode(4, SideFront, 7, SideBack, false)
	require.NoError(t, err)
	assert.Equal(t, transferSwitchF2BBase+3, c)
}

func TestTransferCodeKnitAfter(t *testing.T) {
	_, err := TransferCode(4, SideFront, 5, SideBack, true)
	assert.Error(t, err, "knitAfter with nonzero delta must fail")

	c, err := TransferCode(4, SideFront, 4, SideBack, true)
	require.NoError(t, err)
	assert.Equal(t, TransferSwitchKnitF2B, c)
}

func TestTransferCodeDistanceTooFar(t *testing.T) {
	_, err := TransferCode(0, SideFront, 8, SideFront, false)
	assert.Error(t, err)
}

func TestTransferType(t *testing.T) {
	assert.Equal(t, uint8(31), TransferType(SideFront, false, false))
	assert.Equal(t, uint8(32), TransferType(SideFront, true, false))
	assert.Equal(t, uint8(51), TransferType(SideBack, false, false))
	assert.Equal(t, uint8(52), TransferType(SideBack, true, false))
	assert.Equal(t, uint8(81), TransferType(SideFront, false, true))
	assert.Equal(t, uint8(91), TransferType(SideBack, false, true))
}

func TestDirectionBetween(t *testing.T) {
	assert.Equal(t, DirRight, DirectionBetween(1, 5))
	assert.Equal(t, DirLeft, DirectionBetween(5, 1))
	assert.Equal(t, DirTransfer, DirectionBetween(3, 3))
}

func TestEvenSideCrossCodeAlternates(t *testing.T) {
	assert.Equal(t, CrossBelow, EvenSideCrossCode(false, 0))
	assert.Equal(t, CrossAbove, EvenSideCrossCode(true, 0))
	assert.Equal(t, CrossBelowSecond, EvenSideCrossCode(false, 1))
	assert.Equal(t, CrossAboveSecond, EvenSideCrossCode(true, 1))
}

func TestCrossComplements(t *testing.T) {
	assert.Equal(t, CrossAbove, CrossComplementsOf[CrossBelow])
	assert.Equal(t, CrossBelow, CrossComplementsOf[CrossAbove])
	assert.Equal(t, CrossFB, CrossComplementsOf[CrossFB])
}

func TestMoveCodeRange(t *testing.T) {
	for _, side := range []Side{SideFront, SideBack} {
		for _, dir := range []Direction{DirLeft, DirRight} {
			for step := 1; step <= 7; step++ {
				c, err := MoveCode(side, dir, step)
				require.NoError(t, err)
				assert.True(t, c >= 61 && c <= 97)
			}
		}
	}
}

func TestSplitIntoCodeBounds(t *testing.T) {
	_, err := MoveCode(SideFront, DirLeft, 8)
	assert.Error(t, err)

	_, err = SplitIntoCode(MaxSplitDelta + 1)
	assert.Error(t, err)

	c, err := SplitIntoCode(0)
	require.NoError(t, err)
	assert.True(t, c >= splitIntoBase && c <= 129)
}
