package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/caster"
	"github.com/xionluhnis/knitc/raster"
)

func newTestCaster(width int) *caster.Caster {
	store := raster.New(width, width)
	c := caster.New(store, width, 3)
	for i := 0; i < width; i++ {
		c.Bed[i].Front = true
	}
	return c
}

func TestPlanMovesFrontToBack(t *testing.T) {
	c := newTestCaster(8)
	err := Plan(c, []Entry{
		{Source: alphabet.SideFront, SrcIdx: 2, Target: alphabet.SideBack, TrgIdx: 2, HasTarget: true},
	})
	require.NoError(t, err)
	assert.False(t, c.Bed[2].Front)
	assert.True(t, c.Bed[2].Back)
}

func TestPlanSkipsNoOpEntries(t *testing.T) {
	c := newTestCaster(8)
	err := Plan(c, []Entry{
		{Source: alphabet.SideFront, SrcIdx: 1, Target: alphabet.SideFront, TrgIdx: 1, HasTarget: true},
	})
	require.NoError(t, err)
	assert.True(t, c.Bed[1].Front, "no-op entry should not disturb occupancy")
}

func TestPlanDetectsConstraintLoop(t *testing.T) {
	c := newTestCaster(8)
	err := Plan(c, []Entry{
		{Source: alphabet.SideFront, SrcIdx: 1, Target: alphabet.SideBack, TrgIdx: 2, HasTarget: true},
		{Source: alphabet.SideBack, SrcIdx: 2, Target: alphabet.SideFront, TrgIdx: 1, HasTarget: true},
	})
	assert.Error(t, err)
}

func TestPlanRestoresCarrierPosition(t *testing.T) {
	c := newTestCaster(8)
	c.Current, c.Side = 4, alphabet.SideFront
	err := Plan(c, []Entry{
		{Source: alphabet.SideFront, SrcIdx: 0, Target: alphabet.SideBack, TrgIdx: 0, HasTarget: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Current)
	assert.Equal(t, alphabet.SideFront, c.Side)
}

func TestPlanEmitsRestackCode(t *testing.T) {
	c := newTestCaster(8)
	row := c.Row
	err := Plan(c, []Entry{
		{Source: alphabet.SideFront, SrcIdx: 3, Target: alphabet.SideFront, TrgIdx: 3, HasTarget: true, Restack: true},
	})
	require.NoError(t, err)
	assert.Equal(t, alphabet.DoubleTransferRestackF, c.Store.GetFabric(row, 3))

	c2 := newTestCaster(8)
	row2 := c2.Row
	err = Plan(c2, []Entry{
		{Source: alphabet.SideBack, SrcIdx: 3, Target: alphabet.SideBack, TrgIdx: 3, HasTarget: true, Restack: true},
	})
	require.NoError(t, err)
	assert.Equal(t, alphabet.DoubleTransferRestackB, c2.Store.GetFabric(row2, 3))
}

func TestSplitSliderConflictsSplitsMixedGroup(t *testing.T) {
	c := newTestCaster(8)
	c.Bed[0].Back = true // opposite side of needle 0 is occupied -> slider required
	entries := []Entry{
		{Source: alphabet.SideFront, SrcIdx: 0, Target: alphabet.SideFront, TrgIdx: 1, HasTarget: true},
		{Source: alphabet.SideFront, SrcIdx: 1, Target: alphabet.SideBack, TrgIdx: 1, HasTarget: true},
	}
	groups := splitSliderConflicts(c, entries, alphabet.SideFront)
	require.Len(t, groups, 2)
	assert.True(t, groups[0].sliders)
	assert.True(t, groups[1].sliders)
}
