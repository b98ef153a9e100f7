package passcompile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/castengine"
	"github.com/xionluhnis/knitc/caster"
	"github.com/xionluhnis/knitc/raster"
	"github.com/xionluhnis/knitc/skel"
)

func newTestCaster(width int) *caster.Caster {
	store := raster.New(width, width)
	return caster.New(store, width, 2)
}

func flatSkeleton(width int) *skel.Skeleton {
	stitchNeedle := map[int]skel.NeedleRef{}
	for i := 0; i < width; i++ {
		stitchNeedle[i] = skel.NeedleRef{Index: i, Side: alphabet.SideFront}
	}
	return &skel.Skeleton{
		Nodes:        []skel.Node{{ID: 0, Kind: skel.Sheet, Sheet: skel.Flat}},
		StitchNeedle: stitchNeedle,
		MaxWidth:     width,
	}
}

func TestTensionForScalesWithDelta(t *testing.T) {
	sk := flatSkeleton(8)
	pass := skel.Pass{
		Sequence: []int{0, 1},
		ActionMap: map[int]skel.Action{
			0: {Source: skel.NeedleRef{Index: 0}, Targets: []skel.NeedleRef{{Index: 3}}},
			1: {Source: skel.NeedleRef{Index: 1}, Targets: []skel.NeedleRef{{Index: 1}}},
		},
	}
	assert.Equal(t, uint8(7), tensionFor(sk, pass))
}

func TestCompileCastOnSetsOccupancy(t *testing.T) {
	c := newTestCaster(8)
	sk := flatSkeleton(8)
	bed := skel.NeedleBed{ActiveGroup: skel.GroupRef{ShapeID: 0}}
	pass := skel.Pass{Type: skel.CastOn, Sequence: []int{0, 1, 2, 3}, YarnStarts: true}
	require.NoError(t, compileCastOn(c, sk, bed, pass, castengine.Interlock))
	for _, i := range []int{0, 1, 2, 3} {
		assert.True(t, c.Bed[i].Front)
	}
}

func TestCompileActionsRunsKnitPrimitive(t *testing.T) {
	c := newTestCaster(8)
	sk := flatSkeleton(8)
	bed := skel.NeedleBed{
		StatesFront: []bool{true, true, true, true, true, true, true, true},
	}
	pass := skel.Pass{
		Type:     skel.Actions,
		Sequence: []int{2},
		ActionMap: map[int]skel.Action{
			2: {Kind: skel.Knit, Source: skel.NeedleRef{Index: 2, Side: alphabet.SideFront}},
		},
		SafeCast: true,
	}
	require.NoError(t, compileActions(c, sk, bed, pass, castengine.Interlock))
	assert.True(t, c.Bed[2].Front)
}

func TestSplitRunsSeparatesCastingFromCasted(t *testing.T) {
	sk := flatSkeleton(8)
	bed := skel.NeedleBed{StatesFront: []bool{true, true, false, false}}
	pass := skel.Pass{Sequence: []int{0, 1, 2, 3}}
	runs := splitRuns(sk, bed, pass)
	require.Len(t, runs, 2)
	assert.False(t, runs[0].casting)
	assert.True(t, runs[1].casting)
}

func TestIsShortRowReadsActionTag(t *testing.T) {
	assert.True(t, isShortRow(skel.Pass{ActionTag: "shortrow"}))
	assert.False(t, isShortRow(skel.Pass{ActionTag: ""}))
}
