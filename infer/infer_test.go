package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/skel"
)

func flatSkeleton() *skel.Skeleton {
	return &skel.Skeleton{
		Nodes: []skel.Node{
			{ID: 0, Kind: skel.Sheet, Sheet: skel.Flat, WidthBottom: 10, WidthTop: 10, Interfaces: map[string]int{}},
		},
	}
}

func TestSidednessFlatSheetIsOneSided(t *testing.T) {
	state, err := Sidedness(flatSkeleton())
	require.NoError(t, err)
	assert.False(t, state[SideKey{0, "bottom"}])
	assert.False(t, state[SideKey{0, "top"}])
}

func TestSidednessCylinderClosedInterfaceIsOneSided(t *testing.T) {
	sk := &skel.Skeleton{
		Interfaces: []skel.Interface{
			{ID: 0, A: skel.Side{NodeID: 0, Path: "bottom"}, B: skel.Side{NodeID: 1, Path: "x"}, Closed: true},
		},
		Nodes: []skel.Node{
			{ID: 0, Kind: skel.Sheet, Sheet: skel.Cylinder, Interfaces: map[string]int{"bottom": 0, "top": -1}},
		},
	}
	state, err := Sidedness(sk)
	require.NoError(t, err)
	assert.False(t, state[SideKey{0, "bottom"}])
}

func TestSidednessJointDefaultsTwoSided(t *testing.T) {
	sk := &skel.Skeleton{
		Nodes: []skel.Node{{ID: 0, Kind: skel.Joint, Interfaces: map[string]int{}}},
	}
	state, err := Sidedness(sk)
	require.NoError(t, err)
	assert.True(t, state[SideKey{0, "bottom"}])
	assert.True(t, state[SideKey{0, "top"}])
}

func TestSizesSheetFromWidths(t *testing.T) {
	sk := flatSkeleton()
	sizes := Sizes(sk, 0, nil)
	assert.Equal(t, 10, sizes[SideKey{0, "bottom"}])
	assert.Equal(t, 10, sizes[SideKey{0, "top"}])
}

func TestSizesSplitBaseSumsFoldedBranches(t *testing.T) {
	sk := &skel.Skeleton{
		Nodes: []skel.Node{
			{ID: 0, Kind: skel.Split, Folded: true, Branches: []int{0, 1}, Interfaces: map[string]int{}},
			{ID: 1, Kind: skel.Sheet, Sheet: skel.Flat, WidthBottom: 4, WidthTop: 4, Interfaces: map[string]int{}},
			{ID: 2, Kind: skel.Sheet, Sheet: skel.Flat, WidthBottom: 6, WidthTop: 6, Interfaces: map[string]int{}},
		},
		Interfaces: []skel.Interface{
			{ID: 0, A: skel.Side{NodeID: 0, Path: "branches/0"}, B: skel.Side{NodeID: 1, Path: "bottom"}},
			{ID: 1, A: skel.Side{NodeID: 0, Path: "branches/1"}, B: skel.Side{NodeID: 2, Path: "bottom"}},
		},
	}
	sk.Nodes[0].Interfaces["branches/0"] = 0
	sk.Nodes[0].Interfaces["branches/1"] = 1

	warned := 0
	sizes := Sizes(sk, 0, func(SideKey, int) { warned++ })
	assert.Equal(t, 4, sizes[SideKey{0, "branches/0"}])
	assert.Equal(t, 6, sizes[SideKey{0, "branches/1"}])
	assert.Equal(t, 10, sizes[SideKey{0, "base"}])
	assert.Equal(t, 0, warned, "all sizes should resolve without defaulting")
}
