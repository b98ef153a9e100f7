package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/skel"
)

func twoSheetChain() *skel.Skeleton {
	return &skel.Skeleton{
		Nodes: []skel.Node{
			{ID: 0, Kind: skel.Sheet, Courses: []int{0, 1}, Interfaces: map[string]int{"top": 0}},
			{ID: 1, Kind: skel.Sheet, Courses: []int{2, 3}, Interfaces: map[string]int{"bottom": 0}},
		},
		Interfaces: []skel.Interface{
			{ID: 0, A: skel.Side{NodeID: 0, Path: "top"}, B: skel.Side{NodeID: 1, Path: "bottom"}},
		},
	}
}

func TestVertexIDFormatsNodeAndPath(t *testing.T) {
	assert.Equal(t, "3/top", vertexID(skel.Side{NodeID: 3, Path: "top"}))
}

func TestNumberingOrdersChainByDepth(t *testing.T) {
	sk := twoSheetChain()
	g := buildGraph(sk)
	orders, err := numbering(g, "0/bottom")
	require.NoError(t, err)
	o0, ok := orderOf(orders, "0/bottom")
	require.True(t, ok)
	o1, ok := orderOf(orders, "1/top")
	require.True(t, ok)
	assert.Less(t, o0.depth, o1.depth)
}

func TestNumberingRejectsUnknownStart(t *testing.T) {
	sk := twoSheetChain()
	g := buildGraph(sk)
	_, err := numbering(g, "99/bottom")
	assert.Error(t, err)
}

func TestNumberingDetectsDisconnectedComponent(t *testing.T) {
	sk := twoSheetChain()
	sk.Nodes = append(sk.Nodes, skel.Node{ID: 2, Kind: skel.Sheet, Interfaces: map[string]int{}})
	g := buildGraph(sk)
	_, err := numbering(g, "0/bottom")
	assert.Error(t, err)
}

func TestPathReachesFindsConnectedVertex(t *testing.T) {
	sk := twoSheetChain()
	g := buildGraph(sk)
	assert.True(t, pathReaches(g, "0/bottom", "1/top"))
	assert.True(t, pathReaches(g, "0/bottom", "0/bottom"))
}

func TestPathReachesFalseWhenMissing(t *testing.T) {
	sk := twoSheetChain()
	g := buildGraph(sk)
	assert.False(t, pathReaches(g, "0/bottom", "99/x"))
}

func TestPlanLinearChainEndsYarn(t *testing.T) {
	sk := twoSheetChain()
	blocks, err := Plan(sk, 0, "bottom", 3)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].YarnStarting)
	assert.True(t, blocks[len(blocks)-1].YarnEnding)
	assert.Equal(t, 0, blocks[0].NodeID)
	assert.Equal(t, 1, blocks[1].NodeID)
}

// splitBothBranchesConnected builds a Split node with degree 2, folded,
// both branches connected to independent sheets.
func splitBothBranchesConnected() *skel.Skeleton {
	return &skel.Skeleton{
		Nodes: []skel.Node{
			{ID: 0, Kind: skel.Split, Folded: true, Branches: []int{0, 1},
				Interfaces: map[string]int{"branches/0": 0, "branches/1": 1}},
			{ID: 1, Kind: skel.Sheet, Interfaces: map[string]int{"bottom": 0}},
			{ID: 2, Kind: skel.Sheet, Interfaces: map[string]int{"bottom": 1}},
		},
		Interfaces: []skel.Interface{
			{ID: 0, A: skel.Side{NodeID: 0, Path: "branches/0"}, B: skel.Side{NodeID: 1, Path: "bottom"}},
			{ID: 1, A: skel.Side{NodeID: 0, Path: "branches/1"}, B: skel.Side{NodeID: 2, Path: "bottom"}},
		},
	}
}

func TestPlanSplitBothBranchesConnectedFromBase(t *testing.T) {
	sk := splitBothBranchesConnected()
	blocks, err := Plan(sk, 0, "base", 3)
	require.NoError(t, err)
	require.NotEmpty(t, blocks)
	assert.Equal(t, 0, blocks[0].NodeID)
	assert.True(t, blocks[0].YarnStarting)
	// The first connected branch is taken immediately; the other becomes a
	// fresh start once the queue drains.
	var sawBranchNode bool
	for _, b := range blocks {
		if b.NodeID == 1 || b.NodeID == 2 {
			sawBranchNode = true
		}
	}
	assert.True(t, sawBranchNode)
	assert.True(t, blocks[len(blocks)-1].YarnEnding)
}

func TestClassifyBranchesSeparatesConnectedFromDisconnected(t *testing.T) {
	p := &planner{}
	n := skel.Node{ID: 0, Branches: []int{0, 1, 2}, Interfaces: map[string]int{"branches/0": 0, "branches/2": 1}}
	connected, disconnected := p.classifyBranches(n)
	assert.Equal(t, []int{0, 2}, connected)
	assert.Equal(t, []int{1}, disconnected)
}
