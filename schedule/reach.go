package schedule

import (
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// pathReaches is a straight depth-first search through opposite sides of
// the graph, used when resolving a postponed split: does a path exist from
// fromID to toID at all, regardless of order.
func pathReaches(g *core.Graph, fromID, toID string) bool {
	if !g.HasVertex(fromID) || !g.HasVertex(toID) {
		return false
	}
	if fromID == toID {
		return true
	}
	found := false
	_, err := dfs.DFS(g, fromID, dfs.WithOnVisit(func(id string) error {
		if id == toID {
			found = true
		}
		return nil
	}))
	if err != nil {
		return false
	}
	return found
}
