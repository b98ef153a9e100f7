// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package schedule implements the topological ordering of shape blocks
// and the single-carrier tracing (start/suspend/end) that turns a shape
// graph into a linear sequence of blocks for the pass compiler to drive.
package schedule

import (
	"github.com/katalvlaran/lvlath/core"
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/skel"
)

// vertexID is the "nodeId + '/' + path" identifier used to name graph
// vertices.
func vertexID(side skel.Side) string {
	return itoa(side.NodeID) + "/" + side.Path
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// buildGraph represents the shape graph as an undirected, unweighted
// core.Graph: one vertex per named course side (nodeId/path), with edges
// for each Interface (the externally-wired connections between nodes) plus
// internal edges within a node connecting its own sides (the path a
// traversal takes through the shape itself: sheet/joint/custom bottom<->
// top, split base<->each branch). A structural cycle in this graph is
// exactly a dependency loop: a shape graph that isn't knittable.
func buildGraph(sk *skel.Skeleton) *core.Graph {
	g := core.NewGraph()
	for _, n := range sk.Nodes {
		addInternalEdges(g, n)
	}
	for _, itf := range sk.Interfaces {
		a, b := vertexID(itf.A), vertexID(itf.B)
		if a == b {
			continue
		}
		g.AddVertex(a)
		g.AddVertex(b)
		if !g.HasEdge(a, b) {
			_, _ = g.AddEdge(a, b, 0)
		}
	}
	return g
}

func addInternalEdges(g *core.Graph, n skel.Node) {
	switch n.Kind {
	case skel.Sheet, skel.Joint, skel.Custom:
		a, b := itoa(n.ID)+"/bottom", itoa(n.ID)+"/top"
		g.AddVertex(a)
		g.AddVertex(b)
		if !g.HasEdge(a, b) {
			_, _ = g.AddEdge(a, b, 0)
		}
	case skel.Split:
		base := itoa(n.ID) + "/base"
		g.AddVertex(base)
		for i := range n.Branches {
			branch := itoa(n.ID) + "/branches/" + itoa(i)
			g.AddVertex(branch)
			if !g.HasEdge(base, branch) {
				_, _ = g.AddEdge(base, branch, 0)
			}
		}
	}
}

// ErrTopology is the sentinel topology error kind.
var ErrTopology = errors.New("schedule: topology error")
