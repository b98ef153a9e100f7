package schedule

import (
	farm "github.com/dgryski/go-farm"
	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"github.com/pkg/errors"
)

// order is the topological position assigned to every nodeId/path vertex,
// keyed by a farm hash of the vertex id rather than the string itself -- an
// in-memory lookup-speed detail, not a wire format.
type order struct {
	depth int
	id    string // kept for error messages and deterministic iteration
}

func orderKey(id string) uint64 { return farm.Hash64([]byte(id)) }

// numbering runs the topological numbering: breadth-first from the chosen
// start side, using bfs.BFS's unweighted shortest-path depth as the order
// counter (equivalent to an incremented-by-one-per-step forward/backward
// walk, since every internal/interface edge here has unit length and the
// graph is undirected). A structural cycle -- detected directly via
// dfs.DetectCycles rather than re-derived from an order-exceeds-bound
// heuristic -- is reported as ErrTopology: a dependency loop, not
// knittable. A start vertex absent from g, or unreached vertices left over
// after the walk, report ErrTopology for a disconnected graph component
// without a startable interface.
func numbering(g *core.Graph, startID string) (map[uint64]order, error) {
	if !g.HasVertex(startID) {
		return nil, errors.Wrapf(ErrTopology, "start vertex %q not in shape graph", startID)
	}

	hasCycle, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		return nil, errors.Wrap(err, "schedule: cycle detection")
	}
	if hasCycle {
		return nil, errors.Wrapf(ErrTopology, "dependency loop; not knittable (%v)", cycles)
	}

	result, err := bfs.BFS(g, startID)
	if err != nil {
		return nil, errors.Wrap(err, "schedule: topological numbering")
	}

	orders := make(map[uint64]order, len(result.Depth))
	for id, depth := range result.Depth {
		orders[orderKey(id)] = order{depth: depth, id: id}
	}

	allVertices := g.Vertices()
	if len(result.Order) != len(allVertices) {
		for _, id := range allVertices {
			if _, ok := result.Depth[id]; !ok {
				return nil, errors.Wrapf(ErrTopology, "disconnected graph component without startable interface: %q unreachable from %q", id, startID)
			}
		}
	}
	return orders, nil
}

// orderOf reads a previously computed order by vertex id.
func orderOf(orders map[uint64]order, id string) (order, bool) {
	o, ok := orders[orderKey(id)]
	return o, ok
}
