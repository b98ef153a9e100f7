package schedule

import (
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/skel"
)

// Block is one shape-block entry of the linear list Plan produces: a node
// visited through a chosen entry/exit path, with the yarn-tracing flags
// the pass compiler and cast-on/off engines need.
type Block struct {
	NodeID       int
	Paths        []string // named course paths traversed, e.g. ["continuity", "branches/0"]
	Courses      []int    // resolved course ids, in traversal order
	YarnStarting bool
	YarnEnding   bool
	YarnSuspending bool
	Order        int
}

type pendingStart struct {
	nodeID int
	path   string
	order  int
}

type queueEntry struct {
	nodeID       int
	entryPath    string
	yarnStarting bool
}

// planner carries the mutable state of one Plan call.
type planner struct {
	sk       *skel.Skeleton
	graph    *core.Graph
	orders   map[uint64]order
	visited  map[int]bool          // sheet/joint/custom nodes already emitted
	branchOK map[int]map[int]bool  // split node -> branch index -> visited
	starts   []pendingStart
	queue    []queueEntry
	blocks   []Block
	carrier  uint8
	current  string // vertex id the planner is conceptually positioned at
}

// Plan produces the linear block sequence and single-carrier trace for a
// shape graph, starting at startNode/startPath.
func Plan(sk *skel.Skeleton, startNode int, startPath string, carrier uint8) ([]Block, error) {
	g := buildGraph(sk)
	startID := itoa(startNode) + "/" + startPath
	orders, err := numbering(g, startID)
	if err != nil {
		return nil, err
	}

	p := &planner{
		sk:       sk,
		graph:    g,
		orders:   orders,
		visited:  map[int]bool{},
		branchOK: map[int]map[int]bool{},
		carrier:  carrier,
		current:  startID,
	}
	p.queue = append(p.queue, queueEntry{nodeID: startNode, entryPath: startPath, yarnStarting: true})

	for {
		if len(p.queue) == 0 {
			if len(p.starts) == 0 {
				break
			}
			sort.Slice(p.starts, func(i, j int) bool { return p.starts[i].order < p.starts[j].order })
			next := p.starts[0]
			p.starts = p.starts[1:]
			p.queue = append(p.queue, queueEntry{nodeID: next.nodeID, entryPath: next.path, yarnStarting: true})
		}
		entry := p.queue[0]
		p.queue = p.queue[1:]
		if err := p.visit(entry); err != nil {
			return nil, err
		}
	}

	if len(p.blocks) > 0 {
		p.blocks[len(p.blocks)-1].YarnEnding = true
	}
	return p.blocks, nil
}

func (p *planner) vertexOrder(nodeID int, path string) int {
	if o, ok := orderOf(p.orders, itoa(nodeID)+"/"+path); ok {
		return o.depth
	}
	return 0
}

func (p *planner) visit(entry queueEntry) error {
	n, ok := p.sk.Node(entry.nodeID)
	if !ok {
		return errors.Wrapf(ErrTopology, "unknown node %d in schedule queue", entry.nodeID)
	}
	p.current = itoa(entry.nodeID) + "/" + entry.entryPath
	switch n.Kind {
	case skel.Sheet, skel.Joint, skel.Custom:
		return p.visitLinear(n, entry)
	case skel.Split:
		if entry.entryPath == "base" {
			return p.visitSplitFromBase(n, entry)
		}
		return p.visitSplitFromBranch(n, entry)
	default:
		return errors.Wrapf(ErrTopology, "node %d has unknown kind", n.ID)
	}
}

// visitLinear handles Sheet/Joint/Custom nodes: one block, ascending if
// entered at "bottom" else descending, then advances across the opposite
// interface or ends the yarn.
func (p *planner) visitLinear(n skel.Node, entry queueEntry) error {
	if p.visited[n.ID] {
		return nil
	}
	p.visited[n.ID] = true

	ascending := entry.entryPath != "top"
	courses := n.Courses
	if !ascending {
		courses = reversed(courses)
	}
	block := Block{
		NodeID:       n.ID,
		Paths:        []string{entry.entryPath},
		Courses:      courses,
		YarnStarting: entry.yarnStarting,
		Order:        p.vertexOrder(n.ID, entry.entryPath),
	}

	oppositePath := "top"
	if !ascending {
		oppositePath = "bottom"
	}
	itfID, hasOpposite := n.Interfaces[oppositePath]
	if !hasOpposite {
		block.YarnEnding = true
		p.blocks = append(p.blocks, block)
		return nil
	}
	itf, ok := p.sk.Interface(itfID)
	if !ok {
		block.YarnEnding = true
		p.blocks = append(p.blocks, block)
		return nil
	}
	p.blocks = append(p.blocks, block)
	neighbor := otherSide(itf, n.ID, oppositePath)
	p.queue = append(p.queue, queueEntry{nodeID: neighbor.NodeID, entryPath: neighbor.Path})
	return nil
}

// visitSplitFromBase handles a Split node entered from its base.
func (p *planner) visitSplitFromBase(n skel.Node, entry queueEntry) error {
	connected, disconnected := p.classifyBranches(n)

	if len(disconnected) > 0 {
		first := disconnected[0]
		p.blocks = append(p.blocks, Block{
			NodeID:       n.ID,
			Paths:        []string{"continuity", branchPath(first)},
			Courses:      n.Courses,
			YarnStarting: entry.yarnStarting,
			YarnEnding:   true,
			Order:        p.vertexOrder(n.ID, "base"),
		})
		p.markBranch(n.ID, first)
		for _, idx := range disconnected[1:] {
			p.blocks = append(p.blocks, Block{
				NodeID:       n.ID,
				Paths:        []string{branchPath(idx)},
				YarnStarting: true,
				YarnEnding:   true,
				Order:        p.vertexOrder(n.ID, branchPath(idx)),
			})
			p.markBranch(n.ID, idx)
		}
		for _, idx := range connected {
			p.addStart(n.ID, branchPath(idx))
			p.markBranch(n.ID, idx)
		}
		return nil
	}

	if len(connected) == 0 {
		return errors.Wrapf(ErrTopology, "split %d has no branches", n.ID)
	}
	sort.Slice(connected, func(i, j int) bool {
		return p.vertexOrder(n.ID, branchPath(connected[i])) < p.vertexOrder(n.ID, branchPath(connected[j]))
	})
	taken := connected[0]
	p.blocks = append(p.blocks, Block{
		NodeID:         n.ID,
		Paths:          []string{"continuity", branchPath(taken)},
		Courses:        n.Courses,
		YarnStarting:   entry.yarnStarting,
		YarnSuspending: len(connected) > 1,
		Order:          p.vertexOrder(n.ID, "base"),
	})
	p.markBranch(n.ID, taken)
	itfID := n.Interfaces[branchPath(taken)]
	itf, _ := p.sk.Interface(itfID)
	neighbor := otherSide(itf, n.ID, branchPath(taken))
	p.queue = append(p.queue, queueEntry{nodeID: neighbor.NodeID, entryPath: neighbor.Path})

	for _, idx := range connected[1:] {
		p.addStart(n.ID, branchPath(idx))
	}
	return nil
}

// visitSplitFromBranch handles a Split node entered from one of its
// branches.
func (p *planner) visitSplitFromBranch(n skel.Node, entry queueEntry) error {
	idx, ok := branchIndex(entry.entryPath)
	if ok {
		p.markBranch(n.ID, idx)
	}
	connected, _ := p.classifyBranches(n)
	allOthersVisited := true
	for _, other := range connected {
		if other == idx {
			continue
		}
		if !p.branchOK[n.ID][other] {
			allOthersVisited = false
			break
		}
	}

	if !allOthersVisited {
		p.blocks = append(p.blocks, Block{
			NodeID:         n.ID,
			Paths:          []string{entry.entryPath},
			YarnEnding:     true,
			YarnSuspending: true,
			Order:          p.vertexOrder(n.ID, entry.entryPath),
		})
		for _, other := range connected {
			if other == idx || p.branchOK[n.ID][other] {
				continue
			}
			src, ok := p.unfinishedReachableSource(n, other)
			if !ok {
				continue
			}
			if pathReaches(p.graph, p.current, itoa(src.NodeID)+"/"+src.Path) {
				p.addStart(src.NodeID, src.Path)
				break
			}
		}
		return nil
	}

	p.blocks = append(p.blocks, Block{
		NodeID:  n.ID,
		Paths:   []string{"continuity", "base"},
		Courses: n.Courses,
		Order:   p.vertexOrder(n.ID, "base"),
	})
	itfID, hasOpposite := n.Interfaces["base"]
	if !hasOpposite {
		p.blocks[len(p.blocks)-1].YarnEnding = true
		return nil
	}
	itf, _ := p.sk.Interface(itfID)
	neighbor := otherSide(itf, n.ID, "base")
	p.queue = append(p.queue, queueEntry{nodeID: neighbor.NodeID, entryPath: neighbor.Path})
	return nil
}

func (p *planner) classifyBranches(n skel.Node) (connected, disconnected []int) {
	for i := range n.Branches {
		if _, ok := n.Interfaces[branchPath(i)]; ok {
			connected = append(connected, i)
		} else {
			disconnected = append(disconnected, i)
		}
	}
	return
}

func (p *planner) markBranch(nodeID, idx int) {
	if p.branchOK[nodeID] == nil {
		p.branchOK[nodeID] = map[int]bool{}
	}
	p.branchOK[nodeID][idx] = true
}

func (p *planner) addStart(nodeID int, path string) {
	p.starts = append(p.starts, pendingStart{nodeID: nodeID, path: path, order: p.vertexOrder(nodeID, path)})
}

// unfinishedReachableSource finds a starting point for an unfinished
// branch reachable from the split node, so a fresh yarn start can be
// emitted from it.
func (p *planner) unfinishedReachableSource(n skel.Node, branch int) (skel.Side, bool) {
	itfID, ok := n.Interfaces[branchPath(branch)]
	if !ok {
		return skel.Side{}, false
	}
	itf, ok := p.sk.Interface(itfID)
	if !ok {
		return skel.Side{}, false
	}
	return otherSide(itf, n.ID, branchPath(branch)), true
}

func branchPath(i int) string { return "branches/" + itoa(i) }

func branchIndex(path string) (int, bool) {
	const prefix = "branches/"
	if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
		return 0, false
	}
	n := 0
	for _, c := range path[len(prefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func otherSide(itf skel.Interface, nodeID int, path string) skel.Side {
	if itf.A.NodeID == nodeID && itf.A.Path == path {
		return itf.B
	}
	return itf.A
}

func reversed(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}
