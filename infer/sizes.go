package infer

import (
	"sort"

	"github.com/minio/highwayhash"

	"github.com/xionluhnis/knitc/skel"
)

// defaultMinSize is the documented fallback width used when a size is
// still undecidable after the propagation loop converges: inference
// failures degrade gracefully to a minimum size of 2 with a warning.
const defaultMinSize = 2

// maxSizePasses bounds Sizes's "iterate until a full pass yields no
// change" rule with a concrete ceiling proportional to graph size.
func maxSizePasses(n int) int {
	if n < 4 {
		return 8
	}
	return 2*n + 4
}

// Sizes computes the width of every reachable interface from start,
// following a three-table propagation (sizes known, minSizes lower bound,
// undefSizes open) until a full pass makes no progress, then defaults any
// remaining undefined entry to its minSizes bound or defaultMinSize.
// onWarn, if non-nil, is called once per defaulted entry so inference
// failures degrade gracefully with a logged warning.
func Sizes(sk *skel.Skeleton, start int, onWarn func(SideKey, int)) map[SideKey]int {
	sizes := map[SideKey]int{}
	minSizes := map[SideKey]int{}
	undef := map[SideKey]bool{}

	reachable := reachableNodes(sk, start)

	for id := range reachable {
		n, ok := sk.Node(id)
		if !ok {
			continue
		}
		switch n.Kind {
		case skel.Sheet, skel.Custom:
			if n.WidthBottom >= 0 {
				sizes[SideKey{n.ID, "bottom"}] = n.WidthBottom
			} else {
				undef[SideKey{n.ID, "bottom"}] = true
			}
			if n.WidthTop >= 0 {
				sizes[SideKey{n.ID, "top"}] = n.WidthTop
			} else {
				undef[SideKey{n.ID, "top"}] = true
			}
		case skel.Joint:
			undef[SideKey{n.ID, "bottom"}] = true
			undef[SideKey{n.ID, "top"}] = true
		case skel.Split:
			undef[SideKey{n.ID, "base"}] = true
			for i := range n.Branches {
				undef[SideKey{n.ID, branchPath(i)}] = true
			}
		}
	}

	prevDigest := [highwayhash.Size]byte{}
	passes := maxSizePasses(len(reachable))
	for pass := 0; pass < passes; pass++ {
		progressed := false
		for key := range undef {
			n, ok := sk.Node(key.Node)
			if !ok {
				delete(undef, key)
				continue
			}
			if v, ok := resolveSize(sk, n, key, sizes); ok {
				sizes[key] = v
				delete(undef, key)
				progressed = true
				continue
			}
			if v, ok := resolveMinBound(sk, n, key, sizes, minSizes); ok {
				if cur, has := minSizes[key]; !has || v > cur {
					minSizes[key] = v
					progressed = true
				}
			}
		}
		digest := highwayhash.Sum(sizeSnapshot(sizes, minSizes), zeroKey[:])
		if !progressed || digest == prevDigest {
			break
		}
		prevDigest = digest
	}

	for key := range undef {
		v := defaultMinSize
		if m, ok := minSizes[key]; ok && m > v {
			v = m
		}
		sizes[key] = v
		if onWarn != nil {
			onWarn(key, v)
		}
	}
	return sizes
}

// reachableNodes does a plain bounded adjacency walk over node interfaces;
// it does not need the full lvlath graph machinery the schedule package uses since
// it only needs set membership, not ordering.
func reachableNodes(sk *skel.Skeleton, start int) map[int]bool {
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n, ok := sk.Node(id)
		if !ok {
			continue
		}
		for _, itfID := range n.Interfaces {
			itf, ok := sk.Interface(itfID)
			if !ok {
				continue
			}
			for _, side := range [2]skel.Side{itf.A, itf.B} {
				if !seen[side.NodeID] {
					seen[side.NodeID] = true
					queue = append(queue, side.NodeID)
				}
			}
		}
	}
	return seen
}

func resolveSize(sk *skel.Skeleton, n skel.Node, key SideKey, sizes map[SideKey]int) (int, bool) {
	switch n.Kind {
	case skel.Joint:
		far, ok := farSideSize(sk, n, key.Path, sizes)
		if !ok {
			return 0, false
		}
		return far, true
	case skel.Split:
		if key.Path == "base" {
			return resolveSplitBase(n, sizes)
		}
		// Each branch path's width comes from whatever is connected across
		// its interface (a sheet/joint/custom node's own known width).
		return farSideSize(sk, n, key.Path, sizes)
	}
	return 0, false
}

func resolveSplitBase(n skel.Node, sizes map[SideKey]int) (int, bool) {
	sum := 0
	for i := range n.Branches {
		v, ok := sizes[SideKey{n.ID, branchPath(i)}]
		if !ok {
			return 0, false
		}
		sum += v
	}
	if len(n.Branches) == 0 {
		return 0, false
	}
	if n.Folded {
		return sum, true
	}
	// Two-sided, unfolded: branches run on opposite beds, so the base only
	// needs to accommodate roughly half the combined width.
	return (sum + 1) / 2, true
}

func farSideSize(sk *skel.Skeleton, n skel.Node, path string, sizes map[SideKey]int) (int, bool) {
	itfID, ok := n.Interfaces[path]
	if !ok {
		return 0, false
	}
	itf, ok := sk.Interface(itfID)
	if !ok {
		return 0, false
	}
	other := itf.A
	if other.NodeID == n.ID && other.Path == path {
		other = itf.B
	}
	v, ok := sizes[SideKey{other.NodeID, other.Path}]
	return v, ok
}

// resolveMinBound computes a lower bound for key when its exact value
// cannot yet be determined: joints are minimum-bounded when connected, and
// unfolded split branches are bounded by the base width divided by the
// branch count.
func resolveMinBound(sk *skel.Skeleton, n skel.Node, key SideKey, sizes, minSizes map[SideKey]int) (int, bool) {
	switch n.Kind {
	case skel.Joint:
		if far, ok := farSideSize(sk, n, key.Path, sizes); ok {
			return far, true
		}
	case skel.Split:
		if key.Path != "base" && !n.Folded {
			if base, ok := sizes[SideKey{n.ID, "base"}]; ok {
				return base / (maxInt(len(n.Branches), 1)), true
			}
		}
	}
	return 0, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func sizeSnapshot(sizes, minSizes map[SideKey]int) []byte {
	type entry struct {
		key SideKey
		val int
	}
	all := make([]entry, 0, len(sizes)+len(minSizes))
	for k, v := range sizes {
		all = append(all, entry{k, v})
	}
	for k, v := range minSizes {
		all = append(all, entry{SideKey{k.Node, k.Path + "#min"}, v})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].key.Node != all[j].key.Node {
			return all[i].key.Node < all[j].key.Node
		}
		return all[i].key.Path < all[j].key.Path
	})
	buf := make([]byte, 0, len(all)*12)
	for _, e := range all {
		buf = append(buf, byte(e.key.Node), byte(e.key.Node>>8))
		buf = append(buf, []byte(e.key.Path)...)
		buf = append(buf, byte(e.val), byte(e.val>>8), byte(e.val>>16), byte(e.val>>24))
	}
	return buf
}
