// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package infer implements sidedness and size inference over the shape
// graph via bounded fixed-point propagation.
// Both operations are consulted by the scheduler and by shape/layout
// assembly (external collaborators); this package only computes the
// answers.
package infer

import (
	"sort"

	"github.com/minio/highwayhash"
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/skel"
)

// SideKey names one course side of a node -- a path into its named
// courses ("bottom", "top", "branches/0", ...).
type SideKey struct {
	Node int
	Path string
}

// maxSidednessPasses bounds the fixed-point loop: there cannot be more
// useful propagation passes than there are nodes, each contributing at most
// one new determination per pass.
func maxSidednessPasses(n int) int {
	if n < 4 {
		return 8
	}
	return 2*n + 4
}

// Sidedness computes, for every node/path combination, whether that
// course is laid out on both beds ("two-sided"). Sheet nodes in AUTO mode
// and Split base paths are resolved by iterating to a fixed point over
// their connected neighbors; the loop is bounded and uses a highwayhash
// digest of the running snapshot to detect convergence cheaply.
func Sidedness(sk *skel.Skeleton) (map[SideKey]bool, error) {
	state := map[SideKey]bool{}
	pending := map[SideKey]bool{}

	for _, n := range sk.Nodes {
		switch n.Kind {
		case skel.Sheet:
			switch n.Sheet {
			case skel.Flat:
				state[SideKey{n.ID, "bottom"}] = false
				state[SideKey{n.ID, "top"}] = false
			case skel.Cylinder:
				state[SideKey{n.ID, "bottom"}] = !closedInterface(sk, n, "bottom")
				state[SideKey{n.ID, "top"}] = !closedInterface(sk, n, "top")
			case skel.Auto:
				pending[SideKey{n.ID, "bottom"}] = true
				pending[SideKey{n.ID, "top"}] = true
			}
		case skel.Custom:
			state[SideKey{n.ID, "bottom"}] = n.TwoSided
			state[SideKey{n.ID, "top"}] = n.TwoSided
		case skel.Joint:
			state[SideKey{n.ID, "bottom"}] = true
			state[SideKey{n.ID, "top"}] = true
		case skel.Split:
			for i := range n.Branches {
				key := SideKey{n.ID, branchPath(i)}
				if n.Folded {
					pending[key] = true
				} else {
					state[key] = false
				}
			}
			pending[SideKey{n.ID, "base"}] = true
		}
	}

	prevDigest := [highwayhash.Size]byte{}
	passes := maxSidednessPasses(len(sk.Nodes))
	for pass := 0; pass < passes && len(pending) > 0; pass++ {
		progressed := false
		for key := range pending {
			n, ok := sk.Node(key.Node)
			if !ok {
				delete(pending, key)
				continue
			}
			if v, ok := resolveAuto(sk, n, key, state); ok {
				state[key] = v
				delete(pending, key)
				progressed = true
			}
		}
		digest := highwayhash.Sum(snapshotBytes(state), zeroKey[:])
		if digest == prevDigest && !progressed {
			break
		}
		prevDigest = digest
		if !progressed {
			break
		}
	}

	// Anything still pending could not be determined from its neighbors;
	// default to two-sided, the joint default.
	for key := range pending {
		state[key] = true
	}
	return state, nil
}

var zeroKey = [32]byte{}

func branchPath(i int) string {
	return "branches/" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// closedInterface reports whether the named interface of n is a closed
// tube boundary.
func closedInterface(sk *skel.Skeleton, n skel.Node, name string) bool {
	id, ok := n.Interfaces[name]
	if !ok {
		return false
	}
	itf, ok := sk.Interface(id)
	if !ok {
		return false
	}
	return itf.Closed
}

// resolveAuto attempts to resolve one AUTO/Split-base key from its
// already-known neighbors. It returns ok=false if neighbors are not yet
// resolved.
func resolveAuto(sk *skel.Skeleton, n skel.Node, key SideKey, state map[SideKey]bool) (bool, bool) {
	if n.Kind == skel.Split && key.Path == "base" {
		// "otherwise inferred from the base side": take the majority of
		// resolved branch sidedness.
		twoSided, total := 0, 0
		for i := range n.Branches {
			if v, ok := state[SideKey{n.ID, branchPath(i)}]; ok {
				total++
				if v {
					twoSided++
				}
			}
		}
		if total == 0 || total < len(n.Branches) {
			return false, false
		}
		return twoSided*2 >= total, true
	}
	if n.Kind == skel.Split && n.Folded {
		// Folded branch sidedness follows the resolved base.
		if v, ok := state[SideKey{n.ID, "base"}]; ok {
			return v, true
		}
		return false, false
	}
	// Sheet AUTO: propagate from connected interface neighbors.
	id, ok := n.Interfaces[key.Path]
	if !ok {
		return false, false
	}
	itf, ok := sk.Interface(id)
	if !ok {
		return false, false
	}
	other := itf.A
	if other.NodeID == n.ID && other.Path == key.Path {
		other = itf.B
	}
	if v, ok := state[SideKey{other.NodeID, other.Path}]; ok {
		return v, true
	}
	return false, false
}

func snapshotBytes(state map[SideKey]bool) []byte {
	keys := make([]SideKey, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Node != keys[j].Node {
			return keys[i].Node < keys[j].Node
		}
		return keys[i].Path < keys[j].Path
	})
	buf := make([]byte, 0, len(keys)*9)
	for _, k := range keys {
		buf = append(buf, byte(k.Node), byte(k.Node>>8))
		buf = append(buf, []byte(k.Path)...)
		if state[k] {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

// ErrUndecidable is a sentinel for a sidedness key that could not be
// resolved. Nothing in this module returns it: Sidedness always defaults
// unresolved keys instead of failing.
var ErrUndecidable = errors.New("infer: sidedness undecidable")
