// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package castengine implements the cast-on and cast-off engines the
// pass compiler dispatches to for CAST_ON/CAST_OFF passes.
package castengine

import (
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/caster"
)

// OnKind names a cast-on strategy.
type OnKind uint8

const (
	Interlock OnKind = iota
	Kickback
	Tuck
	Precast
	None
)

// OffKind names a cast-off strategy.
type OffKind uint8

const (
	Direct OffKind = iota
	Reverse
	Pickup
	OffNone
)

// ParseOnKind maps the Skeleton.Params.CastOnType string to an OnKind,
// defaulting to Interlock when unrecognized (matching the conservative
// "default to the safest cast-on" behavior the tracer otherwise asserts
// explicitly).
func ParseOnKind(s string) OnKind {
	switch s {
	case "kickback":
		return Kickback
	case "tuck":
		return Tuck
	case "precast":
		return Precast
	case "none":
		return None
	default:
		return Interlock
	}
}

// ParseOffKind maps the Skeleton.Params.CastOffType string to an OffKind.
func ParseOffKind(s string) OffKind {
	switch s {
	case "reverse":
		return Reverse
	case "pickup":
		return Pickup
	case "none":
		return OffNone
	default:
		return Direct
	}
}

// On casts needles on using the given strategy. circular selects the
// interlock/kickback variant used for tube starts; starting, when true,
// issues the manual yarn-insert option before anything else. Casting on
// fewer than two needles is a silent no-op, matching the refusal to
// special-case single-needle starts.
func On(c *caster.Caster, needles []int, circular bool, kind OnKind, starting bool) error {
	if starting {
		c.AddOption(alphabet.R15, alphabet.YarnInsertManual)
	}
	if len(needles) < 2 {
		return nil
	}
	switch kind {
	case Interlock:
		return onInterlock(c, needles, circular)
	case Kickback:
		return onKickback(c, needles, circular)
	case Tuck:
		return onTuck(c, needles)
	case Precast:
		return onPrecast(c, needles)
	case None:
		return nil
	default:
		return errors.Errorf("castengine: unknown cast-on kind %d", kind)
	}
}

// nearTucks places two tucks at the first two requested needles, in the
// direction the caster is travelling; if the caster's direction disagrees
// with the direction between the two needles, their order is swapped so
// the tucks are still laid down moving forward.
func nearTucks(c *caster.Caster, needles []int) {
	a, b := needles[0], needles[1]
	want := alphabet.DirectionBetween(a, b)
	if want != c.Dir {
		a, b = b, a
	}
	c.MoveTo(a, alphabet.SideFront, c.Dir).Tuck()
	c.MoveTo(b, alphabet.SideFront, c.Dir).Tuck()
}

// farTucks is nearTucks for the circular kickback start: tucks are placed
// at the two needles farthest apart in the requested set instead of the
// first two, since a tube has no single "near" end.
func farTucks(c *caster.Caster, needles []int) {
	sorted := append([]int(nil), needles...)
	sort.Ints(sorted)
	a, b := sorted[0], sorted[len(sorted)-1]
	want := alphabet.DirectionBetween(a, b)
	if want != c.Dir {
		a, b = b, a
	}
	c.MoveTo(a, alphabet.SideFront, c.Dir).Tuck()
	c.MoveTo(b, alphabet.SideFront, c.Dir).Tuck()
}

func onTuck(c *caster.Caster, needles []int) error {
	nearTucks(c, needles)
	return nil
}

// onInterlock lays the two near tucks, then a forward pass over every
// other needle followed by a return pass over the ones skipped
// (returnInterlock), or two alternating-parity passes for a circular start
// (circularInterlock).
func onInterlock(c *caster.Caster, needles []int, circular bool) error {
	nearTucks(c, needles)
	if circular {
		return circularInterlock(c, needles)
	}
	return returnInterlock(c, needles, 0, len(needles))
}

func circularInterlock(c *caster.Caster, needles []int) error {
	for parity := 0; parity < 2; parity++ {
		for i, n := range needles {
			if i%2 != parity {
				continue
			}
			c.MoveTo(n, alphabet.SideFront, c.Dir).Tuck()
		}
		c.Flush(nil, c.Dir)
	}
	return nil
}

// returnInterlock tucks every other needle in [start,end) going forward,
// then returns over the skipped needles. Partial reuses this over a
// restricted range.
func returnInterlock(c *caster.Caster, needles []int, start, end int) error {
	sub := needles[start:end]
	for i, n := range sub {
		if i%2 != 0 {
			continue
		}
		c.MoveTo(n, alphabet.SideFront, c.Dir).Tuck()
	}
	c.Flush(nil, c.Dir)
	for i := len(sub) - 1; i >= 0; i-- {
		if i%2 != 1 {
			continue
		}
		c.MoveTo(sub[i], alphabet.SideFront, c.Dir.Invert()).Tuck()
	}
	c.Flush(nil, c.Dir)
	return nil
}

// Partial exposes returnInterlock over an explicit sub-range, for internal
// callers that need to cast on a run within a larger needle set.
func Partial(c *caster.Caster, needles []int, start, end int) error {
	return returnInterlock(c, needles, start, end)
}

// onKickback lays down the initial tucks (near for flat, far for circular),
// then a kickback sequence: a both-bed tuck worked back over the same
// needles to anchor the first course before the main pattern begins.
func onKickback(c *caster.Caster, needles []int, circular bool) error {
	if circular {
		farTucks(c, needles)
	} else {
		nearTucks(c, needles)
	}
	for i := len(needles) - 1; i >= 0; i-- {
		c.MoveTo(needles[i], alphabet.SideFront, c.Dir.Invert()).KBKnit()
	}
	c.Flush(nil, c.Dir)
	return nil
}

// coverKey adapts an int needle index to llrb.Comparable so the precast
// cover can be deduplicated and ordered through an ordered-tree structure.
type coverKey int

func (k coverKey) Compare(b llrb.Comparable) int {
	o := b.(coverKey)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

// Cover computes the union of the active-group needle occupations across
// every nbed sharing the same group parent, deduplicated and sorted
// left-to-right. The result is sorted ascending, then reversed
// by the caller if the caster is travelling left.
func Cover(groups [][]int) []int {
	tree := &llrb.Tree{}
	for _, needles := range groups {
		for _, n := range needles {
			tree.Insert(coverKey(n))
		}
	}
	out := make([]int, 0, tree.Len())
	tree.Do(func(c llrb.Comparable) bool {
		out = append(out, int(c.(coverKey)))
		return false
	})
	return out
}

// onPrecast computes the cover over the requested needle groups (here just
// the one group passed in, since multi-nbed cover assembly is the pass
// compiler's job before calling in), lays near-tucks on its front side,
// knits it twice to close the base, then walks back to the first requested
// needle.
func onPrecast(c *caster.Caster, needles []int) error {
	cover := Cover([][]int{needles})
	if len(cover) == 0 {
		return errors.New("castengine: precast with empty cover")
	}
	sorted := append([]int(nil), cover...)
	if c.Dir == alphabet.DirLeft {
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	} else {
		sort.Ints(sorted)
	}
	if len(sorted) >= 2 {
		nearTucks(c, sorted)
	}
	for pass := 0; pass < 2; pass++ {
		for _, n := range sorted {
			c.MoveTo(n, alphabet.SideFront, c.Dir).Knit()
		}
		c.Flush(nil, c.Dir)
		c.Dir = c.Dir.Invert()
	}
	if len(needles) > 0 {
		c.MoveTo(needles[0], alphabet.SideFront, c.Dir)
	}
	return nil
}
