// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package transfer implements the transfer planner that partitions a
// batch of stitch moves into ordered sub-passes the yarn caster emits one
// at a time.
package transfer

import (
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/caster"
)

// Entry is one stitch-level transfer request: a loop moving from Source to
// Target, possibly as part of a cross/cable pairing.
type Entry struct {
	Source alphabet.Side
	SrcIdx int
	Target alphabet.Side
	TrgIdx int
	// HasTarget is false for entries the step-1 partition should skip
	// outright (no target, or target==source with no restack).
	HasTarget bool
	Restack   bool
	Cross     bool
	Above     bool // cross ordinal side, passed to alphabet.EvenSideCrossCode
	// PairIndex, when >= 0, names the other Entry index this one must move
	// together with as a cable pair. Restack and move are mutually
	// exclusive; a cross pair must close before leaving the group.
	PairIndex int
}

// ErrConstraintLoop is returned when cross-side ordering constraints form a
// cycle.
var ErrConstraintLoop = errors.New("transfer: cross-side constraint loop")

// group is one side's queue of entries plus the computed sliders flag.
type group struct {
	side    alphabet.Side
	entries []Entry
	sliders bool
}

// Plan partitions entries into ordered sub-groups and emits each one
// through c via instrBlock, preserving the carrier's committed position and
// side across the whole batch.
func Plan(c *caster.Caster, entries []Entry) error {
	front, back := partition(entries)

	pre, front, back, err := extractConstrained(front, back)
	if err != nil {
		return err
	}

	groups := splitSliderConflicts(c, front, alphabet.SideFront)
	groups = append(groups, splitSliderConflicts(c, back, alphabet.SideBack)...)

	all := append([]group(nil), pre...)
	all = append(all, groups...)

	savedIdx, savedSide := c.Current, c.Side
	for _, g := range all {
		emit(c, g)
	}
	c.Current, c.Side = savedIdx, savedSide
	return nil
}

// partition groups entries by source side, skipping any with no target or
// a no-op move.
func partition(entries []Entry) (front, back []Entry) {
	for _, e := range entries {
		if !e.HasTarget {
			continue
		}
		if e.Source == e.Target && e.SrcIdx == e.TrgIdx && !e.Restack {
			continue
		}
		switch e.Source {
		case alphabet.SideFront:
			front = append(front, e)
		case alphabet.SideBack:
			back = append(back, e)
		}
	}
	return
}

// extractConstrained finds cross-side ordering constraints: for each entry
// whose target side differs from its source, if the target needle is itself a
// source on the opposite-side queue, that opposite-side entry must move
// first. When constrained entries exist on both sides, the compile fails
// with ErrConstraintLoop; no needle-level cycle check is made, so this also
// rejects cross-side constraints that do not form a cycle. When only one
// side has constrained entries, they (and any cable partner, which must
// move as a unit) are pulled into a dedicated pre-pass group ahead of the
// two main queues.
func extractConstrained(front, back []Entry) (pre []group, newFront, newBack []Entry, err error) {
	opposesAsSource := func(side alphabet.Side, idx int, entries []Entry) bool {
		for _, e := range entries {
			if e.Source == side && e.SrcIdx == idx {
				return true
			}
		}
		return false
	}

	var constrainedFront, constrainedBack []Entry

	for _, e := range front {
		if e.Target != e.Source && opposesAsSource(e.Target, e.TrgIdx, back) {
			constrainedFront = append(constrainedFront, e)
		}
	}
	for _, e := range back {
		if e.Target != e.Source && opposesAsSource(e.Target, e.TrgIdx, front) {
			constrainedBack = append(constrainedBack, e)
		}
	}

	if len(constrainedFront) > 0 && len(constrainedBack) > 0 {
		// Both sides claim to need to move before the other: a cycle.
		return nil, nil, nil, errors.Wrapf(ErrConstraintLoop,
			"%d front and %d back entries both require precedence", len(constrainedFront), len(constrainedBack))
	}

	remove := func(all []Entry, drop []Entry) []Entry {
		if len(drop) == 0 {
			return all
		}
		dropped := map[int]bool{}
		for _, e := range drop {
			dropped[e.SrcIdx] = true
		}
		out := all[:0:0]
		for _, e := range all {
			if !dropped[e.SrcIdx] {
				out = append(out, e)
			}
		}
		return out
	}

	switch {
	case len(constrainedFront) > 0:
		pre = append(pre, group{side: alphabet.SideFront, entries: withPairs(constrainedFront, front)})
		newFront = remove(front, constrainedFront)
		newBack = back
	case len(constrainedBack) > 0:
		pre = append(pre, group{side: alphabet.SideBack, entries: withPairs(constrainedBack, back)})
		newBack = remove(back, constrainedBack)
		newFront = front
	default:
		newFront, newBack = front, back
	}
	return pre, newFront, newBack, nil
}

// withPairs extends a constrained subset with any cable-paired partner
// found in the full side queue, since paired stitches must move together.
func withPairs(subset, all []Entry) []Entry {
	have := map[int]bool{}
	for _, e := range subset {
		have[e.SrcIdx] = true
	}
	out := append([]Entry(nil), subset...)
	for _, e := range subset {
		if e.PairIndex < 0 || e.PairIndex >= len(all) {
			continue
		}
		partner := all[e.PairIndex]
		if !have[partner.SrcIdx] {
			have[partner.SrcIdx] = true
			out = append(out, partner)
		}
	}
	return out
}

// splitSliderConflicts determines where a slider is required: for an entry
// that moves on the same side while the other side of its source needle
// is already occupied (caster.Needle.OtherSide). If a queue
// mixes bed-switching entries with slider-requiring same-side entries, the
// bed-switching ones are split into their own preceding sub-group.
func splitSliderConflicts(c *caster.Caster, entries []Entry, side alphabet.Side) []group {
	if len(entries) == 0 {
		return nil
	}
	needsSliders := false
	var switching, sameSide []Entry
	for _, e := range entries {
		if e.Target != e.Source {
			switching = append(switching, e)
			continue
		}
		sameSide = append(sameSide, e)
		if e.SrcIdx >= 0 && e.SrcIdx < len(c.Bed) && c.Bed[e.SrcIdx].OtherSide(e.Source) {
			needsSliders = true
		}
	}
	if len(switching) > 0 && len(sameSide) > 0 && needsSliders {
		return []group{
			{side: side, entries: switching, sliders: needsSliders},
			{side: side, entries: sameSide, sliders: needsSliders},
		}
	}
	return []group{{side: side, entries: entries, sliders: needsSliders}}
}

// emit builds the instruction array for one sub-group, sets L13, issues
// the block through the caster, and updates bed occupancy (clear sources,
// then set targets).
func emit(c *caster.Caster, g group) {
	if len(g.entries) == 0 {
		return
	}
	needles := make([]int, len(g.entries))
	instrs := make([]alphabet.Code, len(g.entries))
	ordinal := 0
	crossSeen := 0
	for i, e := range g.entries {
		needles[i] = e.SrcIdx
		switch {
		case e.Restack:
			if e.Source == alphabet.SideFront {
				instrs[i] = alphabet.DoubleTransferRestackF
			} else {
				instrs[i] = alphabet.DoubleTransferRestackB
			}
		case e.Cross:
			instrs[i] = alphabet.EvenSideCrossCode(e.Above, ordinal)
			// A pair is two cross entries; advance after its second side.
			crossSeen++
			if crossSeen%2 == 0 {
				ordinal++
			}
		default:
			code, err := alphabet.TransferCode(e.SrcIdx, e.Source, e.TrgIdx, e.Target, false)
			if err != nil {
				code = alphabet.LinkProcess
			}
			instrs[i] = code
		}
	}

	c.AddOption(alphabet.L13, alphabet.TransferType(g.side, g.sliders, false))
	c.InstrBlock(instrs, needles, true)

	for _, e := range g.entries {
		setBedSide(c, e.SrcIdx, e.Source, false)
	}
	for _, e := range g.entries {
		setBedSide(c, e.TrgIdx, e.Target, true)
	}
}

// setBedSide updates caster bed occupancy directly, since InstrBlock (used
// for the raw instruction array here) writes the raster line without
// touching bed state itself.
func setBedSide(c *caster.Caster, idx int, side alphabet.Side, v bool) {
	if idx < 0 || idx >= len(c.Bed) {
		return
	}
	switch side {
	case alphabet.SideFront:
		c.Bed[idx].Front = v
	case alphabet.SideBack:
		c.Bed[idx].Back = v
	case alphabet.SideBoth:
		c.Bed[idx].Front = v
		c.Bed[idx].Back = v
	}
}
