// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package passcompile implements the pass compiler that walks a
// skeleton's time-indexed needle beds and drives the yarn caster,
// cast-on/off engines and transfer planner one pass at a time.
package passcompile

import (
	"github.com/pkg/errors"

	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/castengine"
	"github.com/xionluhnis/knitc/caster"
	"github.com/xionluhnis/knitc/skel"
	"github.com/xionluhnis/knitc/transfer"
)

// Compile iterates beds[0:] in order and drives c through every pass.
// onKind/offKind select the cast-on/off strategy; sk resolves stitch ids
// to needle positions.
func Compile(c *caster.Caster, sk *skel.Skeleton, beds []skel.NeedleBed, onKind castengine.OnKind, offKind castengine.OffKind) error {
	for t, bed := range beds {
		for _, pass := range bed.Passes {
			if err := compilePass(c, sk, beds, t, bed, pass, onKind, offKind); err != nil {
				return errors.Wrapf(err, "pass compiler: bed %d", t)
			}
			c.Flush(nil, c.Dir)
		}
	}
	return nil
}

func compilePass(c *caster.Caster, sk *skel.Skeleton, beds []skel.NeedleBed, t int, bed skel.NeedleBed, pass skel.Pass, onKind castengine.OnKind, offKind castengine.OffKind) error {
	switch pass.Type {
	case skel.CastOn:
		return compileCastOn(c, sk, bed, pass, onKind)
	case skel.CastOff:
		return compileCastOff(c, sk, beds, t, bed, pass, offKind)
	case skel.Actions:
		setBedOptions(c, beds, t, bed, pass)
		c.AddOption(alphabet.R6, tensionFor(sk, pass))
		return compileActions(c, sk, bed, pass, onKind)
	case skel.Transfers:
		setBedOptions(c, beds, t, bed, pass)
		return compileTransfers(c, sk, pass)
	default:
		return errors.Errorf("unknown pass type %v", pass.Type)
	}
}

// needlesOf resolves every stitch in a pass's sequence to its needle index,
// in sequence order.
func needlesOf(sk *skel.Skeleton, seq []int) []int {
	out := make([]int, 0, len(seq))
	for _, st := range seq {
		if ref, ok := sk.StitchNeedle[st]; ok {
			out = append(out, ref.Index)
		}
	}
	return out
}

func compileCastOn(c *caster.Caster, sk *skel.Skeleton, bed skel.NeedleBed, pass skel.Pass, kind castengine.OnKind) error {
	c.AddOption(alphabet.R6, alphabet.TensionTightStart)
	needles := needlesOf(sk, pass.Sequence)
	n, ok := sk.Node(bed.ActiveGroup.ShapeID)
	circular := ok && n.Circular
	if err := castengine.On(c, needles, circular, kind, pass.YarnStarts); err != nil {
		return err
	}
	for _, idx := range needles {
		if idx >= 0 && idx < len(c.Bed) {
			c.Bed[idx].Front = true
		}
	}
	return nil
}

func compileCastOff(c *caster.Caster, sk *skel.Skeleton, beds []skel.NeedleBed, t int, bed skel.NeedleBed, pass skel.Pass, kind castengine.OffKind) error {
	c.AddOption(alphabet.R6, alphabet.TensionTightEnd)
	needles := needlesOf(sk, pass.Sequence)
	if err := castengine.Off(c, needles, kind, pass.YarnEnds); err != nil {
		return err
	}
	if pass.YarnEnds && t+1 < len(beds) {
		for i := 0; i < 3; i++ {
			c.Flush(nil, c.Dir)
		}
	}
	return nil
}

// setBedOptions sets R1 to the active group's expansion when both
// neighbor beds share the same shape (0 otherwise), R6 to NORMAL tension,
// and R11 to 101 when the pass is a short row (0 otherwise).
func setBedOptions(c *caster.Caster, beds []skel.NeedleBed, t int, bed skel.NeedleBed, pass skel.Pass) {
	r1 := uint8(0)
	if neighborsShareShape(beds, t) {
		r1 = uint8(bed.ActiveGroup.Expansion)
	}
	c.AddOption(alphabet.R1, r1)
	c.AddOption(alphabet.R6, alphabet.TensionNormal)
	r11 := uint8(0)
	if isShortRow(pass) {
		r11 = 101
	}
	c.AddOption(alphabet.R11, r11)
}

func neighborsShareShape(beds []skel.NeedleBed, t int) bool {
	if t-1 < 0 || t+1 >= len(beds) {
		return false
	}
	return beds[t-1].ActiveGroup.ShapeID == beds[t].ActiveGroup.ShapeID &&
		beds[t+1].ActiveGroup.ShapeID == beds[t].ActiveGroup.ShapeID
}

// isShortRow reads the pass's action tag, the representation the
// patterning DSL uses to flag a short row.
func isShortRow(pass skel.Pass) bool {
	return pass.ActionTag == "shortrow"
}

// tensionFor derives a tension value: base tension by maxDelta
// (0->5, 1-2->6, 3-4->7, else->8), loosened further by ceil(crossNum/5)
// once crossNum exceeds 4.
func tensionFor(sk *skel.Skeleton, pass skel.Pass) uint8 {
	maxDelta := 0
	crossCount := 0
	for _, st := range pass.Sequence {
		action, ok := pass.ActionMap[st]
		if !ok {
			continue
		}
		srcIdx := action.Source.Index
		for _, trg := range action.Targets {
			d := trg.Index - srcIdx
			if d < 0 {
				d = -d
			}
			if d > maxDelta {
				maxDelta = d
			}
		}
		if action.Pairing {
			crossCount++
		}
	}
	crossNum := crossCount / 2

	var base uint8
	switch {
	case maxDelta == 0:
		base = 5
	case maxDelta <= 2:
		base = 6
	case maxDelta <= 4:
		base = 7
	default:
		base = 8
	}
	if crossNum > 4 {
		base += uint8((crossNum + 4) / 5)
	}
	return base
}

// actionRun is a maximal sub-sequence of a pass's stitches sharing the same
// pre-pass occupancy state (a "casted" or "casting" run).
type actionRun struct {
	stitches []int
	casting  bool
}

func splitRuns(sk *skel.Skeleton, bed skel.NeedleBed, pass skel.Pass) []actionRun {
	var runs []actionRun
	for _, st := range pass.Sequence {
		casting := !isOccupied(sk, bed, st)
		if len(runs) > 0 && runs[len(runs)-1].casting == casting {
			runs[len(runs)-1].stitches = append(runs[len(runs)-1].stitches, st)
			continue
		}
		runs = append(runs, actionRun{stitches: []int{st}, casting: casting})
	}
	return runs
}

func isOccupied(sk *skel.Skeleton, bed skel.NeedleBed, stitch int) bool {
	ref, ok := sk.StitchNeedle[stitch]
	if !ok || ref.Index < 0 {
		return true
	}
	switch ref.Side {
	case alphabet.SideBack:
		return ref.Index < len(bed.StatesBack) && bed.StatesBack[ref.Index]
	default:
		return ref.Index < len(bed.StatesFront) && bed.StatesFront[ref.Index]
	}
}

// compileActions dispatches an ACTIONS pass: "casting" runs (stitches not
// yet occupied) get a partial cast-on ahead of their enclosed actions,
// unless the action is MISS/SPLIT_MISS or the pass isn't marked safeCast;
// every stitch then maps 1:1 to a caster primitive.
func compileActions(c *caster.Caster, sk *skel.Skeleton, bed skel.NeedleBed, pass skel.Pass, onKind castengine.OnKind) error {
	runs := splitRuns(sk, bed, pass)
	for _, run := range runs {
		if run.casting && pass.SafeCast && !allMissLike(pass, run.stitches) {
			needles := needlesOf(sk, run.stitches)
			if len(needles) >= 2 {
				if err := castengine.Partial(c, needles, 0, len(needles)); err != nil {
					return err
				}
			}
		}
		for i, st := range run.stitches {
			if err := compileOneAction(c, sk, pass, run.stitches, i, st); err != nil {
				return err
			}
		}
	}
	return nil
}

func allMissLike(pass skel.Pass, stitches []int) bool {
	for _, st := range stitches {
		action, ok := pass.ActionMap[st]
		if !ok {
			continue
		}
		if action.Kind != skel.Miss && action.Kind != skel.SplitMiss {
			return false
		}
	}
	return true
}

// compileOneAction positions the caster at the stitch's source (picking
// direction from the next stitch when it shares a side), sets L13, and
// dispatches to the matching primitive.
func compileOneAction(c *caster.Caster, sk *skel.Skeleton, pass skel.Pass, stitches []int, i, stitch int) error {
	action, ok := pass.ActionMap[stitch]
	if !ok {
		return nil
	}
	dir := c.Dir
	if i+1 < len(stitches) {
		if next, ok := pass.ActionMap[stitches[i+1]]; ok && next.Source.Side == action.Source.Side {
			dir = alphabet.DirectionBetween(action.Source.Index, next.Source.Index)
			if dir == alphabet.DirTransfer {
				dir = c.Dir
			}
		}
	}
	c.MoveTo(action.Source.Index, action.Source.Side, dir)
	c.AddOption(alphabet.L13, alphabet.TransferType(action.Source.Side, false, false))

	switch action.Kind {
	case skel.Knit:
		pknit(c, action.Reverse)
	case skel.Tuck:
		ptuck(c, action.Reverse)
	case skel.Miss, skel.SplitMiss:
		c.Miss()
	case skel.FBKnit:
		c.FBKnit()
	case skel.Split:
		c.SplitInto(action.IncreaseTarget.Index)
	case skel.Kickback:
		c.KBKnit()
	default:
		return errors.Errorf("passcompile: unsupported action kind %v", action.Kind)
	}
	return nil
}

// pknit resolves a KNIT action: a plain knit, or a slider-knit (Purl)
// when reverse is set.
func pknit(c *caster.Caster, reverse bool) {
	if reverse {
		c.Purl()
		return
	}
	c.Knit()
}

// ptuck resolves a TUCK action with a plain caster Tuck. The caster has no
// slider-tuck primitive (the alphabet's TuckFrontSlider/TuckBackSlider are
// not emitted here), so reverse is ignored.
func ptuck(c *caster.Caster, reverse bool) {
	c.Tuck()
}

func compileTransfers(c *caster.Caster, sk *skel.Skeleton, pass skel.Pass) error {
	entries := make([]transfer.Entry, 0, len(pass.Sequence))
	for _, st := range pass.Sequence {
		action, ok := pass.ActionMap[st]
		if !ok || len(action.Targets) == 0 {
			continue
		}
		trg := action.Targets[0]
		entries = append(entries, transfer.Entry{
			Source:    action.Source.Side,
			SrcIdx:    action.Source.Index,
			Target:    trg.Side,
			TrgIdx:    trg.Index,
			HasTarget: true,
			Restack:   action.Restack,
			Cross:     action.Pairing,
		})
	}
	return transfer.Plan(c, entries)
}
