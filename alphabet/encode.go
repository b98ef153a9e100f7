package alphabet

import (
	"github.com/pkg/errors"
)

// delta returns target-source and its absolute value.
func delta(src, trg int) (d, abs int) {
	d = trg - src
	if d < 0 {
		return d, -d
	}
	return d, d
}

// TransferCode picks the instruction for moving a loop from (iSrc, sideSrc)
// to (iTrg, sideTrg), optionally knitting it immediately after (knitAfter).
// |target-source| must be <= MaxTransferDelta; knitAfter additionally
// requires a zero delta and a side change.
func TransferCode(iSrc int, sideSrc Side, iTrg int, sideTrg Side, knitAfter bool) (Code, error) {
	d, abs := delta(iSrc, iTrg)
	if abs > MaxTransferDelta {
		return 0, errors.Errorf("transfer distance %d exceeds max %d", abs, MaxTransferDelta)
	}
	switchesSide := sideSrc != sideTrg && sideSrc != SideNone && sideTrg != SideNone

	if knitAfter {
		if d != 0 {
			return 0, errors.Errorf("knitAfter transfer requires delta=0, got %d", d)
		}
		if !switchesSide {
			return 0, errors.New("knitAfter transfer requires a side change")
		}
		if sideSrc == SideFront {
			return TransferSwitchKnitF2B, nil
		}
		return TransferSwitchKnitB2F, nil
	}

	if !switchesSide {
		// Same-bed move: shift within the current side.
		return transferSameBedBase + Code(abs), nil
	}

	if d == 0 {
		if sideSrc == SideFront {
			return TransferSwitchF2B, nil
		}
		return TransferSwitchB2F, nil
	}
	if sideSrc == SideFront {
		return transferSwitchF2BBase + Code(abs), nil
	}
	return transferSwitchB2FBase + Code(abs), nil
}

// TransferType picks the L13 option value for a group of transfers sharing
// a side, honoring whether sliders are required and whether the transfer is
// compulsive.
func TransferType(side Side, useSliders, compulsive bool) uint8 {
	var base uint8
	switch {
	case !compulsive && side == SideFront:
		base = 31
	case !compulsive && side == SideBack:
		base = 51
	case compulsive && side == SideFront:
		base = 81
	default: // compulsive && side == SideBack
		base = 91
	}
	if useSliders {
		base++
	}
	return base
}

// DirectionBetween returns the travel direction implied by moving from
// needle i0 to needle i1: DirLeft, DirRight, or DirTransfer if i0 == i1.
func DirectionBetween(i0, i1 int) Direction {
	switch {
	case i0 < i1:
		return DirRight
	case i0 > i1:
		return DirLeft
	default:
		return DirTransfer
	}
}

// MoveCode picks the same-bed slide instruction used to reposition a needle
// ahead of a cross or cable pairing, without transferring a loop.
func MoveCode(side Side, dir Direction, steps int) (Code, error) {
	if steps < 1 || steps > 7 {
		return 0, errors.Errorf("move steps %d out of range [1,7]", steps)
	}
	var base Code
	switch {
	case side == SideFront && dir == DirLeft:
		base = moveFrontLeftBase
	case side == SideFront && dir == DirRight:
		base = moveFrontRightBase
	case side == SideBack && dir == DirLeft:
		base = moveBackLeftBase
	case side == SideBack && dir == DirRight:
		base = moveBackRightBase
	default:
		return 0, errors.Errorf("move requires a definite side/direction, got %v/%v", side, dir)
	}
	return base + Code(steps), nil
}

// SplitIntoCode encodes a split that lands its increase target at an offset
// of delta from the source needle. |delta| must be <= MaxSplitDelta.
func SplitIntoCode(d int) (Code, error) {
	if d < -MaxSplitDelta || d > MaxSplitDelta {
		return 0, errors.Errorf("split distance %d exceeds max %d", d, MaxSplitDelta)
	}
	return splitIntoBase + Code(d+MaxSplitDelta), nil
}
