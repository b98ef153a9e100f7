// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package alphabet defines the closed instruction alphabet emitted into a
// raster line, plus the pure encoders that turn a desired needle move,
// transfer or cross pairing into one of those instruction codes.
//
// Every instruction is a single byte (0..255). Dynamic prototype-style
// dispatch on option/instruction names, as the original patterning system
// used, is replaced here by a sealed set of typed constants: there is no way
// to construct a Code that is not one of the values below.
package alphabet

import "fmt"

// Code is a raw machine instruction byte written into a raster cell.
type Code uint8

// Side identifies which bed(s) an instruction addresses.
type Side uint8

const (
	SideNone Side = iota
	SideFront
	SideBack
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	case SideBoth:
		return "both"
	default:
		return "none"
	}
}

// Opposite returns the other bed, or SideNone/SideBoth unchanged.
func (s Side) Opposite() Side {
	switch s {
	case SideFront:
		return SideBack
	case SideBack:
		return SideFront
	default:
		return s
	}
}

// Effect describes how an instruction changes needle occupancy.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectSame
	EffectOpposite
	EffectBoth
)

// Direction is the carriage/carrier travel direction for a raster line.
type Direction uint8

const (
	// DirTransfer (1) marks a knit-cancel line: no carriage travel, used
	// for transfer/move lines and for lines issued before the carrier has
	// started knitting.
	DirTransfer Direction = 1
	// DirLeft (6) and DirRight (7) are the two carriage travel directions.
	DirLeft  Direction = 6
	DirRight Direction = 7
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("dir(%d)", uint8(d))
	}
}

// Invert flips LEFT<->RIGHT; DirTransfer is left as-is.
func (d Direction) Invert() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Family groups codes that are dispatched on together.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyKnit
	FamilyMiss
	FamilyTuck
	FamilyCross
	FamilyMove
	FamilyTransfer
	FamilySplit
	FamilyLinkProcess
	FamilyCarrierPosition
)

// Knit family: 1, 2, 3, 51, 52.
const (
	KnitFront       Code = 1
	KnitBack        Code = 2
	KnitBoth        Code = 3 // fbknit: both beds in one pass
	KnitFrontSlider Code = 51
	KnitBackSlider  Code = 52
)

// Miss family: 16, 116, 117, 216, 217.
const (
	MissFront      Code = 16
	MissBack       Code = 116
	MissSplitFront Code = 117
	MissSplitBack  Code = 216
	MissNone       Code = 217
)

// Tuck family: 11, 12, 88, 171, 172, 175.
const (
	TuckFront       Code = 11
	TuckBack        Code = 12
	TuckBoth        Code = 88 // kickback: both beds
	TuckFrontSlider Code = 171
	TuckBackSlider  Code = 172
	TuckFar         Code = 175 // far tuck; castengine's farTucks writes TuckFront/TuckBack, not this code
)

// Cross family: 4, 5, 10, 14, 15, 100, plus joint code 150.
const (
	CrossBelow       Code = 4   // even ordinal, below side
	CrossAbove       Code = 5   // even ordinal, above side
	CrossBelowSecond Code = 10  // odd ordinal, below side
	CrossAboveSecond Code = 14  // odd ordinal, above side
	CrossSpecial     Code = 15  // three-or-more-way cross, self-paired
	CrossFB          Code = 100 // cross that also switches bed, self-paired
	CrossJoint       Code = 150
)

// Move family: same-bed slide, used to reposition needles ahead of a cross
// or cable pairing without transferring a loop. 61..97, front/back x
// left/right x steps 1..7.
const (
	moveFrontLeftBase  Code = 61
	moveFrontRightBase Code = 70
	moveBackLeftBase   Code = 79
	moveBackRightBase  Code = 88
)

// Transfer family: 20..90, with direction and bed-switch variants.
const (
	transferSameBedBase   Code = 20 // + |delta|, delta in 0..7
	TransferSwitchF2B     Code = 30 // bed switch, no shift (delta=0)
	TransferSwitchB2F     Code = 31
	transferSwitchF2BBase Code = 32 // + delta, delta in 1..7
	transferSwitchB2FBase Code = 40 // + delta, delta in 1..7
	TransferSwitchKnitF2B Code = 48 // switch-then-knit, delta=0
	TransferSwitchKnitB2F Code = 49
	DoubleTransferRestackF Code = 56 // restack marker, front source
	DoubleTransferRestackB Code = 57
)

// Split family: 101, 102, 106..129.
const (
	SplitFront    Code = 101
	SplitBack     Code = 102
	splitIntoBase Code = 106 // + delta + MaxSplitDelta, delta in -MaxSplitDelta..MaxSplitDelta
)

// Singletons.
const (
	LinkProcess     Code = 99
	CarrierPosition Code = 13
)

// MaxTransferDelta is the largest |target-source| a single transfer
// instruction can encode.
const MaxTransferDelta = 7

// MaxSplitDelta is the largest |target-source| a split instruction can
// encode (split distance |delta| must be <= 2).
const MaxSplitDelta = 2
