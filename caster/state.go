package caster

import (
	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/raster"
)

// Needle tracks loop occupancy on both beds of a single needle slot.
type Needle struct {
	Front, Back bool
}

// OtherSide reports whether the opposite bed of this needle is occupied,
// the condition transfer.go and the transfer planner use to decide whether
// a move requires a slider.
func (n Needle) OtherSide(side alphabet.Side) bool {
	switch side {
	case alphabet.SideFront:
		return n.Back
	case alphabet.SideBack:
		return n.Front
	default:
		return n.Front || n.Back
	}
}

// Position names a needle index and bed.
type Position struct {
	Index int
	Side  alphabet.Side
}

// Caster is the yarn caster state machine.
type Caster struct {
	Store *raster.Store
	Bed   []Needle

	Row     int
	Current int
	Side    alphabet.Side
	Dir     alphabet.Direction
	Carrier uint8

	Options map[alphabet.OptionKey]uint8
	Flags   Mode

	line    []alphabet.Code
	last    alphabet.Code
	started bool

	// Verbose, when set, receives a trace callback for every primitive and
	// flush. The compiler package wires this to a debug-gated logger so the
	// hot path stays silent by default.
	Verbose func(format string, args ...interface{})
}

// New creates a caster over width needles, writing into store starting at
// row 0.
func New(store *raster.Store, width int, carrier uint8) *Caster {
	return &Caster{
		Store:   store,
		Bed:     make([]Needle, width),
		Row:     0,
		Current: 0,
		Side:    alphabet.SideFront,
		Dir:     alphabet.DirRight,
		Carrier: carrier,
		Options: map[alphabet.OptionKey]uint8{},
		line:    make([]alphabet.Code, width),
	}
}

func (c *Caster) width() int { return len(c.Bed) }

func (c *Caster) trace(format string, args ...interface{}) {
	if c.Verbose != nil {
		c.Verbose(format, args...)
	}
}

// occupied reports whether needle i holds a loop on side.
func (c *Caster) occupied(i int, side alphabet.Side) bool {
	if i < 0 || i >= c.width() {
		return false
	}
	switch side {
	case alphabet.SideFront:
		return c.Bed[i].Front
	case alphabet.SideBack:
		return c.Bed[i].Back
	default:
		return c.Bed[i].Front || c.Bed[i].Back
	}
}

// applyEffect updates bed occupancy at needle i for a code with the given
// side/effect, unless IgnoreBed is set.
func (c *Caster) applyEffect(i int, side alphabet.Side, effect alphabet.Effect) {
	if c.Flags.Has(IgnoreBed) || i < 0 || i >= c.width() {
		return
	}
	switch effect {
	case alphabet.EffectSame:
		c.setOccupied(i, side, true)
	case alphabet.EffectOpposite:
		c.setOccupied(i, side, false)
		c.setOccupied(i, side.Opposite(), true)
	case alphabet.EffectBoth:
		c.Bed[i].Front = true
		c.Bed[i].Back = true
	}
}

func (c *Caster) setOccupied(i int, side alphabet.Side, v bool) {
	switch side {
	case alphabet.SideFront:
		c.Bed[i].Front = v
	case alphabet.SideBack:
		c.Bed[i].Back = v
	case alphabet.SideBoth:
		c.Bed[i].Front = v
		c.Bed[i].Back = v
	}
}
