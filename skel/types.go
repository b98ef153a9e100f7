// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package skel holds the plain Go data model for everything treated as
// externally given: the shape graph the scheduler (schedule) and inference
// (infer) packages walk, and the time-indexed needle beds and passes the
// pass compiler (passcompile) consumes. None of the types here carry
// behavior beyond small accessors -- shape assembly, yarn tracing, course
// binding and the patterning DSL that would normally populate them are
// external collaborators whose output this package only represents and
// decodes.
package skel

import "github.com/xionluhnis/knitc/alphabet"

// NodeKind categorizes a shape node the way the scheduler and inference
// passes dispatch on shape category.
type NodeKind uint8

const (
	Sheet NodeKind = iota
	Joint
	Custom
	Split
)

func (k NodeKind) String() string {
	switch k {
	case Sheet:
		return "sheet"
	case Joint:
		return "joint"
	case Custom:
		return "custom"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// SheetKind distinguishes the sidedness cases infer.Sidedness dispatches on
// for Sheet nodes.
type SheetKind uint8

const (
	Flat SheetKind = iota
	Cylinder
	Auto
)

// Side names one endpoint of an Interface: the node it belongs to and the
// named course path within that node (e.g. "top", "branches/0").
type Side struct {
	NodeID int
	Path   string
}

// Interface connects two node sides; shape tracing externally produces the
// wiring, the scheduler and inference packages only read it.
type Interface struct {
	ID    int
	A, B  Side
	Closed bool // true when this interface is a closed tube boundary (sheet top/bottom)
}

// Node is one entry of the flat shape-graph arena: nodes/interfaces are
// indexed by stable integer id rather than back-pointers, so the graph
// can hold cycles without invalidating references.
type Node struct {
	ID       int
	Kind     NodeKind
	Sheet    SheetKind // meaningful when Kind == Sheet
	Circular bool      // course.circular, consulted by cast-on/off
	Courses  []int     // ordered course ids, bottom to top
	// Named courses: bottom/top/base/continuity/branches are indices into
	// Courses, or -1 if not applicable.
	Bottom, Top, Base, Continuity int
	Branches                      []int
	// Interfaces by name ("bottom", "top", or "base" and "branches/i" for splits).
	Interfaces map[string]int // -> Interface.ID
	Expansion  int
	TwoSided   bool // Custom: courses[0].isTwoSided() / courses[last], already evaluated
	// WidthBottom/WidthTop are width(0)/width(1) as the external shape
	// evaluator computes them (sheet sizes evaluate width(t) at t=0 (bottom)
	// or t=1 (top)); -1 means not yet known.
	WidthBottom, WidthTop int
	// Folded is consulted by Split sidedness inference: false when not
	// folded, for a branch path.
	Folded bool
}

// PassType is the pass dispatch tag the pass compiler switches on.
type PassType uint8

const (
	CastOn PassType = iota
	CastOff
	Actions
	Transfers
)

// NeedleRef names a needle index/side pair, the unit Action uses for
// source/targets.
type NeedleRef struct {
	Index int
	Side  alphabet.Side
}

// ActionKind is the per-stitch action tag.
type ActionKind uint8

const (
	NoAction ActionKind = iota
	Knit
	Tuck
	Miss
	Split
	FBKnit
	Kickback
	SplitMiss
)

// Action is one stitch-level instruction request, as produced by the
// (external) patterning DSL and consumed by the pass compiler.
type Action struct {
	Kind           ActionKind
	Source         NeedleRef
	Targets        []NeedleRef
	Reverse        bool
	Casting        bool
	Pairing        bool
	Restack        bool
	IncreaseType   string
	IncreaseTarget NeedleRef
}

// Pass is one time-indexed-bed pass record.
type Pass struct {
	Type       PassType
	Sequence   []int // stitch ids, in caster-visit order
	ActionMap  map[int]Action
	YarnStarts bool
	YarnEnds   bool
	SafeCast   bool
	ActionTag  string
}

// GroupRef names the active shape group an nbed belongs to, for precast
// cover computation.
type GroupRef struct {
	ShapeID   int
	Expansion int
}

// NeedleBed (nbed) is one time-indexed needle-bed snapshot: a width, an
// ordered list of passes, and per-needle occupancy state.
type NeedleBed struct {
	Time        int
	Parent      int // -1 if none
	Width       int
	Passes      []Pass
	ActiveGroup GroupRef
	StatesFront []bool
	StatesBack  []bool
}

// NeedleOf resolves a stitch id to its needle position
// (needleOf(stitch) -> {index, side}). Stitch ids here are pre-resolved to
// 1:1 needle indices by the external tracer, so this is a direct lookup
// against the stitch-to-needle table carried alongside each bed.
func (b *NeedleBed) NeedleOf(stitchToNeedle map[int]NeedleRef, stitch int) (NeedleRef, bool) {
	ref, ok := stitchToNeedle[stitch]
	return ref, ok
}

// Params mirrors the CLI globals.
type Params struct {
	NeedlePos   string // "left" | "right" | "center"
	UseDSCS     bool
	Increase    string
	CastOnType  string
	CastOffType string
}

// Skeleton is the root decoded input: the shape graph plus the externally
// pre-traced time-indexed beds the scheduler's block order is matched
// against, plus global parameters.
type Skeleton struct {
	Nodes      []Node
	Interfaces []Interface
	// Beds holds one traced NeedleBed per scheduled shape block, indexed in
	// the same order schedule.Plan enumerates blocks for the chosen start
	// node -- the "shape tracing" external collaborator's output.
	Beds []NeedleBed
	// StitchNeedle resolves stitch ids to needle positions across all beds.
	StitchNeedle map[int]NeedleRef
	Params       Params
	StartNode    int
	Carrier      uint8
	MaxWidth     int
}

// Node looks up a node by id, or the zero Node and false if absent.
func (s *Skeleton) Node(id int) (Node, bool) {
	if id < 0 || id >= len(s.Nodes) {
		return Node{}, false
	}
	return s.Nodes[id], true
}

// Interface looks up an interface by id.
func (s *Skeleton) Interface(id int) (Interface, bool) {
	if id < 0 || id >= len(s.Interfaces) {
		return Interface{}, false
	}
	return s.Interfaces[id], true
}
