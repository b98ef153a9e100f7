// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package compiler wires the scheduler, inference, pass compiler and
// cast/transfer engines into the single top-level Compile entry point the
// knitc command drives.
package compiler

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/xionluhnis/knitc/castengine"
	"github.com/xionluhnis/knitc/caster"
	"github.com/xionluhnis/knitc/infer"
	"github.com/xionluhnis/knitc/passcompile"
	"github.com/xionluhnis/knitc/raster"
	"github.com/xionluhnis/knitc/schedule"
	"github.com/xionluhnis/knitc/skel"
)

// Context carries what Compile reports back (the inferred width of every
// reachable interface side, including any that fell back to a default, and
// the scheduled block list), alongside the resulting raster.
type Context struct {
	Skeleton *skel.Skeleton
	Blocks   []schedule.Block
	Sizes    map[infer.SideKey]int
	Store    *raster.Store
}

// Compile runs the full pipeline for one skeleton: schedule the shape
// graph into a linear block order, infer interface sizes (sidedness is not
// inferred here), then drive the pass compiler (which in turn calls the cast-on/off
// engines and transfer planner) to produce the raster through the yarn
// caster.
func Compile(sk *skel.Skeleton) (*Context, error) {
	if sk == nil {
		return nil, errors.E("compiler: nil skeleton")
	}

	blocks, err := schedule.Plan(sk, sk.StartNode, "bottom", sk.Carrier)
	if err != nil {
		return nil, errors.E(err, "compiler: scheduling")
	}
	log.Printf("compiler: scheduled %d blocks starting at node %d", len(blocks), sk.StartNode)

	var warnings int
	sizes := infer.Sizes(sk, sk.StartNode, func(key infer.SideKey, v int) {
		warnings++
		log.Printf("compiler: size of node %d/%s undecidable, defaulting to %d", key.Node, key.Path, v)
	})
	if warnings > 0 {
		log.Printf("compiler: %d size(s) fell back to the default minimum", warnings)
	}

	onKind := castengine.ParseOnKind(sk.Params.CastOnType)
	offKind := castengine.ParseOffKind(sk.Params.CastOffType)

	width := sk.MaxWidth
	if width <= 0 {
		width = maxBedWidth(sk.Beds)
	}
	store := raster.New(width, width)
	c := caster.New(store, width, sk.Carrier)
	c.Verbose = func(format string, args ...interface{}) {
		if log.At(log.Debug) {
			log.Debug.Printf(format, args...)
		}
	}

	if err := passcompile.Compile(c, sk, sk.Beds, onKind, offKind); err != nil {
		return nil, errors.E(err, "compiler: pass compilation")
	}

	return &Context{Skeleton: sk, Blocks: blocks, Sizes: sizes, Store: store}, nil
}

func maxBedWidth(beds []skel.NeedleBed) int {
	w := 0
	for _, b := range beds {
		if b.Width > w {
			w = b.Width
		}
	}
	return w
}
