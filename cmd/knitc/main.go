// Copyright 2026 The Knitc Authors.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
knitc compiles a decoded shape skeleton into a machine-ready raster,
running the scheduler, inference, pass compiler and cast/transfer engines
of the knitc pipeline end to end.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/xionluhnis/knitc/compiler"
	"github.com/xionluhnis/knitc/skel"
)

var (
	inPath      = flag.String("in", "", "Input skeleton recordio path (required)")
	outPath     = flag.String("out", "out.raster", "Output raster binary path")
	needlePos   = flag.String("needle-pos", "", "Override Params.NeedlePos (\"left\"|\"right\"|\"center\")")
	castOnType  = flag.String("cast-on", "", "Override Params.CastOnType (interlock|kickback|tuck|precast|none)")
	castOffType = flag.String("cast-off", "", "Override Params.CastOffType (direct|reverse|pickup|none)")
)

func knitcUsage() {
	fmt.Printf("Usage: %s -in skeleton.rio [OPTIONS]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = knitcUsage
	shutdown := grail.Init()
	defer shutdown()

	if *inPath == "" {
		log.Fatalf("missing required -in flag")
	}

	sk, err := loadSkeleton(*inPath)
	if err != nil {
		log.Panicf("%v", err)
	}
	applyOverrides(sk)

	ctx, err := compiler.Compile(sk)
	if err != nil {
		log.Panicf("%v", err)
	}
	log.Printf("knitc: compiled %d blocks, %d needles wide", len(ctx.Blocks), sk.MaxWidth)

	if err := writeRaster(ctx, *outPath); err != nil {
		log.Panicf("%v", err)
	}
	log.Printf("knitc: wrote raster to %s", *outPath)
}

func loadSkeleton(path string) (*skel.Skeleton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(err, "knitc: opening skeleton", path)
	}
	defer f.Close()
	sk, err := skel.Decode(f)
	if err != nil {
		return nil, errors.E(err, "knitc: decoding skeleton", path)
	}
	return sk, nil
}

func applyOverrides(sk *skel.Skeleton) {
	if *needlePos != "" {
		sk.Params.NeedlePos = *needlePos
	}
	if *castOnType != "" {
		sk.Params.CastOnType = *castOnType
	}
	if *castOffType != "" {
		sk.Params.CastOffType = *castOffType
	}
}

func writeRaster(ctx *compiler.Context, path string) error {
	buf, digest, err := ctx.Store.ToBuffer(nil)
	if err != nil {
		return errors.E(err, "knitc: serializing raster")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.E(err, "knitc: creating output", path)
	}
	defer f.Close()
	if _, err := f.Write(buf); err != nil {
		return errors.E(err, "knitc: writing output", path)
	}
	log.Printf("knitc: raster digest %x", digest)
	return nil
}
