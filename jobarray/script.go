// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

const (
	// ScriptPrefix names every generated file.
	ScriptPrefix = "nesoni_SeqFindR"
	// Consensus is the only nesoni output kept per sample.
	Consensus = "consensus.fa"
)

// ScriptName returns the file name of the per-sample script run by array
// task k.
func ScriptName(k int) string { return ScriptPrefix + "." + strconv.Itoa(k) }

// SampleScript returns the per-sample script for s:
//
//   stage the reference and reads into $TMPDIR, run nesoni analyse-sample,
//   keep only consensus.fa as <id>_cons.fa, copy <id>/ to the output base.
func SampleScript(opts Opts, paths Paths, s manifest.Sample) *Script {
	sc := &Script{}
	sc.Text("#!/bin/bash")
	sc.Text("set -e")
	// extglob must be on before bash parses the line using !(...).
	sc.Text("shopt -s extglob")
	sc.Add(Cmd("cd", `"$TMPDIR"`))
	sc.Add(Cmd("cp", "-r").Arg(paths.Reference).Raw("."))
	for _, r := range s.Reads {
		sc.Add(Cmd("cp").Arg(r).Raw("."))
	}

	nesoni := Cmd("nesoni", "analyse-sample:").Arg(s.ID, paths.ReferenceID)
	switch s.Mode {
	case manifest.Paired:
		nesoni.Raw("pairs:").Arg(manifest.Tail(s.Reads[0]), manifest.Tail(s.Reads[1]))
	default:
		nesoni.Raw("interleaved:").Arg(manifest.Tail(s.Reads[0]))
	}
	nesoni.Raw("--make-cores", strconv.Itoa(opts.Cores))
	nesoni.Raw("filter:", "--monogamous", "no", "--random", "yes")
	sc.Add(nesoni)

	// One command per line so that set -e stops at the first failure.
	sc.Add(Cmd("cd").Arg(s.ID))
	sc.Add(Cmd("rm", "-rf", "!("+Consensus+")"))
	sc.Add(Cmd("mv", Consensus).Arg(ConsensusName(s.ID)))
	sc.Add(Cmd("cd", ".."))
	sc.Add(Cmd("cp", "-r").Arg(s.ID, paths.Root))
	return sc
}

// RenderSamples writes one executable script per sample into paths.Root,
// named ScriptName(1) .. ScriptName(len(samples)) in sample order, and
// returns the number of scripts written. Scripts written before an error are
// left in place.
func RenderSamples(ctx context.Context, opts Opts, paths Paths, samples []manifest.Sample) (int, error) {
	k := 1
	for _, s := range samples {
		if s.Index != k {
			return k - 1, errors.E(errors.Precondition,
				fmt.Sprintf("sample %s has index %d, want %d", s.ID, s.Index, k))
		}
		path := filepath.Join(paths.Root, ScriptName(k))
		if err := writeExecutable(path, SampleScript(opts, paths, s)); err != nil {
			return k - 1, err
		}
		log.Debug.Printf("%s: sample %s, %d read(s)", path, s.ID, len(s.Reads))
		k++
	}
	return k - 1, nil
}

// writeExecutable writes the script to path and adds the owner execute bit
// to the file's mode.
func writeExecutable(path string, sc *Script) (err error) {
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return errors.E(err, "couldn't create script", path)
	}
	defer func() {
		if err2 := f.Close(); err == nil && err2 != nil {
			err = errors.E(err2, "close", path)
		}
	}()
	if _, err = sc.WriteTo(f); err != nil {
		return errors.E(err, path)
	}
	var info os.FileInfo
	if info, err = f.Stat(); err != nil {
		return errors.E(err, "stat", path)
	}
	if err = f.Chmod(info.Mode() | 0100); err != nil {
		return errors.E(err, "chmod", path)
	}
	return nil
}
