// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alessio/shellescape"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// DriverName is the file name of the PBS array driver.
const DriverName = ScriptPrefix + ".pbs"

// arrayIndexVar is set by PBS Professional to the array index of each task.
const arrayIndexVar = "$PBS_ARRAY_INDEX"

// formatWalltime renders d as PBS hh:mm:ss, rounded down to the second.
func formatWalltime(d time.Duration) string {
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// DriverScript returns the array driver for count per-sample scripts. Array
// task j runs <root>/nesoni_SeqFindR.j.
func DriverScript(opts Opts, paths Paths, count int) *Script {
	sc := &Script{}
	sc.Text("#!/bin/bash")
	sc.Text(fmt.Sprintf("#PBS -l select=1:ncpus=%d:mem=%dg:NodeType=%s", opts.Cores, opts.MemoryGB, opts.NodeType))
	sc.Text("#PBS -N " + opts.JobName)
	sc.Text("#PBS -l walltime=" + formatWalltime(opts.Walltime))
	sc.Text(fmt.Sprintf("#PBS -J 1-%d", count))
	sc.Text("")
	sc.Add(Cmd(shellescape.Quote(paths.Root) + "/" + ScriptPrefix + "." + arrayIndexVar))
	return sc
}

// RenderDriver writes the executable array driver into paths.Root and
// returns its path. count must be the number of per-sample scripts written
// by RenderSamples.
func RenderDriver(ctx context.Context, opts Opts, paths Paths, count int) (string, error) {
	if count < 1 {
		return "", errors.E(errors.Precondition, fmt.Sprintf("job array needs at least one task, got %d", count))
	}
	path := filepath.Join(paths.Root, DriverName)
	if err := writeExecutable(path, DriverScript(opts, paths, count)); err != nil {
		return "", err
	}
	log.Debug.Printf("%s: array 1-%d", path, count)
	return path, nil
}
