// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// ErrArrayMismatch is returned when the number of per-sample scripts does
// not match the number of samples that sizes the driver's array range.
var ErrArrayMismatch = errors.New("job array size does not match generated scripts")

// Result describes the files written by Generate.
type Result struct {
	Paths   Paths
	Samples []manifest.Sample
	// Scripts are the per-sample script paths; Scripts[k-1] is run by array
	// task k.
	Scripts []string
	Driver  string
	Index   string
	// Mates lists paired samples whose file names do not look like mates.
	Mates []manifest.MatePair
	JobID JobID
}

// Generate reads the manifest, writes the per-sample scripts, the array
// driver and the job index into the output base, and submits the driver.
//
// Manifest and option errors are reported before any file is written.
// Files written before a later failure are left in place.
func Generate(ctx context.Context, opts Opts, sub Submitter) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m, err := manifest.Read(ctx, opts.ReadsFile)
	if err != nil {
		return nil, err
	}
	samples, err := manifest.Partition(m, opts.Mode, opts.Delim)
	if err != nil {
		return nil, err
	}
	res := &Result{Samples: samples, Mates: manifest.CheckMates(samples)}
	for _, p := range res.Mates {
		log.Error.Printf("%s: read files do not look like mates: %v", m.Path, p)
	}
	if opts.StrictMates && len(res.Mates) > 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("%d sample(s) with mismatched mates, first: %v", len(res.Mates), res.Mates[0]))
	}
	if opts.CheckReads {
		if err = checkReads(ctx, samples, opts.Parallelism); err != nil {
			return nil, err
		}
		log.Printf("checked %d sample(s) read files", len(samples))
	}

	if res.Paths, err = PreparePaths(opts.OutputBase, opts.ReferenceDir); err != nil {
		return nil, err
	}
	n, err := RenderSamples(ctx, opts, res.Paths, samples)
	if err != nil {
		return nil, err
	}
	if n != len(samples) {
		return nil, errors.E(errors.Precondition, ErrArrayMismatch,
			fmt.Sprintf("%d scripts for %d samples", n, len(samples)))
	}
	for k := 1; k <= n; k++ {
		res.Scripts = append(res.Scripts, filepath.Join(res.Paths.Root, ScriptName(k)))
	}
	if res.Driver, err = RenderDriver(ctx, opts, res.Paths, n); err != nil {
		return nil, err
	}
	if res.Index, err = WriteIndex(ctx, res.Paths, m, samples); err != nil {
		return nil, err
	}
	log.Printf("%s: %d %s sample(s), array 1-%d", res.Driver, n, opts.Mode, n)

	if res.JobID, err = sub.Submit(ctx, res.Driver); err != nil {
		return res, err
	}
	if res.JobID != "" {
		log.Printf("submitted %s as job %s", res.Driver, res.JobID)
	}
	return res, nil
}
