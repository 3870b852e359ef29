// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// Opts configures one run of Generate.
type Opts struct {
	// ReadsFile is the reads manifest, one read path per line.
	ReadsFile string
	// OutputBase is where scripts are written and where every array task
	// copies its sample directory. Created if absent.
	OutputBase string
	// ReferenceDir is the directory created by "nesoni make-reference". Only
	// its final path segment is used as the reference name.
	ReferenceDir string

	Mode manifest.Mode
	// Delim truncates a read file name to its sample ID.
	Delim string

	// Cores is passed to nesoni as --make-cores and requested as ncpus.
	Cores int
	// MemoryGB is the per-task memory request.
	MemoryGB int
	// NodeType is the PBS NodeType selector.
	NodeType string
	// Walltime is the per-task wall-clock limit.
	Walltime time.Duration
	// JobName is the PBS job name (#PBS -N).
	JobName string

	// CheckReads opens every read file and parses its first FASTQ record
	// before anything is written.
	CheckReads bool
	// StrictMates fails the run if a forward/reverse file name pair does not
	// look like mates. Otherwise they are only logged.
	StrictMates bool
	// Parallelism bounds concurrent read checks.
	Parallelism int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Mode:        manifest.Interleaved,
	Delim:       "_",
	Cores:       4,
	MemoryGB:    11,
	NodeType:    "medium",
	Walltime:    48 * time.Hour,
	JobName:     ScriptPrefix,
	Parallelism: 16,
}

// Validate checks the option values that end up in generated scripts.
func (o Opts) Validate() error {
	switch {
	case o.ReadsFile == "":
		return errors.E(errors.Invalid, "no reads file")
	case o.OutputBase == "":
		return errors.E(errors.Invalid, "no output base")
	case o.ReferenceDir == "":
		return errors.E(errors.Invalid, "no reference directory")
	case o.Mode != manifest.Paired && o.Mode != manifest.Interleaved:
		return errors.E(errors.Invalid, "unknown mode", o.Mode.String())
	case o.Cores <= 0:
		return errors.E(errors.Invalid, "cores must be positive")
	case o.MemoryGB <= 0:
		return errors.E(errors.Invalid, "memory must be positive")
	case o.Walltime < time.Second:
		return errors.E(errors.Invalid, "walltime must be at least one second")
	case o.JobName == "" || strings.ContainsAny(o.JobName, " \t\n"):
		return errors.E(errors.Invalid, "job name must be a non-empty word:", o.JobName)
	case o.Delim == "":
		return errors.E(errors.Invalid, "empty delimiter")
	case strings.Contains(o.Delim, "/"):
		return errors.E(errors.Invalid, "delimiter must not contain '/'")
	case o.Parallelism <= 0:
		return errors.E(errors.Invalid, "parallelism must be positive")
	case o.NodeType == "" || strings.ContainsAny(o.NodeType, ":= \t\n"):
		return errors.E(errors.Invalid, "bad node type:", o.NodeType)
	}
	return nil
}
