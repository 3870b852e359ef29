// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mscook/SeqFindR-nesoni/encoding/fasta"
)

// State is the outcome of one array task as seen from the output base.
type State int

const (
	// Pending means the sample directory has not been copied back yet.
	Pending State = iota
	// Incomplete means the sample directory exists without a consensus.
	Incomplete
	// Failed means the consensus exists but cannot be read.
	Failed
	// Done means the consensus was read.
	Done
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Incomplete:
		return "incomplete"
	case Failed:
		return "failed"
	case Done:
		return "done"
	}
	return "unknown"
}

// ConsensusName is the file name under which the script for sample id keeps
// the nesoni consensus.
func ConsensusName(id string) string { return id + "_cons.fa" }

// ConsensusPath returns the path of the consensus that the script for
// sample id leaves under root.
func ConsensusPath(root, id string) string {
	return filepath.Join(root, id, ConsensusName(id))
}

// SampleStatus reports the output of one sample.
type SampleStatus struct {
	Index     int
	Sample    string
	Consensus string
	State     State
	fasta.Summary
	// Err is set for Failed samples.
	Err error
}

// Status reads the job index of outputBase and reports, for every sample,
// whether its consensus has been copied back and what it contains.
func Status(ctx context.Context, outputBase string, parallelism int) ([]SampleStatus, error) {
	root, err := absPath(outputBase)
	if err != nil {
		return nil, err
	}
	rows, err := ReadIndex(ctx, filepath.Join(root, IndexName))
	if err != nil {
		return nil, err
	}
	st := make([]SampleStatus, len(rows))
	err = eachShard(len(rows), parallelism, func(i int) error {
		st[i] = sampleStatus(ctx, root, rows[i])
		return nil
	})
	return st, err
}

func sampleStatus(ctx context.Context, root string, row IndexRow) SampleStatus {
	s := SampleStatus{
		Index:     row.Index,
		Sample:    row.Sample,
		Consensus: ConsensusPath(root, row.Sample),
	}
	if _, err := os.Stat(filepath.Dir(s.Consensus)); err != nil {
		s.State = Pending
		return s
	}
	if _, err := os.Stat(s.Consensus); err != nil {
		s.State = Incomplete
		return s
	}
	fa, err := fasta.Open(ctx, s.Consensus)
	if err != nil {
		s.State, s.Err = Failed, err
		return s
	}
	s.State, s.Summary = Done, fa.Summarize()
	return s
}
