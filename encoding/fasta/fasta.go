// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package fasta contains code for reading the small FASTA files produced as
// per-sample consensus sequences. FASTA files consist of a number of named
// sequences that may be interrupted by newlines. For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'. Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

var (
	// ErrEmpty is returned for input with no sequence.
	ErrEmpty = errors.New("no FASTA sequence")
	// ErrMalformed is returned for sequence data before the first '>' line.
	ErrMalformed = errors.New("malformed FASTA file")
)

// Fasta holds all the sequences of a FASTA file in memory.
type Fasta struct {
	seqs     map[string]string
	seqNames []string
}

// New reads all the FASTA data from the given reader.
func New(r io.Reader) (*Fasta, error) {
	f := &Fasta{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var (
		seqName string
		started bool
		seq     strings.Builder
	)
	flush := func() {
		if _, ok := f.seqs[seqName]; !ok {
			f.seqNames = append(f.seqNames, seqName)
		}
		f.seqs[seqName] = seq.String()
		seq.Reset()
	}
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if started {
				flush()
			}
			started = true
			seqName = strings.Split(line[1:], " ")[0]
			continue
		}
		if !started {
			return nil, ErrMalformed
		}
		seq.WriteString(line)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if !started {
		return nil, ErrEmpty
	}
	flush()
	return f, nil
}

// Open reads the FASTA file at path, which may be compressed.
func Open(ctx context.Context, path string) (fa *Fasta, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer u.Close()
		r = u
	}
	if fa, err = New(r); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return fa, nil
}

// SeqNames returns the names of all sequences, in the order of appearance in
// the FASTA file.
func (f *Fasta) SeqNames() []string {
	return f.seqNames
}

// Summary counts the bases of a FASTA file.
type Summary struct {
	Seqs  int
	Bases uint64
	// Ambiguous counts bases other than A, C, G and T, in either case.
	// Consensus callers emit these where coverage is too low to call a base.
	Ambiguous uint64
}

// Summarize counts the sequences and bases of f.
func (f *Fasta) Summarize() Summary {
	s := Summary{Seqs: len(f.seqNames)}
	for _, name := range f.seqNames {
		seq := f.seqs[name]
		s.Bases += uint64(len(seq))
		for i := 0; i < len(seq); i++ {
			switch seq[i] {
			case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
			default:
				s.Ambiguous++
			}
		}
	}
	return s
}
