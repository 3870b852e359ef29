// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package manifest

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/pkg/errors"
)

var (
	// ErrEmpty is returned when a manifest has no lines. A zero-task PBS
	// array ("-J 1-0") is never generated.
	ErrEmpty = errors.New("empty reads manifest")
	// ErrBlankLine is returned when a manifest line is empty or only
	// whitespace.
	ErrBlankLine = errors.New("blank line in reads manifest")
	// ErrOddPairs is returned when a paired manifest has an odd number of
	// lines. The trailing read is never silently dropped.
	ErrOddPairs = errors.New("odd number of reads in paired manifest")
	// ErrDuplicateID is returned when two samples derive the same ID. Their
	// array tasks would write the same output directory.
	ErrDuplicateID = errors.New("duplicate sample ID")
	// ErrEmptyID is returned when a line's file name starts with the
	// delimiter.
	ErrEmptyID = errors.New("empty sample ID")
	// ErrUnsafeName is returned for a sample ID of "." or "..", or a sample
	// ID, read path or read file name starting with '-'. Generated scripts
	// pass these as operands to cd, cp, mv and nesoni, where no quoting
	// keeps them from naming another directory or parsing as an option.
	ErrUnsafeName = errors.New("sample ID or read path not usable as a command operand")
)

// Mode says how reads are grouped into samples. It is fixed for a run.
type Mode int

const (
	// Interleaved samples have one read file holding both directions.
	Interleaved Mode = iota
	// Paired samples have a forward and a reverse read file, on consecutive
	// manifest lines.
	Paired
)

// ReadsPerSample returns the number of manifest lines consumed per sample.
func (m Mode) ReadsPerSample() int {
	if m == Paired {
		return 2
	}
	return 1
}

// String returns "paired" or "interleaved".
func (m Mode) String() string {
	switch m {
	case Paired:
		return "paired"
	case Interleaved:
		return "interleaved"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Sample is one unit of analysis work: one PBS array task.
type Sample struct {
	// Index is the 1-based generation order of the sample. It equals the
	// PBS array index that runs the sample.
	Index int
	// ID names the sample's output directory and consensus file.
	ID   string
	Mode Mode
	// Reads holds the trimmed read paths: one for Interleaved, forward then
	// reverse for Paired.
	Reads []string
	// Line is the 0-based manifest line of the first read.
	Line int
}

// Partition splits the manifest into samples in strict positional order.
// Sample k is assigned ID ids[k-1] of m.IDs(mode, delim) in both modes.
func Partition(m *Manifest, mode Mode, delim string) ([]Sample, error) {
	n := m.Len()
	if n == 0 {
		return nil, errors.Wrap(ErrEmpty, m.Path)
	}
	for i, line := range m.Lines {
		if strings.TrimSpace(line) == "" {
			return nil, errors.Wrapf(ErrBlankLine, "%s:%d", m.Path, i+1)
		}
	}
	step := mode.ReadsPerSample()
	if n%step != 0 {
		return nil, errors.Wrapf(ErrOddPairs, "%s: %d lines", m.Path, n)
	}
	ids := m.IDs(mode, delim)
	samples := make([]Sample, 0, len(ids))
	seen := make(map[string]int, len(ids))
	for i, k := 0, 1; i < n; i, k = i+step, k+1 {
		id := ids[k-1]
		if id == "" {
			return nil, errors.Wrapf(ErrEmptyID, "%s:%d", m.Path, i+1)
		}
		if !safeOperand(id) {
			return nil, errors.Wrapf(ErrUnsafeName, "%s:%d: sample ID %q", m.Path, i+1, id)
		}
		if prev, ok := seen[id]; ok {
			return nil, errors.Wrapf(ErrDuplicateID, "%q: samples %d and %d", id, prev, k)
		}
		seen[id] = k
		s := Sample{Index: k, ID: id, Mode: mode, Line: i}
		for j := i; j < i+step; j++ {
			r := strings.TrimSpace(m.Lines[j])
			if strings.HasPrefix(r, "-") || !safeOperand(Tail(r)) {
				return nil, errors.Wrapf(ErrUnsafeName, "%s:%d: read %q", m.Path, j+1, r)
			}
			s.Reads = append(s.Reads, r)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// safeOperand reports whether name can be used as a file operand that stays
// inside the current directory.
func safeOperand(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.HasPrefix(name, "-")
}

// MatePair describes a paired sample whose read file names do not look like
// mates.
type MatePair struct {
	Sample   Sample
	Distance int // -1 if the names differ in length
}

func (p MatePair) String() string {
	return fmt.Sprintf("sample %d (%s): %s / %s", p.Sample.Index, p.Sample.ID,
		Tail(p.Sample.Reads[0]), Tail(p.Sample.Reads[1]))
}

// CheckMates returns the paired samples whose forward and reverse file names
// are not of equal length with exactly one differing character, as in
// "s1_R1.fq" / "s1_R2.fq". Interleaved samples are ignored.
func CheckMates(samples []Sample) []MatePair {
	var bad []MatePair
	for _, s := range samples {
		if s.Mode != Paired {
			continue
		}
		d, err := matchr.Hamming(Tail(s.Reads[0]), Tail(s.Reads[1]))
		if err != nil {
			d = -1
		}
		if d != 1 {
			bad = append(bad, MatePair{Sample: s, Distance: d})
		}
	}
	return bad
}
