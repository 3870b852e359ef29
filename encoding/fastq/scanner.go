// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package fastq scans FASTQ read files far enough to tell whether a read file
// referenced by a manifest is usable.
package fastq

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
	// ErrEmpty is returned when a FASTQ file holds no reads.
	ErrEmpty = errors.New("empty FASTQ file")
	// ErrDiscordant is returned when two mate files start with reads of
	// different names.
	ErrDiscordant = errors.New("discordant FASTQ pairs")
)

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

// Name returns the read name: the ID without its leading '@', cut at the
// first whitespace, with a trailing "/1" or "/2" mate suffix removed.
func (r Read) Name() string {
	name := strings.TrimPrefix(r.ID, "@")
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name = name[:i]
	}
	if strings.HasSuffix(name, "/1") || strings.HasSuffix(name, "/2") {
		name = name[:len(name)-2]
	}
	return name
}

// Scanner reads FASTQ records. It requires ID lines to begin with '@', line
// 3 to begin with '+' and the sequence and quality to be of equal length.
// Scanners are not threadsafe.
type Scanner struct {
	b    *bufio.Scanner
	err  error
	line int
}

// NewScanner constructs a new Scanner that reads raw FASTQ data from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it never
// returns true again; Err then tells whether the end of the stream was
// reached.
func (s *Scanner) Scan(read *Read) bool {
	if s.err != nil {
		return false
	}
	var lines [4]string
	for i := range lines {
		if !s.b.Scan() {
			s.err = s.b.Err()
			if s.err == nil {
				s.err = io.EOF
				if i > 0 {
					s.err = ErrShort
				}
			}
			return false
		}
		s.line++
		lines[i] = s.b.Text()
	}
	if !strings.HasPrefix(lines[0], "@") || !strings.HasPrefix(lines[2], "+") ||
		len(lines[1]) != len(lines[3]) {
		s.err = ErrInvalid
		return false
	}
	*read = Read{ID: lines[0], Seq: lines[1], Unk: lines[2], Qual: lines[3]}
	return true
}

// Line returns the number of lines consumed so far.
func (s *Scanner) Line() int { return s.line }

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
