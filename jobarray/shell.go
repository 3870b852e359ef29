// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"bytes"
	"io"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
)

// Line builds one line of shell text from words. Words added with Arg are
// quoted by shellescape.Quote when needed; words added with Raw are emitted
// verbatim and must come from constants, never from user input.
type Line struct {
	words []string
}

// Cmd starts a new line with the given verbatim words.
func Cmd(raw ...string) *Line {
	return &Line{words: append([]string(nil), raw...)}
}

// Arg appends quoted words.
func (l *Line) Arg(args ...string) *Line {
	for _, a := range args {
		l.words = append(l.words, shellescape.Quote(a))
	}
	return l
}

// Raw appends verbatim words.
func (l *Line) Raw(raw ...string) *Line {
	l.words = append(l.words, raw...)
	return l
}

func (l *Line) String() string { return strings.Join(l.words, " ") }

// Script is a sequence of shell lines.
type Script struct {
	lines []string
}

// Add appends a line.
func (s *Script) Add(l *Line) *Script {
	s.lines = append(s.lines, l.String())
	return s
}

// Text appends a verbatim line, such as a comment or a directive.
func (s *Script) Text(line string) *Script {
	s.lines = append(s.lines, line)
	return s
}

// Lines returns the lines of the script.
func (s *Script) Lines() []string { return s.lines }

// Bytes returns the script text, newline-terminated.
func (s *Script) Bytes() []byte {
	var b bytes.Buffer
	for _, l := range s.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// WriteTo writes the script text to w.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), errors.Wrap(err, "write script")
}
