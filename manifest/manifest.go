// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package manifest

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Manifest is the ordered list of raw lines read from a reads manifest.
type Manifest struct {
	// Path is the manifest location after home-directory expansion.
	Path string
	// Lines holds every line of the file, in file order, with the line
	// terminator removed. Other whitespace is kept as found.
	Lines []string
	// Fingerprint is the farmhash fingerprint of the (decompressed)
	// manifest contents.
	Fingerprint uint64
}

// Len returns the total number of lines in the manifest, regardless of mode.
func (m *Manifest) Len() int { return len(m.Lines) }

// IDs returns the sample IDs of the ID-bearing lines, in file order. In
// paired mode only the even-indexed lines bear IDs.
func (m *Manifest) IDs(mode Mode, delim string) []string {
	step := mode.ReadsPerSample()
	ids := make([]string, 0, (len(m.Lines)+step-1)/step)
	for i := 0; i < len(m.Lines); i += step {
		ids = append(ids, SampleID(m.Lines[i], delim))
	}
	return ids
}

// Parse builds a Manifest from the given reader. path is only recorded.
func Parse(r io.Reader, path string) (*Manifest, error) {
	m := &Manifest{Path: path}
	var data []byte
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64<<10), 1<<20)
	for s.Scan() {
		line := strings.TrimSuffix(s.Text(), "\r")
		m.Lines = append(m.Lines, line)
		data = append(data, line...)
		data = append(data, '\n')
	}
	if err := s.Err(); err != nil {
		return nil, errors.E(err, "read manifest", path)
	}
	m.Fingerprint = farm.Fingerprint64(data)
	return m, nil
}

// Read reads the manifest at path. A leading "~" is expanded to the user's
// home directory. The path may name any location supported by
// github.com/grailbio/base/file, and compressed manifests are decompressed
// based on their suffix.
func Read(ctx context.Context, path string) (m *Manifest, err error) {
	path, err = ExpandHome(path)
	if err != nil {
		return nil, err
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open manifest", path)
	}
	defer file.CloseAndReport(ctx, in, &err)

	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer u.Close()
		r = u
	}
	if m, err = Parse(r, path); err != nil {
		return nil, err
	}
	log.Debug.Printf("%s: %d lines, fingerprint %016x", path, m.Len(), m.Fingerprint)
	return m, nil
}

// SampleID derives a sample ID from a manifest line: the final path segment
// of the (trimmed) line, truncated at the first occurrence of delim. An empty
// delim, or one that does not occur, keeps the whole segment.
func SampleID(line, delim string) string {
	name := Tail(line)
	if delim == "" {
		return name
	}
	id, _, _ := strings.Cut(name, delim)
	return id
}

// Tail returns the final "/"-separated segment of the trimmed line.
func Tail(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.LastIndexByte(line, '/'); i >= 0 {
		return line[i+1:]
	}
	return line
}

// ExpandHome replaces a leading "~" or "~/" in path with the current user's
// home directory. Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.E(err, "expand", path)
	}
	return filepath.Join(home, path[1:]), nil
}
