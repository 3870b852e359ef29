// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// IndexName is the file name of the job index.
const IndexName = ScriptPrefix + ".tsv"

// WriteIndex writes a TSV that maps every array index to its sample, mode,
// reads (comma-separated) and script. The header records the manifest path
// and fingerprint so that an output base can be traced back to its input.
func WriteIndex(ctx context.Context, paths Paths, m *manifest.Manifest, samples []manifest.Sample) (path string, err error) {
	path = filepath.Join(paths.Root, IndexName)
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return "", err
	}
	defer file.CloseAndReport(ctx, out, &err)

	w := out.Writer(ctx)
	if _, err = fmt.Fprintf(w, "# manifest\t%s\n# fingerprint\t%016x\n", m.Path, m.Fingerprint); err != nil {
		return "", err
	}
	tw := tsv.NewWriter(w)
	for _, col := range []string{"index", "sample", "mode", "reads", "script"} {
		tw.WriteString(col)
	}
	if err = tw.EndLine(); err != nil {
		return "", err
	}
	for _, s := range samples {
		tw.WriteUint32(uint32(s.Index))
		tw.WriteString(s.ID)
		tw.WriteString(s.Mode.String())
		tw.WriteString(strings.Join(s.Reads, ","))
		tw.WriteString(ScriptName(s.Index))
		if err = tw.EndLine(); err != nil {
			return "", err
		}
	}
	if err = tw.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// IndexRow is one row of the job index.
type IndexRow struct {
	Index  int    `tsv:"index"`
	Sample string `tsv:"sample"`
	Mode   string `tsv:"mode"`
	Reads  string `tsv:"reads"`
	Script string `tsv:"script"`
}

// ReadIndex reads the job index written by WriteIndex.
func ReadIndex(ctx context.Context, path string) (rows []IndexRow, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := tsv.NewReader(in.Reader(ctx))
	r.Comment = '#'
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	for {
		var row IndexRow
		if err = r.Read(&row); err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return nil, err
		}
		rows = append(rows, row)
	}
}
