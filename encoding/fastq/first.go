// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

// FirstRead opens the FASTQ file at path, which may be compressed and may name
// any location supported by github.com/grailbio/base/file, and returns its
// first read.
func FirstRead(ctx context.Context, path string) (read Read, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return read, errors.Wrapf(err, "open %s", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer u.Close()
		r = u
	}
	s := NewScanner(r)
	if !s.Scan(&read) {
		if err = s.Err(); err == nil {
			err = ErrEmpty
		}
		return read, errors.Wrapf(err, "%s: line %d", path, s.Line())
	}
	return read, nil
}

// CheckMates returns ErrDiscordant unless r1 and r2 have the same read name.
func CheckMates(r1, r2 Read) error {
	if r1.Name() != r2.Name() {
		return errors.Wrapf(ErrDiscordant, "%q vs %q", r1.ID, r2.ID)
	}
	return nil
}
