// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"context"

	"github.com/grailbio/base/traverse"
	"github.com/mscook/SeqFindR-nesoni/encoding/fastq"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// checkReads parses the first record of every read file, and checks that
// paired mates start with the same read name. It stops at the first error.
func checkReads(ctx context.Context, samples []manifest.Sample, parallelism int) error {
	return eachShard(len(samples), parallelism, func(i int) error {
		s := samples[i]
		reads := make([]fastq.Read, len(s.Reads))
		for j, path := range s.Reads {
			r, err := fastq.FirstRead(ctx, path)
			if err != nil {
				return err
			}
			reads[j] = r
		}
		if s.Mode == manifest.Paired {
			return fastq.CheckMates(reads[0], reads[1])
		}
		return nil
	})
}

// eachShard calls fn(0) .. fn(n-1) from at most parallelism goroutines, each
// handling one contiguous shard of the range.
func eachShard(n, parallelism int, fn func(i int) error) error {
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > n {
		parallelism = n
	}
	return traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * n) / parallelism
		endIdx := ((jobIdx + 1) * n) / parallelism
		for i := startIdx; i < endIdx; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	})
}
