package cmd

import (
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/mscook/SeqFindR-nesoni/jobarray"
)

func printStatus(ctx context.Context, w io.Writer, outputBase string, parallelism int) error {
	st, err := jobarray.Status(ctx, outputBase, parallelism)
	if err != nil {
		return err
	}
	counts := map[jobarray.State]int{}
	tw := tsv.NewWriter(w)
	for _, s := range st {
		counts[s.State]++
		tw.WriteString(strconv.Itoa(s.Index))
		tw.WriteString(s.Sample)
		tw.WriteString(s.State.String())
		if s.State == jobarray.Done {
			tw.WriteString(strconv.Itoa(s.Seqs))
			tw.WriteString(strconv.FormatUint(s.Bases, 10))
			tw.WriteString(strconv.FormatUint(s.Ambiguous, 10))
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
		if s.Err != nil {
			log.Error.Printf("sample %d (%s): %v", s.Index, s.Sample, s.Err)
		}
	}
	log.Printf("%s: %d done, %d pending, %d incomplete, %d failed", outputBase,
		counts[jobarray.Done], counts[jobarray.Pending], counts[jobarray.Incomplete], counts[jobarray.Failed])
	return tw.Flush()
}
