package cmd

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/mscook/SeqFindR-nesoni/jobarray"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// printIDs writes the array index, sample ID, script and reads of every
// sample in the manifest, without writing any script.
func printIDs(ctx context.Context, w io.Writer, path string, mode manifest.Mode, delim string) error {
	m, err := manifest.Read(ctx, path)
	if err != nil {
		return err
	}
	samples, err := manifest.Partition(m, mode, delim)
	if err != nil {
		return err
	}
	tw := tsv.NewWriter(w)
	for _, s := range samples {
		tw.WriteString(strconv.Itoa(s.Index))
		tw.WriteString(s.ID)
		tw.WriteString(jobarray.ScriptName(s.Index))
		tw.WriteString(strings.Join(s.Reads, ","))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
