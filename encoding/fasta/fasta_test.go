package fasta_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/mscook/SeqFindR-nesoni/encoding/fasta"
	"github.com/pkg/errors"
)

const fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACNN\n" + "nCGT\n"

func TestNew(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	expect.EQ(t, fa.SeqNames(), []string{"seq1", "seq2"})
}

func TestCRLF(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(">s\r\nAC\r\nGT\r\n"))
	assert.NoError(t, err)
	expect.EQ(t, fa.Summarize(), fasta.Summary{Seqs: 1, Bases: 4})
}

func TestEmptySequence(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(">a\n>b\nAC\n"))
	assert.NoError(t, err)
	expect.EQ(t, fa.SeqNames(), []string{"a", "b"})
	expect.EQ(t, fa.Summarize(), fasta.Summary{Seqs: 2, Bases: 2})
}

func TestDuplicateName(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(">a\nACGT\n>a\nAC\n"))
	assert.NoError(t, err)
	expect.EQ(t, fa.SeqNames(), []string{"a"})
	expect.EQ(t, fa.Summarize(), fasta.Summary{Seqs: 1, Bases: 2})
}

func TestErrors(t *testing.T) {
	_, err := fasta.New(strings.NewReader(""))
	expect.EQ(t, err, fasta.ErrEmpty)
	_, err = fasta.New(strings.NewReader("\n\n"))
	expect.EQ(t, err, fasta.ErrEmpty)
	_, err = fasta.New(strings.NewReader("ACGT\n>s\nAC\n"))
	expect.EQ(t, err, fasta.ErrMalformed)
}

func TestSummarize(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	expect.EQ(t, fa.Summarize(), fasta.Summary{Seqs: 2, Bases: 20, Ambiguous: 3})
}

func TestOpen(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	plain := filepath.Join(tempDir, "s1_cons.fa")
	assert.NoError(t, os.WriteFile(plain, []byte(fastaData), 0644))
	fa, err := fasta.Open(ctx, plain)
	assert.NoError(t, err)
	expect.EQ(t, fa.Summarize().Seqs, 2)

	gz := filepath.Join(tempDir, "s1_cons.fa.gz")
	f, err := os.Create(gz)
	assert.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(fastaData))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, f.Close())
	fa, err = fasta.Open(ctx, gz)
	assert.NoError(t, err)
	expect.EQ(t, fa.SeqNames(), []string{"seq1", "seq2"})

	empty := filepath.Join(tempDir, "empty.fa")
	assert.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = fasta.Open(ctx, empty)
	expect.EQ(t, errors.Cause(err), fasta.ErrEmpty)

	_, err = fasta.Open(ctx, filepath.Join(tempDir, "missing.fa"))
	expect.True(t, err != nil)
}
