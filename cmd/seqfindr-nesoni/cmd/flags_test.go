package cmd

import (
	"flag"
	"testing"
	"time"

	"github.com/mscook/SeqFindR-nesoni/jobarray"
	"github.com/mscook/SeqFindR-nesoni/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) (*runFlags, []string) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := &runFlags{}
	f.register(fs)
	require.NoError(t, fs.Parse(args))
	return f, fs.Args()
}

func TestFlagDefaults(t *testing.T) {
	f, argv := parseFlags(t, "reads.txt", "out", "ref")
	o, err := f.opts(argv)
	require.NoError(t, err)
	d := jobarray.DefaultOpts
	assert.Equal(t, "reads.txt", o.ReadsFile)
	assert.Equal(t, "out", o.OutputBase)
	assert.Equal(t, "ref", o.ReferenceDir)
	assert.Equal(t, manifest.Interleaved, o.Mode)
	assert.Equal(t, d.Delim, o.Delim)
	assert.Equal(t, d.Cores, o.Cores)
	assert.Equal(t, d.MemoryGB, o.MemoryGB)
	assert.Equal(t, d.NodeType, o.NodeType)
	assert.Equal(t, d.Walltime, o.Walltime)
	assert.Equal(t, d.JobName, o.JobName)
	assert.False(t, o.CheckReads)
	assert.False(t, o.StrictMates)
	assert.Equal(t, "qsub", f.qsub)
	assert.False(t, f.verbose)
}

func TestFlagOverrides(t *testing.T) {
	f, argv := parseFlags(t,
		"-paired", "-delim", ".", "-cores", "8", "-memory", "32",
		"-node-type", "large", "-walltime", "12h", "-job-name", "run1",
		"-check-reads", "-strict-mates", "-parallelism", "2", "-verbose",
		"reads.txt", "out", "ref")
	o, err := f.opts(argv)
	require.NoError(t, err)
	assert.Equal(t, manifest.Paired, o.Mode)
	assert.Equal(t, ".", o.Delim)
	assert.Equal(t, 8, o.Cores)
	assert.Equal(t, 32, o.MemoryGB)
	assert.Equal(t, "large", o.NodeType)
	assert.Equal(t, 12*time.Hour, o.Walltime)
	assert.Equal(t, "run1", o.JobName)
	assert.True(t, o.CheckReads)
	assert.True(t, o.StrictMates)
	assert.Equal(t, 2, o.Parallelism)
	assert.True(t, f.verbose)
}

func TestMode(t *testing.T) {
	f, _ := parseFlags(t, "-interleaved", "-paired")
	mode, err := f.mode()
	require.NoError(t, err)
	assert.Equal(t, manifest.Paired, mode)

	f, _ = parseFlags(t, "-interleaved=false", "-paired")
	mode, err = f.mode()
	require.NoError(t, err)
	assert.Equal(t, manifest.Paired, mode)

	f, _ = parseFlags(t)
	mode, err = f.mode()
	require.NoError(t, err)
	assert.Equal(t, manifest.Interleaved, mode)

	f, argv := parseFlags(t, "-interleaved=false", "reads.txt", "out", "ref")
	_, err = f.mode()
	assert.Error(t, err)
	_, err = f.opts(argv)
	assert.Error(t, err)
}

func TestFlagErrors(t *testing.T) {
	f, argv := parseFlags(t, "reads.txt", "out")
	_, err := f.opts(argv)
	assert.Error(t, err)

	f, argv = parseFlags(t, "-cores", "0", "reads.txt", "out", "ref")
	_, err = f.opts(argv)
	assert.Error(t, err)

	f, argv = parseFlags(t, "-delim", "", "reads.txt", "out", "ref")
	_, err = f.opts(argv)
	assert.Error(t, err)
}
