package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/mscook/SeqFindR-nesoni/jobarray"
	"github.com/stretchr/testify/require"
	"v.io/x/lib/cmdline"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	env := &cmdline.Env{Stdout: &stdout, Stderr: &stderr, Vars: map[string]string{}}
	err := cmdline.ParseAndRun(newRoot(), env, args)
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	expect.EQ(t, out, "seqfindr-nesoni "+Version+"\n")
}

func TestGenerateCommand(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reads := writeReads(t, tempDir, "/data/s1_R1.fq", "/data/s1_R2.fq", "/data/s2_R1.fq", "/data/s2_R2.fq")
	out := filepath.Join(tempDir, "out")

	_, err := runCommand(t, "generate", "-paired", "-cores", "8", reads, out, "/ref/myref")
	require.NoError(t, err)
	driver, err := os.ReadFile(filepath.Join(out, jobarray.DriverName))
	require.NoError(t, err)
	expect.True(t, strings.Contains(string(driver), "#PBS -J 1-2\n"), "%s", driver)
	expect.True(t, strings.Contains(string(driver), "ncpus=8:"), "%s", driver)

	idx, err := runCommand(t, "index", out)
	require.NoError(t, err)
	expect.EQ(t, idx, "1\ts1\tpaired\t/data/s1_R1.fq,/data/s1_R2.fq\n2\ts2\tpaired\t/data/s2_R1.fq,/data/s2_R2.fq\n")

	st, err := runCommand(t, "status", out)
	require.NoError(t, err)
	expect.EQ(t, st, "1\ts1\tpending\n2\ts2\tpending\n")
}

func TestIDsCommand(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reads := writeReads(t, tempDir, "/data/sA.fq", "/data/sB.fq")
	out, err := runCommand(t, "ids", "-delim", ".", reads)
	require.NoError(t, err)
	expect.EQ(t, out, "1\tsA\tnesoni_SeqFindR.1\t/data/sA.fq\n2\tsB\tnesoni_SeqFindR.2\t/data/sB.fq\n")
}

func TestCommandErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reads := writeReads(t, tempDir, "/data/s1_R1.fq")

	_, err := runCommand(t, "generate", "-paired", reads, filepath.Join(tempDir, "out"), "/ref/myref")
	expect.True(t, err != nil)
	_, err = os.Stat(filepath.Join(tempDir, "out"))
	expect.True(t, os.IsNotExist(err))

	_, err = runCommand(t, "generate", reads)
	expect.True(t, err != nil)
	_, err = runCommand(t, "no-such-command")
	expect.True(t, err != nil)
}
