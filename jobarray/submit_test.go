package jobarray

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

// writeFakeQsub installs an executable named qsub in dir that records its
// argument and working directory and prints a job ID.
func writeFakeQsub(t *testing.T, dir string, exit int) {
	script := `#!/bin/sh
echo "$1" > "${0%/*}/qsub.args"
pwd >> "${0%/*}/qsub.args"
echo "submission refused" >&2
`
	if exit == 0 {
		script += "echo '4321[].pbsserver'\n"
	} else {
		script += "exit 3\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qsub"), []byte(script), 0755))
}

func TestQsub(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	bin := filepath.Join(tempDir, "bin")
	work := filepath.Join(tempDir, "work")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.MkdirAll(work, 0755))
	writeFakeQsub(t, bin, 0)

	// Without Dir, qsub runs from the directory of the driver.
	q := Qsub{Env: []string{"PATH=" + bin}}
	id, err := q.Submit(context.Background(), filepath.Join(work, DriverName))
	require.NoError(t, err)
	expect.EQ(t, id, JobID("4321[].pbsserver"))

	args, err := os.ReadFile(filepath.Join(bin, "qsub.args"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(args)), "\n")
	require.Len(t, lines, 2)
	expect.EQ(t, lines[0], filepath.Join(work, DriverName))
	resolved, err := filepath.EvalSymlinks(work)
	require.NoError(t, err)
	expect.True(t, lines[1] == work || lines[1] == resolved, "pwd %s", lines[1])
}

func TestQsubFailure(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	writeFakeQsub(t, tempDir, 3)

	q := Qsub{Dir: tempDir, Env: []string{"PATH=" + tempDir}}
	_, err := q.Submit(context.Background(), "driver.pbs")
	require.Error(t, err)
	expect.True(t, strings.Contains(err.Error(), "submission refused"), "%v", err)
}

func TestQsubNotFound(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	q := Qsub{Command: "no-such-qsub", Env: []string{"PATH=" + tempDir}}
	_, err := q.Submit(context.Background(), "driver.pbs")
	require.Error(t, err)
	expect.True(t, strings.Contains(err.Error(), "no-such-qsub"), "%v", err)
}

func TestDryRun(t *testing.T) {
	id, err := DryRun{}.Submit(context.Background(), "/out/nesoni_SeqFindR.pbs")
	require.NoError(t, err)
	expect.EQ(t, id, JobID(""))
}
