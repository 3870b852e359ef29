// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"v.io/x/lib/envvar"
	"v.io/x/lib/lookpath"
)

// JobID identifies a submitted job, as printed by the scheduler.
type JobID string

// Submitter hands a driver script to a scheduler.
type Submitter interface {
	Submit(ctx context.Context, script string) (JobID, error)
}

// Qsub submits with a PBS-style submit command. The command is looked up on
// PATH, run from Dir with the script as its only argument, and its trimmed
// standard output is returned as the job ID.
type Qsub struct {
	// Command is the submit command; "qsub" if empty.
	Command string
	// Dir is the working directory of the submit command. If empty, the
	// directory of the script is used.
	Dir string
	// Env, if set, replaces the process environment. It is also used to
	// resolve Command.
	Env []string
}

// Submit implements Submitter.
func (q Qsub) Submit(ctx context.Context, script string) (JobID, error) {
	name := q.Command
	if name == "" {
		name = "qsub"
	}
	env := q.Env
	if env == nil {
		env = os.Environ()
	}
	path := name
	if !filepath.IsAbs(name) {
		var err error
		if path, err = lookpath.Look(envvar.SliceToMap(env), name); err != nil {
			return "", errors.E(errors.NotExist, err, "submit command", name)
		}
	}
	cmd := exec.CommandContext(ctx, path, script)
	cmd.Dir = q.Dir
	if cmd.Dir == "" {
		cmd.Dir = filepath.Dir(script)
	}
	cmd.Env = env
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", errors.E(err, fmt.Sprintf("%s %s: %s", name, script, strings.TrimSpace(stderr.String())))
	}
	id := JobID(strings.TrimSpace(string(out)))
	log.Debug.Printf("%s %s: job %s", name, script, id)
	return id, nil
}

// DryRun logs the submission it would make and returns an empty JobID.
type DryRun struct {
	Command string
}

// Submit implements Submitter.
func (d DryRun) Submit(ctx context.Context, script string) (JobID, error) {
	name := d.Command
	if name == "" {
		name = "qsub"
	}
	log.Printf("dry run, not submitting: %s %s", name, shellescape.Quote(script))
	return "", nil
}
