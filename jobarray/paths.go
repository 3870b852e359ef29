// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package jobarray

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// Paths holds the resolved directories of a run.
type Paths struct {
	// Root is the absolute output base. All generated files are written
	// here.
	Root string
	// Reference is the absolute reference directory, without a trailing
	// separator.
	Reference string
	// ReferenceID is the final path segment of Reference.
	ReferenceID string
}

// PreparePaths expands and absolutizes the output base and the reference
// directory, and creates the output base (with parents) if it does not
// exist. The reference directory is not inspected.
func PreparePaths(outputBase, referenceDir string) (Paths, error) {
	var p Paths
	root, err := absPath(outputBase)
	if err != nil {
		return p, err
	}
	if err := os.MkdirAll(root, 0777); err != nil {
		return p, errors.E(err, "create output base", root)
	}
	ref, err := absPath(referenceDir)
	if err != nil {
		return p, err
	}
	// filepath.Abs already cleans the path; this only matters for "/".
	ref = strings.TrimSuffix(ref, string(filepath.Separator))
	p = Paths{
		Root:        root,
		Reference:   ref,
		ReferenceID: strings.TrimSpace(filepath.Base(ref)),
	}
	if p.ReferenceID == "" || p.ReferenceID == "." || p.ReferenceID == string(filepath.Separator) {
		return Paths{}, errors.E(errors.Invalid, "reference directory has no name:", referenceDir)
	}
	if strings.HasPrefix(p.ReferenceID, "-") {
		return Paths{}, errors.E(errors.Invalid, "reference directory name starts with '-':", referenceDir)
	}
	log.Debug.Printf("output base %s, reference %s (%s)", p.Root, p.Reference, p.ReferenceID)
	return p, nil
}

func absPath(path string) (string, error) {
	path, err := manifest.ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.E(err, "absolute path of", path)
	}
	return abs, nil
}
