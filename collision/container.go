// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements CollisionArray (spec.md §4.G): loading,
// interpolating and basis-transforming the precomputed collision tensor.
//
// spec.md §6 describes the on-disk container as "HDF5-like"; no HDF5
// binding appears anywhere in the retrieval pack (teacher or siblings), so
// the container is realized with Go's own encoding/gob, exactly the way
// gofem's own fem/fileio.go persists solver state (GetEncoder/GetDecoder
// switching between gob and json) — see DESIGN.md "Standard-library
// justifications".
package collision

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/wallgo/wallgo/wgerrors"
)

// container mirrors the file's /metadata group and its per-pair datasets
// (spec.md §6): BasisSize/BasisType are the metadata attributes, Pairs maps
// "name1, name2" to the flattened (N_file-1)^4 dataset stored in the file's
// native axis order (poly1,poly2,pz,pp).
type container struct {
	BasisSize int
	BasisType string // "Cardinal" or "Chebyshev"
	Pairs     map[string][]float64
}

// saveContainer writes a container to path using gob, mirroring gofem's
// fem.Domain.SaveSol encode-to-buffer-then-write pattern.
func saveContainer(path string, c *container) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return chk.Err("collision: cannot encode container: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return chk.Err("collision: cannot write %q: %v", path, err)
	}
	return nil
}

// loadContainer reads a container previously written by saveContainer.
func loadContainer(path string) (*container, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, wgerrors.New(wgerrors.CollisionLoadError,
			map[string]interface{}{"path": path}, "collision: cannot read %q: %v", path, err)
	}
	var c container
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&c); err != nil {
		return nil, wgerrors.New(wgerrors.CollisionLoadError,
			map[string]interface{}{"path": path}, "collision: cannot decode %q: %v", path, err)
	}
	return &c, nil
}

// SaveForTest writes a synthetic container, exported only for this
// package's own tests (and any downstream test harness) to build fixture
// files without depending on a real collision-integral run.
func SaveForTest(path string, basisSize int, basisType string, pairs map[string][]float64) error {
	return saveContainer(path, &container{BasisSize: basisSize, BasisType: basisType, Pairs: pairs})
}
