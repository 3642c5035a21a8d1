// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestDefaultIsValid(tst *testing.T) {
	o := Default()
	if err := o.Validate(); err != nil {
		tst.Fatalf("default config must be valid: %v", err)
	}
	chk.Scalar(tst, "default momentum grid size", 0, float64(o.PolynomialGrid.MomentumGridSize), 11)
}

func TestValidateRejectsEvenN(tst *testing.T) {
	o := Default()
	o.PolynomialGrid.MomentumGridSize = 10
	if err := o.Validate(); err == nil {
		tst.Errorf("expected Validate to reject even momentumGridSize")
	}
}

func TestReadConfigOverridesDefaults(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "config.json")
	doc := `{"EOM": {"errTol": 1e-5, "maxIterations": 42}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		tst.Fatalf("could not write test config: %v", err)
	}
	o, err := ReadConfig(path)
	if err != nil {
		tst.Fatalf("ReadConfig failed: %v", err)
	}
	chk.Scalar(tst, "overridden errTol", 1e-12, o.EOM.ErrTol, 1e-5)
	chk.Scalar(tst, "overridden maxIterations", 0, float64(o.EOM.MaxIterations), 42)
	// fields not present in the document keep their defaults.
	chk.Scalar(tst, "default spatial grid size survives partial override",
		0, float64(o.PolynomialGrid.SpatialGridSize), 20)
}

func TestReadConfigMissingFileFails(tst *testing.T) {
	_, err := ReadConfig(filepath.Join(tst.TempDir(), "does-not-exist.json"))
	if err == nil {
		tst.Errorf("expected an error reading a missing config file")
	}
}
