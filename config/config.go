// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the configuration keys consumed by the wall
// solver (spec.md §6), loaded from a plain JSON document the same way
// gofem's inp package loads a .sim file.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// GridData holds PolynomialGrid.* keys.
type GridData struct {
	SpatialGridSize   int     `json:"spatialGridSize"`   // M
	MomentumGridSize  int     `json:"momentumGridSize"`  // N, must be odd
	LXi               float64 `json:"L_xi"`              // default wall length scale
}

// PotentialData holds EffectivePotential.* keys.
type PotentialData struct {
	DT              float64 `json:"dT"`              // finite-difference step in T
	DPhi            float64 `json:"dPhi"`            // finite-difference step in field
	PhaseTracerTol  float64 `json:"phaseTracerTol"`  // rTol for the phase IVP
}

// EOMData holds EOM.* keys.
type EOMData struct {
	ErrTol         float64 `json:"errTol"`
	MaxIterations  int     `json:"maxIterations"`
	PressRelErrTol float64 `json:"pressRelErrTol"`
}

// HydroData holds Hydrodynamics.* keys.
type HydroData struct {
	TMax float64 `json:"tmax"` // multiplier on Tn for the hydrodynamic search window
	TMin float64 `json:"tmin"`
}

// DataFilesData holds DataFiles.* keys.
type DataFilesData struct {
	InterpolationTableJb string `json:"InterpolationTable_Jb"`
	InterpolationTableJf string `json:"InterpolationTable_Jf"`
}

// Config is the top-level configuration document.
type Config struct {
	PolynomialGrid     GridData      `json:"PolynomialGrid"`
	EffectivePotential PotentialData `json:"EffectivePotential"`
	EOM                EOMData       `json:"EOM"`
	Hydrodynamics      HydroData     `json:"Hydrodynamics"`
	DataFiles          DataFilesData `json:"DataFiles"`
}

// SetDefault fills in the defaults used throughout the reference benchmarks
// (spec.md §8), mirroring the way inp.SolverData.SetDefault seeds FEM solver
// controls before the JSON document is unmarshalled over them.
func (o *Config) SetDefault() {
	o.PolynomialGrid = GridData{
		SpatialGridSize:  20,
		MomentumGridSize: 11,
		LXi:              5.0,
	}
	o.EffectivePotential = PotentialData{
		DT:             1e-3,
		DPhi:           1e-3,
		PhaseTracerTol: 1e-6,
	}
	o.EOM = EOMData{
		ErrTol:         1e-3,
		MaxIterations:  20,
		PressRelErrTol: 1e-3,
	}
	o.Hydrodynamics = HydroData{
		TMax: 10.0,
		TMin: 0.01,
	}
}

// Validate checks the invariants config.go is responsible for (spec.md §3:
// "N odd"); everything else is validated by the package that owns it.
func (o *Config) Validate() error {
	if o.PolynomialGrid.MomentumGridSize%2 == 0 {
		return chk.Err("PolynomialGrid.momentumGridSize (N=%d) must be odd",
			o.PolynomialGrid.MomentumGridSize)
	}
	return nil
}

// ReadConfig reads a JSON configuration file, applying defaults the same
// way inp.ReadSim applies SolverData/LinSolData defaults before decoding.
func ReadConfig(path string) (*Config, error) {
	var o Config
	o.SetDefault()
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("ReadConfig: cannot read configuration file %q: %v", path, err)
	}
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, chk.Err("ReadConfig: cannot unmarshal configuration file %q: %v", path, err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Default returns a Config with every field set to its default value; used
// by callers (and tests) that don't load from a file.
func Default() *Config {
	var o Config
	o.SetDefault()
	return &o
}
