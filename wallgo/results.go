// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallgo

import (
	"github.com/wallgo/wallgo/boltzmann"
	"github.com/wallgo/wallgo/eom"
	"github.com/wallgo/wallgo/wgerrors"
)

// Deltas bundles the four moment profiles reported per off-equilibrium
// particle (spec.md §6 "WallGoResults").
type Deltas struct {
	Delta00, Delta02, Delta20, Delta11 []float64
}

// Results is the WallGoResults record of spec.md §6, the terminal output
// of a wall solve.
type Results struct {
	WallVelocity        float64
	WallVelocityError    float64
	WallWidths           []float64
	WallOffsets          []float64
	TemperaturePlus      float64
	TemperatureMinus     float64
	Deltas               map[string]Deltas // keyed by particle name
	HasOutOfEquilibrium  bool
	Warnings             []wgerrors.Warning
}

// fromLoopResult converts the eom package's internal Result into the
// public Results record, unpacking per-particle Moments into Deltas and
// merging the loop's own accumulated warnings (spec.md §7) with any the
// manager collected before the solve (e.g. during collision tensor loading).
func fromLoopResult(r *eom.Result, warnings []wgerrors.Warning) *Results {
	deltas := make(map[string]Deltas, len(r.Moments))
	for name, m := range r.Moments {
		deltas[name] = deltasFromMoments(m)
	}
	all := append(append([]wgerrors.Warning{}, warnings...), r.Warnings...)
	return &Results{
		WallVelocity:        r.WallVelocity,
		WallVelocityError:   r.WallVelocityError,
		WallWidths:          r.WallWidths,
		WallOffsets:         r.WallOffsets,
		TemperaturePlus:     r.TemperaturePlus,
		TemperatureMinus:    r.TemperatureMinus,
		Deltas:              deltas,
		HasOutOfEquilibrium: r.HasOutOfEquilibrium,
		Warnings:            all,
	}
}

func deltasFromMoments(m *boltzmann.Moments) Deltas {
	return Deltas{Delta00: m.Delta00, Delta02: m.Delta02, Delta20: m.Delta20, Delta11: m.Delta11}
}
