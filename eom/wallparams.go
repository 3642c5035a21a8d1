// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eom implements the field equation of motion and the wall-velocity
// outer loop of spec.md §4.I: the wall-shape ansatz, the pressure-balance
// residual, the damped Levenberg-Marquardt wall-parameter fit, and the
// outer state machine that couples hydrodynamics and the Boltzmann solver
// to report a final wall velocity.
package eom

import (
	"github.com/wallgo/wallgo/wgerrors"
)

// WallParams is the data model's (widths, offsets) pair (spec.md §3):
// widths strictly positive and bounded by a configured maximum, offsets
// measured relative to field 1 (Offsets[0] == 0 by convention).
type WallParams struct {
	Widths  []float64
	Offsets []float64
}

// NewWallParams validates the invariants of spec.md §3 "WallParams". A
// width exceeding maxWidth does not prevent construction: it is non-fatal
// (spec.md §7 "NumericalWarning ... accumulated into the results record"),
// so it is reported back as a Warning alongside the constructed WallParams
// rather than as an error; only shape/sign/offset violations are fatal.
func NewWallParams(widths, offsets []float64, maxWidth float64) (*WallParams, *wgerrors.Warning, error) {
	if len(widths) != len(offsets) {
		return nil, nil, wgerrors.New(wgerrors.GridConfigError,
			map[string]interface{}{"widths": len(widths), "offsets": len(offsets)},
			"eom: widths and offsets must have the same length")
	}
	var warning *wgerrors.Warning
	for i, w := range widths {
		if w <= 0 {
			return nil, nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"i": i, "width": w},
				"eom: wall width[%d]=%g must be strictly positive", i, w)
		}
		if w > maxWidth && warning == nil {
			warning = &wgerrors.Warning{
				Message: "wall width exceeds the configured maximum",
				Input:   map[string]interface{}{"i": i, "width": w, "max": maxWidth},
			}
		}
	}
	if len(offsets) > 0 && offsets[0] != 0 {
		return nil, nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"offset0": offsets[0]},
			"eom: offsets[0] must be 0 (offsets are measured relative to field 1)")
	}
	return &WallParams{Widths: append([]float64{}, widths...), Offsets: append([]float64{}, offsets...)}, warning, nil
}

// toVector packs (widths, offsets[1:]) into the flat parameter vector the
// Levenberg-Marquardt fit optimizes over (offsets[0] is pinned at 0).
func (wp *WallParams) toVector() []float64 {
	n := len(wp.Widths)
	x := make([]float64, 2*n-1)
	copy(x, wp.Widths)
	copy(x[n:], wp.Offsets[1:])
	return x
}

// fromVector is the inverse of toVector, given the number of fields F.
func fromVector(x []float64, f int) *WallParams {
	widths := append([]float64{}, x[:f]...)
	offsets := make([]float64, f)
	copy(offsets[1:], x[f:])
	return &WallParams{Widths: widths, Offsets: offsets}
}
