// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eom

import "math"

// PhiProfile evaluates the wall ansatz of spec.md §4.I:
//
//	phi_i(z) = 0.5*phiBot_i*[1+tanh((z-delta_i)/L_i)] + 0.5*phiTop_i*[1-tanh((z-delta_i)/L_i)]
//
// phiBot is the field point approached as z -> +infinity, phiTop the point
// approached as z -> -infinity.
func PhiProfile(phiBot, phiTop []float64, wp *WallParams, z float64) []float64 {
	out := make([]float64, len(phiBot))
	for i := range out {
		t := math.Tanh((z - wp.Offsets[i]) / wp.Widths[i])
		out[i] = 0.5*phiBot[i]*(1+t) + 0.5*phiTop[i]*(1-t)
	}
	return out
}

// DPhiDz evaluates d(phi_i)/dz of the same ansatz.
func DPhiDz(phiBot, phiTop []float64, wp *WallParams, z float64) []float64 {
	out := make([]float64, len(phiBot))
	for i := range out {
		t := math.Tanh((z - wp.Offsets[i]) / wp.Widths[i])
		sech2 := 1 - t*t
		out[i] = 0.5 * (phiBot[i] - phiTop[i]) * sech2 / wp.Widths[i]
	}
	return out
}

// averageWidthOffset returns the DOF-weighted (here unweighted) average
// width and offset across fields, used to key the single temperature/
// velocity profile onto the multi-field wall shape (spec.md §4.I step 1
// "interpolate the temperature profile T(z) by the standard matching
// ansatz"): the source ties the temperature profile to one representative
// tanh interpolation rather than one per field, since T(z) is a single
// scalar background, not a per-field quantity.
func averageWidthOffset(wp *WallParams) (width, offset float64) {
	for _, w := range wp.Widths {
		width += w
	}
	width /= float64(len(wp.Widths))
	for _, d := range wp.Offsets {
		offset += d
	}
	offset /= float64(len(wp.Offsets))
	return
}

// ScalarProfile interpolates a scalar background quantity (T or v) between
// its broken-phase value bot (z->+infinity) and symmetric-phase value top
// (z->-infinity) using the wall's average width/offset.
func ScalarProfile(bot, top float64, wp *WallParams, z float64) float64 {
	width, offset := averageWidthOffset(wp)
	t := math.Tanh((z - offset) / width)
	return 0.5*bot*(1+t) + 0.5*top*(1-t)
}
