// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import "math"

// ExtrapolatedThermo linearly extrapolates a phase-traced Thermo beyond its
// traced [Tmin,Tmax] instead of erroring (spec.md SUPPLEMENTED FEATURES #4,
// ported from hydrodynamics.py's ThermodynamicsExtrapolate): the Jouguet and
// matching root-finders in this package probe temperatures outside the
// traced range while bracketing, and must not panic when they do.
type ExtrapolatedThermo struct {
	inner Thermo
}

// NewExtrapolated wraps inner with linear boundary extrapolation.
func NewExtrapolated(inner Thermo) *ExtrapolatedThermo { return &ExtrapolatedThermo{inner: inner} }

func (e *ExtrapolatedThermo) Range() (float64, float64) {
	// the extrapolating wrapper has no hard boundary of its own.
	return math.Inf(-1), math.Inf(1)
}

func (e *ExtrapolatedThermo) P(T float64) float64    { return e.extrap(e.inner.P, T) }
func (e *ExtrapolatedThermo) E(T float64) float64    { return e.extrap(e.inner.E, T) }
func (e *ExtrapolatedThermo) W(T float64) float64    { return e.extrap(e.inner.W, T) }
func (e *ExtrapolatedThermo) CsSq(T float64) float64 { return e.extrap(e.inner.CsSq, T) }

func (e *ExtrapolatedThermo) extrap(f func(float64) float64, T float64) float64 {
	lo, hi := e.inner.Range()
	if T >= lo && T <= hi {
		return f(T)
	}
	var boundary float64
	if T < lo {
		boundary = lo
	} else {
		boundary = hi
	}
	h := 1e-3 * math.Max(1, math.Abs(boundary))
	v0 := f(boundary)
	var d float64
	if T < boundary {
		d = (f(boundary+h) - v0) / h
	} else {
		d = (v0 - f(boundary-h)) / h
	}
	return v0 + d*(T-boundary)
}
