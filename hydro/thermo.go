// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hydro implements the hydrodynamic matching engine (spec.md §4.F):
// Jouguet-velocity search, deflagration/detonation/hybrid branch selection,
// the shock-profile ODE and the LTE wall-speed solve.
package hydro

import (
	"math"

	"github.com/wallgo/wallgo/freeenergy"
)

// Thermo supplies p(T), e(T), w(T), c_s^2(T) for one phase (spec.md §4.F).
type Thermo interface {
	P(T float64) float64
	E(T float64) float64
	W(T float64) float64
	CsSq(T float64) float64
	Range() (Tmin, Tmax float64)
}

// PhaseThermo derives p/e/w/c_s^2 from a traced freeenergy.Phase via
// e = T p' - p, w = e + p (spec.md §4.F).
type PhaseThermo struct {
	phase *freeenergy.Phase
}

// NewPhaseThermo wraps a traced phase as a Thermo.
func NewPhaseThermo(phase *freeenergy.Phase) *PhaseThermo { return &PhaseThermo{phase: phase} }

func (t *PhaseThermo) Range() (float64, float64) { return t.phase.Range() }

// P is the pressure, p(T) = -V_min(T).
func (t *PhaseThermo) P(T float64) float64 {
	_, v, err := t.phase.At(T)
	if err != nil {
		return math.NaN()
	}
	return -v
}

func dPdT(th Thermo, T float64) float64 {
	lo, hi := th.Range()
	h := 1e-3 * (hi - lo)
	if h <= 0 {
		h = 1e-4 * math.Max(1, T)
	}
	return (th.P(T+h) - th.P(T-h)) / (2 * h)
}

func dEdT(th Thermo, T float64) float64 {
	lo, hi := th.Range()
	h := 1e-3 * (hi - lo)
	if h <= 0 {
		h = 1e-4 * math.Max(1, T)
	}
	return (th.E(T+h) - th.E(T-h)) / (2 * h)
}

// E is the energy density, e = T p' - p.
func (t *PhaseThermo) E(T float64) float64 {
	return T*dPdT(t, T) - t.P(T)
}

// W is the enthalpy density, w = e + p.
func (t *PhaseThermo) W(T float64) float64 { return t.E(T) + t.P(T) }

// CsSq is the sound speed squared, c_s^2 = dp/de = p'(T) / e'(T).
func (t *PhaseThermo) CsSq(T float64) float64 {
	return dPdT(t, T) / dEdT(t, T)
}
