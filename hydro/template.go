// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/wallgo/wallgo/freeenergy"
)

// TemplateModel is the analytic bag (constant c_s^2 = 1/3 in each phase,
// p(T) = a*T^4 - b) equation of state used as the fallback whenever the full
// thermodynamic matching or Jouguet search fails to bracket (spec.md
// §4.F/§9(c), SUPPLEMENTED FEATURES #1, ported from
// LTE/WallSpeedLTETemplate.py's HydrodynamicsTemplateModel).
type TemplateModel struct {
	AHigh, BHigh float64 // p_+(T) = AHigh*T^4 - BHigh
	ALow, BLow   float64 // p_-(T) = ALow*T^4 - BLow
}

// DefaultTemplate fits a bag model to the traced phases at Tn: the quartic
// coefficients from the local sound speed (assumed 1/3) and the vacuum
// energy difference from the pressure difference at Tn, the same one-point
// calibration the Python template model uses.
func DefaultTemplate(high, low *freeenergy.Phase, Tn float64) *TemplateModel {
	highT := NewPhaseThermo(high)
	lowT := NewPhaseThermo(low)
	pp, ep := highT.P(Tn), highT.E(Tn)
	pm, em := lowT.P(Tn), lowT.E(Tn)
	aHigh := ep / (3 * Tn * Tn * Tn * Tn)
	bHigh := aHigh*math.Pow(Tn, 4) - pp
	aLow := em / (3 * Tn * Tn * Tn * Tn)
	bLow := aLow*math.Pow(Tn, 4) - pm
	return &TemplateModel{AHigh: aHigh, BHigh: bHigh, ALow: aLow, BLow: bLow}
}

func (t *TemplateModel) pHigh(T float64) float64 { return t.AHigh*math.Pow(T, 4) - t.BHigh }
func (t *TemplateModel) eHigh(T float64) float64 { return 3*t.pHigh(T) + 4*t.BHigh }
func (t *TemplateModel) pLow(T float64) float64  { return t.ALow*math.Pow(T, 4) - t.BLow }
func (t *TemplateModel) eLow(T float64) float64  { return 3*t.pLow(T) + 4*t.BLow }

// bagThermo is a Thermo view of one bag-model branch, with c_s^2 = 1/3
// identically and an unbounded traced range (the template is analytic
// everywhere by construction).
type bagThermo struct {
	p func(T float64) float64
	e func(T float64) float64
}

func (b bagThermo) P(T float64) float64    { return b.p(T) }
func (b bagThermo) E(T float64) float64    { return b.e(T) }
func (b bagThermo) W(T float64) float64    { return b.e(T) + b.p(T) }
func (b bagThermo) CsSq(T float64) float64 { return 1.0 / 3.0 }
func (b bagThermo) Range() (float64, float64) { return 0, math.Inf(1) }

// High returns the symmetric-phase branch as a Thermo.
func (t *TemplateModel) High() Thermo { return bagThermo{p: t.pHigh, e: t.eHigh} }

// Low returns the broken-phase branch as a Thermo.
func (t *TemplateModel) Low() Thermo { return bagThermo{p: t.pLow, e: t.eLow} }

// JouguetVelocity returns the analytic bag-model Jouguet velocity at Tn,
// v_J = 1/(1+alpha) * [ 1/sqrt(3) + sqrt(alpha^2 + 2*alpha/3) ], alpha the
// transition strength parameter (latent heat over the symmetric-phase
// enthalpy), the standard closed form for a constant-c_s^2 equation of
// state.
func (t *TemplateModel) JouguetVelocity(Tn float64) float64 {
	wPlus := t.eHigh(Tn) + t.pHigh(Tn)
	alpha := (t.BHigh - t.BLow) / wPlus
	if alpha < 0 {
		alpha = 0
	}
	return 1.0 / (1 + alpha) * (1/math.Sqrt(3) + math.Sqrt(alpha*alpha+2*alpha/3))
}

// Match solves the same matching system as the full Engine.FindMatching but
// over the bag branches, used as the deliberate soft-failure fallback
// (spec.md §9(c)).
func (t *TemplateModel) Match(vw, Tn float64) (*MatchResult, error) {
	tp := thermoPair{High: t.High(), Low: t.Low()}
	vJ := t.JouguetVelocity(Tn)
	if vw > vJ {
		return detonationMatch(tp, vw, Tn)
	}
	return deflagHybridMatch(tp, vw, Tn, 0.2*Tn, 10*Tn)
}
