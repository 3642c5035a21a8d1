// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/wallgo/wallgo/config"
	"github.com/wallgo/wallgo/freeenergy"
	"github.com/wallgo/wallgo/rootfind"
	"github.com/wallgo/wallgo/wgerrors"
)

// Engine is the hydrodynamic matching engine of spec.md §4.F: it exposes
// p_+/-(T), e_+/-(T), w_+/-(T), c_s+/-^2(T) through the two traced phases,
// the Jouguet velocity, the full matching solve and the LTE wall-speed
// solve.
type Engine struct {
	High, Low Thermo // extrapolating wrappers around the traced phases
	Tn        float64
	Template  *TemplateModel
	TMaxMult  float64
	TMinMult  float64
}

// New builds an Engine from the traced high-T (symmetric) and low-T
// (broken) phases and the nucleation temperature, using
// config.Hydrodynamics.{tmax,tmin} as the multipliers on Tn that bound the
// hydrodynamic search window (spec.md §6).
func New(highPhase, lowPhase *freeenergy.Phase, Tn float64, cfg *config.Config) *Engine {
	high := NewExtrapolated(NewPhaseThermo(highPhase))
	low := NewExtrapolated(NewPhaseThermo(lowPhase))
	return &Engine{
		High: high, Low: low, Tn: Tn,
		Template: DefaultTemplate(highPhase, lowPhase, Tn),
		TMaxMult: cfg.Hydrodynamics.TMax,
		TMinMult: cfg.Hydrodynamics.TMin,
	}
}

func (e *Engine) pair() thermoPair { return thermoPair{High: e.High, Low: e.Low} }

// JouguetVelocity finds v_J via the stationarity condition
// d(v_+^2)/dT_- = 0 at T_- (v_J) (spec.md §4.F): first tries to bracket the
// root in [T_n, min(2T_n,T_max)], doubling the upper bound if it cannot
// bracket; then Brent. Falls back to secant, then to the template model's
// analytic v_J if both fail.
func (e *Engine) JouguetVelocity() (float64, error) {
	numerator := func(Tminus float64) float64 {
		h := 1e-3 * e.Tn
		return (vPlusSqDetonation(e.pair(), e.Tn, Tminus+h) - vPlusSqDetonation(e.pair(), e.Tn, Tminus-h)) / (2 * h)
	}
	lo := e.Tn
	hi := math.Min(2*e.Tn, e.Tn*e.TMaxMult)

	loB, hiB, ok := rootfind.ExpandBracket(numerator, lo, hi, 2.0, 12)
	var Tminus float64
	var err error
	if ok {
		Tminus, err = rootfind.Brent(numerator, loB, hiB, 1e-8*e.Tn)
	}
	if !ok || err != nil {
		Tminus, err = rootfind.Secant(numerator, e.Tn, hi, 80, 1e-8*e.Tn)
	}
	if err != nil || Tminus <= 0 {
		return e.Template.JouguetVelocity(e.Tn), nil
	}
	vJsq := vPlusSqDetonation(e.pair(), e.Tn, Tminus)
	if vJsq <= 0 || vJsq >= 1 {
		return e.Template.JouguetVelocity(e.Tn), nil
	}
	return math.Sqrt(vJsq), nil
}

// FindMatching chooses the branch by comparing v_w to v_J and solves the
// corresponding matching system, falling back to the template model when
// the full solve fails to converge (spec.md §4.F, §9(c)).
func (e *Engine) FindMatching(vw float64) (*MatchResult, error) {
	vJ, err := e.JouguetVelocity()
	if err != nil {
		return nil, err
	}
	if vw > vJ {
		res, derr := detonationMatch(e.pair(), vw, e.Tn)
		if derr != nil {
			return e.Template.Match(vw, e.Tn)
		}
		return res, nil
	}
	res, derr := deflagHybridMatch(e.pair(), vw, e.Tn, e.Tn*e.TMinMult, e.Tn*e.TMaxMult)
	if derr != nil {
		return e.Template.Match(vw, e.Tn)
	}
	return res, nil
}

// FindVwLTE solves T_+ gamma_+ = T_- gamma_- over v_w in
// [v_min, v_J - eps] (spec.md §4.F "findvwLTE"). Returns 1 if no solution
// exists (LTE runaway), 0 if v_w is below the minimum admissible velocity.
func (e *Engine) FindVwLTE() (float64, error) {
	vJ, err := e.JouguetVelocity()
	if err != nil {
		return 0, err
	}
	const vMin = 1e-3
	residual := func(vw float64) float64 {
		m, merr := e.FindMatching(vw)
		if merr != nil {
			return math.NaN()
		}
		gammaPlus := 1 / math.Sqrt(1-m.Vplus*m.Vplus)
		gammaMinus := 1 / math.Sqrt(1-m.Vminus*m.Vminus)
		return m.Tplus*gammaPlus - m.Tminus*gammaMinus
	}
	lo, hi, ok := scanBracket(residual, vMin, vJ-1e-4, 200)
	if !ok {
		if residual(vMin) > 0 {
			return 1, nil
		}
		return 0, nil
	}
	return rootfind.Brent(residual, lo, hi, 1e-6)
}

// DetonationRoots sweeps v_w in (v_J, 1) and reports every root of the
// net-pressure residual supplied by the caller (spec.md §4.I step 4,
// "detonation search, sweep v_w and report all roots"); hydro only owns the
// branch classification, the net-pressure function itself lives in eom.
func (e *Engine) DetonationRoots(residual rootfind.Func, n int) ([]float64, error) {
	vJ, err := e.JouguetVelocity()
	if err != nil {
		return nil, err
	}
	var roots []float64
	lo := vJ + 1e-4
	hi := 0.999
	if hi <= lo {
		return nil, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vJ": vJ}, "DetonationRoots: empty detonation range above v_J=%g", vJ)
	}
	step := (hi - lo) / float64(n)
	prev := lo
	prevF := residual(prev)
	for i := 1; i <= n; i++ {
		cur := lo + float64(i)*step
		curF := residual(cur)
		if !math.IsNaN(prevF) && !math.IsNaN(curF) && prevF*curF <= 0 {
			if root, rerr := rootfind.Brent(residual, prev, cur, 1e-6); rerr == nil {
				roots = append(roots, root)
			}
		}
		prev, prevF = cur, curF
	}
	return roots, nil
}
