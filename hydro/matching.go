// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/wallgo/wallgo/rootfind"
	"github.com/wallgo/wallgo/wgerrors"
)

// MatchResult is the outcome of a wall-frame hydrodynamic matching solve
// (spec.md §4.F).
type MatchResult struct {
	Vplus, Vminus float64
	Tplus, Tminus float64
	Branch        string // "detonation" | "deflagration" | "hybrid"
}

// thermoPair bundles the symmetric (High) and broken (Low) phase Thermo
// implementations that every matching routine below needs; both the Engine
// (traced phases) and the TemplateModel (bag fallback) build one of these,
// so the matching logic itself is written once.
type thermoPair struct {
	High, Low Thermo
}

// vPlusSqDetonation evaluates the detonation jump-condition formula of
// spec.md §4.F solved for v_+^2:
//
//	v_+^2 (e_+-e_-) = (p_+-p_-)(e_-+p_+)/(e_++p_-)
//	  =>  v_+^2 = (p_+-p_-)(e_-+p_+) / [ (e_+-e_-)(e_++p_-) ]
func vPlusSqDetonation(tp thermoPair, Tplus, Tminus float64) float64 {
	pp, ep := tp.High.P(Tplus), tp.High.E(Tplus)
	pm, em := tp.Low.P(Tminus), tp.Low.E(Tminus)
	return (pp - pm) * (em + pp) / ((ep - em) * (ep + pm))
}

// detonationMatch solves the detonation branch (v_+ = v_w, T_+ = T_n,
// T_- free) of spec.md §4.F.
func detonationMatch(tp thermoPair, vw, Tn float64) (*MatchResult, error) {
	pp, ep := tp.High.P(Tn), tp.High.E(Tn)
	resid := func(Tm float64) float64 {
		pm, em := tp.Low.P(Tm), tp.Low.E(Tm)
		return vw*vw*(ep-em) - (pp-pm)*(em+pp)/(ep+pm)
	}
	lo, hi, ok := scanBracket(resid, 1e-3*Tn, Tn, 400)
	if !ok {
		return nil, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vw": vw, "Tn": Tn},
			"detonationMatch: no sign change bracketing T- in (0,Tn]")
	}
	Tminus, err := rootfind.Brent(resid, lo, hi, 1e-10*Tn)
	if err != nil {
		return nil, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vw": vw, "Tn": Tn}, "detonationMatch: Brent failed: %v", err)
	}
	pm, em := tp.Low.P(Tminus), tp.Low.E(Tminus)
	vminus := (pp - pm) / ((ep - em) * vw)
	return &MatchResult{Vplus: vw, Vminus: vminus, Tplus: Tn, Tminus: Tminus, Branch: "detonation"}, nil
}

// solveDeflagTemperatures reduces the deflagration/hybrid four-unknown
// system (v_+,v_-,T_+,T_-) to the two unknowns (T_+,T_-) at fixed v_+
// (spec.md §4.F), solved by Newton iteration on X = tan(pi(T-Tmid)/(Tmax-Tmin))
// to keep the temperatures inside [Tmin,Tmax] (spec.md §9(b): the symmetric
// tan-based map).
func solveDeflagTemperatures(tp thermoPair, vplus, Tn, Tmin, Tmax float64) (Tplus, Tminus float64, err error) {
	Tmid := 0.5 * (Tmin + Tmax)
	span := Tmax - Tmin
	toX := func(T float64) float64 { return math.Tan(math.Pi * (T - Tmid) / span) }
	toT := func(X float64) float64 { return Tmid + span/math.Pi*math.Atan(X) }

	residuals := func(X []float64) []float64 {
		Tp, Tm := toT(X[0]), toT(X[1])
		pp, ep := tp.High.P(Tp), tp.High.E(Tp)
		pm, em := tp.Low.P(Tm), tp.Low.E(Tm)
		vminusJump := (pp - pm) / ((ep - em) * vplus)
		ratio := (em + pp) / (ep + pm)
		r1 := vplus/vminusJump - ratio
		vminusEntropySq := 1 - Tm*Tm*(1-vplus*vplus)/(Tp*Tp)
		r2 := vminusJump*vminusJump - vminusEntropySq
		return []float64{r1, r2}
	}
	X, nerr := newton2D(residuals, []float64{toX(Tn), toX(0.99 * Tn)}, 200, 1e-10)
	if nerr != nil {
		return 0, 0, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vplus": vplus, "Tn": Tn}, "solveDeflagTemperatures: %v", nerr)
	}
	return toT(X[0]), toT(X[1]), nil
}

// deflagHybridMatch wraps solveDeflagTemperatures and the shock ODE in a
// 1-D root find over v_+ so that shockTemperature(vw,v_+,T_+) == Tn
// (spec.md §4.F "findMatching").
func deflagHybridMatch(tp thermoPair, vw, Tn, Tmin, Tmax float64) (*MatchResult, error) {
	residual := func(vplus float64) float64 {
		Tplus, _, err := solveDeflagTemperatures(tp, vplus, Tn, Tmin, Tmax)
		if err != nil {
			return math.NaN()
		}
		TnImplied, err := shockTemperature(tp, vw, vplus, Tplus)
		if err != nil {
			return math.NaN()
		}
		return TnImplied - Tn
	}
	upper := vw
	if cs2 := tp.High.CsSq(Tn); cs2 > 0 {
		bound := cs2 / math.Max(vw, 1e-6)
		if bound < upper {
			upper = bound
		}
	}
	lo, hi, ok := scanBracket(residual, 1e-3, upper, 200)
	if !ok {
		return nil, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vw": vw, "Tn": Tn}, "deflagHybridMatch: no sign change bracketing v+")
	}
	vplus, err := rootfind.Brent(residual, lo, hi, 1e-8)
	if err != nil {
		return nil, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vw": vw, "Tn": Tn}, "deflagHybridMatch: Brent failed: %v", err)
	}
	// solve the temperatures once more at the root v+ to report T+ and T-.
	// The upper bound above uses c_s^2(Tn); it is not re-evaluated at T+.
	Tplus, Tminus, err := solveDeflagTemperatures(tp, vplus, Tn, Tmin, Tmax)
	if err != nil {
		return nil, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"vw": vw, "Tn": Tn}, "deflagHybridMatch: final temperature solve failed: %v", err)
	}
	branch := "deflagration"
	if vw > math.Sqrt(tp.Low.CsSq(Tminus)) {
		branch = "hybrid"
	}
	return &MatchResult{Vplus: vplus, Vminus: vw, Tplus: Tplus, Tminus: Tminus, Branch: branch}, nil
}

// newton2D is a plain 2-variable Newton iteration with a finite-difference
// Jacobian, used by solveDeflagTemperatures.
func newton2D(f func([]float64) []float64, x0 []float64, maxIter int, tol float64) ([]float64, error) {
	x := append([]float64{}, x0...)
	for iter := 0; iter < maxIter; iter++ {
		r := f(x)
		if math.Abs(r[0])+math.Abs(r[1]) < tol {
			return x, nil
		}
		h := 1e-6
		var J [2][2]float64
		for j := 0; j < 2; j++ {
			xp := append([]float64{}, x...)
			xp[j] += h
			rp := f(xp)
			J[0][j] = (rp[0] - r[0]) / h
			J[1][j] = (rp[1] - r[1]) / h
		}
		det := J[0][0]*J[1][1] - J[0][1]*J[1][0]
		if math.Abs(det) < 1e-300 {
			return x, errSingularJacobian
		}
		dx0 := (-r[0]*J[1][1] + r[1]*J[0][1]) / det
		dx1 := (-J[0][0]*r[1] + J[1][0]*r[0]) / det
		x[0] += dx0
		x[1] += dx1
	}
	return x, errDidNotConverge
}

// scanBracket samples f at n+1 evenly spaced points on [lo,hi] and returns
// the first sub-interval on which it changes sign (spec.md §9(c)-adjacent
// bracketing helper; used throughout this package instead of assuming a
// single sign change spans the whole interval).
func scanBracket(f rootfind.Func, lo, hi float64, n int) (float64, float64, bool) {
	step := (hi - lo) / float64(n)
	prevT := lo
	prevF := f(lo)
	for i := 1; i <= n; i++ {
		t := lo + float64(i)*step
		ft := f(t)
		if !math.IsNaN(prevF) && !math.IsNaN(ft) && prevF*ft <= 0 {
			return prevT, t, true
		}
		prevT, prevF = t, ft
	}
	return lo, hi, false
}
