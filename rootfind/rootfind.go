// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rootfind collects the 1-D bracketing, Brent and secant helpers
// shared by the hydrodynamics, potential and EOM packages (spec.md §4.D
// "findCriticalTemperature", §4.F "Jouguet velocity"/"findMatching", §4.I
// "pressure-balance root find"). It is grounded on gofem's num.DerivCen /
// num.Brent-style bracketed solvers (mdl/solid/driver.go's local Newton
// convergence checks), pulled out into one place instead of being
// duplicated per caller.
package rootfind

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Brent finds a root of f bracketed in [xa, xb], via gosl's Brent solver.
func Brent(f Func, xa, xb, tol float64) (float64, error) {
	fa, fb := f(xa), f(xb)
	if fa*fb > 0 {
		return 0, chk.Err("rootfind: Brent requires a sign change on [%g,%g] (f(xa)=%g, f(xb)=%g)", xa, xb, fa, fb)
	}
	solver := num.NewBrent(func(x float64, args ...interface{}) float64 { return f(x) }, nil)
	root, err := solver.Root(xa, xb)
	if err != nil {
		return 0, chk.Err("rootfind: Brent failed on [%g,%g]: %v", xa, xb, err)
	}
	return root, nil
}

// ExpandBracket grows [xa,xb] geometrically (by `factor`, expanding xb
// outward from xa) up to maxExpand times until f changes sign, used when
// only one side of a bracket is pinned (spec.md §4.F: "doubling the upper
// bound if it cannot bracket"). Returns the final bracket and whether a
// sign change was found.
func ExpandBracket(f Func, xa, xb, factor float64, maxExpand int) (float64, float64, bool) {
	fa := f(xa)
	cur := xb
	fcur := f(cur)
	for i := 0; i < maxExpand; i++ {
		if fa*fcur <= 0 {
			return xa, cur, true
		}
		cur = xa + factor*(cur-xa)
		fcur = f(cur)
	}
	return xa, cur, fa*fcur <= 0
}

// Secant runs a fixed number of secant iterations from (x0,x1), the
// fallback used when bracketing never succeeds (spec.md §4.F: "fall back to
// secant from (T_n, T_max)").
func Secant(f Func, x0, x1 float64, iters int, tol float64) (float64, error) {
	f0, f1 := f(x0), f(x1)
	for i := 0; i < iters; i++ {
		if f1 == f0 {
			return x1, chk.Err("rootfind: secant stalled (f(x0)==f(x1)) after %d iterations", i)
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.Abs(x2-x1) < tol {
			return x2, nil
		}
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
	}
	return x1, chk.Err("rootfind: secant did not converge in %d iterations", iters)
}

// Bisect performs plain bisection for maxIter steps or until the bracket
// width is below tol, used to tighten a bracket before handing it to Brent
// (spec.md §4.D "findCriticalTemperature": "bisects T until ... changes
// sign, then Brent").
func Bisect(f Func, xa, xb float64, maxIter int, tol float64) (lo, hi float64, err error) {
	flo, fhi := f(xa), f(xb)
	if flo*fhi > 0 {
		return xa, xb, chk.Err("rootfind: Bisect requires a sign change on [%g,%g]", xa, xb)
	}
	lo, hi = xa, xb
	for i := 0; i < maxIter; i++ {
		if hi-lo < tol {
			break
		}
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if flo*fm <= 0 {
			hi, fhi = mid, fm
		} else {
			lo, flo = mid, fm
		}
	}
	return lo, hi, nil
}
