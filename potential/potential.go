// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package potential declares the EffectivePotential contract consumed by
// the core (spec.md §4.D) and a Base helper that supplies the default
// finite-difference derivatives, Nelder-Mead local minimizer and
// bisection+Brent critical-temperature search, collapsing the source's
// EffectivePotential <- EffectivePotential_NoResum <- <user model>
// inheritance chain into one capability plus free helper functions
// (spec.md §9 "Deep inheritance").
package potential

import (
	"math"

	"github.com/wallgo/wallgo/rootfind"
	"github.com/wallgo/wallgo/wgerrors"
)

// EffectivePotential is the oracle V(phi,T) external collaborators supply
// (spec.md §4.D). Concrete models normally embed Base and implement only
// Evaluate and ConstantTerms.
type EffectivePotential interface {
	// Evaluate returns the field-dependent part of V at (phi, T); may carry
	// a small imaginary part, of which only the real part is used downstream.
	Evaluate(phi []float64, T float64) complex128
	// ConstantTerms returns the T-dependent, field-independent part added
	// to Evaluate for the total pressure.
	ConstantTerms(T float64) float64
	// DerivField returns the field-space gradient of V at (phi,T).
	DerivField(phi []float64, T float64) []float64
	// DerivT returns dV/dT at (phi,T).
	DerivT(phi []float64, T float64) float64
	// FindLocalMinimum seeds an unconstrained local minimizer at phi0.
	FindLocalMinimum(phi0 []float64, T float64) ([]float64, float64, error)
	// FindCriticalTemperature bisects-then-Brents T until V(phiB,T)-V(phiA,T)
	// changes sign.
	FindCriticalTemperature(phiA, phiB []float64, Tmin, Tmax float64) (float64, error)
}

// Full evaluates the real total potential V(phi,T) = Re[Evaluate] + ConstantTerms.
func Full(p EffectivePotential, phi []float64, T float64) float64 {
	return real(p.Evaluate(phi, T)) + p.ConstantTerms(T)
}

// Base supplies the default derivative/minimizer/critical-T machinery on
// top of a user-supplied Evaluate/ConstantTerms pair (spec.md §4.D).
// Concrete models embed Base by value and set Eval/Const in their
// constructor.
type Base struct {
	DPhi float64 // finite-difference step in field space (config EffectivePotential.dPhi)
	DT   float64 // finite-difference step in T (config EffectivePotential.dT)

	Eval  func(phi []float64, T float64) complex128
	Const func(T float64) float64
}

func (b *Base) Evaluate(phi []float64, T float64) complex128 { return b.Eval(phi, T) }
func (b *Base) ConstantTerms(T float64) float64              { return b.Const(T) }

func (b *Base) full(phi []float64, T float64) float64 {
	return real(b.Eval(phi, T)) + b.Const(T)
}

// DerivField computes the field-space gradient by 4th-order central finite
// difference (spec.md §4.D "4th-order finite difference if not analytical"),
// mirroring gofem's num.DerivCen usage in mdl/solid/driver.go.
func (b *Base) DerivField(phi []float64, T float64) []float64 {
	g := make([]float64, len(phi))
	h := b.DPhi
	for i := range phi {
		probe := append([]float64{}, phi...)
		g[i] = centralDiff4(func(x float64) float64 {
			probe[i] = x
			return b.full(probe, T)
		}, phi[i], h)
	}
	return g
}

// DerivT computes dV/dT by the same 4th-order central finite difference.
func (b *Base) DerivT(phi []float64, T float64) float64 {
	return centralDiff4(func(t float64) float64 { return b.full(phi, t) }, T, b.DT)
}

// centralDiff4 is the standard 4th-order central finite-difference stencil,
// grounded on gofem's num.DerivCen call sites.
func centralDiff4(f func(float64) float64, x, h float64) float64 {
	return (-f(x+2*h) + 8*f(x+h) - 8*f(x-h) + f(x-2*h)) / (12 * h)
}

// FindLocalMinimum seeds a Nelder-Mead simplex search at phi0 (spec.md §4.D
// "unconstrained Nelder-Mead or L-BFGS").
func (b *Base) FindLocalMinimum(phi0 []float64, T float64) ([]float64, float64, error) {
	obj := func(phi []float64) float64 { return b.full(phi, T) }
	phiStar, err := nelderMead(obj, phi0, 1e-10, 800)
	if err != nil {
		return nil, 0, err
	}
	return phiStar, obj(phiStar), nil
}

// FindCriticalTemperature bisects T in [Tmin,Tmax] until V(phiB,T)-V(phiA,T)
// changes sign, then refines with Brent (spec.md §4.D).
func (b *Base) FindCriticalTemperature(phiA, phiB []float64, Tmin, Tmax float64) (float64, error) {
	if Tmax <= Tmin {
		return 0, wgerrors.New(wgerrors.GridConfigError,
			map[string]interface{}{"Tmin": Tmin, "Tmax": Tmax}, "FindCriticalTemperature: Tmax must exceed Tmin")
	}
	diff := func(T float64) float64 { return b.full(phiB, T) - b.full(phiA, T) }
	lo, hi, err := rootfind.Bisect(diff, Tmin, Tmax, 60, 1e-10*(Tmax-Tmin))
	if err != nil {
		return 0, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"Tmin": Tmin, "Tmax": Tmax},
			"FindCriticalTemperature: no sign change of V(phi2,T)-V(phi1,T) on [%g,%g]: %v", Tmin, Tmax, err)
	}
	root, err := rootfind.Brent(diff, lo, hi, 1e-12)
	if err != nil {
		return 0, wgerrors.New(wgerrors.MatchingFailure,
			map[string]interface{}{"lo": lo, "hi": hi}, "FindCriticalTemperature: Brent refine failed: %v", err)
	}
	return root, nil
}

// nelderMead is a standard Nelder-Mead simplex minimizer (spec.md §4.D),
// used directly since no third-party optimizer appears anywhere in the
// retrieval pack (see DESIGN.md "Standard-library justifications").
func nelderMead(f func([]float64) float64, x0 []float64, tol float64, maxIter int) ([]float64, error) {
	n := len(x0)
	alpha, gamma, rho, sigma := 1.0, 2.0, 0.5, 0.5

	simplex := make([][]float64, n+1)
	simplex[0] = append([]float64{}, x0...)
	for i := 0; i < n; i++ {
		p := append([]float64{}, x0...)
		step := 0.05
		if p[i] != 0 {
			step = 0.05 * math.Abs(p[i])
		}
		p[i] += step
		simplex[i+1] = p
	}
	fvals := make([]float64, n+1)
	for i, p := range simplex {
		fvals[i] = f(p)
	}

	for iter := 0; iter < maxIter; iter++ {
		// sort by function value
		order := argsort(fvals)
		simplex = reorder(simplex, order)
		fvals = reorderF(fvals, order)

		if math.Abs(fvals[n]-fvals[0]) < tol {
			break
		}

		centroid := make([]float64, n)
		for i := 0; i < n; i++ {
			for d := 0; d < n; d++ {
				centroid[d] += simplex[i][d]
			}
		}
		for d := range centroid {
			centroid[d] /= float64(n)
		}

		worst := simplex[n]
		reflected := vecAdd(centroid, vecScale(vecSub(centroid, worst), alpha))
		fRef := f(reflected)

		switch {
		case fRef < fvals[0]:
			expanded := vecAdd(centroid, vecScale(vecSub(reflected, centroid), gamma))
			fExp := f(expanded)
			if fExp < fRef {
				simplex[n], fvals[n] = expanded, fExp
			} else {
				simplex[n], fvals[n] = reflected, fRef
			}
		case fRef < fvals[n-1]:
			simplex[n], fvals[n] = reflected, fRef
		default:
			contracted := vecAdd(centroid, vecScale(vecSub(worst, centroid), rho))
			fCon := f(contracted)
			if fCon < fvals[n] {
				simplex[n], fvals[n] = contracted, fCon
			} else {
				for i := 1; i <= n; i++ {
					simplex[i] = vecAdd(simplex[0], vecScale(vecSub(simplex[i], simplex[0]), sigma))
					fvals[i] = f(simplex[i])
				}
			}
		}
	}

	order := argsort(fvals)
	return simplex[order[0]], nil
}

func argsort(v []float64) []int {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && v[idx[j]] < v[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}

func reorder(s [][]float64, order []int) [][]float64 {
	out := make([][]float64, len(s))
	for i, o := range order {
		out[i] = s[o]
	}
	return out
}

func reorderF(v []float64, order []int) []float64 {
	out := make([]float64, len(v))
	for i, o := range order {
		out[i] = v[o]
	}
	return out
}

func vecAdd(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func vecSub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func vecScale(a []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * s
	}
	return out
}
