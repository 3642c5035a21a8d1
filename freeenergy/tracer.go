// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package freeenergy implements phase tracing (spec.md §4.E): integrating
// the implicit equation d(phi)/dT = -[V_phiphi]^-1 V_phiT as an IVP, with a
// spinodal stopping event, and storing the result as an interp.Function
// returning (phi(T), V(phi(T),T)).
//
// Grounded on mdl/retention/model.go's Update method (an IVP driven by an
// embedded-RK stepper with relative/absolute tolerance and a Jacobian
// callback); adapted here from a single retention-curve update step into a
// long phase-trace integration with an event.
package freeenergy

import (
	"math"

	"github.com/wallgo/wallgo/interp"
	"github.com/wallgo/wallgo/potential"
	"github.com/wallgo/wallgo/wgerrors"
)

// Phase is a traced phase: a map T -> (phi(T), V(phi(T),T)) backed by a
// Chebyshev interpolation table with extrapolation disabled (spec.md §4.E).
type Phase struct {
	table *interp.Function
	F     int // number of fields
	Tmin, Tmax float64
}

// At returns (phi(T), V(T)) for T inside [Tmin,Tmax].
func (p *Phase) At(T float64) (phi []float64, v float64, err error) {
	if T < p.Tmin || T > p.Tmax {
		return nil, 0, wgerrors.New(wgerrors.IntegratorFailure,
			map[string]interface{}{"T": T, "Tmin": p.Tmin, "Tmax": p.Tmax},
			"freeenergy.Phase.At: T=%g outside traced range [%g,%g]", T, p.Tmin, p.Tmax)
	}
	row := p.table.At(T)
	return row[:p.F], row[p.F], nil
}

// Range returns the traced temperature range.
func (p *Phase) Range() (Tmin, Tmax float64) { return p.Tmin, p.Tmax }

// Options configure the IVP integration (spec.md §4.E, §6 "EffectivePotential.phaseTracerTol").
type Options struct {
	RTol     float64 // relative tolerance
	Paranoid bool    // re-minimize after every accepted step instead of a gradient check
	MaxSteps int
	HInit    float64
}

// Trace integrates the phase containing phi0 at T0 both upward and
// downward in T until a spinodal event or the step cap, concatenates the
// two branches, contracts the reported range inward by 2*dT (spec.md §4.E),
// and returns the result as an extrapolation-disabled Phase.
func Trace(pot potential.EffectivePotential, phi0 []float64, T0 float64, opts Options) (*Phase, error) {
	if opts.MaxSteps == 0 {
		opts.MaxSteps = 2000
	}
	if opts.HInit == 0 {
		opts.HInit = 0.01 * math.Max(1, T0)
	}
	f := len(phi0)

	upT, upPhi, upV, err := integrateDirection(pot, phi0, T0, +1, opts)
	if err != nil {
		return nil, err
	}
	downT, downPhi, downV, err := integrateDirection(pot, phi0, T0, -1, opts)
	if err != nil {
		return nil, err
	}

	// concatenate down (reversed, excluding the shared T0 point) + up
	n := len(downT) - 1 + len(upT)
	Ts := make([]float64, 0, n)
	rows := make([][]float64, 0, n)
	for i := len(downT) - 1; i >= 1; i-- {
		Ts = append(Ts, downT[i])
		rows = append(rows, appendV(downPhi[i], downV[i]))
	}
	for i := range upT {
		Ts = append(Ts, upT[i])
		rows = append(rows, appendV(upPhi[i], upV[i]))
	}

	if len(Ts) < 4 {
		return nil, wgerrors.New(wgerrors.PhaseTraceFailure,
			map[string]interface{}{"T0": T0}, "freeenergy.Trace: integration produced too few points (%d)", len(Ts))
	}

	dT := Ts[1] - Ts[0]
	if dT <= 0 {
		dT = (Ts[len(Ts)-1] - Ts[0]) / float64(len(Ts))
	}
	Tmin := Ts[0] + 2*math.Abs(dT)
	Tmax := Ts[len(Ts)-1] - 2*math.Abs(dT)
	if Tmax <= Tmin {
		return nil, wgerrors.New(wgerrors.PhaseTraceFailure,
			map[string]interface{}{"T0": T0}, "freeenergy.Trace: traced range too narrow after contraction")
	}

	idx := 0
	table := interp.New(func(T float64) []float64 {
		return nearestRow(Ts, rows, T, &idx)
	}, f+1, Tmin, Tmax, min(len(Ts)-1, 60))
	table.DisableExtrapolation()

	return &Phase{table: table, F: f, Tmin: Tmin, Tmax: Tmax}, nil
}

func appendV(phi []float64, v float64) []float64 {
	row := append([]float64{}, phi...)
	return append(row, v)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// nearestRow linearly interpolates the pre-computed (Ts,rows) trace at T;
// idx caches the last search position since callers sample monotonically
// when building the Chebyshev table.
func nearestRow(Ts []float64, rows [][]float64, T float64, idx *int) []float64 {
	i := *idx
	if i >= len(Ts)-1 {
		i = len(Ts) - 2
	}
	for i > 0 && Ts[i] > T {
		i--
	}
	for i < len(Ts)-2 && Ts[i+1] < T {
		i++
	}
	*idx = i
	t0, t1 := Ts[i], Ts[i+1]
	var frac float64
	if t1 != t0 {
		frac = (T - t0) / (t1 - t0)
	}
	row0, row1 := rows[i], rows[i+1]
	out := make([]float64, len(row0))
	for k := range out {
		out[k] = row0[k] + frac*(row1[k]-row0[k])
	}
	return out
}

// integrateDirection integrates the phase-tracing IVP from (phi0,T0) in the
// given direction (+1 up, -1 down) until a spinodal event (min eigenvalue
// of V_phiphi crosses zero) or opts.MaxSteps is reached. Uses a fixed-step
// classical RK4 with step halving on event detection, the same role gofem
// fills with ode.Solver configured for "Radau5"/"Dopri5" (see DESIGN.md).
func integrateDirection(pot potential.EffectivePotential, phi0 []float64, T0 float64, dir float64, opts Options) (Ts []float64, phis [][]float64, vs []float64, err error) {
	h := dir * opts.HInit
	T := T0
	phi := append([]float64{}, phi0...)

	Ts = append(Ts, T)
	phis = append(phis, append([]float64{}, phi...))
	vs = append(vs, potential.Full(pot, phi, T))

	for step := 0; step < opts.MaxSteps; step++ {
		if minEig(hessian(pot, phi, T)) <= 0 {
			break
		}
		nextPhi := rk4Step(pot, phi, T, h)
		nextT := T + h

		if minEig(hessian(pot, nextPhi, nextT)) <= 0 {
			// bisect h to land closer to the spinodal, spec.md §4.E "Spinodal
			// event": integration terminates when the eigenvalue crosses zero.
			lo, hiH := 0.0, h
			for i := 0; i < 40; i++ {
				mid := 0.5 * (lo + hiH)
				midPhi := rk4Step(pot, phi, T, mid)
				if minEig(hessian(pot, midPhi, T+mid)) <= 0 {
					hiH = mid
				} else {
					lo = mid
				}
			}
			phi = rk4Step(pot, phi, T, lo)
			T = T + lo
			Ts = append(Ts, T)
			phis = append(phis, append([]float64{}, phi...))
			vs = append(vs, potential.Full(pot, phi, T))
			break
		}

		if opts.Paranoid {
			refined, _, minErr := pot.FindLocalMinimum(nextPhi, nextT)
			if minErr == nil {
				nextPhi = refined
			}
		} else {
			g := pot.DerivField(nextPhi, nextT)
			if norm(g) > opts.RTol*(1+norm(nextPhi)) {
				refined, _, minErr := pot.FindLocalMinimum(nextPhi, nextT)
				if minErr == nil {
					nextPhi = refined
				}
			}
		}

		phi = nextPhi
		T = nextT
		Ts = append(Ts, T)
		phis = append(phis, append([]float64{}, phi...))
		vs = append(vs, potential.Full(pot, phi, T))
	}
	return
}

func rk4Step(pot potential.EffectivePotential, phi []float64, T, h float64) []float64 {
	deriv := func(p []float64, t float64) []float64 { return dphiDT(pot, p, t) }
	k1 := deriv(phi, T)
	k2 := deriv(vecAddScaled(phi, k1, h/2), T+h/2)
	k3 := deriv(vecAddScaled(phi, k2, h/2), T+h/2)
	k4 := deriv(vecAddScaled(phi, k3, h), T+h)
	out := make([]float64, len(phi))
	for i := range phi {
		out[i] = phi[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func vecAddScaled(a, b []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + s*b[i]
	}
	return out
}

// dphiDT evaluates dphi/dT = -[V_phiphi]^-1 V_phiT at (phi,T).
func dphiDT(pot potential.EffectivePotential, phi []float64, T float64) []float64 {
	H := hessian(pot, phi, T)
	vPhiT := mixedDeriv(pot, phi, T)
	Hinv, ok := invertSmall(H)
	if !ok {
		// Hessian singular: flat direction, no well-defined continuation;
		// return zero velocity so the caller's eigenvalue check ends the trace.
		return make([]float64, len(phi))
	}
	rhs := matVecSmall(Hinv, vPhiT)
	for i := range rhs {
		rhs[i] = -rhs[i]
	}
	return rhs
}

func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
