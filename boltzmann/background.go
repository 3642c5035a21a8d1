// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boltzmann

import (
	"math"

	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
	"github.com/wallgo/wallgo/wgerrors"
)

// Background is the BoltzmannBackground of spec.md §3: the wall velocity,
// and the fluid-velocity/field/temperature profiles sampled on the grid's
// full (endpoint-inclusive) chi node set, all sharing the same M+1 points.
type Background struct {
	Vw    float64
	V     []float64   // fluid velocity v(chi), length M+1
	Phi   [][]float64 // field profile phi(chi), F rows, each length M+1
	T     []float64   // temperature profile T(chi), length M+1
	Basis poly.Basis
}

// NewBackground validates the shared-sample-point and finite-gamma
// invariants of spec.md §3 "BoltzmannBackground".
func NewBackground(vw float64, v []float64, phi [][]float64, T []float64, basis poly.Basis) (*Background, error) {
	n := len(v)
	if len(T) != n {
		return nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"len_v": n, "len_T": len(T)},
			"boltzmann: v(chi) and T(chi) must share the same sample points")
	}
	for _, row := range phi {
		if len(row) != n {
			return nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"len_v": n, "len_phi_row": len(row)},
				"boltzmann: phi(chi) rows must share the same sample points as v(chi)")
		}
	}
	for i, vi := range v {
		if math.Abs(vi) >= 1 {
			return nil, wgerrors.New(wgerrors.IntegratorFailure, map[string]interface{}{"i": i, "v": vi},
				"boltzmann: |v(chi)|>=1 makes gamma(v) non-finite at node %d", i)
		}
	}
	return &Background{Vw: vw, V: v, Phi: phi, T: T, Basis: basis}, nil
}

// Gamma returns the Lorentz factor 1/sqrt(1-v^2).
func Gamma(v float64) float64 { return 1 / math.Sqrt(1-v*v) }

// FieldAt returns the field point phi(chi_i) at sample index i.
func (b *Background) FieldAt(i int) []float64 {
	out := make([]float64, len(b.Phi))
	for f, row := range b.Phi {
		out[f] = row[i]
	}
	return out
}

// chiDerivative differentiates a sampled profile f(chi) (length M+1, the
// grid's full node set) at the interior nodes using a centered finite
// difference over chi. This is deliberately a plain finite difference, not
// the exact Polynomial derivative used for the unknown deltaF itself
// (spec.md §4.H's D_chi): the background profile is an externally supplied
// sampled function (the wall ansatz / matched temperature profile), not a
// polynomial coefficient vector, so differentiating it exactly would
// require re-fitting a polynomial to noisy/ansatz data for no accuracy gain
// over a second-order finite difference at the grid's own resolution.
func chiDerivative(f []float64, chiFull []float64) []float64 {
	n := len(f)
	out := make([]float64, n-2)
	for i := 1; i < n-1; i++ {
		out[i-1] = (f[i+1] - f[i-1]) / (chiFull[i+1] - chiFull[i-1])
	}
	return out
}

// MassSqProfile returns the particle's total mass-squared sampled at every
// full-grid chi node.
func (b *Background) MassSqProfile(p *Particle) []float64 {
	n := len(b.T)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = p.MassSq(b.FieldAt(i), b.T[i])
	}
	return out
}

// DMassSqDchi returns d(m^2)/dchi at every interior chi node, via
// chiDerivative on the sampled total mass-squared profile.
func (b *Background) DMassSqDchi(p *Particle, g *grid.Grid) []float64 {
	return chiDerivative(b.MassSqProfile(p), g.ChiValues(true))
}
