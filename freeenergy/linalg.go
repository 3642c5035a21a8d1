// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freeenergy

import (
	"math"

	"github.com/wallgo/wallgo/potential"
)

// fdStep is the finite-difference step used for the second derivatives
// below; phase tracing differentiates the gradient itself (already a
// finite difference in potential.Base), so a slightly larger step keeps
// the noise from compounding.
const fdStep = 1e-3

// hessian returns V_phiphi(phi,T), the field-space Hessian, by central
// finite difference of DerivField.
func hessian(pot potential.EffectivePotential, phi []float64, T float64) [][]float64 {
	n := len(phi)
	H := make([][]float64, n)
	for i := range H {
		H[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		probe := append([]float64{}, phi...)
		h := fdStep
		probe[j] = phi[j] + h
		gPlus := pot.DerivField(probe, T)
		probe[j] = phi[j] - h
		gMinus := pot.DerivField(probe, T)
		for i := 0; i < n; i++ {
			H[i][j] = (gPlus[i] - gMinus[i]) / (2 * h)
		}
	}
	// symmetrize to suppress finite-difference asymmetry noise
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := 0.5 * (H[i][j] + H[j][i])
			H[i][j], H[j][i] = avg, avg
		}
	}
	return H
}

// mixedDeriv returns V_phiT(phi,T) = d/dT(DerivField) by central finite difference.
func mixedDeriv(pot potential.EffectivePotential, phi []float64, T float64) []float64 {
	h := fdStep
	gPlus := pot.DerivField(phi, T+h)
	gMinus := pot.DerivField(phi, T-h)
	out := make([]float64, len(phi))
	for i := range out {
		out[i] = (gPlus[i] - gMinus[i]) / (2 * h)
	}
	return out
}

// minEig returns the minimum eigenvalue of a small symmetric matrix via the
// cyclic Jacobi eigenvalue algorithm, used by the spinodal-event check
// (spec.md §4.E).
func minEig(a [][]float64) float64 {
	n := len(a)
	if n == 1 {
		return a[0][0]
	}
	m := make([][]float64, n)
	for i := range m {
		m[i] = append([]float64{}, a[i]...)
	}
	for sweep := 0; sweep < 100; sweep++ {
		off := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += m[i][j] * m[i][j]
			}
		}
		if off < 1e-20 {
			break
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(m[p][q]) < 1e-18 {
					continue
				}
				theta := 0.5 * math.Atan2(2*m[p][q], m[q][q]-m[p][p])
				c, s := math.Cos(theta), math.Sin(theta)
				for k := 0; k < n; k++ {
					mkp, mkq := m[k][p], m[k][q]
					m[k][p] = c*mkp - s*mkq
					m[k][q] = s*mkp + c*mkq
				}
				for k := 0; k < n; k++ {
					mpk, mqk := m[p][k], m[q][k]
					m[p][k] = c*mpk - s*mqk
					m[q][k] = s*mpk + c*mqk
				}
			}
		}
	}
	min := m[0][0]
	for i := 1; i < n; i++ {
		if m[i][i] < min {
			min = m[i][i]
		}
	}
	return min
}

// invertSmall inverts a small dense matrix via Gauss-Jordan elimination
// with partial pivoting (mirrors poly/linalg.go's invert; duplicated here
// rather than exported across packages since each call site operates on
// field-space matrices of a different, unrelated tag structure).
func invertSmall(a [][]float64) ([][]float64, bool) {
	n := len(a)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i][:n], a[i])
		aug[i][n+i] = 1
	}
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				best, pivot = v, r
			}
		}
		if best < 1e-300 {
			return nil, false
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		pv := aug[col][col]
		for k := 0; k < 2*n; k++ {
			aug[col][k] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for k := 0; k < 2*n; k++ {
				aug[r][k] -= factor * aug[col][k]
			}
		}
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64{}, aug[i][n:]...)
	}
	return out, true
}

func matVecSmall(m [][]float64, x []float64) []float64 {
	y := make([]float64, len(m))
	for i := range m {
		s := 0.0
		for j, v := range m[i] {
			s += v * x[j]
		}
		y[i] = s
	}
	return y
}
