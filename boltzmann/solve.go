// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boltzmann

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Solve solves L*deltaF = S by dense partial-pivot Gaussian elimination
// (spec.md §4.H "Solve"), following the same la.MatAlloc-backed dense
// elimination convention poly/linalg.go uses for the basis-transform
// inverse, since the assembled operator here has no exploitable sparsity
// (see DESIGN.md "Standard-library justifications").
//
// conditionWarning reports true when the pivot growth implies
// kappa > 1e12 (spec.md §4.H): the solution is still returned, the caller
// folds the warning into the results record as a NumericalWarning
// (spec.md §7).
func Solve(op *Operator) (deltaF []float64, conditionWarning bool, err error) {
	n := len(op.S)
	aug := la.MatAlloc(n, n+1)
	for i := 0; i < n; i++ {
		copy(aug[i][:n], op.L[i])
		aug[i][n] = op.S[i]
	}

	maxPivot, minPivot := 0.0, math.Inf(1)
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				best, pivot = v, r
			}
		}
		if best < 1e-300 {
			return nil, false, chk.Err("boltzmann: Boltzmann operator is singular at column %d", col)
		}
		if best > maxPivot {
			maxPivot = best
		}
		if best < minPivot {
			minPivot = best
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		pv := aug[col][col]
		for k := col; k <= n; k++ {
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
			for k := col; k <= n; k++ {
				aug[r][k] -= factor * aug[col][k]
			}
		}
	}

	deltaF = make([]float64, n)
	for i := 0; i < n; i++ {
		deltaF[i] = aug[i][n]
	}
	kappaEstimate := maxPivot / minPivot
	return deltaF, kappaEstimate > 1e12, nil
}

// Residual returns ||L*deltaF - S|| / ||S||, the invariant spec.md §8 checks
// ("Boltzmann residual").
func Residual(op *Operator, deltaF []float64) float64 {
	n := len(op.S)
	var num, den float64
	for i := 0; i < n; i++ {
		lhs := 0.0
		for j := 0; j < n; j++ {
			lhs += op.L[i][j] * deltaF[j]
		}
		d := lhs - op.S[i]
		num += d * d
		den += op.S[i] * op.S[i]
	}
	if den == 0 {
		return math.Sqrt(num)
	}
	return math.Sqrt(num / den)
}
