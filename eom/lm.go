// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eom

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// residualFunc evaluates the vector residual at a flat parameter vector.
type residualFunc func(x []float64) ([]float64, error)

// FitWallParams minimizes sum(Pi_i^2) over (widths, offsets) by damped
// Levenberg-Marquardt (spec.md §4.I step 2), up to maxIterations with
// relative tolerance errTol. Grounded on msolid/driver.go's material-point
// Newton driver (central-difference Jacobian, la.MatAlloc-style dense
// normal-equations solve), generalized here from a single Newton step to a
// damped LM loop since the wall-parameter fit is least-squares rather than
// a root find on a square system.
func FitWallParams(residual func(wp *WallParams) []float64, initial *WallParams, maxWidth float64,
	maxIterations int, errTol float64) (*WallParams, error) {

	f := len(initial.Widths)
	objective := func(x []float64) ([]float64, error) {
		wp := fromVector(x, f)
		for _, w := range wp.Widths {
			if w <= 0 || w > maxWidth {
				return nil, chk.Err("eom: wall width out of bounds during fit: %g", w)
			}
		}
		return residual(wp), nil
	}

	x, err := levenbergMarquardt(objective, initial.toVector(), maxIterations, errTol)
	if err != nil {
		return initial, err
	}
	return fromVector(x, f), nil
}

// levenbergMarquardt is the generic damped Gauss-Newton loop: at each
// iteration it builds a central-difference Jacobian, solves the damped
// normal equations (J^T J + lambda*diag(J^T J)) delta = -J^T r, and accepts
// the step only if it reduces ||r||; lambda grows on rejection and shrinks
// on acceptance, the standard Marquardt damping schedule.
func levenbergMarquardt(f residualFunc, x0 []float64, maxIter int, tol float64) ([]float64, error) {
	x := append([]float64{}, x0...)
	r, err := f(x)
	if err != nil {
		return nil, err
	}
	normSq := sumSq(r)
	lambda := 1e-2

	for iter := 0; iter < maxIter; iter++ {
		J, err := jacobian(f, x, r)
		if err != nil {
			return x, err
		}
		JT := transpose(J)
		JTJ := matMul(JT, J)
		for i := range JTJ {
			JTJ[i][i] += lambda * JTJ[i][i]
			if JTJ[i][i] == 0 {
				JTJ[i][i] = lambda
			}
		}
		JTr := matVec(JT, r)
		negJTr := make([]float64, len(JTr))
		for i := range JTr {
			negJTr[i] = -JTr[i]
		}
		delta, err := solveLinear(JTJ, negJTr)
		if err != nil {
			lambda *= 10
			continue
		}
		xNew := addVec(x, delta)
		rNew, err := f(xNew)
		if err != nil {
			lambda *= 10
			continue
		}
		newNormSq := sumSq(rNew)
		if newNormSq < normSq {
			improved := math.Sqrt(normSq) - math.Sqrt(newNormSq)
			x, r = xNew, rNew
			converged := improved < tol*(math.Sqrt(normSq)+1e-300)
			normSq = newNormSq
			lambda *= 0.5
			if converged {
				break
			}
		} else {
			lambda *= 10
		}
	}
	return x, nil
}

// jacobian builds the central-difference Jacobian d(r_i)/d(x_j).
func jacobian(f residualFunc, x, r0 []float64) ([][]float64, error) {
	n := len(x)
	m := len(r0)
	J := make([][]float64, m)
	for i := range J {
		J[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		h := 1e-6 * (math.Abs(x[j]) + 1e-6)
		xp := append([]float64{}, x...)
		xm := append([]float64{}, x...)
		xp[j] += h
		xm[j] -= h
		rp, err := f(xp)
		if err != nil {
			return nil, err
		}
		rm, err := f(xm)
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			J[i][j] = (rp[i] - rm[i]) / (2 * h)
		}
	}
	return J, nil
}

func sumSq(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return s
}

func transpose(a [][]float64) [][]float64 {
	if len(a) == 0 {
		return nil
	}
	rows, cols := len(a), len(a[0])
	out := make([][]float64, cols)
	for i := range out {
		out[i] = make([]float64, rows)
		for j := 0; j < rows; j++ {
			out[i][j] = a[j][i]
		}
	}
	return out
}

func matMul(a, b [][]float64) [][]float64 {
	rows, inner, cols := len(a), len(b), len(b[0])
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for k := 0; k < inner; k++ {
			aik := a[i][k]
			if aik == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				out[i][j] += aik * b[k][j]
			}
		}
	}
	return out
}

func matVec(a [][]float64, v []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		s := 0.0
		for j, x := range row {
			s += x * v[j]
		}
		out[i] = s
	}
	return out
}

func addVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// solveLinear solves a*x = b for a square system via Gauss elimination with
// partial pivoting.
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = append(append([]float64{}, a[i]...), b[i])
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
			return nil, chk.Err("eom: singular normal-equations matrix at column %d", col)
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
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = aug[i][n]
	}
	return x, nil
}
