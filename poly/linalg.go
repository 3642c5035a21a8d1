// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// invert computes the inverse of a square dense matrix via Gauss-Jordan
// elimination with partial pivoting. Storage follows gofem's la.MatAlloc
// idiom ([][]float64 built with la.MatAlloc) since this gosl version has no
// dense LAPACK binding (see DESIGN.md "Standard-library justifications").
func invert(a [][]float64) ([][]float64, error) {
	n := len(a)
	aug := la.MatAlloc(n, 2*n)
	for i := 0; i < n; i++ {
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
			return nil, chk.Err("poly: matrix is singular at column %d", col)
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
	out := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		copy(out[i], aug[i][n:])
	}
	return out, nil
}

// matVec computes y = M x for a dense M ([][]float64) and vector x.
func matVec(m [][]float64, x []float64) []float64 {
	y := make([]float64, len(m))
	for i := range m {
		s := 0.0
		row := m[i]
		for j, v := range row {
			s += v * x[j]
		}
		y[i] = s
	}
	return y
}

// matMul computes C = A B for dense matrices.
func matMul(a, b [][]float64) [][]float64 {
	n, k, m := len(a), len(b), len(b[0])
	c := la.MatAlloc(n, m)
	for i := 0; i < n; i++ {
		for p := 0; p < k; p++ {
			aip := a[i][p]
			if aip == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				c[i][j] += aip * b[p][j]
			}
		}
	}
	return c
}

// transpose returns the transpose of a dense matrix.
func transpose(a [][]float64) [][]float64 {
	n := len(a)
	if n == 0 {
		return nil
	}
	m := len(a[0])
	t := la.MatAlloc(m, n)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			t[j][i] = a[i][j]
		}
	}
	return t
}
