// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poly implements the rank-N Polynomial tensor engine of spec.md
// §4.B: exact differentiation, integration, evaluation and basis change on
// a Cardinal/Chebyshev basis tagged per axis.
package poly

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Basis identifies the per-axis polynomial family.
type Basis int

const (
	// Cardinal is the Lagrange-cardinal basis built from Chebyshev nodes.
	Cardinal Basis = iota
	// Chebyshev is the Chebyshev polynomial-of-the-first-kind basis.
	Chebyshev
)

func (b Basis) String() string {
	if b == Cardinal {
		return "Cardinal"
	}
	return "Chebyshev"
}

// Direction tags which physical coordinate an axis represents.
type Direction int

const (
	DirZ Direction = iota
	DirPz
	DirPp
)

// lobattoNodes returns the n+1 Chebyshev-Lobatto nodes on [-1,1] used for a
// basis of the given "n" (i.e. degree n, n+1 points including endpoints).
func lobattoNodes(n int) []float64 {
	x := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		x[k] = -math.Cos(float64(k) * math.Pi / float64(n))
	}
	return x
}

// interiorNodes drops the first and last Lobatto node.
func interiorNodes(n int) []float64 {
	full := lobattoNodes(n)
	return full[1 : len(full)-1]
}

// chebyshevT evaluates T_k(x) via the standard stable recursion.
func chebyshevT(k int, x float64) float64 {
	if k == 0 {
		return 1
	}
	if k == 1 {
		return x
	}
	tkm2, tkm1 := 1.0, x
	for i := 2; i <= k; i++ {
		tk := 2*x*tkm1 - tkm2
		tkm2, tkm1 = tkm1, tk
	}
	return tkm1
}

// chebyshevDiffMatrix returns the standard Chebyshev-Lobatto differentiation
// matrix of size (n+1)x(n+1) on nodes x_0..x_n (Trefethen's cheb.m formula).
// This is the basis for the Cardinal-basis derivative (spec.md §4.B).
func chebyshevDiffMatrix(n int) [][]float64 {
	if n == 0 {
		return [][]float64{{0}}
	}
	x := lobattoNodes(n)
	N := n + 1
	c := make([]float64, N)
	for i := range c {
		c[i] = 1
	}
	c[0] = 2
	c[N-1] = 2
	D := make([][]float64, N)
	for i := range D {
		D[i] = make([]float64, N)
	}
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if i == j {
				continue
			}
			sign := 1.0
			if (i+j)%2 == 1 {
				sign = -1.0
			}
			D[i][j] = (c[i] / c[j]) * sign / (x[i] - x[j])
		}
	}
	for i := 0; i < N; i++ {
		sum := 0.0
		for j := 0; j < N; j++ {
			if j != i {
				sum += D[i][j]
			}
		}
		D[i][i] = -sum
	}
	return D
}

// cardinalBasisValue evaluates the i-th Lagrange cardinal polynomial (built
// from the n+1 Chebyshev-Lobatto nodes) at an arbitrary point x.
func cardinalBasisValue(nodes []float64, i int, x float64) float64 {
	num, den := 1.0, 1.0
	for j, xj := range nodes {
		if j == i {
			continue
		}
		num *= x - xj
		den *= nodes[i] - xj
	}
	return num / den
}

// vandermonde builds the Chebyshev Vandermonde matrix V[i][k] = T_k(x_i) at
// the given nodes, used to convert between Cardinal (nodal values) and
// Chebyshev (coefficients) representations.
func vandermonde(nodes []float64) [][]float64 {
	N := len(nodes)
	V := make([][]float64, N)
	for i, x := range nodes {
		V[i] = make([]float64, N)
		for k := 0; k < N; k++ {
			V[i][k] = chebyshevT(k, x)
		}
	}
	return V
}

// basisTransformMatrix returns the per-axis linear map applied on the left
// when converting a tensor tagged `from` into one tagged `to`, both built on
// the same N-point Chebyshev-Lobatto grid:
//
//   Cardinal  -> Chebyshev : inverse Vandermonde (nodal values -> coeffs)
//   Chebyshev -> Cardinal  : Vandermonde (coeffs -> nodal values)
//   same -> same           : identity
func basisTransformMatrix(n int, from, to Basis) [][]float64 {
	nodes := lobattoNodes(n)
	N := len(nodes)
	if from == to {
		return identity(N)
	}
	V := vandermonde(nodes)
	if from == Cardinal && to == Chebyshev {
		Vinv, err := invert(V)
		if err != nil {
			chk.Panic("poly: basis transform matrix is singular: %v", err)
		}
		return Vinv
	}
	// from == Chebyshev && to == Cardinal
	return V
}

func identity(n int) [][]float64 {
	I := make([][]float64, n)
	for i := range I {
		I[i] = make([]float64, n)
		I[i][i] = 1
	}
	return I
}

// chebyshevDerivativeCoeffs applies the standard triangular recursion for
// differentiating a Chebyshev series: given coefficients c_0..c_n of
// f(x) = sum c_k T_k(x), returns coefficients d_0..d_{n-1} of f'(x)
// (same length as the input; the top entry is always 0, matching the
// degree-reducing nature of differentiation).
func chebyshevDerivativeCoeffs(c []float64) []float64 {
	n := len(c) - 1
	d := make([]float64, n+1) // d[n] stays 0
	if n < 1 {
		return d
	}
	if n >= 1 {
		d[n-1] = 2 * float64(n) * c[n]
	}
	for k := n - 2; k >= 1; k-- {
		d[k] = d[k+2] + 2*float64(k+1)*c[k+1]
	}
	if n >= 2 {
		d[0] = d[2]/2 + c[1]
	} else if n == 1 {
		d[0] = c[1]
	}
	return d
}
