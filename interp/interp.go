// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp implements InterpolatableFunction (spec.md §4.C): a
// Chebyshev interpolation table over a user function f: R -> R^k, with
// adaptive table growth and a per-side extrapolation policy.
package interp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Policy is the per-side extrapolation policy (spec.md §4.C).
type Policy int

const (
	// ERROR refuses any evaluation outside the table domain.
	ERROR Policy = iota
	// CONSTANT returns the boundary value.
	CONSTANT
	// LINEAR uses the boundary derivative.
	LINEAR
)

// Func is the wrapped scalar/vector function f: R -> R^k.
type Func func(x float64) []float64

// Function is a Chebyshev-interpolated approximation of Func, with adaptive
// table extension and controlled extrapolation (spec.md §4.C).
type Function struct {
	f Func
	K int // output dimension

	xMin, xMax float64
	n          int // table resolution (degree); n+1 Lobatto nodes

	nodes  []float64   // Chebyshev-Lobatto nodes mapped to [xMin,xMax]
	values [][]float64 // values[i] = f(nodes[i]), length K

	Adaptive    bool
	GrowFactor  float64 // > 1, geometric growth factor
	CapXMin     float64
	CapXMax     float64
	LowerPolicy Policy
	UpperPolicy Policy
}

// New builds a Function by sampling f at n+1 Chebyshev-Lobatto nodes over
// [xMin, xMax]. Adaptive mode and extrapolation policies default to the
// conservative choice (non-adaptive, ERROR on both sides); set the fields
// directly after construction to change them.
func New(f Func, k int, xMin, xMax float64, n int) *Function {
	if xMax <= xMin {
		chk.Panic("interp: xMax (%v) must exceed xMin (%v)", xMax, xMin)
	}
	fn := &Function{
		f: f, K: k,
		xMin: xMin, xMax: xMax, n: n,
		GrowFactor:  2.0,
		CapXMin:     xMin,
		CapXMax:     xMax,
		LowerPolicy: ERROR,
		UpperPolicy: ERROR,
	}
	fn.resample()
	return fn
}

// lobattoOn returns the n+1 Chebyshev-Lobatto nodes mapped onto [a,b].
func lobattoOn(n int, a, b float64) []float64 {
	x := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		xi := -math.Cos(float64(k) * math.Pi / float64(n))
		x[k] = 0.5*(a+b) + 0.5*(b-a)*xi
	}
	return x
}

func (fn *Function) resample() {
	fn.nodes = lobattoOn(fn.n, fn.xMin, fn.xMax)
	fn.values = make([][]float64, len(fn.nodes))
	for i, x := range fn.nodes {
		fn.values[i] = fn.f(x)
	}
}

// barycentricWeights returns the 2nd-kind barycentric weights for n+1
// Chebyshev-Lobatto nodes (Trefethen "Spectral Methods in MATLAB" ch.5):
// w_i = (-1)^i, with endpoints halved.
func barycentricWeights(n int) []float64 {
	w := make([]float64, n+1)
	for i := range w {
		w[i] = 1
		if i%2 == 1 {
			w[i] = -1
		}
	}
	w[0] *= 0.5
	w[n] *= 0.5
	return w
}

// evalAt evaluates component comp of the table at x using the barycentric
// interpolation formula, with no extrapolation handling.
func (fn *Function) evalAt(x float64, comp int) float64 {
	w := barycentricWeights(fn.n)
	num, den := 0.0, 0.0
	for i, xi := range fn.nodes {
		if x == xi {
			return fn.values[i][comp]
		}
		t := w[i] / (x - xi)
		num += t * fn.values[i][comp]
		den += t
	}
	return num / den
}

// growTowards extends the table geometrically towards x (adaptive mode,
// spec.md §4.C), resampling f at the new node set, until x is covered or
// the configured cap is reached.
func (fn *Function) growTowards(x float64) {
	for {
		covered := x >= fn.xMin && x <= fn.xMax
		atCap := fn.xMin <= fn.CapXMin && fn.xMax >= fn.CapXMax
		if covered || atCap {
			break
		}
		if x < fn.xMin {
			span := fn.xMax - fn.xMin
			fn.xMin = math.Max(fn.CapXMin, fn.xMin-fn.GrowFactor*span)
		}
		if x > fn.xMax {
			span := fn.xMax - fn.xMin
			fn.xMax = math.Min(fn.CapXMax, fn.xMax+fn.GrowFactor*span)
		}
		fn.resample()
	}
}

// boundaryDerivative estimates df/dx at the boundary (side=-1 lower,
// side=+1 upper) via a one-sided finite difference on the table, used by
// the LINEAR extrapolation policy.
func (fn *Function) boundaryDerivative(comp int, side int) float64 {
	h := 1e-4 * (fn.xMax - fn.xMin)
	if h == 0 {
		h = 1e-6
	}
	if side < 0 {
		return (fn.evalAt(fn.xMin+h, comp) - fn.evalAt(fn.xMin, comp)) / h
	}
	return (fn.evalAt(fn.xMax, comp) - fn.evalAt(fn.xMax-h, comp)) / h
}

// At evaluates the interpolated function at x, applying adaptive growth and
// the configured extrapolation policy per side (spec.md §4.C).
func (fn *Function) At(x float64) []float64 {
	if fn.Adaptive && (x < fn.xMin || x > fn.xMax) {
		fn.growTowards(x)
	}
	out := make([]float64, fn.K)
	if x < fn.xMin {
		switch fn.LowerPolicy {
		case ERROR:
			chk.Panic("interp: x=%v below table lower bound %v (policy=ERROR)", x, fn.xMin)
		case CONSTANT:
			for c := range out {
				out[c] = fn.evalAt(fn.xMin, c)
			}
		case LINEAR:
			for c := range out {
				v0 := fn.evalAt(fn.xMin, c)
				d := fn.boundaryDerivative(c, -1)
				out[c] = v0 + d*(x-fn.xMin)
			}
		}
		return out
	}
	if x > fn.xMax {
		switch fn.UpperPolicy {
		case ERROR:
			chk.Panic("interp: x=%v above table upper bound %v (policy=ERROR)", x, fn.xMax)
		case CONSTANT:
			for c := range out {
				out[c] = fn.evalAt(fn.xMax, c)
			}
		case LINEAR:
			for c := range out {
				v0 := fn.evalAt(fn.xMax, c)
				d := fn.boundaryDerivative(c, 1)
				out[c] = v0 + d*(x-fn.xMax)
			}
		}
		return out
	}
	for c := range out {
		out[c] = fn.evalAt(x, c)
	}
	return out
}

// Scalar is a convenience accessor for k=1 tables.
func (fn *Function) Scalar(x float64) float64 { return fn.At(x)[0] }

// Domain returns the current table bounds.
func (fn *Function) Domain() (xMin, xMax float64) { return fn.xMin, fn.xMax }

// DisableExtrapolation sets both policies to ERROR and turns off adaptive
// growth, used for tables that must never be sampled outside their traced
// range (spec.md §4.E: "the result is stored ... with extrapolation
// disabled").
func (fn *Function) DisableExtrapolation() {
	fn.Adaptive = false
	fn.LowerPolicy = ERROR
	fn.UpperPolicy = ERROR
}
