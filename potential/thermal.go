// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package potential

import (
	"math"

	"github.com/wallgo/wallgo/interp"
	"github.com/wallgo/wallgo/wgerrors"
)

// JCW is the Coleman-Weinberg one-loop vacuum contribution for a field of
// mass-squared msq and renormalization constant c (5/6 for gauge bosons,
// 3/2 otherwise in the usual MS-bar scheme), scaled by the number of
// degrees of freedom and dof-sign by the caller.
func JCW(msq, rgScaleSq, c float64) float64 {
	if msq <= 0 {
		return 0
	}
	return 0.5 * msq * msq * (math.Log(msq/rgScaleSq) - c)
}

// gaussLegendre64 returns fixed 64-point Gauss-Legendre nodes/weights on
// [-1,1], used to evaluate the thermal integrals below without pulling in
// a quadrature library the retrieval pack never imports (see DESIGN.md
// "Standard-library justifications").
var glNodes, glWeights = gaussLegendre(64)

func gaussLegendre(n int) ([]float64, []float64) {
	nodes := make([]float64, n)
	weights := make([]float64, n)
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for iter := 0; iter < 100; iter++ {
			p1, p2 := 1.0, 0.0
			for j := 0; j < n; j++ {
				p3 := p2
				p2 = p1
				p1 = ((2*float64(j)+1)*z*p2 - float64(j)*p3) / (float64(j) + 1)
			}
			pp = float64(n) * (z*p1 - p2) / (z*z - 1)
			z1 := z
			z = z1 - p1/pp
			if math.Abs(z-z1) < 1e-14 {
				break
			}
		}
		nodes[i] = -z
		nodes[n-1-i] = z
		w := 2 / ((1 - z*z) * pp * pp)
		weights[i] = w
		weights[n-1-i] = w
	}
	return nodes, weights
}

// thermalIntegral evaluates int_0^cutoff dt t^2 log(1 -/+ exp(-sqrt(t^2+x)))
// by Gauss-Legendre quadrature mapped onto [0,cutoff]. Negative x (m^2 < 0)
// is constant-extrapolated to x=0, per spec.md §9(a), which is physically
// unreliable. No NumericalWarning is raised for this case, here or by the
// callers in this repository; NegativeMassSquared reports whether it applies.
func thermalIntegral(x float64, sign float64, cutoff float64) float64 {
	if x < 0 {
		x = 0
	}
	sum := 0.0
	for i, u := range glNodes {
		t := 0.5 * cutoff * (u + 1)
		w := 0.5 * cutoff * glWeights[i]
		e := math.Sqrt(t*t + x)
		arg := 1 - sign*math.Exp(-e)
		if arg <= 0 {
			continue
		}
		sum += w * t * t * math.Log(arg)
	}
	return sum
}

// jbFunc/jfFunc are the active implementations of Jb/Jf: fixed-order
// quadrature by default, replaced wholesale by LoadInterpolationTables when
// a config.DataFiles.InterpolationTable_Jb/_Jf path is configured (spec.md
// §6), mirroring the way the original model's per-instance Jb/Jf objects
// are swapped for a CosmoTransitions-calibrated InterpolationTable.
var jbFunc = func(x float64) float64 { return thermalIntegral(x, 1, 40) }
var jfFunc = func(x float64) float64 { return thermalIntegral(x, -1, 40) }

// Jb is the bosonic thermal function J_B(x) = int_0^inf dt t^2 log(1-e^-E),
// E=sqrt(t^2+x), used in the one-loop thermal potential (spec.md §4.D).
func Jb(x float64) float64 { return jbFunc(x) }

// Jf is the fermionic thermal function J_F(x) = int_0^inf dt t^2 log(1+e^-E).
func Jf(x float64) float64 { return jfFunc(x) }

// LoadInterpolationTables replaces Jb and/or Jf with calibrated tables read
// via interp.ReadTable from jbPath/jfPath (spec.md §6 "DataFiles"); an empty
// path leaves the corresponding function at its quadrature default. Tables
// load with CONSTANT extrapolation on both sides: the calibrated domain is
// wide enough in practice that callers landing outside it want the boundary
// value held flat, not a panic (interp's default ERROR policy), matching
// the tolerant behavior of a pre-built lookup table over a hand-rolled one.
func LoadInterpolationTables(jbPath, jfPath string) error {
	if jbPath != "" {
		fn, err := interp.ReadTable(jbPath, 1)
		if err != nil {
			return wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"path": jbPath},
				"potential: failed to load J_B interpolation table: %v", err)
		}
		fn.LowerPolicy, fn.UpperPolicy = interp.CONSTANT, interp.CONSTANT
		jbFunc = fn.Scalar
	}
	if jfPath != "" {
		fn, err := interp.ReadTable(jfPath, 1)
		if err != nil {
			return wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"path": jfPath},
				"potential: failed to load J_F interpolation table: %v", err)
		}
		fn.LowerPolicy, fn.UpperPolicy = interp.CONSTANT, interp.CONSTANT
		jfFunc = fn.Scalar
	}
	return nil
}

// NegativeMassSquared reports whether x < 0, the condition under which Jb/Jf
// fall back to the constant-extrapolation documented in spec.md §9(a).
func NegativeMassSquared(x float64) bool { return x < 0 }
