// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boltzmann

import "math"

// Feq evaluates the equilibrium distribution f_eq(x), x = E/T: Bose-Einstein
// 1/(e^x-1) for bosons, Fermi-Dirac 1/(e^x+1) for fermions (spec.md §4.H).
func Feq(x float64, stats Statistics) float64 {
	sign := -1.0
	if stats == Boson {
		sign = 1.0
	}
	ex := math.Exp(x)
	return 1 / (ex - sign)
}

// DFeqDx evaluates d(f_eq)/dx = -e^x / (e^x - sign)^2, used to build the
// source term S = -P * d(chi) f_eq(E/T) via the chain rule (spec.md §4.H).
func DFeqDx(x float64, stats Statistics) float64 {
	sign := -1.0
	if stats == Boson {
		sign = 1.0
	}
	ex := math.Exp(x)
	denom := ex - sign
	return -ex / (denom * denom)
}
