// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package potential

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// quadratic is a toy 2-field potential V = (phi1-1)^2 + 2*(phi2+3)^2 + T,
// with a unique minimum at (1,-3) independent of T.
func quadratic() *Base {
	return &Base{
		DPhi: 1e-3,
		DT:   1e-3,
		Eval: func(phi []float64, T float64) complex128 {
			v := (phi[0]-1)*(phi[0]-1) + 2*(phi[1]+3)*(phi[1]+3)
			return complex(v, 0)
		},
		Const: func(T float64) float64 { return T },
	}
}

func TestDerivFieldMatchesAnalytic(tst *testing.T) {
	b := quadratic()
	g := b.DerivField([]float64{2, -1}, 10)
	chk.Vector(tst, "gradient", 1e-6, g, []float64{2, 16})
}

func TestDerivTIsOne(tst *testing.T) {
	b := quadratic()
	d := b.DerivT([]float64{0, 0}, 5)
	chk.Scalar(tst, "dV/dT", 1e-6, d, 1)
}

func TestFindLocalMinimum(tst *testing.T) {
	b := quadratic()
	phiStar, _, err := b.FindLocalMinimum([]float64{0, 0}, 1)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Vector(tst, "minimum", 1e-3, phiStar, []float64{1, -3})
}

func TestFindCriticalTemperatureBracketFailure(tst *testing.T) {
	b := quadratic()
	// Const(T) = T is field-independent, so V(phiB,T)-V(phiA,T) never
	// changes sign with T for fixed phiA != phiB: expect a MatchingFailure.
	_, err := b.FindCriticalTemperature([]float64{0, 0}, []float64{1, 1}, 1, 10)
	if err == nil {
		tst.Fatalf("expected MatchingFailure, got nil")
	}
}

func TestJbJfZeroAtLargeMass(tst *testing.T) {
	if Jb(1e4) >= 0 {
		tst.Errorf("Jb should be negative-ish and decaying for large mass, got %v", Jb(1e4))
	}
	if Jf(0) == 0 {
		tst.Errorf("Jf(0) should be the known nonzero massless limit")
	}
}

func TestNegativeMassSquaredFlag(tst *testing.T) {
	if !NegativeMassSquared(-1) {
		tst.Errorf("expected NegativeMassSquared(-1) == true")
	}
	if NegativeMassSquared(1) {
		tst.Errorf("expected NegativeMassSquared(1) == false")
	}
}
