// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func bagTemplate() *TemplateModel {
	// a weak transition: alpha = 2000/4e8 = 5e-6 at Tn=100.
	Tn := 100.0
	aHigh := 1.0
	bHigh := 0.0
	aLow := 0.97
	bLow := -20.0 * math.Pow(Tn, 4) * 1e-6 // small residual vacuum energy shift
	return &TemplateModel{AHigh: aHigh, BHigh: bHigh, ALow: aLow, BLow: bLow}
}

func TestJouguetVelocityTemplateInRange(tst *testing.T) {
	tm := bagTemplate()
	vJ := tm.JouguetVelocity(100)
	if vJ <= 1/math.Sqrt(3) || vJ >= 1 {
		tst.Errorf("expected v_J in (1/sqrt3, 1), got %v", vJ)
	}
}

func TestDetonationMatchSelfConsistent(tst *testing.T) {
	tm := bagTemplate()
	Tn := 100.0
	vJ := tm.JouguetVelocity(Tn)
	vw := 0.5 * (vJ + 1)
	tp := thermoPair{High: tm.High(), Low: tm.Low()}
	res, err := detonationMatch(tp, vw, Tn)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "v+ == vw for detonation", 1e-9, res.Vplus, vw)
	chk.Scalar(tst, "T+ == Tn for detonation", 1e-9, res.Tplus, Tn)
	if res.Tminus <= 0 || res.Tminus > Tn {
		tst.Errorf("expected 0 < T- <= Tn, got %v", res.Tminus)
	}
}

func TestScanBracketFindsSignChange(tst *testing.T) {
	f := func(x float64) float64 { return x - 0.37 }
	lo, hi, ok := scanBracket(f, 0, 1, 50)
	if !ok {
		tst.Fatalf("expected a bracket")
	}
	if lo > 0.37 || hi < 0.37 {
		tst.Errorf("bracket [%v,%v] does not contain 0.37", lo, hi)
	}
}

func TestExtrapolatedThermoMatchesInsideRange(tst *testing.T) {
	inner := bagThermo{p: func(T float64) float64 { return T }, e: func(T float64) float64 { return 2 * T }}
	ext := NewExtrapolated(boundedThermo{inner, 10, 20})
	chk.Scalar(tst, "P inside range", 1e-9, ext.P(15), 15)
}

// boundedThermo adapts bagThermo (unbounded Range) to a finite traced range
// for testing the extrapolation wrapper's boundary behavior.
type boundedThermo struct {
	bagThermo
	lo, hi float64
}

func (b boundedThermo) Range() (float64, float64) { return b.lo, b.hi }

func TestExtrapolatedThermoLinearOutsideRange(tst *testing.T) {
	inner := boundedThermo{bagThermo{p: func(T float64) float64 { return 2 * T }, e: func(T float64) float64 { return 4 * T }}, 10, 20}
	ext := NewExtrapolated(inner)
	got := ext.P(30) // linear in T, so extrapolation should be exact
	chk.Scalar(tst, "linear extrapolation exact for linear p(T)", 1e-3, got, 60)
}
