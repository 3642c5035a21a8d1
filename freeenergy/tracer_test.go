// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freeenergy

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/wallgo/wallgo/potential"
)

// movingMinimum is a 1-field toy potential V = (phi - T)^2 whose minimum
// tracks phi(T) = T exactly, with no spinodal (Hessian is constant, = 2).
func movingMinimum() *potential.Base {
	return &potential.Base{
		DPhi: 1e-4,
		DT:   1e-4,
		Eval: func(phi []float64, T float64) complex128 {
			d := phi[0] - T
			return complex(d*d, 0)
		},
		Const: func(T float64) float64 { return 0 },
	}
}

func TestTraceFollowsMovingMinimum(tst *testing.T) {
	pot := movingMinimum()
	phase, err := Trace(pot, []float64{50}, 50, Options{RTol: 1e-4, Paranoid: true, MaxSteps: 500, HInit: 1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	Tmin, Tmax := phase.Range()
	if Tmax-Tmin < 10 {
		tst.Fatalf("traced range too narrow: [%g,%g]", Tmin, Tmax)
	}
	mid := 0.5 * (Tmin + Tmax)
	phi, v, err := phase.At(mid)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "phi(T) tracks T", 0.5, phi[0], mid)
	chk.Scalar(tst, "V(phi(T),T) near zero", 1.0, v, 0)
}

func TestTraceRejectsOutOfRange(tst *testing.T) {
	pot := movingMinimum()
	phase, err := Trace(pot, []float64{50}, 50, Options{RTol: 1e-4, MaxSteps: 200, HInit: 1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	_, _, err = phase.At(1e9)
	if err == nil {
		tst.Errorf("expected IntegratorFailure for out-of-range T")
	}
}
