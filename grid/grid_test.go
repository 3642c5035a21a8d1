// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewRejectsEvenN(tst *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic for even N")
		}
	}()
	New(20, 10, 5.0, 1.0, 0.0)
}

func TestJacobiansArePositive(tst *testing.T) {
	g, err := New(20, 11, 5.0, 1.0, 0.0)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for _, chi := range g.ChiValues(false) {
		if g.DxiDchi(chi) <= 0 {
			tst.Errorf("dxi/dchi not positive at chi=%v", chi)
		}
	}
	for _, rz := range g.RzValues(false) {
		if g.DpzDrz(rz) <= 0 {
			tst.Errorf("dpz/drz not positive at rz=%v", rz)
		}
	}
	for _, rp := range g.RpValues(false) {
		if g.DppDrp(rp) <= 0 {
			tst.Errorf("dpp/drp not positive at rp=%v", rp)
		}
	}
}

func TestThreeScalesReducesToSymmetric(tst *testing.T) {
	g, err := NewThreeScales(20, 11, 5.0, 5.0, 0.2, 1.0, 0.0)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for _, chi := range []float64{-0.8, -0.3, 0.1, 0.5, 0.9} {
		got := g.Xi(chi)
		want := 5.0 * math.Atanh(chi)
		chk.Scalar(tst, "xi(chi) == L*atanh(chi) when LPlus==LMinus", 1e-8, got, want)
	}
}

func TestChangeMomentumFalloffScale(tst *testing.T) {
	g, _ := New(20, 11, 5.0, 1.0, 0.0)
	g.ChangeMomentumFalloffScale(2.0)
	chk.Scalar(tst, "T_ref updated", 1e-12, g.TRef, 2.0)
}
