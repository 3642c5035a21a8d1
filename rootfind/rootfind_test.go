// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rootfind

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestBrentFindsKnownRoot(tst *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	root, err := Brent(f, 0, 2, 1e-12)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "sqrt(2) root", 1e-9, root, math.Sqrt2)
}

func TestBrentRejectsUnbracketedInterval(tst *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	if _, err := Brent(f, -1, 1, 1e-9); err == nil {
		tst.Errorf("expected an error when f has no sign change on the interval")
	}
}

func TestExpandBracketFindsSignChange(tst *testing.T) {
	f := func(x float64) float64 { return x - 10 }
	lo, hi, ok := ExpandBracket(f, 0, 1, 2.0, 10)
	if !ok {
		tst.Fatalf("expected ExpandBracket to find a sign change")
	}
	if f(lo)*f(hi) > 0 {
		tst.Errorf("returned bracket [%v,%v] does not actually bracket the root", lo, hi)
	}
}

func TestExpandBracketGivesUpAfterMaxExpand(tst *testing.T) {
	f := func(x float64) float64 { return x*x + 1 } // never crosses zero
	_, _, ok := ExpandBracket(f, 0, 1, 2.0, 5)
	if ok {
		tst.Errorf("expected ExpandBracket to report failure for a function with no root")
	}
}

func TestSecantConvergesToRoot(tst *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2 }
	root, err := Secant(f, 1, 2, 50, 1e-12)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(f(root)) > 1e-8 {
		tst.Errorf("secant root %v does not satisfy f(root)~0, f=%v", root, f(root))
	}
}

func TestBisectNarrowsBracket(tst *testing.T) {
	f := func(x float64) float64 { return x - 0.5 }
	lo, hi, err := Bisect(f, 0, 1, 30, 1e-8)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if hi-lo > 1e-7 {
		tst.Errorf("expected bracket width below tolerance, got %v", hi-lo)
	}
	if lo > 0.5 || hi < 0.5 {
		tst.Errorf("expected [%v,%v] to contain the root 0.5", lo, hi)
	}
}

func TestBisectRejectsUnbracketedInterval(tst *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	if _, _, err := Bisect(f, -1, 1, 10, 1e-6); err == nil {
		tst.Errorf("expected an error when f has no sign change on the interval")
	}
}
