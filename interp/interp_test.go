// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestInterpolatesPolynomialExactly(tst *testing.T) {
	f := func(x float64) []float64 { return []float64{x*x - 2*x + 1} }
	fn := New(f, 1, -3, 5, 8)
	for _, x := range []float64{-2.5, 0.0, 1.3, 4.9} {
		got := fn.Scalar(x)
		want := x*x - 2*x + 1
		chk.Scalar(tst, "quadratic reproduced exactly", 1e-8, got, want)
	}
}

func TestConstantExtrapolation(tst *testing.T) {
	f := func(x float64) []float64 { return []float64{math.Sin(x)} }
	fn := New(f, 1, 0, 1, 12)
	fn.UpperPolicy = CONSTANT
	boundary := fn.Scalar(1.0)
	got := fn.Scalar(2.0)
	chk.Scalar(tst, "CONSTANT extrapolation holds boundary value", 1e-10, got, boundary)
}

func TestErrorPolicyPanics(tst *testing.T) {
	f := func(x float64) []float64 { return []float64{x} }
	fn := New(f, 1, 0, 1, 4)
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic for out-of-range x under ERROR policy")
		}
	}()
	fn.At(2.0)
}

func TestAdaptiveGrowthCoversPoint(tst *testing.T) {
	f := func(x float64) []float64 { return []float64{x} }
	fn := New(f, 1, -1, 1, 6)
	fn.Adaptive = true
	fn.CapXMin = -100
	fn.CapXMax = 100
	fn.UpperPolicy = CONSTANT
	got := fn.Scalar(10.0)
	chk.Scalar(tst, "adaptive growth linear function exact", 1e-6, got, 10.0)
}

func TestWriteReadRoundTrip(tst *testing.T) {
	f := func(x float64) []float64 { return []float64{x, x * x} }
	fn := New(f, 2, 0, 2, 10)
	dir := tst.TempDir()
	path := filepath.Join(dir, "table.txt")
	if err := WriteTable(path, fn); err != nil {
		tst.Fatalf("WriteTable: %v", err)
	}
	defer os.Remove(path)
	loaded, err := ReadTable(path, 2)
	if err != nil {
		tst.Fatalf("ReadTable: %v", err)
	}
	got := loaded.At(1.0)
	chk.Vector(tst, "round-tripped table", 1e-6, got, []float64{1.0, 1.0})
}
