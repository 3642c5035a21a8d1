// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
)

func writeFixture(tst *testing.T, dir string, n int) string {
	path := filepath.Join(dir, "collisions.gob")
	size := n - 1
	data := make([]float64, size*size*size*size)
	for i := range data {
		data[i] = float64(i%7) * 0.1
	}
	if err := SaveForTest(path, n, "Cardinal", map[string][]float64{"top, top": data}); err != nil {
		tst.Fatalf("SaveForTest failed: %v", err)
	}
	return path
}

func TestLoadDirectMatchingGrid(tst *testing.T) {
	dir := tst.TempDir()
	const N = 5
	path := writeFixture(tst, dir, N)

	g, err := grid.New(4, N, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	arr, err := Load(path, g, "top", "top", poly.Chebyshev, true)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}
	shape := arr.Data.Shape()
	chk.IntAssert(shape[0], N-1)
	chk.IntAssert(shape[2], N-1)
	if arr.BasisType != poly.Chebyshev {
		tst.Errorf("expected Chebyshev basis after load")
	}
}

func TestLoadTooSmallFileFails(tst *testing.T) {
	dir := tst.TempDir()
	path := writeFixture(tst, dir, 5)

	g, err := grid.New(4, 7, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	_, err = Load(path, g, "top", "top", poly.Chebyshev, true)
	if err == nil {
		tst.Fatalf("expected an error when file basis is smaller than target")
	}
}

func TestLoadMissingPairFails(tst *testing.T) {
	dir := tst.TempDir()
	path := writeFixture(tst, dir, 5)

	g, err := grid.New(4, 5, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	_, err = Load(path, g, "bot", "bot", poly.Chebyshev, true)
	if err == nil {
		tst.Fatalf("expected an error for unknown particle pair")
	}
}

func TestChangeBasisRoundTrip(tst *testing.T) {
	dir := tst.TempDir()
	const N = 5
	path := writeFixture(tst, dir, N)
	g, _ := grid.New(4, N, 5.0, 100.0, 0.0)
	arr, err := Load(path, g, "top", "top", poly.Cardinal, true)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}
	before := append([]float64{}, arr.Data.Data...)
	arr.ChangeBasis(poly.Chebyshev)
	arr.ChangeBasis(poly.Cardinal)
	chk.Vector(tst, "round-trip basis change", 1e-8, arr.Data.Data, before)
}

func TestEstimateLxiReturnsFiniteLengths(tst *testing.T) {
	dir := tst.TempDir()
	const N = 5
	path := writeFixture(tst, dir, N)
	g, _ := grid.New(4, N, 5.0, 100.0, 0.0)
	arr, err := Load(path, g, "top", "top", poly.Cardinal, true)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}
	lSym, lBroken, err := arr.EstimateLxi(g, 0.5, 100, 90, 10, 8)
	if err != nil {
		tst.Fatalf("EstimateLxi failed: %v", err)
	}
	if lSym == 0 || lBroken == 0 {
		tst.Errorf("expected nonzero decay-length estimates, got %v %v", lSym, lBroken)
	}
}
