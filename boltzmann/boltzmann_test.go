// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boltzmann

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/wallgo/wallgo/collision"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
)

func TestFeqLimits(tst *testing.T) {
	// Fermi-Dirac saturates to 1/2 at x=0, decays to 0 as x -> infinity.
	chk.Scalar(tst, "FD(0)", 1e-12, Feq(0, Fermion), 0.5)
	if Feq(20, Fermion) > 1e-6 {
		tst.Errorf("Fermi-Dirac should vanish at large x, got %v", Feq(20, Fermion))
	}
	// Bose-Einstein diverges as x -> 0+ and is positive for x>0.
	if Feq(0.01, Boson) <= Feq(1, Boson) {
		tst.Errorf("Bose-Einstein should decrease in x")
	}
}

func TestDFeqDxMatchesFiniteDifference(tst *testing.T) {
	h := 1e-6
	x := 0.7
	fd := (Feq(x+h, Fermion) - Feq(x-h, Fermion)) / (2 * h)
	chk.Scalar(tst, "dFeq/dx fermion", 1e-6, DFeqDx(x, Fermion), fd)
}

// smallBackground builds a small background with constant v and with T and
// phi linear in chi on a
// (M,N)=(4,5) grid, used to exercise assembly and solve without depending
// on the hydrodynamic or field-equation machinery.
func smallBackground(tst *testing.T, g *grid.Grid) *Background {
	full := g.ChiValues(true)
	n := len(full)
	v := make([]float64, n)
	T := make([]float64, n)
	phi := make([][]float64, 1)
	phi[0] = make([]float64, n)
	for i := range full {
		v[i] = 0.1
		T[i] = 100 + 0.01*full[i]
		phi[0][i] = 50 + 2*full[i]
	}
	bg, err := NewBackground(0.4, v, phi, T, poly.Cardinal)
	if err != nil {
		tst.Fatalf("NewBackground failed: %v", err)
	}
	return bg
}

func testParticle() *Particle {
	return &Particle{
		Name:  "top",
		Stats: Fermion,
		MassSqVacuum: func(phi []float64) float64 {
			return 0.1 * phi[0] * phi[0]
		},
		MassSqThermal: func(T float64) float64 { return 0.05 * T * T },
		TotalDOFs:     12,
	}
}

func diagCollision(g *grid.Grid) *collision.Array {
	arr := collision.New(g, poly.Chebyshev, "top", "top")
	np := g.N - 1
	for j := 0; j < np; j++ {
		for k := 0; k < np; k++ {
			idx := ((j*np+k)*np + j) * np + k
			arr.Data.Data[idx] = 1.5
		}
	}
	return arr
}

func TestAssembleShapeAndResidual(tst *testing.T) {
	g, err := grid.New(4, 5, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	bg := smallBackground(tst, g)
	p := testParticle()
	coll := diagCollision(g)

	op, err := Assemble(g, p, coll, bg)
	if err != nil {
		tst.Fatalf("Assemble failed: %v", err)
	}
	n := (g.M - 1) * (g.N - 1) * (g.N - 1)
	if len(op.S) != n || len(op.L) != n {
		tst.Fatalf("expected operator size %d, got L=%d S=%d", n, len(op.L), len(op.S))
	}

	deltaF, _, err := Solve(op)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	res := Residual(op, deltaF)
	if res > 1e-7 || math.IsNaN(res) {
		tst.Errorf("expected tiny residual after an exact linear solve, got %v", res)
	}
}

func TestComputeMomentsShape(tst *testing.T) {
	g, err := grid.New(4, 5, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	bg := smallBackground(tst, g)
	p := testParticle()
	coll := diagCollision(g)
	op, err := Assemble(g, p, coll, bg)
	if err != nil {
		tst.Fatalf("Assemble failed: %v", err)
	}
	deltaF, _, err := Solve(op)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	m := ComputeMoments(deltaF, g, bg, p)
	nz := g.M - 1
	if len(m.Delta00) != nz || len(m.Delta02) != nz || len(m.Delta20) != nz || len(m.Delta11) != nz {
		tst.Fatalf("expected moment profiles of length %d", nz)
	}
}

func TestSolverReportsMissingCollision(tst *testing.T) {
	g, err := grid.New(4, 5, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	s := NewSolver(g, []*Particle{testParticle()})
	bg := smallBackground(tst, g)
	if _, err := s.Solve(bg); err == nil {
		tst.Fatalf("expected an error for a particle with no loaded collision tensor")
	}
}
