// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testmodel implements the Z2-symmetric Higgs-singlet extension of
// the Standard Model used as the end-to-end benchmark of spec.md §8,
// ported from original_source/Models/SingletStandardModel_Z2
// /singletStandardModelZ2.py. It is test-only scaffolding (analogous to
// gofem's examples/ directory) and is kept under internal/ since nothing
// outside the test suite depends on it.
package testmodel

import (
	"math"

	"github.com/wallgo/wallgo/boltzmann"
	"github.com/wallgo/wallgo/potential"
)

// Params are the physical input parameters of spec.md §8's scenario table
// (RGScale, v0, M_W, M_Z, M_t, g3 held fixed across scenarios; Mh1, Mh2,
// A2, B4 vary per scenario).
type Params struct {
	RGScale, V0, MW, MZ, Mt, G3 float64
	Mh1, Mh2, A2, B4            float64
}

// DefaultParams returns the fixed inputs shared by every scenario in
// spec.md §8's table, leaving Mh2/A2/B4 to be overridden per scenario.
func DefaultParams() Params {
	return Params{
		RGScale: 125.0, V0: 246.0,
		MW: 80.379, MZ: 91.1876, Mt: 173.0, G3: 1.2279920495357861,
		Mh1: 125.0, Mh2: 120.0, A2: 0.9, B4: 1.0,
	}
}

// derived holds the Lagrangian parameters computed from Params the way
// SingletSMZ2.calculateModelParameters does.
type derived struct {
	rgScale, lambda, msq, b2, a2, b4 float64
	g1, g2, yt                       float64
}

func derive(p Params) derived {
	lambda := 0.5 * p.Mh1 * p.Mh1 / (p.V0 * p.V0)
	msq := -lambda * p.V0 * p.V0
	b2 := p.Mh2*p.Mh2 - 0.5*p.V0*p.V0*p.A2
	g0 := 2 * p.MW / p.V0
	g1 := g0 * math.Sqrt((p.MZ/p.MW)*(p.MZ/p.MW)-1)
	g2 := g0
	yt := math.Sqrt(0.5) * g0 * p.Mt / p.MW
	return derived{rgScale: p.RGScale, lambda: lambda, msq: msq, b2: b2, a2: p.A2, b4: p.B4, g1: g1, g2: g2, yt: yt}
}

// spectrum bundles one sector's (mass-squared, degrees-of-freedom,
// CW-constant) triple, matching bosonStuff/fermionStuff's column layout.
type spectrum struct {
	massSq, dof, c []float64
}

// bosonSpectrum diagonalizes the 2x2 scalar mass matrix and lists the five
// bosonic species (h, s, Goldstone, W, Z), matching bosonStuff exactly.
func bosonSpectrum(d derived, v, x float64) spectrum {
	a := d.msq + 0.5*d.a2*x*x + 3*d.lambda*v*v
	b := d.b2 + 0.5*d.a2*v*v + 3*d.b4*x*x
	c := d.a2 * v * x
	under := a*a + b*b - 2*a*b + 4*c*c
	if under < 0 {
		under = 0
	}
	sq := math.Sqrt(under)
	eig1 := 0.5 * (a + b - sq)
	eig2 := 0.5 * (a + b + sq)
	mWsq := d.g2 * d.g2 * v * v / 4
	mZsq := (d.g1*d.g1 + d.g2*d.g2) * v * v / 4
	mGsq := d.msq + d.lambda*v*v + 0.5*d.a2*x*x
	return spectrum{
		massSq: []float64{eig1, eig2, mGsq, mWsq, mZsq},
		dof:    []float64{1, 1, 3, 6, 3},
		c:      []float64{1.5, 1.5, 1.5, 5.0 / 6, 5.0 / 6},
	}
}

// fermionSpectrum lists the top quark, the only fermion carried at one
// loop (matches fermionStuff).
func fermionSpectrum(d derived, v float64) spectrum {
	mtsq := d.yt * d.yt * v * v / 2
	return spectrum{massSq: []float64{mtsq}, dof: []float64{12}, c: []float64{1.5}}
}

// cwTerm evaluates sign*dof*JCW(msq,rg^2,c)/(32*pi^2), reconstructing the
// source's dof*msq^2*(log(msq/rg^2)-c)/(64*pi^2) from potential.JCW's
// per-particle 0.5*msq^2*(log(msq/rg^2)-c) normalization (spec.md §4.D).
func cwTerm(sp spectrum, rgScaleSq, sign float64) float64 {
	sum := 0.0
	for i := range sp.massSq {
		sum += sp.dof[i] * potential.JCW(sp.massSq[i], rgScaleSq, sp.c[i])
	}
	return sign * sum / (32 * math.Pi * math.Pi)
}

// thermalTerm evaluates sum dof*J(msq/T^2) via potential.Jb/Jf; evaluate
// multiplies the result by T^4/(2*pi^2), matching potentialOneLoopThermal.
func thermalTerm(sp spectrum, Tsq float64, fermionic bool) float64 {
	sum := 0.0
	for i := range sp.massSq {
		x := sp.massSq[i] / Tsq
		if fermionic {
			sum += sp.dof[i] * potential.Jf(x)
		} else {
			sum += sp.dof[i] * potential.Jb(x)
		}
	}
	return sum
}

// constantTerms is the field-independent light-particle ideal-gas pressure
// left over after the 14 boson / 12 fermion degrees of freedom already
// counted in the one-loop sums above (matches constantTerms: numBosonDof=29,
// numFermionDof=90).
func constantTerms(T float64) float64 {
	const dofsBoson = 29.0 - 14.0
	const dofsFermion = 90.0 - 12.0
	T2 := T * T
	return -(dofsBoson + 7.0/8.0*dofsFermion) * math.Pi * math.Pi * T2 * T2 / 90.0
}

// evaluate is the full V(phi,T) of evaluate() in the source: tree level +
// zero-T Coleman-Weinberg + finite-T one loop (field dependent parts only;
// constantTerms is supplied separately as potential.Base.ConstantTerms).
func evaluate(d derived, phi []float64, T float64) float64 {
	v, x := phi[0], phi[1]
	tree := 0.5*d.msq*v*v + 0.25*d.lambda*v*v*v*v + 0.5*d.b2*x*x + 0.25*d.b4*x*x*x*x + 0.25*d.a2*v*v*x*x

	bos := bosonSpectrum(d, v, x)
	fer := fermionSpectrum(d, v)
	rg2 := d.rgScale * d.rgScale

	cw := cwTerm(bos, rg2, 1) + cwTerm(fer, rg2, -1)

	Tsq := T*T + 1e-12
	thermal := thermalTerm(bos, Tsq, false) + thermalTerm(fer, Tsq, true)
	thermal *= T * T * T * T / (2 * math.Pi * math.Pi)

	return tree + cw + thermal
}

// NewPotential builds the EffectivePotential for the given parameters,
// embedding potential.Base the way every concrete model in this repo does
// (spec.md §4.D).
func NewPotential(p Params) potential.EffectivePotential {
	d := derive(p)
	base := &potential.Base{DPhi: 1e-3, DT: 1e-3}
	base.Eval = func(phi []float64, T float64) complex128 {
		return complex(evaluate(d, phi, T), 0)
	}
	base.Const = constantTerms
	return base
}

// TopQuark builds the single off-equilibrium particle this benchmark
// tracks (spec.md §8; matches defineParticles' topQuark, QCD-only
// collisions, gluon treated in equilibrium).
func TopQuark(p Params) *boltzmann.Particle {
	d := derive(p)
	return &boltzmann.Particle{
		Name:  "top",
		Stats: boltzmann.Fermion,
		MassSqVacuum: func(phi []float64) float64 {
			return 0.5 * d.yt * d.yt * phi[0] * phi[0]
		},
		MassSqVacuumDeriv: func(phi []float64) []float64 {
			return []float64{d.yt * d.yt * phi[0], 0}
		},
		MassSqThermal: func(T float64) float64 {
			return p.G3 * p.G3 * T * T / 6.0
		},
		InEquilibrium:     false,
		Ultrarelativistic: true,
		TotalDOFs:         12,
	}
}
