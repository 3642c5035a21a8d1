// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boltzmann assembles and solves the linearized Boltzmann equation
// for out-of-equilibrium species (spec.md §4.H): it builds the dense
// operator L from the Grid, a Particle's mass functions and a
// collision.Array, solves L*deltaF = S, and reduces deltaF to the moments
// Delta_00, Delta_02, Delta_20, Delta_11 the EOM needs.
package boltzmann

import "math"

// Statistics selects the equilibrium distribution a Particle relaxes
// towards (spec.md §4.H "f_eq the Fermi-Dirac or Bose-Einstein
// distribution").
type Statistics int

const (
	Fermion Statistics = iota
	Boson
)

// Particle is the off-equilibrium species descriptor of spec.md §4.H: name,
// statistics, vacuum/thermal mass functions and their field derivative, and
// the bookkeeping flags the EOM and solver need (in/out of equilibrium,
// ultrarelativistic treatment, total internal degrees of freedom).
//
// Mass functions are represented as first-class function values rather than
// an interface hierarchy, collapsing the source's dynamic-dispatch mass
// callables into capability objects (spec.md §9 "Dynamic dispatch / duck
// typing").
type Particle struct {
	Name string
	Stats Statistics

	MassSqVacuum      func(phi []float64) float64
	MassSqVacuumDeriv func(phi []float64) []float64
	MassSqThermal     func(T float64) float64

	InEquilibrium     bool
	Ultrarelativistic bool
	TotalDOFs         float64
}

// MassSq returns the total (vacuum + thermal) mass-squared at a background
// point; negative values are constant-extrapolated to zero at the call site
// (spec.md §9(a)), not here, since only callers that take E=sqrt(m^2+p^2)
// need the floor.
func (p *Particle) MassSq(phi []float64, T float64) float64 {
	m2 := p.MassSqThermal(T)
	if p.MassSqVacuum != nil {
		m2 += p.MassSqVacuum(phi)
	}
	return m2
}

// Energy returns sqrt(m^2 + pz^2 + pp^2), flooring a negative m^2 to zero
// (spec.md §9(a): "the source tolerates negative m^2 ... by
// constant-extrapolating to zero; flagged as physically unreliable").
func Energy(msq, pz, pp float64) float64 {
	if msq < 0 {
		msq = 0
	}
	return math.Sqrt(msq + pz*pz + pp*pp)
}
