// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eom

import (
	"github.com/wallgo/wallgo/boltzmann"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
	"github.com/wallgo/wallgo/potential"
)

// Background bundles the wall-frame quantities the pressure residual needs
// from the hydrodynamic matching: the two phases' field points and the
// temperature/velocity values on each side of the wall.
type Background struct {
	PhiBot, PhiTop     []float64 // field points as z -> +inf / -inf
	Tbot, Ttop         float64
	Vbot, Vtop         float64
}

// PressureResidual evaluates Pi_i(L,delta,v_w) of spec.md §4.I:
//
//	Pi_i = integral dz phi_i'(z) [ dV/dphi_i(phi(z),T(z))
//	                               + sum_p dof_p * d(m^2_p)/dphi_i * <deltaf_p> ]
//
// integrated over the grid's physical z=xi coordinate via Clenshaw-Curtis
// quadrature with the grid's dxi/dchi Jacobian (spec.md §4.B "integrate").
// moments maps particle name -> Moments already computed against the same
// Grid g (nil/empty when bIncludeOffEq is false, spec.md §4.I).
func PressureResidual(pot potential.EffectivePotential, bg *Background, wp *WallParams, g *grid.Grid,
	particles []*boltzmann.Particle, moments map[string]*boltzmann.Moments) []float64 {

	nFields := len(bg.PhiBot)
	chiInterior := g.ChiValues(false)
	xi, _, _ := g.Coordinates()
	tag := poly.AxisTag{Basis: poly.Cardinal, Direction: poly.DirZ, Degree: g.M, Endpoints: false}

	out := make([]float64, nFields)
	for fIdx := 0; fIdx < nFields; fIdx++ {
		data := make([]float64, len(chiInterior))
		for zi, z := range xi {
			phiz := PhiProfile(bg.PhiBot, bg.PhiTop, wp, z)
			Tz := ScalarProfile(bg.Tbot, bg.Ttop, wp, z)
			dphi := DPhiDz(bg.PhiBot, bg.PhiTop, wp, z)[fIdx]
			dV := pot.DerivField(phiz, Tz)[fIdx]

			thermal := 0.0
			for _, p := range particles {
				if p.InEquilibrium || p.MassSqVacuumDeriv == nil {
					continue
				}
				m, ok := moments[p.Name]
				if !ok || zi >= len(m.Delta11) {
					continue
				}
				dm2 := p.MassSqVacuumDeriv(phiz)[fIdx]
				thermal += p.TotalDOFs * dm2 * m.Delta11[zi]
			}
			data[zi] = dphi * (dV + thermal)
		}
		tensor := poly.New([]poly.AxisTag{tag}, data)
		integrated := tensor.Integrate([]int{0}, func(_ int, x float64) float64 { return g.DxiDchi(x) })
		out[fIdx] = integrated.Data[0]
	}
	return out
}

// NetPressure sums the per-field residual into the scalar P_net(v_w) the
// outer loop root-finds on (spec.md §4.I step 3).
func NetPressure(pi []float64) float64 {
	sum := 0.0
	for _, v := range pi {
		sum += v
	}
	return sum
}
