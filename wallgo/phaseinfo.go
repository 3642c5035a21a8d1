// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wallgo implements WallGoManager, the top-level wiring of spec.md
// §6: phase validation, grid/hydrodynamics/Boltzmann construction, and the
// outer loop, assembled the way fem/fem.go wires mesh, solver and output
// together behind one driving type.
package wallgo

import (
	"github.com/cpmech/gosl/io"
	"github.com/wallgo/wallgo/potential"
	"github.com/wallgo/wallgo/wgerrors"
)

// PhaseInfo is the caller-supplied transition endpoint of spec.md §3: the
// nucleation temperature and the two local minima of the free energy
// between which the transition proceeds, with Phi2 required to be the
// lower-free-energy (true vacuum) point at Tn.
type PhaseInfo struct {
	Tn         float64
	Phi1, Phi2 []float64
}

// validate checks V(phi2,Tn) < V(phi1,Tn) (spec.md §3 "PhaseInfo"
// invariant), first logging (when verbose) V at both given field points;
// no minimization is run to locate the actual minima. A misconfigured
// PhaseInfo thus gives an immediately
// actionable diagnostic (SUPPLEMENTED FEATURE #3) instead of a bare error.
func validate(pot potential.EffectivePotential, p PhaseInfo, verbose bool) error {
	v1 := potential.Full(pot, p.Phi1, p.Tn)
	v2 := potential.Full(pot, p.Phi2, p.Tn)
	if verbose {
		io.Pf("phase validation at Tn=%g: V(phi1=%v)=%g, V(phi2=%v)=%g\n", p.Tn, p.Phi1, v1, p.Phi2, v2)
	}
	if v2 >= v1 {
		if verbose {
			io.Pfred("InverseTransition: phase 2 is not the lower-free-energy minimum at Tn\n")
		}
		return wgerrors.New(wgerrors.InverseTransition,
			map[string]interface{}{"Tn": p.Tn, "phi1": p.Phi1, "phi2": p.Phi2, "V1": v1, "V2": v2},
			"wallgo: V(phi2,Tn)=%g is not below V(phi1,Tn)=%g at Tn=%g", v2, v1, p.Tn)
	}
	return nil
}
