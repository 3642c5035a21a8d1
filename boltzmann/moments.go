// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boltzmann

import (
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
)

// Moments carries the four Delta_mn(z) profiles the EOM needs (spec.md
// §4.H "Moments", §6 "WallGoResults.Deltas"): Delta_mn = integral dp_z dp_p
// p_z^m E^n deltaF / E, reduced via a Clenshaw-Curtis sum over the two
// momentum axes.
type Moments struct {
	Z                  []float64
	Delta00, Delta02   []float64
	Delta20, Delta11   []float64
}

// weightFn computes p_z^m * E^n / E at a (chi, p_z, p_perp) collocation
// triple.
type weightFn func(pz, E float64) float64

var momentWeights = map[string]weightFn{
	"00": func(pz, E float64) float64 { return 1 / E },
	"02": func(pz, E float64) float64 { return E },
	"20": func(pz, E float64) float64 { return pz * pz / E },
	"11": func(pz, E float64) float64 { return pz },
}

// ComputeMoments reduces a solved deltaF to the four Delta_mn(z) profiles
// (spec.md §4.H). deltaF is the flat vector Assemble/Solve produced, with
// flat index (i*Np+j)*Np+k matching Operator.idx.
func ComputeMoments(deltaF []float64, g *grid.Grid, bg *Background, p *Particle) *Moments {
	nz := g.M - 1
	np := g.N - 1
	z, _, _ := g.Coordinates()

	rz := g.RzValues(false)
	rp := g.RpValues(false)
	pz := make([]float64, np)
	pp := make([]float64, np)
	for j := 0; j < np; j++ {
		pz[j] = g.Pz(rz[j])
	}
	for k := 0; k < np; k++ {
		pp[k] = g.Pp(rp[k])
	}
	massProfile := interpAtInterior(bg.MassSqProfile(p))

	momentAxes := []poly.AxisTag{
		{Basis: poly.Chebyshev, Direction: poly.DirPz, Degree: g.N, Endpoints: false},
		{Basis: poly.Chebyshev, Direction: poly.DirPp, Degree: g.N, Endpoints: false},
	}

	reduce := func(name string) []float64 {
		w := momentWeights[name]
		out := make([]float64, nz)
		for i := 0; i < nz; i++ {
			data := make([]float64, np*np)
			for j := 0; j < np; j++ {
				for k := 0; k < np; k++ {
					E := Energy(massProfile[i], pz[j], pp[k])
					data[j*np+k] = deltaF[(i*np+j)*np+k] * w(pz[j], E)
				}
			}
			tensor := poly.New(momentAxes, data)
			reduced := tensor.Integrate([]int{0, 1}, nil)
			out[i] = reduced.Data[0]
		}
		return out
	}

	return &Moments{
		Z:       z,
		Delta00: reduce("00"),
		Delta02: reduce("02"),
		Delta20: reduce("20"),
		Delta11: reduce("11"),
	}
}
