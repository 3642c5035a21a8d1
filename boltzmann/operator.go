// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boltzmann

import (
	"github.com/wallgo/wallgo/collision"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
	"github.com/wallgo/wallgo/wgerrors"
)

// Operator is the flattened dense Boltzmann operator and source of
// spec.md §4.H: L has shape n x n with n = (M-1)*(N-1)^2, S has length n.
// The flat index for collocation point (i,j,k) (chi, p_z, p_perp) is
// (i*Np+j)*Np+k, where Np = N-1.
type Operator struct {
	Nz, Np int
	L      [][]float64
	S      []float64
}

func (op *Operator) idx(i, j, k int) int { return (i*op.Np+j)*op.Np + k }

// cardinalInteriorDerivMatrix builds the square interior-to-interior chi
// differentiation matrix: it differentiates each interior Cardinal basis
// vector (which Polynomial.Derivative naturally promotes to the
// endpoint-inclusive representation, per spec.md §4.B), then restricts the
// result back to the interior nodes via Polynomial.Evaluate. This composes
// the two exact Polynomial-engine primitives instead of duplicating their
// internals, and yields the square operator the dense Boltzmann assembly
// needs (spec.md §4.H's D_chi acting on an (M-1)-length interior vector).
func cardinalInteriorDerivMatrix(g *grid.Grid) [][]float64 {
	tag := poly.AxisTag{Basis: poly.Cardinal, Direction: poly.DirZ, Degree: g.M, Endpoints: false}
	n := tag.Size()
	interior := g.ChiValues(false)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for c := 0; c < n; c++ {
		data := make([]float64, n)
		data[c] = 1
		basisVec := poly.New([]poly.AxisTag{tag}, data)
		d := basisVec.Derivative(0)
		ev := d.Evaluate([][]float64{interior}, []int{0}, false)
		for i := 0; i < n; i++ {
			out[i][c] = ev.Data[i]
		}
	}
	return out
}

// Assemble builds the dense Boltzmann operator for one particle against one
// background (spec.md §4.H "Operator assembly"): the Liouville term, the
// force term, and the collision term, each broadcast across the three
// momentum/spatial axes and flattened into L, with source S = -P*d(chi)
// f_eq(E/T).
func Assemble(g *grid.Grid, p *Particle, coll *collision.Array, bg *Background) (*Operator, error) {
	nz := g.M - 1
	np := g.N - 1
	n := nz * np * np
	op := &Operator{Nz: nz, Np: np, L: make([][]float64, n), S: make([]float64, n)}
	for i := range op.L {
		op.L[i] = make([]float64, n)
	}

	if coll.BasisType != poly.Chebyshev {
		return nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"basis": coll.BasisType.String()},
			"boltzmann: collision array must be converted to the Chebyshev basisN before assembly")
	}
	collShape := coll.Data.Shape()
	if collShape[0] != np || collShape[1] != np || collShape[2] != np || collShape[3] != np {
		return nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"shape": collShape, "np": np},
			"boltzmann: collision array shape does not match grid N")
	}

	Dchi := cardinalInteriorDerivMatrix(g)
	Drz := poly.DifferentiationMatrix(poly.AxisTag{Basis: poly.Chebyshev, Direction: poly.DirPz, Degree: g.N, Endpoints: false})

	chiInterior := g.ChiValues(false)
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

	dmsqDchi := bg.DMassSqDchi(p, g)
	massProfile := bg.MassSqProfile(p)
	chiFull := g.ChiValues(true)

	// Look up background T(chi), m^2(chi) at the interior nodes; the
	// background is sampled once on the shared M+1 grid (spec.md §3
	// "BoltzmannBackground"), and the interior nodes are a positional
	// subset of that full node set, so this is a lookup, not a resample.
	// The local fluid velocity v(chi) does not enter P directly (spec.md
	// §4.H defines P purely in terms of v_w), so only T and m^2 are needed
	// here.
	TInterior := interpAtInterior(bg.T)
	msqInterior := interpAtInterior(massProfile)
	gammaW := Gamma(bg.Vw)

	for i := 0; i < nz; i++ {
		dXiDchi := g.DxiDchi(chiInterior[i])
		dChiDxi := 1 / dXiDchi
		Ti := TInterior[i]
		msqi := msqInterior[i]
		dmsqi := 0.0
		if i < len(dmsqDchi) {
			dmsqi = dmsqDchi[i]
		}
		for j := 0; j < np; j++ {
			dRzDpz := 1 / g.DpzDrz(rz[j])
			for k := 0; k < np; k++ {
				row := op.idx(i, j, k)
				Ei := Energy(msqi, pz[j], pp[k])
				Pwall := gammaW * (pz[j] - bg.Vw*Ei)

				// Liouville term: dchi/dxi * P * D_chi (x) I (x) I.
				liou := dChiDxi * Pwall
				for a := 0; a < nz; a++ {
					if Dchi[i][a] == 0 {
						continue
					}
					col := op.idx(a, j, k)
					op.L[row][col] += liou * Dchi[i][a]
				}

				// Force term: -dchi/dxi * drho_z/dp_z * 0.5*gamma_w*d(chi)m^2
				//            * I (x) D_rho_z (x) I.
				force := -dChiDxi * dRzDpz * 0.5 * gammaW * dmsqi
				for b := 0; b < np; b++ {
					if Drz[j][b] == 0 {
						continue
					}
					col := op.idx(i, b, k)
					op.L[row][col] += force * Drz[j][b]
				}

				// Collision term: C[j,k,a,b]/P * T^2, block-diagonal in i.
				scale := Ti * Ti / Pwall
				for a := 0; a < np; a++ {
					for b := 0; b < np; b++ {
						cval := coll.Data.Data[((j*np+k)*np+a)*np+b]
						if cval == 0 {
							continue
						}
						col := op.idx(i, a, b)
						op.L[row][col] += scale * cval
					}
				}

				// Source: S = -P * d(chi) f_eq(E/T), with d(chi)f_eq via the
				// chain rule through E(chi) and T(chi).
				x := Ei / Ti
				dEdchi := 0.0
				if Ei > 0 {
					dEdchi = 0.5 * dmsqi / Ei
				}
				dTdchi := interpDerivAtInterior(bg.T, chiFull, i)
				dxdchi := dEdchi/Ti - Ei*dTdchi/(Ti*Ti)
				op.S[row] = -Pwall * DFeqDx(x, p.Stats) * dxdchi
			}
		}
	}
	return op, nil
}

// interpAtInterior restricts a full-node (length M+1) sampled profile to the
// interior node positions; since the interior nodes are a subset of the
// Chebyshev-Lobatto full node set (grid.ChiValues(true) with the first and
// last points dropped), this is a direct positional copy.
func interpAtInterior(full []float64) []float64 {
	out := make([]float64, len(full)-2)
	copy(out, full[1:len(full)-1])
	return out
}

// interpDerivAtInterior returns d(full)/dchi at interior index i via the
// same centered finite difference chiDerivative uses, evaluated lazily so
// Assemble only pays for the source-term pass.
func interpDerivAtInterior(full []float64, chiFull []float64, i int) float64 {
	// full[] and chiFull[] share the same M+1 indexing; interior index i
	// corresponds to full index i+1.
	fi := i + 1
	return (full[fi+1] - full[fi-1]) / (chiFull[fi+1] - chiFull[fi-1])
}
