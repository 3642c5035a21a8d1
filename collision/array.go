// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"fmt"
	"math"

	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/poly"
	"github.com/wallgo/wallgo/wgerrors"
)

// Array is the CollisionArray of spec.md §4.G: a rank-4 Polynomial of shape
// (N-1)^4 with axis tags (p_z, p_⊥, poly1, poly2), tied to an ordered pair
// of off-equilibrium particles. Momentum axes are always Cardinal;
// polynomial axes share one basis, Cardinal or Chebyshev (spec.md §3 "data
// model" invariant).
//
// Array does not own the Grid it was built on (spec.md §9 "cyclic graphs":
// single-owner, the manager owns the Grid).
type Array struct {
	Data               *poly.Polynomial
	Particle1, Particle2 string
	BasisType          poly.Basis
}

// New builds a zero-valued Array for the given grid, basis and particle
// pair (spec.md §4.G); momentum axes are Cardinal, polynomial axes use
// basisType.
func New(g *grid.Grid, basisType poly.Basis, particle1, particle2 string) *Array {
	axes := []poly.AxisTag{
		{Basis: poly.Cardinal, Direction: poly.DirPz, Degree: g.N, Endpoints: false},
		{Basis: poly.Cardinal, Direction: poly.DirPp, Degree: g.N, Endpoints: false},
		{Basis: basisType, Direction: poly.DirZ, Degree: g.N, Endpoints: false},
		{Basis: basisType, Direction: poly.DirZ, Degree: g.N, Endpoints: false},
	}
	return &Array{
		Data:      poly.Zeros(axes),
		Particle1: particle1, Particle2: particle2,
		BasisType: basisType,
	}
}

// fromPolynomial wraps an already-shaped, already-tagged Polynomial,
// mirroring CollisionArray.newFromPolynomial: the polynomial must be rank-4,
// Cardinal on its first two axes, and share one basis on the last two.
func fromPolynomial(p *poly.Polynomial, particle1, particle2 string) *Array {
	if len(p.Axes) != 4 {
		panicShape("expected a rank-4 polynomial, got rank %d", len(p.Axes))
	}
	if p.Axes[0].Basis != poly.Cardinal || p.Axes[1].Basis != poly.Cardinal {
		panicShape("momentum axes must be Cardinal")
	}
	if p.Axes[2].Basis != p.Axes[3].Basis {
		panicShape("polynomial axes must share one basis")
	}
	return &Array{Data: p, Particle1: particle1, Particle2: particle2, BasisType: p.Axes[2].Basis}
}

func panicShape(format string, args ...interface{}) {
	panic(fmt.Sprintf("collision: "+format, args...))
}

// ChangeBasis converts the two polynomial axes to newBasis in place,
// using inverseTranspose=true because the collision tensor is an operator
// kernel, not a value (spec.md §4.B, §4.G).
func (a *Array) ChangeBasis(newBasis poly.Basis) {
	if a.BasisType == newBasis {
		return
	}
	a.Data = a.Data.ChangeBasis(2, newBasis, true).ChangeBasis(3, newBasis, true)
	a.BasisType = newBasis
}

// Load reads a collision tensor for (particle1, particle2) out of the
// container at path and realizes it on targetGrid in basisType (spec.md
// §4.G):
//
//   - N_file == target N: load directly.
//   - N_file > target N and allowInterp: build the tensor on a dummy grid
//     of the file's size, change it to Chebyshev, evaluate at the target
//     grid's (ρ_z, ρ_⊥) nodes, and restrict to the target size.
//   - N_file < target N, or allowInterp is false and sizes differ: fatal
//     CollisionLoadError, no fallback (spec.md REDESIGN FLAGS #5 keeps the
//     explicit failure the Python version leaves as an uncaught exception).
func Load(path string, targetGrid *grid.Grid, particle1, particle2 string, basisType poly.Basis, allowInterp bool) (*Array, error) {
	c, err := loadContainer(path)
	if err != nil {
		return nil, err
	}
	fileBasis, err := parseBasis(c.BasisType)
	if err != nil {
		return nil, wgerrors.New(wgerrors.CollisionLoadError, map[string]interface{}{"basis": c.BasisType},
			"%v", err)
	}
	key := particle1 + ", " + particle2
	flat, ok := c.Pairs[key]
	if !ok {
		return nil, wgerrors.New(wgerrors.CollisionLoadError,
			map[string]interface{}{"pair": key, "path": path},
			"collision: no dataset for particle pair %q in %q", key, path)
	}
	nFile := c.BasisSize - 1
	converted := convertFileLayout(flat, nFile)

	if c.BasisSize == targetGrid.N {
		axes := []poly.AxisTag{
			{Basis: poly.Cardinal, Direction: poly.DirPz, Degree: targetGrid.N, Endpoints: false},
			{Basis: poly.Cardinal, Direction: poly.DirPp, Degree: targetGrid.N, Endpoints: false},
			{Basis: fileBasis, Direction: poly.DirZ, Degree: targetGrid.N, Endpoints: false},
			{Basis: fileBasis, Direction: poly.DirZ, Degree: targetGrid.N, Endpoints: false},
		}
		out := fromPolynomial(poly.New(axes, converted), particle1, particle2)
		out.ChangeBasis(basisType)
		return out, nil
	}

	if c.BasisSize < targetGrid.N {
		return nil, wgerrors.New(wgerrors.CollisionLoadError,
			map[string]interface{}{"N_file": c.BasisSize, "N_target": targetGrid.N, "path": path},
			"collision: file basis size %d smaller than target %d, no fallback", c.BasisSize, targetGrid.N)
	}
	if !allowInterp {
		return nil, wgerrors.New(wgerrors.CollisionLoadError,
			map[string]interface{}{"N_file": c.BasisSize, "N_target": targetGrid.N, "path": path},
			"collision: file basis size %d differs from target %d and interpolation is disabled", c.BasisSize, targetGrid.N)
	}
	return interpolateDown(converted, nFile, fileBasis, targetGrid, basisType, particle1, particle2)
}

// convertFileLayout undoes the file's "inverted inner axes" storage
// convention (spec.md §4.G): the container keeps (poly1, poly2, p_z, p_⊥)
// with the momentum node order reversed; the in-memory convention is
// (p_z, p_⊥, poly1, poly2) in increasing node order.
func convertFileLayout(flat []float64, n int) []float64 {
	get := func(i, j, k, l int) float64 {
		// file index order: (poly1, poly2, p_z, p_⊥), p_z/p_⊥ node-reversed
		fi, fj := i, j       // poly1, poly2 (unchanged)
		fk, fl := n-1-k, n-1-l // p_z, p_⊥ (flipped)
		return flat[((fi*n+fj)*n+fk)*n+fl]
	}
	out := make([]float64, n*n*n*n)
	idx := 0
	for pz := 0; pz < n; pz++ {
		for pp := 0; pp < n; pp++ {
			for p1 := 0; p1 < n; p1++ {
				for p2 := 0; p2 < n; p2++ {
					out[idx] = get(p1, p2, pz, pp)
					idx++
				}
			}
		}
	}
	return out
}

// interpolateDown realizes a collision tensor loaded on a finer file grid
// onto targetGrid (spec.md §4.G, N_file > N branch): change to Chebyshev
// on the polynomial axes, evaluate the momentum axes at the target grid's
// interior nodes, restrict the polynomial axes to the target size, then
// convert to the requested basis.
func interpolateDown(flat []float64, nFile int, fileBasis poly.Basis, targetGrid *grid.Grid, basisType poly.Basis, particle1, particle2 string) (*Array, error) {
	axes := []poly.AxisTag{
		{Basis: poly.Cardinal, Direction: poly.DirPz, Degree: nFile + 1, Endpoints: false},
		{Basis: poly.Cardinal, Direction: poly.DirPp, Degree: nFile + 1, Endpoints: false},
		{Basis: fileBasis, Direction: poly.DirZ, Degree: nFile + 1, Endpoints: false},
		{Basis: fileBasis, Direction: poly.DirZ, Degree: nFile + 1, Endpoints: false},
	}
	p := poly.New(axes, flat)
	p = p.ChangeBasis(2, poly.Chebyshev, true).ChangeBasis(3, poly.Chebyshev, true)

	rz := targetGrid.RzValues(false)
	rp := targetGrid.RpValues(false)
	evaluated := p.Evaluate([][]float64{rz, rp}, []int{0, 1}, false)

	n := targetGrid.N - 1
	restricted := restrictPolynomialAxes(evaluated, n)
	out := fromPolynomial(restricted, particle1, particle2)
	out.ChangeBasis(basisType)
	return out, nil
}

// restrictPolynomialAxes truncates the trailing two (polynomial) axes of a
// Chebyshev-basis tensor to the first n coefficients each, matching the
// Python implementation's `[:, :n, :n]` slice after evaluate.
func restrictPolynomialAxes(p *poly.Polynomial, n int) *poly.Polynomial {
	shape := p.Shape()
	m1, m2 := shape[2], shape[3]
	out := make([]float64, shape[0]*shape[1]*n*n)
	idx := 0
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					out[idx] = p.Data[((i*shape[1]+j)*m1+k)*m2+l]
					idx++
				}
			}
		}
	}
	axes := []poly.AxisTag{
		{Basis: poly.Cardinal, Direction: poly.DirPz, Degree: shape[0] + 1, Endpoints: false},
		{Basis: poly.Cardinal, Direction: poly.DirPp, Degree: shape[1] + 1, Endpoints: false},
		{Basis: poly.Chebyshev, Direction: poly.DirZ, Degree: n + 1, Endpoints: false},
		{Basis: poly.Chebyshev, Direction: poly.DirZ, Degree: n + 1, Endpoints: false},
	}
	return poly.New(axes, out)
}

func parseBasis(s string) (poly.Basis, error) {
	switch s {
	case "Cardinal":
		return poly.Cardinal, nil
	case "Chebyshev":
		return poly.Chebyshev, nil
	}
	return 0, fmt.Errorf("unrecognized basis %q", s)
}

// EstimateLxi computes the eigenvalue spectrum of C/P_wall and returns the
// estimated decay length 1/max(Re(-λ)) in the symmetric phase and
// 1/max(Re(λ)) in the broken phase (spec.md §4.G "estimateLxi"), used by
// the outer loop to size the grid's tail length L_xi.
func (a *Array) EstimateLxi(g *grid.Grid, v, T1, T2, msq1, msq2 float64) (lSym, lBroken float64, err error) {
	_, pz, pp := g.Coordinates()
	n := len(pz)
	gamma := 1 / math.Sqrt(1-v*v)

	shape := a.Data.Shape()
	if shape[0] != n || shape[1] != n {
		return 0, 0, wgerrors.New(wgerrors.GridConfigError,
			map[string]interface{}{"n": n, "shape": shape}, "EstimateLxi: grid/array size mismatch")
	}
	size := n * n

	m1 := make([][]float64, size)
	m2 := make([][]float64, size)
	for i := range m1 {
		m1[i] = make([]float64, size)
		m2[i] = make([]float64, size)
	}
	for iz := 0; iz < n; iz++ {
		for ip := 0; ip < n; ip++ {
			E1 := math.Sqrt(msq1 + pz[iz]*pz[iz] + pp[ip]*pp[ip])
			E2 := math.Sqrt(msq2 + pz[iz]*pz[iz] + pp[ip]*pp[ip])
			pWall1 := gamma * (pz[iz] - v*E1)
			pWall2 := gamma * (pz[iz] - v*E2)
			row := iz*n + ip
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					col := k*n + l
					c := a.Data.Data[((iz*n+ip)*n+k)*n+l]
					m1[row][col] = T1 * T1 * c / pWall1
					m2[row][col] = T2 * T2 * c / pWall2
				}
			}
		}
	}

	eig1 := realEigenvalues(m1)
	eig2 := realEigenvalues(m2)
	lSym = 1 / maxOf(negate(eig1))
	lBroken = 1 / maxOf(eig2)
	return lSym, lBroken, nil
}

func negate(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = -x
	}
	return out
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
