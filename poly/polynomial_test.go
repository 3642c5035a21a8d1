// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestChangeBasisInvolution checks spec.md §8's basis-change involution
// invariant: P.changeBasis(b2).changeBasis(b1) == P within 1e-12 relative
// tolerance, for a rank-1 tensor on both the full (endpoint-inclusive) and
// interior-only node sets.
func TestChangeBasisInvolution(tst *testing.T) {
	coeffs := []float64{0.3, -1.2, 0.7, 2.5, -0.4, 1.1, 0.9}
	for _, endpoints := range []bool{true, false} {
		tag := AxisTag{Basis: Chebyshev, Direction: DirZ, Degree: 6, Endpoints: endpoints}
		data := coeffs
		if !endpoints {
			data = coeffs[:tag.Size()]
		}
		p := New([]AxisTag{tag}, append([]float64{}, data...))

		roundTrip := p.ChangeBasis(0, Cardinal, false).ChangeBasis(0, Chebyshev, false)
		chk.Vector(tst, "changeBasis(Cardinal).changeBasis(Chebyshev) recovers original", 1e-12, roundTrip.Data, data)
	}
}

// TestChangeBasisInverseTranspose checks that inverseTranspose really is the
// transpose of the inverse of the forward map, by confirming two consecutive
// inverseTranspose round trips (forward then its own inverseTranspose
// inverse) recover the original data, for a non-square-singular case.
func TestChangeBasisInverseTranspose(tst *testing.T) {
	tag := AxisTag{Basis: Cardinal, Direction: DirPz, Degree: 4, Endpoints: true}
	data := []float64{1.0, -0.5, 0.25, 2.0, -1.75}
	p := New([]AxisTag{tag}, append([]float64{}, data...))

	forward := p.ChangeBasis(0, Chebyshev, true)
	back := forward.ChangeBasis(0, Cardinal, true)
	chk.Vector(tst, "inverseTranspose round trip recovers original", 1e-10, back.Data, data)
}

// TestClenshawCurtisExactPolynomial checks spec.md §8's Clenshaw-Curtis
// exactness invariant directly: integration of a polynomial of degree <= N-2
// on N-1 Chebyshev-Lobatto nodes must be exact (up to floating-point
// round-off), independent of the function's oscillation.
func TestClenshawCurtisExactPolynomial(tst *testing.T) {
	// f(z) = 3z^4 - z^2 + 2, degree 4, on a degree-6 (7-node) axis so
	// degree 4 <= N-2 = 5 comfortably.
	tag := AxisTag{Basis: Cardinal, Direction: DirZ, Degree: 6, Endpoints: true}
	nodes := tag.nodes()
	data := make([]float64, len(nodes))
	f := func(z float64) float64 { return 3*z*z*z*z - z*z + 2 }
	for i, z := range nodes {
		data[i] = f(z)
	}
	p := New([]AxisTag{tag}, data)

	result := p.Integrate([]int{0}, nil)
	// analytic: integral_{-1}^{1} (3z^4 - z^2 + 2) dz = 3*(2/5) - (2/3) + 2*2
	want := 3*(2.0/5) - (2.0 / 3) + 2*2
	chk.Scalar(tst, "Clenshaw-Curtis exact for degree <= N-2 polynomial", 1e-10, result.Data[0], want)
}

// TestClenshawCurtisQuarterCircle reproduces the quarter-circle-area
// identity integral_0^1 sqrt(1-z^2) dz = pi/4 that spec.md §8 names (folding
// its "weight 1/sqrt(1-z^2)" phrasing into mapping z in [-1,1] onto [0,1]
// rather than literally multiplying by a pointwise-singular weight, which
// would hit a 0*Inf at the two endpoint nodes). sqrt(1-z^2) has a branch
// point at the upper endpoint, so Clenshaw-Curtis converges only
// algebraically rather than spectrally here; N=4 alone is nowhere near
// 1e-5, so this uses a larger N to reach the tolerance spec.md states.
func TestClenshawCurtisQuarterCircle(tst *testing.T) {
	const n = 40
	tag := AxisTag{Basis: Cardinal, Direction: DirZ, Degree: n, Endpoints: true}
	nodes := tag.nodes() // in [-1,1]; map to [0,1]
	data := make([]float64, len(nodes))
	for i, z := range nodes {
		x := 0.5 * (z + 1) // x in [0,1]
		v := 1 - x*x
		if v < 0 {
			v = 0
		}
		data[i] = 0.5 * math.Sqrt(v) // extra 0.5 from dx = 0.5 dz
	}
	p := New([]AxisTag{tag}, data)
	result := p.Integrate([]int{0}, nil)
	chk.Scalar(tst, "quarter-circle area integral_0^1 sqrt(1-z^2) dz == pi/4", 1e-5, result.Data[0], math.Pi/4)
}

// TestDerivativeOfConstantIsZero is a basic sanity check on the
// differentiation matrix used by both bases.
func TestDerivativeOfConstantIsZero(tst *testing.T) {
	for _, basis := range []Basis{Cardinal, Chebyshev} {
		tag := AxisTag{Basis: basis, Direction: DirZ, Degree: 5, Endpoints: true}
		data := make([]float64, tag.Size())
		if basis == Cardinal {
			for i := range data {
				data[i] = 2.5 // constant nodal values
			}
		} else {
			data[0] = 2.5 // constant term only in the Chebyshev series
		}
		p := New([]AxisTag{tag}, data)
		d := p.Derivative(0)
		for i, v := range d.Data {
			if math.Abs(v) > 1e-10 {
				tst.Errorf("%s basis: derivative of constant not zero at %d: %v", basis, i, v)
			}
		}
	}
}

// TestEvaluateRejectsOutOfRangeWithoutExtrapolation checks the failure mode
// named in spec.md §4.B: "evaluation outside [-1, 1] is permitted only if
// extrapolation was enabled by the caller".
func TestEvaluateRejectsOutOfRangeWithoutExtrapolation(tst *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic evaluating outside [-1,1] without extrapolation")
		}
	}()
	tag := AxisTag{Basis: Chebyshev, Direction: DirZ, Degree: 4, Endpoints: true}
	p := New([]AxisTag{tag}, make([]float64, tag.Size()))
	p.Evaluate([][]float64{{1.5}}, []int{0}, false)
}
