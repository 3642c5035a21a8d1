// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import "math"

// clenshawCurtisWeights implements the standard closed-form Waldvogel
// weights for Clenshaw-Curtis quadrature on n+1 Chebyshev-Lobatto points
// over [-1,1], exact for polynomials of degree <= n (spec.md §8
// "Clenshaw-Curtis exactness").
func clenshawCurtisWeights(n int) []float64 {
	w := make([]float64, n+1)
	if n == 0 {
		return []float64{2}
	}
	if n == 1 {
		return []float64{1, 1}
	}
	c := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		if k%2 == 0 {
			c[k] = 2.0 / float64(1-k*k)
		}
	}
	// mirror-sum to build the real weight vector directly (equivalent to
	// the inverse DCT used by Waldvogel's algorithm, evaluated directly
	// since we only need moderate N here).
	theta := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		theta[k] = float64(k) * math.Pi / float64(n)
	}
	for i := 0; i <= n; i++ {
		sum := c[0]
		for k := 1; k < n; k++ {
			sum += c[k] * math.Cos(float64(k)*theta[i])
		}
		last := c[n] * math.Cos(float64(n)*theta[i])
		w[i] = (sum + last) / float64(n)
	}
	// endpoints carry half weight of interior correction in the standard
	// derivation; apply the known closed-form endpoint fix.
	for i := range w {
		if i == 0 || i == n {
			w[i] /= 2
		}
	}
	return w
}

// Integrate performs Clenshaw-Curtis quadrature at the tagged nodes along
// the given axes, with an optional weight function applied pointwise before
// summation (spec.md §4.B "integrate").
func (p *Polynomial) Integrate(axes []int, weight func(axis int, x float64) float64) *Polynomial {
	shape := p.Shape()
	data := p.Data
	// integrate from the last requested axis backward so axis indices
	// referring to not-yet-processed axes remain valid.
	sortedAxes := append([]int{}, axes...)
	for i := len(sortedAxes) - 1; i >= 0; i-- {
		axis := sortedAxes[i]
		tag := p.Axes[axis]
		nodes := tag.nodes()
		var weights []float64
		if tag.Endpoints {
			weights = clenshawCurtisWeights(tag.Degree)
		} else {
			full := clenshawCurtisWeights(tag.Degree)
			idx := rowIndices(tag.Degree, false)
			weights = make([]float64, len(idx))
			for j, r := range idx {
				weights[j] = full[r]
			}
		}
		if weight != nil {
			weights = append([]float64{}, weights...)
			for j, x := range nodes {
				weights[j] *= weight(axis, x)
			}
		}
		M := [][]float64{weights}
		data, shape = applyAxisMap(data, shape, axis, M)
	}
	return &Polynomial{Axes: dropAxes(p.Axes, axes), Data: data}
}

// dropAxes removes the integrated-out axes from the tag list, since
// Integrate collapses each named axis to a scalar.
func dropAxes(axes []AxisTag, drop []int) []AxisTag {
	dropSet := map[int]bool{}
	for _, d := range drop {
		dropSet[d] = true
	}
	out := make([]AxisTag, 0, len(axes))
	for i, a := range axes {
		if !dropSet[i] {
			out = append(out, a)
		}
	}
	return out
}
