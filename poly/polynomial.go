// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"github.com/cpmech/gosl/chk"
)

// AxisTag describes one axis of a Polynomial tensor: its basis, the
// physical direction it represents, its degree (matching grid.Grid's M/N
// convention: degree d has d+1 total Lobatto nodes, d-1 interior nodes),
// and whether the two boundary nodes are included.
type AxisTag struct {
	Basis      Basis
	Direction  Direction
	Degree     int
	Endpoints  bool
}

// Size returns the number of nodes this axis carries given its Degree and
// Endpoints flag.
func (a AxisTag) Size() int {
	if a.Endpoints {
		return a.Degree + 1
	}
	return a.Degree - 1
}

// nodes returns the physical (reference-interval) sample points of this
// axis.
func (a AxisTag) nodes() []float64 {
	if a.Endpoints {
		return lobattoNodes(a.Degree)
	}
	return interiorNodes(a.Degree)
}

// Polynomial is a rank-R tensor of coefficients tagged per axis, exact up to
// floating point (spec.md §4.B).
type Polynomial struct {
	Axes []AxisTag
	Data []float64 // row-major, last axis fastest
}

// Shape returns the per-axis sizes.
func (p *Polynomial) Shape() []int {
	s := make([]int, len(p.Axes))
	for i, a := range p.Axes {
		s[i] = a.Size()
	}
	return s
}

// New builds a Polynomial from axis tags and flattened row-major data. The
// data length must equal the product of the tagged axis sizes (shape
// mismatch is fatal per spec.md §4.B).
func New(axes []AxisTag, data []float64) *Polynomial {
	n := 1
	for _, a := range axes {
		n *= a.Size()
	}
	if len(data) != n {
		chk.Panic("poly: shape mismatch: tensor of shape %v needs %d entries, got %d",
			shapeOf(axes), n, len(data))
	}
	return &Polynomial{Axes: axes, Data: data}
}

// Zeros builds a zero-valued Polynomial of the given shape.
func Zeros(axes []AxisTag) *Polynomial {
	n := 1
	for _, a := range axes {
		n *= a.Size()
	}
	return &Polynomial{Axes: axes, Data: make([]float64, n)}
}

func shapeOf(axes []AxisTag) []int {
	s := make([]int, len(axes))
	for i, a := range axes {
		s[i] = a.Size()
	}
	return s
}

// strides returns row-major strides for a shape.
func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// applyAxisMap left-multiplies the tensor along a single axis by the dense
// matrix m (newSize x oldSize): this is the shared primitive behind
// derivative, evaluate and changeBasis, all of which act as
// "M ⊗ I ⊗ I ⊗ ..." along exactly one axis (spec.md §4.H describes the same
// broadcast-by-axis structure for operator assembly).
func applyAxisMap(data []float64, shape []int, axis int, m [][]float64) ([]float64, []int) {
	oldSize := shape[axis]
	newSize := len(m)
	newShape := append([]int{}, shape...)
	newShape[axis] = newSize

	outer := 1
	for i := 0; i < axis; i++ {
		outer *= shape[i]
	}
	inner := 1
	for i := axis + 1; i < len(shape); i++ {
		inner *= shape[i]
	}

	out := make([]float64, total(newShape))
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			oldOffset := o*oldSize*inner + in
			newOffset := o*newSize*inner + in
			for j := 0; j < newSize; j++ {
				s := 0.0
				row := m[j]
				for i := 0; i < oldSize; i++ {
					v := row[i]
					if v == 0 {
						continue
					}
					s += v * data[oldOffset+i*inner]
				}
				out[newOffset+j*inner] = s
			}
		}
	}
	return out, newShape
}

func total(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// Evaluate collocates the polynomial on arbitrary points along the given
// axes, leaving all other axes untouched (spec.md §4.B "evaluate"). points
// must have one slice per entry of axes, in the same order.
func (p *Polynomial) Evaluate(points [][]float64, axes []int, extrapolate bool) *Polynomial {
	if len(points) != len(axes) {
		chk.Panic("poly: Evaluate needs one point-array per tagged axis")
	}
	shape := p.Shape()
	data := p.Data
	newAxes := append([]AxisTag{}, p.Axes...)
	for k, axis := range axes {
		tag := p.Axes[axis]
		pts := points[k]
		if !extrapolate {
			for _, x := range pts {
				if x < -1-1e-12 || x > 1+1e-12 {
					chk.Panic("poly: Evaluate outside [-1,1] requires extrapolation to be enabled (x=%v)", x)
				}
			}
		}
		M := collocationMatrix(tag, pts)
		data, shape = applyAxisMap(data, shape, axis, M)
		newAxes[axis] = AxisTag{Basis: tag.Basis, Direction: tag.Direction, Degree: len(pts) - 1, Endpoints: true}
	}
	return &Polynomial{Axes: newAxes, Data: data}
}

// collocationMatrix builds the (len(points) x tag.Size()) matrix that maps
// nodal/coefficient values on `tag` to values at arbitrary points.
func collocationMatrix(tag AxisTag, points []float64) [][]float64 {
	nodes := tag.nodes()
	M := make([][]float64, len(points))
	switch tag.Basis {
	case Chebyshev:
		for r, x := range points {
			M[r] = make([]float64, len(nodes))
			for k := range nodes {
				M[r][k] = chebyshevT(k, x)
			}
		}
	case Cardinal:
		for r, x := range points {
			M[r] = make([]float64, len(nodes))
			for i := range nodes {
				M[r][i] = cardinalBasisValue(nodes, i, x)
			}
		}
	}
	return M
}

// Derivative returns a new Polynomial, differentiated along one axis
// (spec.md §4.B "derivative"). Differentiating an interior-only axis
// yields an endpoint-inclusive axis and vice versa, per spec.md §4.B.
func (p *Polynomial) Derivative(axis int) *Polynomial {
	tag := p.Axes[axis]
	D := DifferentiationMatrix(tag)
	shape := p.Shape()
	data, newShape := applyAxisMap(p.Data, shape, axis, D)
	newAxes := append([]AxisTag{}, p.Axes...)
	newAxes[axis] = AxisTag{Basis: tag.Basis, Direction: tag.Direction, Degree: tag.Degree, Endpoints: !tag.Endpoints}
	_ = newShape
	return &Polynomial{Axes: newAxes, Data: data}
}

// DifferentiationMatrix returns the (newSize x oldSize) matrix implementing
// exact differentiation on the given axis tag.
//
//   Chebyshev basis: triangular recursion on the coefficient vector
//   (chebyshevDerivativeCoeffs), expressed as a matrix acting on the
//   Degree+1 (or Degree-1, interior) coefficient slots.
//   Cardinal basis:  the precomputed Chebyshev differentiation matrix
//   restricted/extended to the requested endpoint convention.
func DifferentiationMatrix(tag AxisTag) [][]float64 {
	switch tag.Basis {
	case Chebyshev:
		return chebyshevCoeffDerivMatrix(tag)
	default:
		return cardinalDerivMatrix(tag)
	}
}

// chebyshevCoeffDerivMatrix builds the matrix form of
// chebyshevDerivativeCoeffs for a series of tag.Size() coefficients; the
// output has the same number of coefficients but with the endpoint flag
// flipped per spec.md §4.B (so callers composing derivative+integrate keep
// a consistent node count across the chain).
func chebyshevCoeffDerivMatrix(tag AxisTag) [][]float64 {
	n := tag.Size() // number of coefficients (degree+1 of the stored series)
	M := make([][]float64, n)
	for i := range M {
		M[i] = make([]float64, n)
	}
	for k := 0; k < n; k++ {
		e := make([]float64, n)
		e[k] = 1
		d := chebyshevDerivativeCoeffs(e)
		for i := 0; i < n; i++ {
			M[i][k] = d[i]
		}
	}
	return M
}

// cardinalDerivMatrix builds the Cardinal-basis differentiation matrix on
// the full Degree+1 Lobatto grid, restricting rows/columns to interior
// nodes when the input/output axis excludes endpoints.
func cardinalDerivMatrix(tag AxisTag) [][]float64 {
	full := chebyshevDiffMatrix(tag.Degree) // (Degree+1) x (Degree+1)
	outEndpoints := !tag.Endpoints
	inEndpoints := tag.Endpoints
	rows := rowIndices(tag.Degree, outEndpoints)
	cols := rowIndices(tag.Degree, inEndpoints)
	M := make([][]float64, len(rows))
	for ri, r := range rows {
		M[ri] = make([]float64, len(cols))
		for ci, c := range cols {
			M[ri][ci] = full[r][c]
		}
	}
	return M
}

// rowIndices returns the node indices of the full (Degree+1)-point Lobatto
// grid selected by the endpoints flag.
func rowIndices(degree int, endpoints bool) []int {
	n := degree + 1
	if endpoints {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, n-2)
	for i := range idx {
		idx[i] = i + 1
	}
	return idx
}

// ChangeBasis left-multiplies by the fixed per-axis basis-transform matrix.
// inverseTranspose transposes-and-inverts the matrix, the correct
// transformation when the tensor represents a linear operator kernel
// rather than a value (spec.md §4.B; used by collision.Array).
func (p *Polynomial) ChangeBasis(axis int, newBasis Basis, inverseTranspose bool) *Polynomial {
	tag := p.Axes[axis]
	if tag.Basis == newBasis {
		return p
	}
	// Basis transform matrices are defined on the full Degree+1 node set;
	// for interior-only axes we restrict to the interior rows/cols the same
	// way cardinalDerivMatrix does, which is exact because the Cardinal
	// basis functions used here are themselves built from the full node
	// set (spec.md §4.B "Cardinal ... built from the Chebyshev nodes").
	full := basisTransformMatrix(tag.Degree, tag.Basis, newBasis)
	var M [][]float64
	if tag.Endpoints {
		M = full
	} else {
		idx := rowIndices(tag.Degree, false)
		M = make([][]float64, len(idx))
		for ri, r := range idx {
			M[ri] = make([]float64, len(idx))
			for ci, c := range idx {
				M[ri][ci] = full[r][c]
			}
		}
	}
	if inverseTranspose {
		Minv, err := invert(M)
		if err != nil {
			chk.Panic("poly: ChangeBasis inverseTranspose on singular matrix: %v", err)
		}
		M = transpose(Minv)
	}
	shape := p.Shape()
	data, _ := applyAxisMap(p.Data, shape, axis, M)
	newAxes := append([]AxisTag{}, p.Axes...)
	newAxes[axis] = AxisTag{Basis: newBasis, Direction: tag.Direction, Degree: tag.Degree, Endpoints: tag.Endpoints}
	return &Polynomial{Axes: newAxes, Data: data}
}

// ChangeBasisAll applies ChangeBasis across every axis, used when converting
// a whole tensor (e.g. CollisionArray's two polynomial axes) at once.
func (p *Polynomial) ChangeBasisAll(newBasis Basis, inverseTranspose bool) *Polynomial {
	out := p
	for i := range out.Axes {
		out = out.ChangeBasis(i, newBasis, inverseTranspose)
	}
	return out
}
