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

// Solver owns the off-equilibrium particle list and their self-collision
// arrays (spec.md §4.H "Off-equilibrium particle list"): each particle
// yields its own (L,S) and its own deltaF, and the outer loop sums the
// contributions (spec.md §4.H, §4.I). Solver does not own the Grid (spec.md
// §9 "cyclic graphs": single-owner, the manager owns the Grid).
type Solver struct {
	Grid       *grid.Grid
	Particles  []*Particle
	Collisions map[string]*collision.Array // keyed by particle name, self-pair tensor
}

// Result is one particle's solved deltaF and the moments extracted from it.
type Result struct {
	Particle         *Particle
	DeltaF           []float64
	Moments          *Moments
	ConditionWarning bool
}

// NewSolver builds a Solver for the given grid and off-equilibrium particle
// list; collision tensors are loaded separately via LoadCollision (spec.md
// §5 "Collision tensor loading must precede the first Boltzmann assembly").
func NewSolver(g *grid.Grid, particles []*Particle) *Solver {
	out := make([]*Particle, 0, len(particles))
	for _, p := range particles {
		if !p.InEquilibrium {
			out = append(out, p)
		}
	}
	return &Solver{Grid: g, Particles: out, Collisions: map[string]*collision.Array{}}
}

// LoadCollision loads the self-collision tensor for particle name from path
// and converts it to the Chebyshev basisN hardcoded for the momentum axes
// (spec.md §4.H).
func (s *Solver) LoadCollision(name, path string, allowInterp bool) error {
	arr, err := collision.Load(path, s.Grid, name, name, poly.Chebyshev, allowInterp)
	if err != nil {
		return err
	}
	s.Collisions[name] = arr
	return nil
}

// Solve assembles and solves the Boltzmann operator for every
// off-equilibrium particle against the shared background, returning each
// particle's deltaF and moments (spec.md §4.H, §5 "per-particle (L,S)
// assembly is embarrassingly parallel over particles" — exposed here as a
// per-particle slice so a caller may parallelize it; Solve itself runs the
// particles sequentially since the outer wall solve is single-threaded by
// default, spec.md §5).
func (s *Solver) Solve(bg *Background) (map[string]*Result, error) {
	out := map[string]*Result{}
	for _, p := range s.Particles {
		coll, ok := s.Collisions[p.Name]
		if !ok {
			return nil, wgerrors.New(wgerrors.CollisionLoadError, map[string]interface{}{"particle": p.Name},
				"boltzmann: no collision tensor loaded for particle %q", p.Name)
		}
		op, err := Assemble(s.Grid, p, coll, bg)
		if err != nil {
			return nil, err
		}
		deltaF, condWarn, err := Solve(op)
		if err != nil {
			return nil, wgerrors.New(wgerrors.IntegratorFailure, map[string]interface{}{"particle": p.Name},
				"boltzmann: solve failed for particle %q: %v", p.Name, err)
		}
		moments := ComputeMoments(deltaF, s.Grid, bg, p)
		out[p.Name] = &Result{Particle: p, DeltaF: deltaF, Moments: moments, ConditionWarning: condWarn}
	}
	return out, nil
}
