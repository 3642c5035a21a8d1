// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallgo

import (
	"github.com/cpmech/gosl/io"
	"github.com/wallgo/wallgo/boltzmann"
	"github.com/wallgo/wallgo/config"
	"github.com/wallgo/wallgo/eom"
	"github.com/wallgo/wallgo/freeenergy"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/hydro"
	"github.com/wallgo/wallgo/potential"
	"github.com/wallgo/wallgo/wgerrors"
)

// Manager is WallGoManager of spec.md §6: it owns the Grid (spec.md §9
// "cyclic graphs": single-owner) and wires phase tracing, hydrodynamics and
// the Boltzmann solver into one call that produces a Results record,
// mirroring the way fem/fem.go assembles mesh, solver and DOFs behind one
// driving type before Run.
type Manager struct {
	Config    *config.Config
	Potential potential.EffectivePotential
	Grid      *grid.Grid
	HighPhase *freeenergy.Phase // traced phase containing PhaseInfo.Phi1 (symmetric)
	LowPhase  *freeenergy.Phase // traced phase containing PhaseInfo.Phi2 (broken)
	Hydro     *hydro.Engine
	Boltzmann *boltzmann.Solver // nil until the first off-equilibrium particle is added
	Phases    PhaseInfo
	Verbose   bool
	Warnings  []wgerrors.Warning
}

// NewManager validates PhaseInfo, traces both phases, and builds the grid
// and hydrodynamic engine (spec.md §6). GridConfigError and
// InverseTransition are fatal at this stage (spec.md §7): the manager
// refuses to proceed and returns the error instead of a partially built
// Manager.
func NewManager(pot potential.EffectivePotential, info PhaseInfo, cfg *config.Config, verbose bool) (*Manager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := validate(pot, info, verbose); err != nil {
		return nil, err
	}

	if err := potential.LoadInterpolationTables(cfg.DataFiles.InterpolationTableJb, cfg.DataFiles.InterpolationTableJf); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.PolynomialGrid.SpatialGridSize, cfg.PolynomialGrid.MomentumGridSize,
		cfg.PolynomialGrid.LXi, info.Tn, 0)
	if err != nil {
		return nil, err
	}

	opts := freeenergy.Options{RTol: cfg.EffectivePotential.PhaseTracerTol}
	highPhase, err := freeenergy.Trace(pot, info.Phi1, info.Tn, opts)
	if err != nil {
		return nil, err
	}
	lowPhase, err := freeenergy.Trace(pot, info.Phi2, info.Tn, opts)
	if err != nil {
		return nil, err
	}

	eng := hydro.New(highPhase, lowPhase, info.Tn, cfg)

	if verbose {
		io.Pfgreen("wallgo: manager ready (Tn=%g, M=%d, N=%d)\n", info.Tn, g.M, g.N)
	}

	return &Manager{
		Config: cfg, Potential: pot, Grid: g,
		HighPhase: highPhase, LowPhase: lowPhase, Hydro: eng,
		Phases: info, Verbose: verbose,
	}, nil
}

// CriticalTemperature finds T_c where V(phi2,T) == V(phi1,T) (spec.md §4.D
// "findCriticalTemperature"), bracketing within the configured
// hydrodynamic search window around Tn.
func (m *Manager) CriticalTemperature() (float64, error) {
	Tmin := m.Phases.Tn * m.Config.Hydrodynamics.TMin
	Tmax := m.Phases.Tn * m.Config.Hydrodynamics.TMax
	return m.Potential.FindCriticalTemperature(m.Phases.Phi1, m.Phases.Phi2, Tmin, Tmax)
}

// AddOffEquilibriumParticle registers a particle to be tracked
// out-of-equilibrium and loads its self-collision tensor from path
// (spec.md §5 "collision tensor loading must precede the first Boltzmann
// assembly"); the underlying Solver is created lazily on the first call.
func (m *Manager) AddOffEquilibriumParticle(p *boltzmann.Particle, collisionPath string, allowInterp bool) error {
	if m.Boltzmann == nil {
		m.Boltzmann = boltzmann.NewSolver(m.Grid, nil)
	}
	m.Boltzmann.Particles = append(m.Boltzmann.Particles, p)
	if err := m.Boltzmann.LoadCollision(p.Name, collisionPath, allowInterp); err != nil {
		return err
	}
	if m.Verbose {
		io.Pf("wallgo: loaded collision tensor for %q from %q\n", p.Name, collisionPath)
	}
	return nil
}

// hasOffEq reports whether at least one off-equilibrium particle is
// tracked, the condition under which the outer loop runs the Boltzmann
// solve instead of the pure-LTE shortcut (spec.md §4.I).
func (m *Manager) hasOffEq() bool {
	return m.Boltzmann != nil && len(m.Boltzmann.Particles) > 0
}

// newLoop builds the eom.Loop for the current manager state; Phi2 (the
// broken-phase minimum) is the z -> +infinity endpoint and Phi1
// (symmetric) the z -> -infinity endpoint, per the PhaseInfo invariant
// that phase 2 is the true vacuum at Tn (spec.md §3 "PhaseInfo").
func (m *Manager) newLoop() *eom.Loop {
	return eom.NewLoop(m.Grid, m.Potential, m.Hydro, m.Boltzmann,
		m.Phases.Phi2, m.Phases.Phi1, m.Config, m.hasOffEq())
}

// Solve runs the outer loop of spec.md §4.I to completion and returns the
// WallGoResults record (spec.md §6). If no off-equilibrium particle has
// been registered, the result reduces to the pure-LTE wall velocity
// (spec.md §4.I "If bIncludeOffEq = false, ... the EOM reduces to pure
// thermal LTE").
func (m *Manager) Solve() (*Results, error) {
	res, err := m.newLoop().Run()
	if err != nil {
		return nil, err
	}
	return fromLoopResult(res, m.Warnings), nil
}

// DetonationVelocities sweeps v_w in (v_J, 1) and reports every
// net-pressure root found (spec.md §4.I step 4).
func (m *Manager) DetonationVelocities(nSteps int) ([]float64, error) {
	return m.newLoop().DetonationRoots(nSteps)
}
