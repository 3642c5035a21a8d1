// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eom

import (
	"math"

	"github.com/wallgo/wallgo/boltzmann"
	"github.com/wallgo/wallgo/config"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/hydro"
	"github.com/wallgo/wallgo/poly"
	"github.com/wallgo/wallgo/potential"
	"github.com/wallgo/wallgo/rootfind"
	"github.com/wallgo/wallgo/wgerrors"
)

// Result is the outer loop's outcome for one full solve (spec.md §4.I,
// feeding directly into the WallGoResults record of spec.md §6).
type Result struct {
	State               State
	WallVelocity         float64
	WallVelocityError    float64
	WallWidths           []float64
	WallOffsets          []float64
	TemperaturePlus      float64
	TemperatureMinus     float64
	Moments              map[string]*boltzmann.Moments
	HasOutOfEquilibrium  bool
	Warnings             []wgerrors.Warning
}

// Loop couples the hydrodynamic matching engine, the Boltzmann solver and
// the pressure-balance fit into the single outer loop of spec.md §4.I. It
// does not own the Grid or the potential (both are single-owner resources
// held by the manager, spec.md §9 "cyclic graphs"); Loop only borrows them
// for the duration of Run.
type Loop struct {
	Grid       *grid.Grid
	Potential  potential.EffectivePotential
	Hydro      *hydro.Engine
	Boltzmann  *boltzmann.Solver // nil when bIncludeOffEq is false
	PhiBot     []float64         // field point as z -> +infinity (broken phase)
	PhiTop     []float64         // field point as z -> -infinity (symmetric phase)
	MaxWidth   float64
	ErrTol     float64
	MaxIters   int
	PressTol   float64
	OffEq      bool
}

// NewLoop builds a Loop from the manager's already-constructed pieces,
// reading the (errTol, maxIterations, pressRelErrTol) triple from
// config.Config.EOM (spec.md §6).
func NewLoop(g *grid.Grid, pot potential.EffectivePotential, eng *hydro.Engine, solver *boltzmann.Solver,
	phiBot, phiTop []float64, cfg *config.Config, includeOffEq bool) *Loop {
	return &Loop{
		Grid: g, Potential: pot, Hydro: eng, Boltzmann: solver,
		PhiBot: phiBot, PhiTop: phiTop,
		MaxWidth: g.LXi,
		ErrTol:   cfg.EOM.ErrTol,
		MaxIters: cfg.EOM.MaxIterations,
		PressTol: cfg.EOM.PressRelErrTol,
		OffEq:    includeOffEq,
	}
}

// initialWallParams seeds the Levenberg-Marquardt fit with a wall one tenth
// of the spatial tail length wide, centered at the origin (spec.md §4.I:
// "from a reasonable initial guess").
func (l *Loop) initialWallParams() *WallParams {
	n := len(l.PhiTop)
	widths := make([]float64, n)
	offsets := make([]float64, n)
	for i := range widths {
		widths[i] = l.MaxWidth / 10
	}
	wp, _, err := NewWallParams(widths, offsets, l.MaxWidth)
	if err != nil {
		// widths/offsets are constructed to satisfy NewWallParams's
		// invariants by construction; a failure here means MaxWidth
		// itself is misconfigured, which the grid already validated.
		return &WallParams{Widths: widths, Offsets: offsets}
	}
	return wp
}

// backgroundFor builds the Boltzmann background sampled on the grid's full
// chi node set from the matched hydro state and a trial wall shape (spec.md
// §3 "BoltzmannBackground", §4.I step 1).
func backgroundFor(g *grid.Grid, vw float64, m *hydro.MatchResult, phiBot, phiTop []float64, wp *WallParams) (*boltzmann.Background, error) {
	chiFull := g.ChiValues(true)
	n := len(chiFull)
	v := make([]float64, n)
	T := make([]float64, n)
	nFields := len(phiBot)
	phi := make([][]float64, nFields)
	for f := range phi {
		phi[f] = make([]float64, n)
	}
	for i, chi := range chiFull {
		z := g.Xi(chi)
		v[i] = ScalarProfile(m.Vminus, m.Vplus, wp, z)
		T[i] = ScalarProfile(m.Tminus, m.Tplus, wp, z)
		phiz := PhiProfile(phiBot, phiTop, wp, z)
		for f := 0; f < nFields; f++ {
			phi[f][i] = phiz[f]
		}
	}
	return boltzmann.NewBackground(vw, v, phi, T, poly.Cardinal)
}

// solveAt runs steps 1-2 of spec.md §4.I at a single trial wall velocity:
// hydrodynamic matching, then the damped LM fit of the wall shape against
// the pressure-balance residual (with the Boltzmann solve folded into the
// residual when off-equilibrium effects are requested), and returns the
// fitted wall parameters, the net pressure at that fit, the moments used
// (nil when off-equilibrium effects are not requested), and any
// NumericalWarnings raised along the way (spec.md §7): an ill-conditioned
// Boltzmann solve (boltzmann.Result.ConditionWarning) or a fitted wall
// width landing above MaxWidth.
func (l *Loop) solveAt(vw float64) (*WallParams, float64, map[string]*boltzmann.Moments, *hydro.MatchResult, []wgerrors.Warning, error) {
	match, err := l.Hydro.FindMatching(vw)
	if err != nil {
		return nil, 0, nil, nil, nil, err
	}

	var moments map[string]*boltzmann.Moments
	var warnings []wgerrors.Warning
	residual := func(wp *WallParams) []float64 {
		if l.OffEq && l.Boltzmann != nil {
			bg, berr := backgroundFor(l.Grid, vw, match, l.PhiBot, l.PhiTop, wp)
			if berr == nil {
				results, serr := l.Boltzmann.Solve(bg)
				if serr == nil {
					moments = make(map[string]*boltzmann.Moments, len(results))
					warnings = nil
					for name, res := range results {
						moments[name] = res.Moments
						if res.ConditionWarning {
							warnings = append(warnings, wgerrors.Warning{
								Message: "Boltzmann solve is ill-conditioned (kappa > 1e12)",
								Input:   map[string]interface{}{"particle": name, "v_w": vw},
							})
						}
					}
				}
			}
		}
		bg := &Background{PhiBot: l.PhiBot, PhiTop: l.PhiTop, Tbot: match.Tminus, Ttop: match.Tplus, Vbot: match.Vminus, Vtop: match.Vplus}
		var particles []*boltzmann.Particle
		if l.Boltzmann != nil {
			particles = l.Boltzmann.Particles
		}
		return PressureResidual(l.Potential, bg, wp, l.Grid, particles, moments)
	}

	fitted, err := FitWallParams(residual, l.initialWallParams(), l.MaxWidth, l.MaxIters, l.ErrTol)
	if err != nil {
		return nil, 0, nil, nil, nil, err
	}
	pi := residual(fitted)
	if _, wpWarn, werr := NewWallParams(fitted.Widths, fitted.Offsets, l.MaxWidth); werr == nil && wpWarn != nil {
		warnings = append(warnings, *wpWarn)
	}
	return fitted, NetPressure(pi), moments, match, warnings, nil
}

// updateGridScale runs spec.md §5's "grid scale update" step: for every
// tracked off-equilibrium particle, EstimateLxi's eigenvalue-based decay
// length estimate (spec.md §4.G) is averaged across particles and phases
// and fed into Grid.ChangeMomentumFalloffScale, between the hydrodynamic
// matching used to seed it and the first Boltzmann operator assembly.
// Particles missing a loaded collision tensor, or an estimate that fails
// (e.g. a non-diagonalizable C/P_wall), are skipped rather than aborting
// the solve: the grid simply keeps its configured T_ref.
func (l *Loop) updateGridScale(vw float64, match *hydro.MatchResult) {
	if l.Boltzmann == nil || len(l.Boltzmann.Particles) == 0 {
		return
	}
	var sum float64
	var n int
	for _, p := range l.Boltzmann.Particles {
		arr, ok := l.Boltzmann.Collisions[p.Name]
		if !ok {
			continue
		}
		msqSym := p.MassSq(l.PhiTop, match.Tplus)
		msqBroken := p.MassSq(l.PhiBot, match.Tminus)
		lSym, lBroken, err := arr.EstimateLxi(l.Grid, vw, match.Tplus, match.Tminus, msqSym, msqBroken)
		if err != nil {
			continue
		}
		sum += lSym + lBroken
		n += 2
	}
	if n == 0 {
		return
	}
	if newScale := sum / float64(n); newScale > 0 {
		l.Grid.ChangeMomentumFalloffScale(newScale)
	}
}

// Run executes the full outer loop of spec.md §4.I: it always resolves
// v_w^LTE first (step giving HYDRO_READY -> SOLVE_LTE), then, if
// off-equilibrium effects are requested, continues to SOLVE_OFFEQ and
// root-finds the net-pressure residual in [v_min, min(v_w_max,v_J)]. When
// off-equilibrium effects are not requested the loop terminates at
// SOLVE_LTE and returns hydro.Engine.FindVwLTE's velocity unchanged, since
// no wall-shape fit couples back into the matching at that point (spec.md
// §4.I, final paragraph).
func (l *Loop) Run() (*Result, error) {
	vJ, err := l.Hydro.JouguetVelocity()
	if err != nil {
		return nil, err
	}

	vwLTE, err := l.Hydro.FindVwLTE()
	if err != nil {
		return nil, err
	}

	if !l.OffEq || l.Boltzmann == nil {
		return &Result{
			State:               StateSolveLTE,
			WallVelocity:        vwLTE,
			HasOutOfEquilibrium: false,
		}, nil
	}

	if match, merr := l.Hydro.FindMatching(vwLTE); merr == nil {
		l.updateGridScale(vwLTE, match)
	}

	const vMin = 1e-3
	vMax := vJ - 1e-4
	if vMax <= vMin {
		return nil, wgerrors.New(wgerrors.MatchingFailure, map[string]interface{}{"vJ": vJ},
			"eom: empty deflagration/hybrid search range below v_J=%g", vJ)
	}

	netAt := func(vw float64) float64 {
		_, net, _, _, _, serr := l.solveAt(vw)
		if serr != nil {
			return math.NaN()
		}
		return net
	}

	lo, hi, ok := scanBracket(netAt, vMin, vMax, 40)
	if !ok {
		return nil, wgerrors.New(wgerrors.MatchingFailure, map[string]interface{}{"vMin": vMin, "vMax": vMax},
			"eom: no deflagration solution: net pressure does not change sign in [%g,%g]", vMin, vMax)
	}

	vw, err := rootfind.Brent(netAt, lo, hi, l.PressTol)
	if err != nil {
		return nil, wgerrors.New(wgerrors.MatchingFailure, map[string]interface{}{"lo": lo, "hi": hi},
			"eom: Brent failed to find a net-pressure root in [%g,%g]: %v", lo, hi, err)
	}

	wp, net, moments, match, warnings, err := l.solveAt(vw)
	if err != nil {
		return nil, err
	}

	return &Result{
		State:               StateDone,
		WallVelocity:        vw,
		WallVelocityError:   math.Abs(net),
		WallWidths:          wp.Widths,
		WallOffsets:         wp.Offsets,
		TemperaturePlus:     match.Tplus,
		TemperatureMinus:    match.Tminus,
		Moments:             moments,
		HasOutOfEquilibrium: true,
		Warnings:            warnings,
	}, nil
}

// DetonationRoots sweeps v_w in (v_J, 1) and reports every root of the net
// pressure residual (spec.md §4.I step 4); it delegates the branch
// classification to hydro.Engine.DetonationRoots and supplies the
// net-pressure function that closes the loop through the wall-shape fit.
func (l *Loop) DetonationRoots(nSteps int) ([]float64, error) {
	netAt := func(vw float64) float64 {
		_, net, _, _, _, serr := l.solveAt(vw)
		if serr != nil {
			return math.NaN()
		}
		return net
	}
	return l.Hydro.DetonationRoots(netAt, nSteps)
}

// scanBracket linearly scans [lo,hi] in n steps for the first sign change
// of f, mirroring hydro's unexported scanBracket (matching.go) since eom
// cannot reach across the package boundary to reuse it directly.
func scanBracket(f rootfind.Func, lo, hi float64, n int) (float64, float64, bool) {
	step := (hi - lo) / float64(n)
	prev := lo
	prevF := f(prev)
	for i := 1; i <= n; i++ {
		cur := lo + float64(i)*step
		curF := f(cur)
		if !math.IsNaN(prevF) && !math.IsNaN(curF) && prevF*curF <= 0 {
			return prev, cur, true
		}
		prev, prevF = cur, curF
	}
	return 0, 0, false
}
