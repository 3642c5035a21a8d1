// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eom

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/wallgo/wallgo/boltzmann"
	"github.com/wallgo/wallgo/collision"
	"github.com/wallgo/wallgo/config"
	"github.com/wallgo/wallgo/grid"
	"github.com/wallgo/wallgo/hydro"
	"github.com/wallgo/wallgo/potential"
)

func TestNewWallParamsRejectsNonzeroFirstOffset(tst *testing.T) {
	_, _, err := NewWallParams([]float64{1}, []float64{0.5}, 10)
	if err == nil {
		tst.Fatalf("expected GridConfigError for offsets[0] != 0")
	}
}

func TestNewWallParamsWarnsRatherThanFailsAboveMaxWidth(tst *testing.T) {
	// spec.md §7: NumericalWarning is non-fatal, accumulated into results,
	// never a construction failure.
	wp, warn, err := NewWallParams([]float64{20}, []float64{0}, 10)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if wp == nil || wp.Widths[0] != 20 {
		tst.Fatalf("expected a constructed WallParams with the oversized width, got %v", wp)
	}
	if warn == nil {
		tst.Fatalf("expected a warning for width exceeding maxWidth")
	}
}

func TestToVectorFromVectorRoundTrip(tst *testing.T) {
	wp, _, err := NewWallParams([]float64{1, 2}, []float64{0, 0.7}, 10)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	back := fromVector(wp.toVector(), 2)
	chk.Vector(tst, "widths round-trip", 1e-12, back.Widths, wp.Widths)
	chk.Vector(tst, "offsets round-trip", 1e-12, back.Offsets, wp.Offsets)
}

func TestPhiProfileAsymptotes(tst *testing.T) {
	wp, _, err := NewWallParams([]float64{0.5}, []float64{0}, 10)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	bot, top := []float64{200}, []float64{0}
	chk.Vector(tst, "phi(-inf) -> phiTop", 1e-6, PhiProfile(bot, top, wp, -50), top)
	chk.Vector(tst, "phi(+inf) -> phiBot", 1e-6, PhiProfile(bot, top, wp, 50), bot)
}

func TestFitWallParamsRecoversKnownWidth(tst *testing.T) {
	bot, top := []float64{200}, []float64{0}
	trueWP := &WallParams{Widths: []float64{1.3}, Offsets: []float64{0}}
	residual := func(wp *WallParams) []float64 {
		out := make([]float64, 5)
		for i := range out {
			z := -3 + float64(i)*1.5
			want := PhiProfile(bot, top, trueWP, z)[0]
			got := PhiProfile(bot, top, wp, z)[0]
			out[i] = got - want
		}
		return out
	}
	initial := &WallParams{Widths: []float64{0.6}, Offsets: []float64{0}}
	fitted, err := FitWallParams(residual, initial, 10, 100, 1e-10)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "recovered width", 1e-3, fitted.Widths[0], trueWP.Widths[0])
}

// quarticPotential is a toy single-field potential with a symmetric
// minimum at phi=0 for T > Tc and a broken minimum near phi=v for T < Tc,
// used to exercise the outer loop without depending on phase tracing.
func quarticPotential(Tc, v float64) potential.EffectivePotential {
	return &potential.Base{
		DPhi: 1e-3,
		DT:   1e-3,
		Eval: func(phi []float64, T float64) complex128 {
			x := phi[0]
			val := 0.25*x*x*x*x - 0.5*v*v*(1-(T*T)/(Tc*Tc))*x*x
			return complex(val, 0)
		},
		Const: func(T float64) float64 { return -T * T * T * T / 12 },
	}
}

func bagTemplate(Tn float64) *hydro.TemplateModel {
	return &hydro.TemplateModel{AHigh: 1.0, BHigh: 0.0, ALow: 0.9, BLow: -0.05 * math.Pow(Tn, 4)}
}

// testEngine builds an Engine directly from a bag-model template, without
// phase tracing, to exercise the outer loop's hydrodynamic coupling in
// isolation (spec.md §4.F's template fallback is itself a valid Thermo
// source, spec.md §9(c)).
func testEngine(Tn float64) *hydro.Engine {
	tm := bagTemplate(Tn)
	return &hydro.Engine{
		High:     tm.High(),
		Low:      tm.Low(),
		Tn:       Tn,
		Template: tm,
		TMaxMult: 10,
		TMinMult: 0.01,
	}
}

func TestLoopRunLTEOnlyMatchesHydroFindVwLTE(tst *testing.T) {
	Tn := 100.0
	eng := testEngine(Tn)
	g, err := grid.New(6, 5, 5.0, Tn, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	pot := quarticPotential(1.2*Tn, 2*Tn)
	cfg := config.Default()

	loop := NewLoop(g, pot, eng, nil, []float64{2 * Tn}, []float64{0}, cfg, false)
	res, err := loop.Run()
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if res.State != StateSolveLTE {
		tst.Fatalf("expected StateSolveLTE, got %v", res.State)
	}
	want, err := eng.FindVwLTE()
	if err != nil {
		tst.Fatalf("FindVwLTE failed: %v", err)
	}
	chk.Scalar(tst, "LTE-only wall velocity matches FindVwLTE", 1e-9, res.WallVelocity, want)
}

func TestScanBracketFindsSignChange(tst *testing.T) {
	f := func(x float64) float64 { return x - 0.42 }
	lo, hi, ok := scanBracket(f, 0, 1, 50)
	if !ok {
		tst.Fatalf("expected a bracket")
	}
	if lo > 0.42 || hi < 0.42 {
		tst.Errorf("bracket [%v,%v] does not contain 0.42", lo, hi)
	}
}

// TestUpdateGridScaleRescalesTRef exercises spec.md §5's "grid scale
// update" step in isolation: a loaded collision tensor's EstimateLxi feeds
// Grid.ChangeMomentumFalloffScale, moving T_ref off its constructed value.
func TestUpdateGridScaleRescalesTRef(tst *testing.T) {
	dir := tst.TempDir()
	const N = 5
	path := filepath.Join(dir, "collisions.gob")
	size := N - 1
	data := make([]float64, size*size*size*size)
	for i := range data {
		data[i] = float64(i%7) * 0.1
	}
	if err := collision.SaveForTest(path, N, "Cardinal", map[string][]float64{"top, top": data}); err != nil {
		tst.Fatalf("SaveForTest failed: %v", err)
	}

	g, err := grid.New(4, N, 5.0, 100.0, 0.0)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	p := &boltzmann.Particle{
		Name:          "top",
		MassSqThermal: func(T float64) float64 { return 0.1 * T * T },
	}
	solver := boltzmann.NewSolver(g, []*boltzmann.Particle{p})
	if err := solver.LoadCollision("top", path, true); err != nil {
		tst.Fatalf("LoadCollision failed: %v", err)
	}

	loop := &Loop{Grid: g, Boltzmann: solver, PhiBot: []float64{0}, PhiTop: []float64{200}}
	originalTRef := g.TRef
	match := &hydro.MatchResult{Tplus: 100, Tminus: 90}
	loop.updateGridScale(0.5, match)
	if g.TRef == originalTRef {
		tst.Errorf("expected ChangeMomentumFalloffScale to move T_ref away from %v, got %v", originalTRef, g.TRef)
	}
}

func TestStateStringNames(tst *testing.T) {
	cases := map[State]string{
		StateInit:       "INIT",
		StateHydroReady: "HYDRO_READY",
		StateSolveLTE:   "SOLVE_LTE",
		StateSolveOffEq: "SOLVE_OFFEQ",
		StateDone:       "DONE",
		StateFailed:     "FAILED",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			tst.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
