// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eom

// State enumerates the outer-loop state machine of spec.md §4.I: the solve
// advances from INIT through HYDRO_READY to either SOLVE_LTE or
// SOLVE_OFFEQ and terminates at DONE, or aborts early on a failure
// transition recorded alongside the state (phase tracing, matching, or "no
// deflagration solution").
type State int

const (
	// StateInit is the solve's entry point, before the hydrodynamic
	// engine has been built; fails to FAILED with PhaseTraceFailure if
	// phase tracing did not succeed upstream.
	StateInit State = iota
	// StateHydroReady means the hydrodynamic engine is built and v_J is
	// known; the next step branches on whether off-equilibrium effects
	// are requested.
	StateHydroReady
	// StateSolveLTE is the local-thermal-equilibrium-only branch: report
	// v_w^LTE from hydro.Engine.FindVwLTE and terminate (spec.md §4.I:
	// "report vw_LTE, terminate").
	StateSolveLTE
	// StateSolveOffEq root-finds the net-pressure residual, coupling the
	// Boltzmann solver into the wall-parameter fit at every trial v_w;
	// fails to FAILED with MatchingFailure ("no deflagration solution")
	// if the residual never changes sign in the deflagration/hybrid
	// range.
	StateSolveOffEq
	// StateDone is the terminal success state.
	StateDone
	// StateFailed is the terminal failure state; the caller inspects the
	// returned error for the Kind and message.
	StateFailed
)

// String renders the state the way gosl/chk test failures name things:
// plainly, for log lines and error messages.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateHydroReady:
		return "HYDRO_READY"
	case StateSolveLTE:
		return "SOLVE_LTE"
	case StateSolveOffEq:
		return "SOLVE_OFFEQ"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
