// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgerrors

import "testing"

func TestIsFatalMatchesSpecPropagationPolicy(tst *testing.T) {
	// spec.md §7: GridConfigError and InverseTransition are fatal at setup;
	// everything else is recoverable (fallback or accumulated on results).
	fatal := []Kind{GridConfigError, InverseTransition}
	recoverable := []Kind{MatchingFailure, CollisionLoadError, IntegratorFailure, NumericalWarning, PhaseTraceFailure}
	for _, k := range fatal {
		if !IsFatal(k) {
			tst.Errorf("expected %s to be fatal", k)
		}
	}
	for _, k := range recoverable {
		if IsFatal(k) {
			tst.Errorf("expected %s to be recoverable, not fatal", k)
		}
	}
}

func TestErrorCarriesInput(tst *testing.T) {
	err := New(MatchingFailure, map[string]interface{}{"v_w": 0.5}, "no bracket for v_w=%v", 0.5)
	if err.Kind != MatchingFailure {
		tst.Errorf("expected Kind MatchingFailure, got %v", err.Kind)
	}
	if err.Input["v_w"] != 0.5 {
		tst.Errorf("expected Input to carry the offending v_w, got %v", err.Input)
	}
	if err.Error() == "" {
		tst.Errorf("expected a non-empty diagnostic message")
	}
}

func TestPanicFatalPanicsOnlyForFatalKinds(tst *testing.T) {
	func() {
		defer func() {
			if r := recover(); r == nil {
				tst.Errorf("expected PanicFatal to panic for GridConfigError")
			}
		}()
		PanicFatal(GridConfigError, nil, "bad grid")
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				tst.Errorf("expected PanicFatal not to panic for a recoverable kind, got %v", r)
			}
		}()
		err := PanicFatal(MatchingFailure, nil, "no bracket")
		if err == nil {
			tst.Errorf("expected PanicFatal to still return an error for non-fatal kinds")
		}
	}()
}

func TestWarningString(tst *testing.T) {
	w := Warning{Message: "ill-conditioned", Input: map[string]interface{}{"kappa": 1e13}}
	if w.String() == "" {
		tst.Errorf("expected a non-empty warning string")
	}
	bare := Warning{Message: "wall width near maximum"}
	if bare.String() != "wall width near maximum" {
		tst.Errorf("expected bare message with no input, got %q", bare.String())
	}
}
