// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wgerrors defines the error kinds shared across the wall-velocity
// solver (spec.md §7).
package wgerrors

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind identifies the category of a wall-solver error.
type Kind string

// Error kinds, one per failure mode named in spec.md §7.
const (
	PhaseTraceFailure Kind = "PhaseTraceFailure"
	InverseTransition  Kind = "InverseTransition"
	MatchingFailure    Kind = "MatchingFailure"
	CollisionLoadError Kind = "CollisionLoadError"
	GridConfigError    Kind = "GridConfigError"
	IntegratorFailure  Kind = "IntegratorFailure"
	NumericalWarning   Kind = "NumericalWarning"
)

// fatalKinds lists the kinds that must abort setup immediately (spec.md §7).
var fatalKinds = map[Kind]bool{
	GridConfigError:   true,
	InverseTransition: true,
}

// IsFatal reports whether a Kind must be treated as fatal at setup time.
func IsFatal(k Kind) bool { return fatalKinds[k] }

// Error is a machine-readable error kind paired with a human-readable
// diagnostic that names the offending input.
type Error struct {
	Kind    Kind
	Message string
	Input   map[string]interface{}
}

// New builds an *Error, formatting Message the way gosl/chk.Err does.
func New(kind Kind, input map[string]interface{}, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Input:   input,
	}
}

func (e *Error) Error() string {
	if len(e.Input) == 0 {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s (input=%v)", e.Kind, e.Message, e.Input)
}

// PanicFatal panics via chk.Panic if kind is a fatal kind; callers at setup
// time (grid construction, phase validation) use this so misconfiguration
// can never silently proceed, mirroring gofem's chk.Panic-at-setup idiom.
func PanicFatal(kind Kind, input map[string]interface{}, format string, args ...interface{}) error {
	err := New(kind, input, format, args...)
	if IsFatal(kind) {
		chk.Panic("%v", err)
	}
	return err
}

// Warning is a non-fatal NumericalWarning accumulated onto a results record
// (spec.md §7: "Non-fatal issues are accumulated into the results record").
type Warning struct {
	Message string
	Input   map[string]interface{}
}

func (w Warning) String() string {
	if len(w.Input) == 0 {
		return w.Message
	}
	return fmt.Sprintf("%s (input=%v)", w.Message, w.Input)
}
