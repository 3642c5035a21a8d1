// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import "errors"

var (
	errSingularJacobian = errors.New("hydro: singular Jacobian in newton2D")
	errDidNotConverge    = errors.New("hydro: newton2D did not converge")
)
