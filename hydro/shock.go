// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/wallgo/wallgo/wgerrors"
)

// mu is the self-similar relative-velocity combination of spec.md §4.F.
func mu(xi, v float64) float64 { return (xi - v) / (1 - v*xi) }

func gamma2(v float64) float64 { return 1 / (1 - v*v) }

// shockTemperature integrates the shock-profile ODE of spec.md §4.F,
//
//	dxi/dv = gamma(v)^2 (1-v*xi) [ mu(xi,v)^2/c_s^2(T) - 1 ] * xi/(2v)
//	dT/dv  = w_+(T)/p_+'(T) * gamma(v)^2 * mu(xi,v)
//
// inward from v = mu(vw, vplus) until the shock-front event
// mu(xi,v)*xi - c_s^2(T) = 0, and returns the implied nucleation
// temperature from continuity of T at the front.
func shockTemperature(tp thermoPair, vw, vplus, Tplus float64) (float64, error) {
	v := mu(vw, vplus)
	xi := vw
	T := Tplus

	if v <= 0 || v >= 1 {
		return 0, wgerrors.New(wgerrors.IntegratorFailure,
			map[string]interface{}{"vw": vw, "vplus": vplus}, "shockTemperature: invalid initial mu=%g", v)
	}

	const steps = 20000
	h := -v / steps
	for i := 0; i < steps; i++ {
		cs2 := tp.High.CsSq(T)
		if cs2 <= 0 {
			return 0, wgerrors.New(wgerrors.IntegratorFailure,
				map[string]interface{}{"T": T}, "shockTemperature: non-positive c_s^2 at T=%g", T)
		}
		event := mu(xi, v)*xi - cs2
		if event <= 0 {
			return T, nil
		}
		dxi := gamma2(v) * (1 - v*xi) * (mu(xi, v)*mu(xi, v)/cs2 - 1) * xi / (2 * v)
		dT := tp.High.W(T) / dPdT(tp.High, T) * gamma2(v) * mu(xi, v)
		xi += h * dxi
		T += h * dT
		v += h
		if T <= 0 {
			return 0, wgerrors.New(wgerrors.IntegratorFailure,
				map[string]interface{}{"vw": vw, "vplus": vplus}, "shockTemperature: T dropped below 0 before reaching the shock front")
		}
		if v <= 1e-6 {
			break
		}
	}
	return T, nil
}
