// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// Integrator wraps the stiff ODE solver behind the small surface the
// trajectory drivers need: advance to a target time, reset after a rejected
// step, release solver memory. The underlying method is Radau5 (implicit,
// adaptive) with tolerances supplied by the caller.
type Integrator struct {
	ndim int
	rtol float64
	atol float64
	fcn  ode.Func
	sol  *ode.Solver
}

// newIntegrator allocates solver memory bound to the given right-hand side
func newIntegrator(ndim int, fcn ode.Func, rtol, atol float64) (o *Integrator) {
	o = &Integrator{ndim: ndim, rtol: rtol, atol: atol, fcn: fcn}
	o.alloc()
	return
}

// alloc creates fresh solver memory
func (o *Integrator) alloc() {
	conf := ode.NewConfig("radau5", "", nil)
	conf.SetTols(o.atol, o.rtol)
	o.sol = ode.NewSolver(o.ndim, conf, o.fcn, nil, nil)
}

// Advance integrates y in place from t0 exactly to t1. Convergence failures
// inside the solver surface as an error; y may hold garbage afterwards and
// must be restored by the caller.
func (o *Integrator) Advance(y la.Vector, t0, t1 float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("stiff integrator cannot advance from t=%g to t=%g: %v", t0, t1, r)
		}
	}()
	o.sol.Solve(y, t0, t1)
	return
}

// Reset drops the solver memory so the next Advance restarts cleanly from
// whatever state the caller reinstated
func (o *Integrator) Reset() {
	o.sol.Free()
	o.alloc()
}

// Free releases solver memory
func (o *Integrator) Free() {
	if o.sol != nil {
		o.sol.Free()
		o.sol = nil
	}
}
