// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"

	"github.com/technodivergent/gillespy/chem"
)

// SolverODE integrates the deterministic reaction-rate equations: every
// species is a continuous concentration and firings never happen
type SolverODE struct {
	mn *Main
}

// set factory
func init() {
	solverallocators[ODE] = func(m *Main) CRNsolver {
		return &SolverODE{mn: m}
	}
}

func (o *SolverODE) Run(verbose bool) (err error) {

	// auxiliary
	m := o.mn.Model
	res := o.mn.Res
	ns := m.Nspecies()
	ntrj := o.mn.Sim.Solver.Ntrj

	// everything is continuous here
	for _, sp := range m.Species {
		sp.PartMode = chem.CONTINUOUS
	}

	// workspace
	y := la.NewVector(ns)
	fcn := newOdeRhs(m, o.mn.Eval)
	wrt := &trajWriter{res: res, model: m}

	// trajectory loop; trajectories are identical but still honor the
	// interrupt flag between them
	for itrj := 0; itrj < ntrj; itrj++ {

		if Stop() {
			for i := itrj; i < ntrj; i++ {
				res.Status[i] = StatusInterrupted
			}
			if verbose {
				io.PfRed("\ninterrupted before trajectory %d\n", itrj)
			}
			return
		}

		copy(y, m.InitialPops())
		wrt.Emit(itrj, 0, y)
		res.Status[itrj] = o.runTrajectory(itrj, y, fcn, wrt, verbose)
		if verbose {
			io.Pf("trajectory %4d: status = %d\n", itrj, res.Status[itrj])
		}
		if o.mn.Monitor != nil {
			o.mn.Monitor(itrj)
		}
	}
	return
}

// runTrajectory integrates one trajectory across the report grid.
// Integrator memory is released on every exit path.
func (o *SolverODE) runTrajectory(itrj int, y la.Vector, fcn ode.Func, wrt *trajWriter, verbose bool) (status int) {
	integ := newIntegrator(len(y), fcn, o.mn.Sim.Solver.Rtol, o.mn.Sim.Solver.Atol)
	defer integ.Free()
	timeline := o.mn.Timeline
	for k := 1; k < len(timeline); k++ {
		if err := integ.Advance(y, timeline[k-1], timeline[k]); err != nil {
			if verbose {
				io.PfRed("%v\n", err)
			}
			return StatusFatal
		}
		for s := range y {
			if y[s] < 0 {
				y[s] = 0
			}
		}
		wrt.Emit(itrj, k, y)
	}
	return StatusOK
}
