// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/technodivergent/gillespy/chem"
)

// SolverSSA runs the exact stochastic simulation algorithm (direct method).
// Every species is discrete; after each firing only the propensities of
// reactions coupled to the fired one are refreshed.
type SolverSSA struct {
	mn *Main
}

// set factory
func init() {
	solverallocators[SSA] = func(m *Main) CRNsolver {
		return &SolverSSA{mn: m}
	}
}

func (o *SolverSSA) Run(verbose bool) (err error) {

	// auxiliary
	m := o.mn.Model
	ev := o.mn.Eval
	res := o.mn.Res
	ns, nr := m.Nspecies(), m.Nreactions()
	ntrj := o.mn.Sim.Solver.Ntrj
	timeline := o.mn.Timeline
	nsteps := len(timeline)
	tf := timeline[nsteps-1]

	// everything is discrete here
	for _, sp := range m.Species {
		sp.PartMode = chem.DISCRETE
	}

	// workspace
	x := make([]int, ns)
	xf := make([]float64, ns)
	props := make([]float64, nr)
	wrt := &trajWriter{res: res, model: m}

	// trajectory loop
	for itrj := 0; itrj < ntrj; itrj++ {

		// observe cancellation at the trajectory boundary
		if Stop() {
			for i := itrj; i < ntrj; i++ {
				res.Status[i] = StatusInterrupted
			}
			if verbose {
				io.PfRed("\ninterrupted before trajectory %d\n", itrj)
			}
			return
		}

		// initialize trajectory
		trajectorySeed(o.mn.Sim.Solver.Seed, itrj)
		for s, sp := range m.Species {
			x[s] = int(math.Round(sp.Pop0))
			xf[s] = float64(x[s])
		}
		a0 := 0.0
		for r := 0; r < nr; r++ {
			props[r] = ev.Evaluate(r, x)
			a0 += props[r]
		}
		wrt.Emit(itrj, 0, xf)
		saveIdx := 1
		t := 0.0
		status := StatusOK

		// event loop
		for {
			if Stop() {
				status = StatusInterrupted
				break
			}

			// exhausted system: hold the current state to the end
			if a0 <= 0 {
				for ; saveIdx < nsteps; saveIdx++ {
					wrt.Emit(itrj, saveIdx, xf)
				}
				break
			}

			// time to next event
			t += -drawLogU() / a0

			// emit report points passed by the jump, before the firing
			for saveIdx < nsteps && timeline[saveIdx] <= t {
				wrt.Emit(itrj, saveIdx, xf)
				saveIdx++
			}
			if t >= tf {
				break
			}

			// select the firing channel
			thresh := rnd.Float64(0, 1) * a0
			cum := 0.0
			ir := nr - 1
			for r := 0; r < nr; r++ {
				cum += props[r]
				if thresh < cum {
					ir = r
					break
				}
			}

			// fire
			for s, nu := range m.Reactions[ir].Nu {
				if nu != 0 {
					x[s] += nu
					xf[s] = float64(x[s])
				}
			}

			// refresh dependent propensities only
			for _, r := range m.Reactions[ir].Affected {
				a0 -= props[r]
				props[r] = ev.Evaluate(r, x)
				a0 += props[r]
			}
		}
		res.Status[itrj] = status
		if verbose {
			io.Pf("trajectory %4d: status = %d\n", itrj, status)
		}
		if o.mn.Monitor != nil {
			o.mn.Monitor(itrj)
		}
		if status == StatusInterrupted {
			for i := itrj + 1; i < ntrj; i++ {
				res.Status[i] = StatusInterrupted
			}
			return
		}
	}
	return
}
