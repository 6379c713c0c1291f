// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/ode"
	"github.com/cpmech/gosl/utl"

	"github.com/technodivergent/gillespy/chem"
)

// SolverHybrid advances trajectories with the hybrid tau-leaping scheme:
// concentrations and per-reaction firing offsets ride a single stiff ODE
// system; at each step the integrated offsets are reconciled into discrete
// firings, and steps that would drive a population negative are rejected
// and retried with half the tau step.
type SolverHybrid struct {
	mn            *Main
	TauTol        float64 // initial tau-step selection control
	forceDiscrete bool    // treat every species as discrete (pure tau-leaping)
	Stat          HybStat // statistics accumulated over all trajectories
}

// HybStat holds hybrid driver statistics
type HybStat struct {
	Nsteps    int // number of integrator advances
	Naccepted int // number of accepted tau steps
	Nrejected int // number of rejected tau steps (negative-population paths)
	Nfirings  int // number of committed reaction firings
}

// set factory
func init() {
	solverallocators[HYBRID] = func(m *Main) CRNsolver {
		return &SolverHybrid{mn: m, TauTol: m.Sim.Solver.TauTol}
	}
	solverallocators[TAU] = func(m *Main) CRNsolver {
		return &SolverHybrid{mn: m, TauTol: m.Sim.Solver.TauTol, forceDiscrete: true}
	}
}

func (o *SolverHybrid) Run(verbose bool) (err error) {

	// auxiliary
	m := o.mn.Model
	res := o.mn.Res
	ns, nr := m.Nspecies(), m.Nreactions()
	ntrj := o.mn.Sim.Solver.Ntrj
	dtr := o.mn.Dtr

	// pure tau-leaping runs every species through the discrete channel
	if o.forceDiscrete {
		for _, sp := range m.Species {
			sp.Mode = chem.DISCRETE
		}
	}

	// per-invocation workspace shared by sequential trajectories
	pops0 := m.InitialPops()
	st := newPackedState(ns, nr)
	fcn := newHybridRhs(m, o.mn.Eval)
	wrt := &trajWriter{res: res, model: m}
	prt := newPartitioner(m)
	changes := make([]float64, ns)

	// initial tau step: a fraction of the report spacing scaled by the
	// tau tolerance, never above the report spacing itself
	tau0 := dtr * o.TauTol / 0.03
	if tau0 <= 0 || tau0 > dtr {
		tau0 = dtr
	}
	tauFloor := 1e-12 * dtr

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

		// initialize trajectory: populations into state and first cell,
		// fresh ln(U) offsets, fresh partition history
		trajectorySeed(o.mn.Sim.Solver.Seed, itrj)
		m.ResetPartitions()
		st.Reset(pops0)
		prt.reset()
		prt.classify(st.Concs())
		wrt.Emit(itrj, 0, st.Concs())
		prt.push(st.Concs())

		// advance
		res.Status[itrj] = o.runTrajectory(itrj, st, fcn, wrt, prt, changes, tau0, tauFloor, verbose)
		if verbose {
			io.Pf("trajectory %4d: status = %d\n", itrj, res.Status[itrj])
		}
		if o.mn.Monitor != nil {
			o.mn.Monitor(itrj)
		}
	}
	return
}

// runTrajectory advances one trajectory from t=0 to the final time.
// Integrator memory is released on every exit path.
func (o *SolverHybrid) runTrajectory(itrj int, st *PackedState, fcn ode.Func, wrt *trajWriter, prt *partitioner, changes []float64, tau0, tauFloor float64, verbose bool) (status int) {

	// scoped integrator
	integ := newIntegrator(st.Ns+st.Nr, fcn, o.mn.Sim.Solver.Rtol, o.mn.Sim.Solver.Atol)
	defer integ.Free()

	// time control
	timeline := o.mn.Timeline
	nsteps := len(timeline)
	tf := timeline[nsteps-1]
	dtr := o.mn.Dtr
	eps := 1e-9 * dtr
	t := 0.0
	tau := tau0
	saveIdx := 1

	// step loop
	for t < tf-eps {

		// target time for this step
		nextT := t + tau
		if nextT > tf {
			nextT = tf
		}

		// snapshot for rejection recovery
		st.Snapshot(t)

		// advance the packed system
		o.Stat.Nsteps++
		if err := integ.Advance(st.Y, t, nextT); err != nil {
			st.Restore()
			if verbose {
				io.PfRed("%v\n", err)
			}
			return StatusFatal
		}

		// reconcile accumulated firings against populations
		nfire, ok := o.reconcile(st, changes)
		if !ok {
			o.Stat.Nrejected++
			t = st.Restore()
			integ.Reset()
			tau /= 2
			if tau < tauFloor {
				if verbose {
					io.PfRed("tau step underflow at t=%g (tau=%g)\n", t, tau)
				}
				return StatusUnderflow
			}
			continue
		}
		o.Stat.Naccepted++
		o.Stat.Nfirings += nfire
		t = nextT

		// cancellation observed between reconcile and emission: the
		// current emission still completes below
		stopping := Stop()

		// emit samples for every report point reached by this step
		for saveIdx < nsteps && timeline[saveIdx] <= t+eps {
			prt.classify(st.Concs())
			wrt.Emit(itrj, saveIdx, st.Concs())
			prt.push(st.Concs())
			saveIdx++
		}
		if stopping {
			return StatusInterrupted
		}

		// accepted step: allow tau to recover towards the report spacing
		tau = utl.Min(2*tau, dtr)
	}
	return StatusOK
}

// reconcile counts the firings implied by non-negative offsets and applies
// them to the populations of reactions running through the firing channel.
// Per reaction, each firing costs one fresh ln(U) decrement of the offset;
// the loop ends when the offset is negative again. A firing that would
// drive any population negative rejects the whole step: state is left to
// the caller's snapshot and the tau step is halved. Continuous
// concentrations must also remain non-negative; beyond a small integration
// slack that too rejects the step.
func (o *SolverHybrid) reconcile(st *PackedState, changes []float64) (nfire int, ok bool) {
	m := o.mn.Model
	concs, offs := st.Concs(), st.Offsets()
	for _, rxn := range m.Reactions {
		rho := offs[rxn.Id]
		if rho < 0 {
			continue
		}
		stoch := reactionStochastic(m, rxn)
		for i := range changes {
			changes[i] = 0
		}
		nrxn := 0
		rejected := false
		for rho >= 0 {
			// tentatively fire once; drift-channel reactions consume the
			// crossing without changing populations
			if stoch {
				for s, nu := range rxn.Nu {
					if nu == 0 {
						continue
					}
					changes[s] += float64(nu)
					if concs[s]+changes[s] < 0 {
						rejected = true
					}
				}
			}
			if rejected {
				break
			}
			nrxn++
			rho += drawLogU()
		}
		if rejected {
			return 0, false
		}
		// commit
		for s, d := range changes {
			if d != 0 {
				concs[s] += d
			}
		}
		offs[rxn.Id] = rho
		if stoch {
			nfire += nrxn
		}
	}

	// continuous non-negativity, enforced by step rejection
	for s, sp := range m.Species {
		if sp.PartMode == chem.CONTINUOUS && concs[s] < 0 {
			if concs[s] < -negSlack {
				return 0, false
			}
			concs[s] = 0
		}
	}
	return nfire, true
}

// negSlack absorbs harmless negative round-off from the integrator; larger
// undershoots reject the step
const negSlack = 1e-8
