// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver contains the trajectory solvers for chemical reaction
// networks: exact stochastic simulation (SSA), deterministic integration
// (ODE) and the hybrid tau-leaping integrator
package solver

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/technodivergent/gillespy/chem"
	"github.com/technodivergent/gillespy/inp"
)

// solver kinds
const (
	SSA    = 1
	ODE    = 2
	TAU    = 3
	HYBRID = 4
)

// per-trajectory status codes
const (
	StatusOK          = 0 // trajectory completed
	StatusFatal       = 1 // stiff integrator could not advance
	StatusUnderflow   = 2 // tau step fell below the machine floor
	StatusInterrupted = 3 // interrupt flag observed; partial results kept
)

// CRNsolver implements the actual solver (trajectory loop)
type CRNsolver interface {
	Run(verbose bool) (err error)
}

// TrajMonitor is called after each finished trajectory
type TrajMonitor func(itrj int)

// solverallocators holds all available solvers
var solverallocators = make(map[int]func(m *Main) CRNsolver)

// solverkinds maps input keywords to solver kinds
var solverkinds = map[string]int{
	"ssa":    SSA,
	"ode":    ODE,
	"tau":    TAU,
	"hybrid": HYBRID,
}

// Results holds the preallocated trajectory tensors, indexed
// [trajectory][timestep][species], plus per-trajectory status codes.
// Cells of trajectories that abort early are left at their initial zero.
type Results struct {
	TrajsODE    [][][]float64 // real-valued state at each report time
	Trajs       [][][]int     // integer populations at each report time
	TrajsHybrid [][][]int     // per-cell partition labels: 0=CONTINUOUS, 1=DISCRETE
	Status      []int         // per-trajectory status code
}

// newResults allocates all trajectory tensors
func newResults(ntrj, nsteps, nspecies int) (o *Results) {
	o = new(Results)
	o.TrajsODE = utl.Deep3alloc(ntrj, nsteps, nspecies)
	o.Trajs = alloc3int(ntrj, nsteps, nspecies)
	o.TrajsHybrid = alloc3int(ntrj, nsteps, nspecies)
	o.Status = make([]int, ntrj)
	return
}

// alloc3int allocates a [][][]int tensor
func alloc3int(m, n, p int) (t [][][]int) {
	t = make([][][]int, m)
	for i := 0; i < m; i++ {
		t[i] = make([][]int, n)
		for j := 0; j < n; j++ {
			t[i][j] = make([]int, p)
		}
	}
	return
}

// Main holds all data for one solver invocation
type Main struct {
	Sim      *inp.Simulation // simulation input data
	Model    *chem.Model     // reaction network; read-only during the run
	Eval     chem.Evaluator  // propensity evaluator
	Kind     int             // solver kind
	Timeline []float64       // report times; uniform spacing
	Dtr      float64         // report grid spacing
	Res      *Results        // output tensors
	Solver   CRNsolver       // trajectory solver
	Monitor  TrajMonitor     // optional per-trajectory callback
	Verbose  bool            // show messages
}

// New validates the input, builds the runtime model and allocates the
// output tensors and the chosen solver. Invalid input is rejected here,
// before any trajectory buffer exists.
func New(sim *inp.Simulation, verbose bool) (o *Main, err error) {

	// validate input
	err = sim.Validate()
	if err != nil {
		return
	}

	// new main object
	o = new(Main)
	o.Sim = sim
	o.Verbose = verbose

	// runtime model
	o.Model, err = buildModel(sim)
	if err != nil {
		return nil, err
	}

	// propensity evaluator
	o.Eval = chem.NewEvaluator(sim.Solver.PropEval, o.Model)

	// report grid
	o.Timeline = utl.LinSpace(0, sim.Solver.Tf, sim.Solver.Nsteps)
	o.Dtr = o.Timeline[1] - o.Timeline[0]

	// output tensors
	o.Res = newResults(sim.Solver.Ntrj, sim.Solver.Nsteps, o.Model.Nspecies())

	// allocate solver
	o.Kind = solverkinds[sim.Solver.Type]
	if alloc, ok := solverallocators[o.Kind]; ok {
		o.Solver = alloc(o)
	} else {
		chk.Panic("cannot find solver kind %d", o.Kind)
	}
	return
}

// buildModel converts input species/reaction data into the runtime model
func buildModel(sim *inp.Simulation) (m *chem.Model, err error) {
	ns := len(sim.Species)
	id := make(map[string]int)
	species := make([]*chem.Species, ns)
	for i, sd := range sim.Species {
		mode, e := chem.ParseMode(sd.Mode)
		if e != nil {
			return nil, e
		}
		sp := &chem.Species{Id: i, Name: sd.Name, Pop0: sd.Pop0, Mode: mode, SwitchTol: sd.SwitchTol}
		if sd.SwitchMin != nil {
			sp.SwitchMin = *sd.SwitchMin
			sp.HasSwitchMin = true
		}
		species[i] = sp
		id[sd.Name] = i
	}
	reactions := make([]*chem.Reaction, len(sim.Reactions))
	for i, rd := range sim.Reactions {
		rxn := &chem.Reaction{Id: i, Name: rd.Name, Rate: rd.Rate}
		rxn.Reactants = make([]int, ns)
		rxn.Products = make([]int, ns)
		for name, mult := range rd.Reactants {
			rxn.Reactants[id[name]] = mult
		}
		for name, mult := range rd.Products {
			rxn.Products[id[name]] = mult
		}
		reactions[i] = rxn
	}
	return chem.NewModel(species, reactions)
}

// Run runs the simulation
func (o *Main) Run() (err error) {

	// install interrupt handling; flag cleared on return
	installSignalHandler()
	defer clearInterrupt()

	// run trajectories
	cputime := time.Now()
	err = o.Solver.Run(o.Verbose)
	if err != nil {
		return
	}

	// message
	if o.Verbose {
		io.Pf("\nfinal time = %v\n", o.Timeline[len(o.Timeline)-1])
		io.Pflmag("cpu time   = %v\n", time.Now().Sub(cputime))
	}

	// write text trajectories
	if o.Sim.Data.Text {
		o.Res.SaveText(o.Sim.Data.DirOut, o.Sim.Data.FnameKey, o.Timeline)
	}
	return
}

// TauHybridSolve runs the hybrid tau-leaping solver on an already
// constructed main object, overriding the initial tau-step control
func TauHybridSolve(m *Main, tauTol float64) (err error) {
	if tauTol <= 0 {
		tauTol = 0.03
	}
	hyb := solverallocators[HYBRID](m).(*SolverHybrid)
	hyb.TauTol = tauTol
	m.Kind = HYBRID
	m.Solver = hyb
	return m.Run()
}
