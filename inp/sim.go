// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/gillespy
	Text   bool   `json:"text"`   // write text trajectories after the run

	// derived
	FnameKey string // simulation filename key; e.g. decay.sim => decay
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.DirOut = "/tmp/gillespy"
}

// PostProcess performs a post-processing of the just read json file
func (o *Data) PostProcess(simfilepath string) {
	if o.DirOut == "" {
		o.DirOut = "/tmp/gillespy"
	}
	o.FnameKey = io.FnKey(simfilepath)
}

// SpeciesData holds input data for one chemical species
type SpeciesData struct {
	Name      string   `json:"name"`      // species name
	Pop0      float64  `json:"pop0"`      // initial population
	Mode      string   `json:"mode"`      // "continuous", "discrete" or "dynamic" (default)
	SwitchTol float64  `json:"switchtol"` // dynamic switching tolerance on σ/μ
	SwitchMin *float64 `json:"switchmin"` // dynamic switching population threshold; overrides tolerance
}

// ReactionData holds input data for one reaction channel
type ReactionData struct {
	Name      string         `json:"name"`      // reaction name
	Rate      float64        `json:"rate"`      // mass-action rate constant
	Reactants map[string]int `json:"reactants"` // reactant name => multiplicity
	Products  map[string]int `json:"products"`  // product name => multiplicity
}

// SolverData holds solver control data
type SolverData struct {
	Type     string  `json:"type"`     // "ssa", "ode", "tau" or "hybrid"
	Ntrj     int     `json:"ntrj"`     // number of trajectories
	Nsteps   int     `json:"nsteps"`   // number of report timesteps (including t=0)
	Tf       float64 `json:"tf"`       // final time
	Seed     int     `json:"seed"`     // random seed; 0 => device seed
	TauTol   float64 `json:"tautol"`   // initial tau-step selection control
	Rtol     float64 `json:"rtol"`     // relative tolerance for the stiff integrator
	Atol     float64 `json:"atol"`     // absolute tolerance for the stiff integrator
	PropEval string  `json:"propeval"` // propensity evaluator name
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Type = "hybrid"
	o.Ntrj = 1
	o.TauTol = 0.03
	o.Rtol = 1e-5
	o.Atol = 1e-12
	o.PropEval = "massaction"
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() {
	if o.Type == "" {
		o.Type = "hybrid"
	}
	if o.Ntrj < 1 {
		o.Ntrj = 1
	}
	if o.TauTol <= 0 {
		o.TauTol = 0.03
	}
	if o.Rtol <= 0 {
		o.Rtol = 1e-5
	}
	if o.Atol <= 0 {
		o.Atol = 1e-12
	}
	if o.PropEval == "" {
		o.PropEval = "massaction"
	}
}

// Simulation holds all simulation input data
type Simulation struct {
	Data      Data            `json:"data"`      // global data
	Species   []*SpeciesData  `json:"species"`   // all species
	Reactions []*ReactionData `json:"reactions"` // all reaction channels
	Solver    SolverData      `json:"solver"`    // solver control
}

// NewSimulation returns a simulation with default values
func NewSimulation() (o *Simulation) {
	o = new(Simulation)
	o.Data.SetDefault()
	o.Solver.SetDefault()
	return
}

// ReadSim reads a simulation from a json file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// new simulation and defaults
	o = NewSimulation()

	// read and decode
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q: %v", simfilepath, err)
	}
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// post-process and validate
	o.Data.PostProcess(simfilepath)
	o.Solver.PostProcess()
	err = o.Validate()
	if err != nil {
		return nil, err
	}
	return
}

// Validate rejects invalid input before any solver allocation happens
func (o *Simulation) Validate() (err error) {
	if o.Solver.Nsteps < 2 {
		return chk.Err("number of timesteps must be at least 2; got %d", o.Solver.Nsteps)
	}
	if o.Solver.Tf <= 0 {
		return chk.Err("final time must be positive; got %g", o.Solver.Tf)
	}
	if len(o.Species) < 1 {
		return chk.Err("at least one species is required")
	}
	switch o.Solver.Type {
	case "ssa", "ode", "tau", "hybrid":
	default:
		return chk.Err("unknown solver type %q", o.Solver.Type)
	}
	names := make(map[string]bool)
	for _, sp := range o.Species {
		if sp.Name == "" {
			return chk.Err("species must be named")
		}
		if names[sp.Name] {
			return chk.Err("duplicate species name %q", sp.Name)
		}
		names[sp.Name] = true
		if sp.Pop0 < 0 {
			return chk.Err("species %q has negative initial population %g", sp.Name, sp.Pop0)
		}
		switch sp.Mode {
		case "", "continuous", "discrete", "dynamic":
		default:
			return chk.Err("species %q has unknown mode %q", sp.Name, sp.Mode)
		}
	}
	for _, rxn := range o.Reactions {
		if rxn.Rate < 0 {
			return chk.Err("reaction %q has negative rate %g", rxn.Name, rxn.Rate)
		}
		for name := range rxn.Reactants {
			if !names[name] {
				return chk.Err("reaction %q references unknown reactant %q", rxn.Name, name)
			}
		}
		for name := range rxn.Products {
			if !names[name] {
				return chk.Err("reaction %q references unknown product %q", rxn.Name, name)
			}
		}
	}
	return
}
