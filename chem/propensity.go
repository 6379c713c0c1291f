// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chem

import (
	"github.com/cpmech/gosl/chk"
)

// Evaluator computes reaction propensities in the three solver regimes.
// Implementations must return non-negative values for all reachable states;
// a zero propensity contributes nothing to derivatives or firing counts.
type Evaluator interface {
	Evaluate(r int, x []int) float64          // exact stochastic regime; integer state
	TauEvaluate(r int, x []float64) float64   // tau-leaping regime; real-valued populations
	OdeEvaluate(r int, x []float64) float64   // continuous regime; concentrations
}

// evaluatorallocators holds all available propensity evaluators
var evaluatorallocators = make(map[string]func(m *Model) Evaluator)

// NewEvaluator returns a propensity evaluator by name
func NewEvaluator(kind string, m *Model) Evaluator {
	alloc, ok := evaluatorallocators[kind]
	if !ok {
		chk.Panic("cannot find propensity evaluator named %q", kind)
	}
	return alloc(m)
}

// MassAction evaluates mass-action kinetics from rate constants and reactant
// multiplicities. The discrete forms use falling factorials over the number
// of distinct reactant combinations; the continuous form uses plain powers.
// Propensities encode the full reaction multiplicity: a firing changes each
// species by its stoichiometric entry.
type MassAction struct {
	model *Model
}

// set factory
func init() {
	evaluatorallocators["massaction"] = func(m *Model) Evaluator {
		return &MassAction{model: m}
	}
}

// Evaluate computes the propensity of reaction r at an integer state
func (o *MassAction) Evaluate(r int, x []int) float64 {
	rxn := o.model.Reactions[r]
	a := rxn.Rate
	for s, m := range rxn.Reactants {
		for j := 0; j < m; j++ {
			a *= float64(x[s]-j) / float64(j+1)
		}
		if a <= 0 {
			return 0
		}
	}
	return a
}

// TauEvaluate computes the propensity of reaction r at a real-valued state
func (o *MassAction) TauEvaluate(r int, x []float64) float64 {
	rxn := o.model.Reactions[r]
	a := rxn.Rate
	for s, m := range rxn.Reactants {
		for j := 0; j < m; j++ {
			a *= (x[s] - float64(j)) / float64(j+1)
		}
		if a <= 0 {
			return 0
		}
	}
	return a
}

// OdeEvaluate computes the deterministic reaction rate at concentrations x
func (o *MassAction) OdeEvaluate(r int, x []float64) float64 {
	rxn := o.model.Reactions[r]
	a := rxn.Rate
	for s, m := range rxn.Reactants {
		for j := 0; j < m; j++ {
			a *= x[s]
		}
	}
	if a < 0 {
		return 0
	}
	return a
}
