// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"

	"github.com/technodivergent/gillespy/chem"
)

// newHybridRhs builds the right-hand side of the packed system. A reaction
// touching any discrete species runs through the firing channel: its offset
// grows at the tau propensity (zero for infeasible discrete states) and its
// species change only at reconciliation. A reaction among continuous
// species only contributes drift, carrying the propensity with the sign of
// the stoichiometric entry. Offsets accumulate ∫a_r dt between reports, so
// their integer zero-crossings count firings.
func newHybridRhs(m *chem.Model, ev chem.Evaluator) ode.Func {
	ns := m.Nspecies()
	nr := m.Nreactions()
	return func(f la.Vector, dx, x float64, y la.Vector) {
		concs := y[:ns]
		for s := 0; s < ns; s++ {
			f[s] = 0
		}
		for r := 0; r < nr; r++ {
			rxn := m.Reactions[r]
			if reactionStochastic(m, rxn) {
				f[ns+r] = ev.TauEvaluate(r, concs)
				continue
			}
			p := ev.OdeEvaluate(r, concs)
			f[ns+r] = p
			for s, nu := range rxn.Nu {
				if nu == 0 {
					continue
				}
				sign := float64(-1 + 2*b2i(nu > 0)) // branchless sign of ν
				f[s] += p * sign
			}
		}
	}
}

// reactionStochastic reports whether the reaction touches any species
// currently partitioned as discrete, either through its stoichiometry or
// as a reactant
func reactionStochastic(m *chem.Model, rxn *chem.Reaction) bool {
	for s, sp := range m.Species {
		if sp.PartMode != chem.DISCRETE {
			continue
		}
		if rxn.Nu[s] != 0 || rxn.Reactants[s] > 0 {
			return true
		}
	}
	return false
}

// newOdeRhs builds the reaction-rate equations for the purely deterministic
// solver: full stoichiometric magnitude, no offsets
func newOdeRhs(m *chem.Model, ev chem.Evaluator) ode.Func {
	ns := m.Nspecies()
	nr := m.Nreactions()
	return func(f la.Vector, dx, x float64, y la.Vector) {
		for s := 0; s < ns; s++ {
			f[s] = 0
		}
		for r := 0; r < nr; r++ {
			p := ev.OdeEvaluate(r, y)
			for s, nu := range m.Reactions[r].Nu {
				if nu != 0 {
					f[s] += p * float64(nu)
				}
			}
		}
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
