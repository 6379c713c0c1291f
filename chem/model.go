// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package chem holds the runtime description of a chemical reaction network:
// species, reactions with stoichiometry, and propensity evaluators
package chem

import (
	"github.com/cpmech/gosl/chk"
)

// partition modes
const (
	CONTINUOUS = 0 // species treated as a real-valued concentration
	DISCRETE   = 1 // species treated as an integer population
	DYNAMIC    = 2 // species switches between the two at runtime
)

// ParseMode converts a mode keyword into a partition mode constant
func ParseMode(mode string) (int, error) {
	switch mode {
	case "", "dynamic":
		return DYNAMIC, nil
	case "continuous":
		return CONTINUOUS, nil
	case "discrete":
		return DISCRETE, nil
	}
	return 0, chk.Err("unknown species mode %q", mode)
}

// Species holds one chemical species
type Species struct {
	Id           int     // identifier; dense and 0-based
	Name         string  // display name
	Pop0         float64 // initial population; non-negative and integer-valued
	Mode         int     // user-selected mode: CONTINUOUS, DISCRETE or DYNAMIC
	PartMode     int     // effective partition mode for the current reporting step
	SwitchTol    float64 // coefficient-of-variation tolerance for dynamic switching
	SwitchMin    float64 // population threshold for dynamic switching
	HasSwitchMin bool    // SwitchMin overrides SwitchTol
}

// Reaction holds one reaction channel
type Reaction struct {
	Id        int    // identifier; dense and 0-based
	Name      string // display name
	Rate      float64
	Reactants []int // reactant multiplicity per species
	Products  []int // product multiplicity per species
	Nu        []int // stoichiometry: net change per firing (products - reactants)
	Affected  []int // reactions whose propensity changes when this one fires
}

// Model holds species and reactions; read-only during simulation
type Model struct {
	Species   []*Species
	Reactions []*Reaction
}

// NewModel returns a model after deriving stoichiometry and checking invariants
func NewModel(species []*Species, reactions []*Reaction) (o *Model, err error) {
	o = &Model{Species: species, Reactions: reactions}
	ns := len(species)
	for i, sp := range species {
		if sp.Id != i {
			return nil, chk.Err("species ids must be contiguous and 0-based: species %q has id %d at position %d", sp.Name, sp.Id, i)
		}
		if sp.Pop0 < 0 {
			return nil, chk.Err("species %q has negative initial population %g", sp.Name, sp.Pop0)
		}
		if sp.SwitchTol == 0 {
			sp.SwitchTol = 0.03
		}
		sp.PartMode = sp.Mode
		if sp.Mode == DYNAMIC {
			sp.PartMode = DISCRETE
		}
	}
	for i, rxn := range reactions {
		if rxn.Id != i {
			return nil, chk.Err("reaction ids must be contiguous and 0-based: reaction %q has id %d at position %d", rxn.Name, rxn.Id, i)
		}
		if len(rxn.Reactants) != ns || len(rxn.Products) != ns {
			return nil, chk.Err("reaction %q: reactants/products vectors must have %d entries", rxn.Name, ns)
		}
		if rxn.Rate < 0 {
			return nil, chk.Err("reaction %q has negative rate %g", rxn.Name, rxn.Rate)
		}
		rxn.Nu = make([]int, ns)
		for s := 0; s < ns; s++ {
			rxn.Nu[s] = rxn.Products[s] - rxn.Reactants[s]
		}
	}
	o.UpdateAffectedReactions()
	return
}

// UpdateAffectedReactions fills the Affected set of each reaction: r' is
// affected by r if r changes a species appearing as a reactant of r'
func (o *Model) UpdateAffectedReactions() {
	for _, rxn := range o.Reactions {
		rxn.Affected = rxn.Affected[:0]
		for _, other := range o.Reactions {
			coupled := false
			for s, nu := range rxn.Nu {
				if nu != 0 && other.Reactants[s] > 0 {
					coupled = true
					break
				}
			}
			if coupled {
				rxn.Affected = append(rxn.Affected, other.Id)
			}
		}
	}
}

// Nspecies returns the number of species
func (o *Model) Nspecies() int { return len(o.Species) }

// Nreactions returns the number of reaction channels
func (o *Model) Nreactions() int { return len(o.Reactions) }

// InitialPops returns a fresh copy of the initial populations
func (o *Model) InitialPops() (pops []float64) {
	pops = make([]float64, len(o.Species))
	for i, sp := range o.Species {
		pops[i] = sp.Pop0
	}
	return
}

// ResetPartitions restores the effective partition modes to their start-of-run
// values; called at the beginning of each trajectory
func (o *Model) ResetPartitions() {
	for _, sp := range o.Species {
		sp.PartMode = sp.Mode
		if sp.Mode == DYNAMIC {
			sp.PartMode = DISCRETE
		}
	}
}
