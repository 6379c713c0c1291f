// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/technodivergent/gillespy/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newSim builds an in-memory simulation input
func newSim(typ string, ntrj, nsteps int, tf float64, seed int) (sim *inp.Simulation) {
	sim = inp.NewSimulation()
	sim.Solver.Type = typ
	sim.Solver.Ntrj = ntrj
	sim.Solver.Nsteps = nsteps
	sim.Solver.Tf = tf
	sim.Solver.Seed = seed
	return
}

func addSpecies(sim *inp.Simulation, name string, pop0 float64, mode string) {
	sim.Species = append(sim.Species, &inp.SpeciesData{Name: name, Pop0: pop0, Mode: mode})
}

func addReaction(sim *inp.Simulation, name string, rate float64, reactants, products map[string]int) {
	sim.Reactions = append(sim.Reactions, &inp.ReactionData{Name: name, Rate: rate, Reactants: reactants, Products: products})
}
