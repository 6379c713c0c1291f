// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
)

// PackedState is the unified state vector driven by the stiff integrator.
// Indices [0,Ns) hold species concentrations (real-valued even for discrete
// species, so the integrator sees a uniform vector); indices [Ns,Ns+Nr)
// hold per-reaction firing offsets ρ_r. Each offset starts at ln(U) < 0 and
// grows at the propensity rate; crossing zero signals accumulated firings.
type PackedState struct {
	Ns, Nr int       // number of species and reaction channels
	Y      la.Vector // packed vector: concentrations then offsets
	ysnap  la.Vector // pre-step copy for rejection recovery
	tsnap  float64   // time of the snapshot
}

// newPackedState allocates a packed state for ns species and nr reactions
func newPackedState(ns, nr int) (o *PackedState) {
	o = &PackedState{Ns: ns, Nr: nr}
	o.Y = la.NewVector(ns + nr)
	o.ysnap = la.NewVector(ns + nr)
	return
}

// Concs returns the concentrations view of the packed vector
func (o *PackedState) Concs() la.Vector { return o.Y[:o.Ns] }

// Offsets returns the per-reaction offsets view of the packed vector
func (o *PackedState) Offsets() la.Vector { return o.Y[o.Ns:] }

// Reset loads initial populations and draws fresh ln(U) offsets
func (o *PackedState) Reset(pops []float64) {
	copy(o.Y[:o.Ns], pops)
	for r := 0; r < o.Nr; r++ {
		o.Y[o.Ns+r] = drawLogU()
	}
}

// Snapshot retains the current time and a copy of the packed vector
func (o *PackedState) Snapshot(t float64) {
	o.tsnap = t
	copy(o.ysnap, o.Y)
}

// Restore reinstates the snapshot and returns its time
func (o *PackedState) Restore() (t float64) {
	copy(o.Y, o.ysnap)
	return o.tsnap
}

// drawLogU returns ln(U) with U uniform on the open interval (0,1).
// Endpoint draws are rejected so the result is finite and strictly negative.
func drawLogU() float64 {
	for {
		u := rnd.Float64(0, 1)
		if u > 0 && u < 1 {
			return math.Log(u)
		}
	}
}

// trajectorySeed re-seeds the generator for one trajectory. With a zero base
// seed every trajectory uses a device seed; otherwise trajectories get
// deterministic, distinct streams.
func trajectorySeed(base, itrj int) {
	if base == 0 {
		rnd.Init(0)
		return
	}
	rnd.Init(base + itrj)
}
