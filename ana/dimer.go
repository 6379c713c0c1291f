// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// Dimerization is the reversible dimerization 2A <=> B with forward rate kf
// and backward rate kr. The quantity A + 2B is conserved by both channels.
type Dimerization struct {
	A0 float64 // initial monomer population
	B0 float64 // initial dimer population
	Kf float64
	Kr float64
}

// Init sets parameters
func (o *Dimerization) Init(a0, b0, kf, kr float64) {
	o.A0 = a0
	o.B0 = b0
	o.Kf = kf
	o.Kr = kr
}

// Conserved returns the invariant A + 2B fixed by the initial condition
func (o *Dimerization) Conserved() float64 {
	return o.A0 + 2*o.B0
}

// EquilibriumA returns the monomer population with zero net flux:
// kf·A² = kr·B with A + 2B = total
func (o *Dimerization) EquilibriumA() float64 {
	// 2·kf·A² + kr·A - kr·total = 0
	tot := o.Conserved()
	disc := o.Kr*o.Kr + 8*o.Kf*o.Kr*tot
	return (-o.Kr + math.Sqrt(disc)) / (4 * o.Kf)
}
