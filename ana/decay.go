// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form solutions of small reaction networks,
// used as oracles when testing the solvers
package ana

import "math"

// Decay is the first-order decay A --k--> 0
type Decay struct {
	A0 float64 // initial population
	K  float64 // decay rate constant
}

// Init sets parameters
func (o *Decay) Init(a0, k float64) {
	o.A0 = a0
	o.K = k
}

// Pop returns the population at time t
func (o *Decay) Pop(t float64) float64 {
	return o.A0 * math.Exp(-o.K*t)
}
