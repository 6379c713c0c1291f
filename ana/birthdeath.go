// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// BirthDeath is the immigration-death process 0 --λ--> A, A --μA--> 0.
// Started from A0 = 0 the population is Poisson-distributed at all times;
// otherwise the surviving initial molecules add a binomial part.
type BirthDeath struct {
	A0  float64 // initial population
	Lam float64 // birth rate λ
	Mu  float64 // per-capita death rate μ
}

// Init sets parameters
func (o *BirthDeath) Init(a0, lam, mu float64) {
	o.A0 = a0
	o.Lam = lam
	o.Mu = mu
}

// Mean returns the ensemble mean at time t
func (o *BirthDeath) Mean(t float64) float64 {
	eq := o.Lam / o.Mu
	return eq + (o.A0-eq)*math.Exp(-o.Mu*t)
}

// Stdev returns the ensemble standard deviation at time t. Started from a
// deterministic population the variance is the immigration part of the mean
// plus the binomial variance of the surviving initial molecules; at
// stationarity it is λ/μ.
func (o *BirthDeath) Stdev(t float64) float64 {
	eq := o.Lam / o.Mu
	return math.Sqrt(eq*(1-math.Exp(-o.Mu*t)) + o.A0*math.Exp(-o.Mu*t)*(1-math.Exp(-o.Mu*t)))
}
