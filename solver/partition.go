// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/technodivergent/gillespy/chem"
)

// histWindow is the number of recent report points used to estimate the
// coefficient of variation of dynamic species
const histWindow = 10

// partitioner classifies dynamic species as continuous or discrete at the
// start of each reporting step, from a short history of report-time values
type partitioner struct {
	model *chem.Model
	hist  [][]float64 // per-species ring buffer of recent values
	win   []float64   // workspace holding the window's values
	n     int         // valid entries in the ring
	idx   int         // next write position
}

// newPartitioner allocates history buffers for all species
func newPartitioner(m *chem.Model) (o *partitioner) {
	o = &partitioner{model: m}
	o.hist = make([][]float64, m.Nspecies())
	for s := range o.hist {
		o.hist[s] = make([]float64, histWindow)
	}
	o.win = make([]float64, 0, histWindow)
	return
}

// reset clears the history; called at trajectory start
func (o *partitioner) reset() {
	o.n, o.idx = 0, 0
}

// push records report-time values into the history window
func (o *partitioner) push(concs []float64) {
	for s := range o.hist {
		o.hist[s][o.idx] = concs[s]
	}
	o.idx = (o.idx + 1) % histWindow
	if o.n < histWindow {
		o.n++
	}
}

// classify updates the effective partition mode of every dynamic species.
// With a population threshold the mean decides directly; otherwise the
// window's σ/μ is compared against the switching tolerance. A species
// switching from continuous to discrete has its value rounded so the
// discrete channel starts from an integer population.
func (o *partitioner) classify(concs []float64) {
	for s, sp := range o.model.Species {
		if sp.Mode != chem.DYNAMIC {
			continue
		}
		mode := chem.DISCRETE
		mu, cov := o.stats(s, concs[s])
		switch {
		case sp.HasSwitchMin:
			if mu >= sp.SwitchMin {
				mode = chem.CONTINUOUS
			}
		case cov <= sp.SwitchTol:
			mode = chem.CONTINUOUS
		}
		if sp.PartMode == chem.CONTINUOUS && mode == chem.DISCRETE {
			concs[s] = math.Round(concs[s])
		}
		sp.PartMode = mode
	}
}

// stats estimates mean and coefficient of variation for species s. With a
// short history the Poisson proxy σ/μ ≈ 1/√μ stands in for the sample
// estimate.
func (o *partitioner) stats(s int, current float64) (mu, cov float64) {
	if o.n < 3 {
		mu = current
		if mu <= 0 {
			return mu, math.Inf(1)
		}
		return mu, 1.0 / math.Sqrt(mu)
	}
	o.win = o.win[:0]
	for i := 0; i < o.n; i++ {
		o.win = append(o.win, o.hist[s][i])
	}
	mean, sig := stat.MeanStdDev(o.win, nil)
	if mean <= 0 {
		return mean, math.Inf(1)
	}
	return mean, sig / mean
}
