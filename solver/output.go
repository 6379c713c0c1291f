// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"bytes"
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/technodivergent/gillespy/chem"
)

// trajWriter fills one [trajectory][timestep][*] cell of each output tensor
// per call; every cell is written exactly once
type trajWriter struct {
	res   *Results
	model *chem.Model
}

// Emit writes the state and partition labels for one report time
func (o *trajWriter) Emit(itrj, k int, concs []float64) {
	for s, sp := range o.model.Species {
		v := concs[s]
		if v < 0 {
			v = 0
		}
		o.res.TrajsODE[itrj][k][s] = v
		o.res.Trajs[itrj][k][s] = int(math.Round(v))
		o.res.TrajsHybrid[itrj][k][s] = sp.PartMode
	}
}

// SaveText writes trajectories as whitespace-separated text: one row per
// timestep with the time followed by one value per species, discrete cells
// as integer counts and continuous cells as real values; trajectories are
// separated by a blank line
func (o *Results) SaveText(dirout, fnkey string, timeline []float64) {
	var buf bytes.Buffer
	for itrj := range o.Trajs {
		for k, t := range timeline {
			io.Ff(&buf, "%g", t)
			for s := range o.Trajs[itrj][k] {
				if o.TrajsHybrid[itrj][k][s] == chem.DISCRETE {
					io.Ff(&buf, " %d", o.Trajs[itrj][k][s])
				} else {
					io.Ff(&buf, " %g", o.TrajsODE[itrj][k][s])
				}
			}
			io.Ff(&buf, "\n")
		}
		if itrj < len(o.Trajs)-1 {
			io.Ff(&buf, "\n")
		}
	}
	io.WriteFileD(dirout, fnkey+".res", &buf)
}
