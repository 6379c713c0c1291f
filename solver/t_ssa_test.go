// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/stat"

	"github.com/technodivergent/gillespy/ana"
)

func Test_ssa01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa01. no reactions: populations hold")

	sim := newSim("ssa", 2, 11, 1.0, 11)
	addSpecies(sim, "A", 5, "discrete")
	addSpecies(sim, "B", 7, "discrete")

	mn, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	err = mn.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	for itrj := 0; itrj < 2; itrj++ {
		chk.Int(tst, "status", mn.Res.Status[itrj], StatusOK)
		for k := 0; k < 11; k++ {
			chk.Int(tst, "A", mn.Res.Trajs[itrj][k][0], 5)
			chk.Int(tst, "B", mn.Res.Trajs[itrj][k][1], 7)
		}
	}
}

func Test_ssa02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa02. decay: monotone, non-negative, correct ensemble mean")

	ntrj := 200
	sim := newSim("ssa", ntrj, 21, 2.0, 99)
	addSpecies(sim, "A", 50, "discrete")
	addReaction(sim, "decay", 1.0, map[string]int{"A": 1}, nil)

	mn, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	err = mn.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	finals := make([]float64, ntrj)
	for itrj := 0; itrj < ntrj; itrj++ {
		prev := mn.Res.Trajs[itrj][0][0]
		chk.Int(tst, "initial population", prev, 50)
		for k := 1; k < 21; k++ {
			cur := mn.Res.Trajs[itrj][k][0]
			if cur < 0 || cur > prev {
				tst.Errorf("decay must be monotone non-increasing and non-negative: traj=%d k=%d %d -> %d", itrj, k, prev, cur)
				return
			}
			prev = cur
		}
		finals[itrj] = float64(mn.Res.Trajs[itrj][20][0])
	}

	// ensemble mean within 0.6 of the closed form (about 3.5 standard errors)
	var sol ana.Decay
	sol.Init(50, 1)
	mean := stat.Mean(finals, nil)
	ref := sol.Pop(2.0)
	if mean < ref-0.6 || mean > ref+0.6 {
		tst.Errorf("ensemble mean off: %g != %g", mean, ref)
	}
}

func Test_ssa03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa03. birth-death reaches the immigration-death equilibrium")

	ntrj := 500
	sim := newSim("ssa", ntrj, 41, 20.0, 314)
	addSpecies(sim, "A", 0, "discrete")
	addReaction(sim, "birth", 10.0, nil, map[string]int{"A": 1})
	addReaction(sim, "death", 1.0, map[string]int{"A": 1}, nil)

	mn, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	err = mn.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	finals := make([]float64, ntrj)
	for itrj := 0; itrj < ntrj; itrj++ {
		finals[itrj] = float64(mn.Res.Trajs[itrj][40][0])
	}
	var sol ana.BirthDeath
	sol.Init(0, 10, 1)
	mean := stat.Mean(finals, nil)
	ref := sol.Mean(20.0)
	bound := 3 * sol.Stdev(20.0) / 22.0 // ≈ 3σ/√ntrj
	if mean < ref-bound-0.1 || mean > ref+bound+0.1 {
		tst.Errorf("equilibrium mean off: %g != %g (bound %g)", mean, ref, bound)
	}
}
