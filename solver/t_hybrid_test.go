// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/technodivergent/gillespy/ana"
	"github.com/technodivergent/gillespy/chem"
)

func Test_hyb01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb01. no reactions: populations hold")

	sim := newSim("hybrid", 3, 11, 1.0, 123)
	addSpecies(sim, "A", 5, "discrete")
	addSpecies(sim, "B", 7, "continuous")

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

	for itrj := 0; itrj < 3; itrj++ {
		chk.Int(tst, "status", mn.Res.Status[itrj], StatusOK)
		for k := 0; k < 11; k++ {
			if mn.Res.Trajs[itrj][k][0] != 5 || mn.Res.Trajs[itrj][k][1] != 7 {
				tst.Errorf("populations changed without reactions: traj=%d k=%d pops=%v", itrj, k, mn.Res.Trajs[itrj][k])
				return
			}
			if mn.Res.TrajsHybrid[itrj][k][0] != chem.DISCRETE || mn.Res.TrajsHybrid[itrj][k][1] != chem.CONTINUOUS {
				tst.Errorf("labels do not reflect user modes: traj=%d k=%d labels=%v", itrj, k, mn.Res.TrajsHybrid[itrj][k])
				return
			}
		}
	}
}

func Test_hyb02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb02. continuous decay matches the closed form")

	sim := newSim("hybrid", 1, 51, 5.0, 1234)
	addSpecies(sim, "A", 1000, "continuous")
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

	var sol ana.Decay
	sol.Init(1000, 1)
	for k, t := range mn.Timeline {
		val := mn.Res.TrajsODE[0][k][0]
		ref := sol.Pop(t)
		if math.Abs(val-ref) > 1e-3*ref+1e-6 {
			tst.Errorf("decay curve deviates at t=%g: %g != %g", t, val, ref)
			return
		}
	}
	final := mn.Res.TrajsODE[0][50][0]
	if final < 6.5 || final > 7.0 {
		tst.Errorf("final population out of range: %g", final)
	}
}

func Test_hyb03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb03. dimerization conserves A+2B at every step")

	sim := newSim("hybrid", 5, 51, 5.0, 42)
	addSpecies(sim, "A", 100, "discrete")
	addSpecies(sim, "B", 0, "discrete")
	addReaction(sim, "dimerize", 0.01, map[string]int{"A": 2}, map[string]int{"B": 1})
	addReaction(sim, "dissociate", 1.0, map[string]int{"B": 1}, map[string]int{"A": 2})

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

	for itrj := 0; itrj < 5; itrj++ {
		chk.Int(tst, "status", mn.Res.Status[itrj], StatusOK)
		for k := 0; k < 51; k++ {
			a := mn.Res.Trajs[itrj][k][0]
			b := mn.Res.Trajs[itrj][k][1]
			if a < 0 || b < 0 {
				tst.Errorf("negative population: traj=%d k=%d A=%d B=%d", itrj, k, a, b)
				return
			}
			if a+2*b != 100 {
				tst.Errorf("conservation broken: traj=%d k=%d A+2B=%d", itrj, k, a+2*b)
				return
			}
		}
	}
}

func Test_hyb04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb04. fast decay of a single molecule triggers step rejection")

	sim := newSim("hybrid", 1, 2, 1.0, 7)
	addSpecies(sim, "A", 1, "discrete")
	addReaction(sim, "decay", 100.0, map[string]int{"A": 1}, nil)

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

	chk.Int(tst, "status", mn.Res.Status[0], StatusOK)
	hyb := mn.Solver.(*SolverHybrid)
	if hyb.Stat.Nrejected < 1 {
		tst.Errorf("expected at least one rejected tau step; got %d", hyb.Stat.Nrejected)
	}
	final := mn.Res.Trajs[0][1][0]
	if final != 0 && final != 1 {
		tst.Errorf("final population must be 0 or 1; got %d", final)
	}
}

func Test_hyb05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb05. fixed seed reproduces trajectories bit for bit")

	run := func() *Main {
		sim := newSim("hybrid", 3, 21, 2.0, 77)
		addSpecies(sim, "A", 0, "dynamic")
		addReaction(sim, "birth", 10.0, nil, map[string]int{"A": 1})
		addReaction(sim, "death", 1.0, map[string]int{"A": 1}, nil)
		mn, err := New(sim, chk.Verbose)
		if err != nil {
			tst.Fatalf("New failed:\n%v", err)
		}
		err = mn.Run()
		if err != nil {
			tst.Fatalf("Run failed:\n%v", err)
		}
		return mn
	}

	a, b := run(), run()
	for itrj := 0; itrj < 3; itrj++ {
		for k := 0; k < 21; k++ {
			if a.Res.Trajs[itrj][k][0] != b.Res.Trajs[itrj][k][0] {
				tst.Errorf("integer results differ: traj=%d k=%d %d != %d", itrj, k, a.Res.Trajs[itrj][k][0], b.Res.Trajs[itrj][k][0])
				return
			}
			if a.Res.TrajsODE[itrj][k][0] != b.Res.TrajsODE[itrj][k][0] {
				tst.Errorf("real results differ: traj=%d k=%d %v != %v", itrj, k, a.Res.TrajsODE[itrj][k][0], b.Res.TrajsODE[itrj][k][0])
				return
			}
		}
	}
}

func Test_hyb06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb06. interrupt after two trajectories keeps partial results")

	sim := newSim("hybrid", 10, 21, 2.0, 31)
	addSpecies(sim, "A", 0, "dynamic")
	addReaction(sim, "birth", 10.0, nil, map[string]int{"A": 1})
	addReaction(sim, "death", 1.0, map[string]int{"A": 1}, nil)

	mn, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	mn.Monitor = func(itrj int) {
		if itrj == 1 {
			Interrupt()
		}
	}
	err = mn.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	chk.Int(tst, "status traj 0", mn.Res.Status[0], StatusOK)
	chk.Int(tst, "status traj 1", mn.Res.Status[1], StatusOK)
	for itrj := 2; itrj < 10; itrj++ {
		chk.Int(tst, "status of skipped trajectory", mn.Res.Status[itrj], StatusInterrupted)
		for k := 0; k < 21; k++ {
			if mn.Res.Trajs[itrj][k][0] != 0 || mn.Res.TrajsHybrid[itrj][k][0] != 0 {
				tst.Errorf("skipped trajectory %d has written cells at k=%d", itrj, k)
				return
			}
		}
	}

	// completed trajectories carry discrete labels in every cell
	for itrj := 0; itrj < 2; itrj++ {
		for k := 0; k < 21; k++ {
			chk.Int(tst, "label", mn.Res.TrajsHybrid[itrj][k][0], chem.DISCRETE)
		}
	}
}

func Test_hyb07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hyb07. all-continuous hybrid matches the deterministic solver")

	build := func(typ string) *Main {
		sim := newSim(typ, 1, 21, 5.0, 1)
		addSpecies(sim, "A", 0, "continuous")
		addReaction(sim, "birth", 10.0, nil, map[string]int{"A": 1})
		addReaction(sim, "death", 1.0, map[string]int{"A": 1}, nil)
		mn, err := New(sim, chk.Verbose)
		if err != nil {
			tst.Fatalf("New failed:\n%v", err)
		}
		err = mn.Run()
		if err != nil {
			tst.Fatalf("Run failed:\n%v", err)
		}
		return mn
	}

	hyb, det := build("hybrid"), build("ode")
	for k := range hyb.Timeline {
		a := hyb.Res.TrajsODE[0][k][0]
		b := det.Res.TrajsODE[0][k][0]
		if math.Abs(a-b) > 1e-3*(1+math.Abs(b)) {
			tst.Errorf("hybrid and deterministic results differ at k=%d: %g != %g", k, a, b)
			return
		}
	}
}
