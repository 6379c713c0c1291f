// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/technodivergent/gillespy/inp"
	"github.com/technodivergent/gillespy/solver"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nGillesPy -- Chemical Reaction Network Simulator\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// read simulation input
	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation input:\n%v", err)
	}

	// allocate main structure
	mn, err := solver.New(sim, verbose)
	if err != nil {
		chk.Panic("cannot allocate solver:\n%v", err)
	}

	// run simulation
	err = mn.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
