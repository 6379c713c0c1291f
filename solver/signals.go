// Copyright 2016 The GillesPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// interrupted is the process-wide cancellation flag. Drivers poll it at
// trajectory boundaries and between reconciliation and sample emission;
// in-flight integrator steps are not interrupted.
var interrupted atomic.Bool

var signalOnce sync.Once

// installSignalHandler installs the SIGINT/SIGTERM handler once per process
func installSignalHandler() {
	signalOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		go func() {
			for range ch {
				interrupted.Store(true)
			}
		}()
	})
}

// Stop reports whether the interrupt flag is set
func Stop() bool {
	return interrupted.Load()
}

// Interrupt sets the cancellation flag; the running solver finishes its
// current emission, releases resources and returns partial results
func Interrupt() {
	interrupted.Store(true)
}

// clearInterrupt resets the flag when a solver invocation returns
func clearInterrupt() {
	interrupted.Store(false)
}
