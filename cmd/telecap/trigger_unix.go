//go:build unix

package main

import (
	"os"
	"syscall"
)

// SIGUSR1 asks a running `telecap serve` for an immediate sweep.
var triggerSignals = []os.Signal{syscall.SIGUSR1}
