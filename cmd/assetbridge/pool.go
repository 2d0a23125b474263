package main

import "runtime"

// resolveWorkers determines the rewrite worker count.
// Priority: explicit flag > config > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers, cfgWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if cfgWorkers > 0 {
		return cfgWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / 2

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
