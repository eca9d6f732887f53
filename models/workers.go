package models

import (
	"math"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// AdaptiveWorkers sizes a worker pool from the idle share of the machine:
// logical CPUs scaled by (1 - load), capped at GOMAXPROCS and never below
// one. If the CPU cannot be sampled it falls back to GOMAXPROCS.
func AdaptiveWorkers() int {
	limit := runtime.GOMAXPROCS(0)

	logical, err := cpu.Counts(true)
	if err != nil || logical <= 0 {
		return limit
	}
	// Zero interval compares against the previous call, so it never blocks.
	load, err := cpu.Percent(0, false)
	if err != nil || len(load) == 0 {
		return min(logical, limit)
	}
	return workersForLoad(logical, limit, load[0])
}

func workersForLoad(logical, limit int, loadPercent float64) int {
	if math.IsNaN(loadPercent) || loadPercent < 0 {
		loadPercent = 0
	}
	if loadPercent > 100 {
		loadPercent = 100
	}
	n := int(math.Round(float64(logical) * (1 - loadPercent/100)))
	return max(1, min(n, limit))
}
