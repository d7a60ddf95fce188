package core

import (
	"math"
	"runtime"
	"sync"
	"time"
)

// Resources bundles the values a resource-planning step computes for
// one phase of the orchestrator: how many samples, how many
// iterations, how much of the result to keep, and the time slice
// allotted.
type Resources struct {
	Samples       int
	Iterations    int
	PointsToSave  int
	TimeBudget    time.Duration
}

// resourcesPhase1 picks sample/iteration counts for the first
// (wide, shallow) exploration phase, banded by problem size.
func resourcesPhase1(n int, timeLimit time.Duration, fraction float64) Resources {
	var samples, iterations, save int
	switch {
	case n > 5000 && timeLimit <= 100*time.Second:
		samples, iterations, save = 10, 50, 3000
	case n < 1000:
		samples, iterations, save = 20, 100, 3000
	case n < 5000:
		samples, iterations, save = 20, 200, 3000
	case n < 10000:
		samples, iterations, save = 20, 400, 3000
	default:
		samples, iterations, save = 20, 500, 3000
	}
	return Resources{Samples: samples, Iterations: iterations, PointsToSave: save, TimeBudget: scaleDuration(timeLimit, fraction)}
}

// resourcesPhase2 picks sample/iteration counts for the second
// (narrower, deeper) exploration phase. The N>5000 band only applies
// at t<=300s; larger time budgets fall through to the size-banded
// rows below it.
func resourcesPhase2(n int, timeLimit time.Duration, fraction float64) Resources {
	var samples, iterations, save int
	switch {
	case n > 5000 && timeLimit <= 300*time.Second:
		samples, iterations, save = 10, 500, 100
	case n < 1000:
		samples, iterations, save = 20, 200, 100
	case n < 5000:
		samples, iterations, save = 20, 400, 100
	case n < 10000:
		samples, iterations, save = 20, 800, 100
	default:
		samples, iterations, save = 20, 1000, 100
	}
	return Resources{Samples: samples, Iterations: iterations, PointsToSave: save, TimeBudget: scaleDuration(timeLimit, fraction)}
}

func scaleDuration(d time.Duration, fraction float64) time.Duration {
	return time.Duration(float64(d) * fraction)
}

// optimalBatchSize returns a fixed batch size on CPU and a
// size-dependent estimate on GPU. The GPU curve is calibrated for a
// device this core does not itself ship a kernel for (see DESIGN.md).
func optimalBatchSize(backend string, n int) int {
	if backend == "gpu" {
		v := 6e7 * math.Pow(float64(n), -1.381)
		return int(math.Ceil(v))
	}
	return 100
}

var (
	maxCPUThreadsOnce  sync.Once
	maxCPUThreadsValue int
)

// maxCPUThreads returns max(1, NumCPU()-4), evaluated once per process.
func maxCPUThreads() int {
	maxCPUThreadsOnce.Do(func() {
		n := runtime.NumCPU() - 4
		if n < 1 {
			n = 1
		}
		maxCPUThreadsValue = n
	})
	return maxCPUThreadsValue
}
