package core

import (
	"log/slog"
	"math"
	"math/rand"
	"runtime"
)

// ExplorationResult is the output of one Explore call.
type ExplorationResult[T Real] struct {
	Best         BestFound[T]
	Measurements [][]float64 // [repetitions][completedMeasurements]
	CollectorInfo any
}

// ExploreParams bundles Explore's inputs.
type ExploreParams[T Real] struct {
	Problem           *Problem[T]
	InitialSetup      Setup[T]
	BatchSize         int
	Cancel            *CancelToken
	IterationsChooser func() int
	Repetitions       int
	Rng               *rand.Rand
	Collector         Collector[T]
	Dialect           Dialect[T]
	Observer          Observer[T] // zero value is the no-op default
}

// Explore drives batches of trajectories through the sampler kernel
// under a cancellation token, folding results into a Collector (spec
// §4.5). The very first batch always runs, even if Cancel has already
// been flipped, so a well-formed ExplorationResult with at least one
// measurement is always returned for a non-empty configuration.
func Explore[T Real](p ExploreParams[T]) (*ExplorationResult[T], error) {
	repetitions := p.Repetitions
	if repetitions <= 0 {
		repetitions = 1
	}

	setup := p.InitialSetup.Expand(repetitions)
	k := setup.Len()
	if k == 0 {
		return nil, ErrEmptyConfig
	}

	n := p.Problem.N
	batchSize := p.BatchSize
	if batchSize <= 0 {
		return nil, ErrInvalidShape
	}

	energiesLen := k
	if batchSize > energiesLen {
		energiesLen = batchSize
	}
	energies := make([]float64, energiesLen)

	localSeed := p.Rng.Int63()
	localRng := rand.New(rand.NewSource(localSeed))
	slog.Debug("explore: derived local rng seed", "seed", localSeed)

	ws := NewWorkspace[T](n, batchSize)
	bound := 1.0
	if n > 0 {
		bound = 1.0 / math.Sqrt(float64(n))
	}

	p.Collector.Create(make([]T, n), n)

	last := 0
	first := true
	for current := 1; current <= k; current += batchSize {
		if !first && p.Cancel != nil && p.Cancel.Cancelled() {
			break
		}
		first = false

		hi := current + batchSize - 1
		if hi > k {
			hi = k
		}
		width := hi - current + 1

		batchSetup := setup.Slice(current-1, hi)
		initX := make([]T, n*width)
		for j := 0; j < width; j++ {
			for i := 0; i < n; i++ {
				initX[j*n+i] = T((localRng.Float64()*2 - 1) * bound)
			}
		}

		batchWs := ws
		if width != batchSize {
			batchWs = NewWorkspace[T](n, width)
		}
		batchWs.Reset(initX, batchSetup.Annealing)

		iterations := p.IterationsChooser()
		if iterations <= 0 {
			iterations = 1
		}

		delta := make([]T, width)
		for j := 0; j < width; j++ {
			delta[j] = batchSetup.Annealing[j] / T(iterations)
		}

		if err := RunKernel(batchWs, p.Problem.Q, p.Problem.H, batchSetup, p.Dialect, p.Problem.B, delta, iterations, p.Observer); err != nil {
			return nil, err
		}

		spinsW := make([]float64, n*width)
		for i, v := range batchWs.Spins {
			spinsW[i] = float64(v)
		}
		if err := CalculateInto(energies[current-1:hi], spinsW, n, p.Problem.Qw, p.Problem.Hw); err != nil {
			return nil, err
		}

		// Backend barrier: a no-op on the CPU engine, where the batch
		// above already executed synchronously; a GPU engine would
		// fence its device queue here before the collector reads
		// spins/energies.
		p.Collector.Update(energies[current-1:hi], batchWs.Spins, n)

		last = hi
		runtime.Gosched()
	}

	completed := last / repetitions
	measurements := make([][]float64, repetitions)
	for r := 0; r < repetitions; r++ {
		row := make([]float64, completed)
		for c := 0; c < completed; c++ {
			row[c] = energies[c*repetitions+r]
		}
		measurements[r] = row
	}

	p.Collector.Finish()

	return &ExplorationResult[T]{
		Best:          p.Collector.Retrieve(),
		Measurements:  measurements,
		CollectorInfo: p.Collector.Info(),
	}, nil
}
