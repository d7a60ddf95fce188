package core

import (
	"math"
	"time"
)

// PhaseBest is the best-known-so-far output of a phase scan: the best
// objective seen in a phase, the assignment that produced it, the
// configuration that produced it, and a human label for the phase.
type PhaseBest[T Real] struct {
	Objective float64
	Vars      []T
	Annealing T
	Gradient  T
	Momentum  T
	Label     string
}

// FindBest walks phase1/phase2/deep-search results, tracking the
// global minimum objective and the phase/configuration it came from.
func FindBest[T Real](rec *RuntimeRecord[T]) (PhaseBest[T], bool) {
	phases := []struct {
		label string
		stats PhaseStatistics[T]
	}{
		{"phase1", rec.Phase1},
		{"phase2", rec.Phase2},
		{"deep_search", rec.DeepSearch},
	}

	var best PhaseBest[T]
	found := false

	for _, ph := range phases {
		for ri, res := range ph.stats.Results {
			if len(res.Measurements) == 0 {
				continue
			}
			col, val, ok := minColumn(res.Measurements)
			if !ok {
				continue
			}
			if !found || val < best.Objective {
				setup := ph.stats.Setup
				var annealing, gradient, momentum T
				if col < setup.Len() {
					annealing, gradient, momentum = setup.Annealing[col], setup.Gradient[col], setup.Momentum[col]
				}
				best = PhaseBest[T]{
					Objective: val,
					Vars:      append([]T(nil), res.Best.Assignment...),
					Annealing: annealing,
					Gradient:  gradient,
					Momentum:  momentum,
					Label:     ph.label,
				}
				found = true
			}
			_ = ri
		}
	}
	return best, found
}

// minColumn finds the column (configuration) holding the lowest single
// observed energy across all rows (repetitions) of a measurement
// matrix, returning the column index and that value.
func minColumn(measurements [][]float64) (int, float64, bool) {
	if len(measurements) == 0 || len(measurements[0]) == 0 {
		return 0, 0, false
	}
	bestCol, bestVal := 0, measurements[0][0]
	for _, row := range measurements {
		for c, v := range row {
			if v < bestVal {
				bestVal, bestCol = v, c
			}
		}
	}
	return bestCol, bestVal, true
}

// SearchForBestConfiguration mirrors FindBest but additionally computes
// each deep-search run's success rate (fraction of observations within
// tol of that run's own minimum) and returns FindBest's result together
// with the highest success rate among runs whose minimum matches the
// global best (0 when no run does). Which run reached that rate is not
// returned, and the PhaseBest is FindBest's, not that run's.
func SearchForBestConfiguration[T Real](rec *RuntimeRecord[T], tol float64) (PhaseBest[T], float64, bool) {
	best, found := FindBest(rec)
	if !found {
		return PhaseBest[T]{}, 0, false
	}

	bestRate := -1.0
	bestIdx := -1
	for i, res := range rec.DeepSearch.Results {
		_, runMin, ok := minColumn(res.Measurements)
		if !ok || math.Abs(runMin-best.Objective) > tol {
			continue
		}
		hits := 0
		total := 0
		for _, row := range res.Measurements {
			for _, v := range row {
				total++
				if math.Abs(v-runMin) <= tol {
					hits++
				}
			}
		}
		if total == 0 {
			continue
		}
		rate := float64(hits) / float64(total)
		if rate > bestRate {
			bestRate, bestIdx = rate, i
		}
	}
	if bestIdx < 0 {
		return best, 0, true
	}
	return best, bestRate, true
}

// Summary is the result of aggregating deep-search run statistics.
type Summary struct {
	ObjBest         float64
	NumSamplesTotal int
	IterationsTotal int
	CountsTotal     int
	SuccessRate     float64
	TimePerSample   time.Duration
}

// GetSolverResultsSummary aggregates deep-search statistics into a
// Summary, or returns nil if deep search produced no runs (fails soft
// rather than erroring). The total iteration count is accumulated as
// samples×iterations per run directly, since each recorded run's
// iteration count already reflects one full worker-pool round rather
// than a per-sample thread index.
func GetSolverResultsSummary[T Real](rec *RuntimeRecord[T], tol float64) *Summary {
	if len(rec.DeepSearch.Results) == 0 {
		return nil
	}

	best, _ := FindBest(rec)

	numSamples := 0
	iterationsTotal := 0
	countsTotal := 0
	for i, res := range rec.DeepSearch.Results {
		configs := 0
		if len(res.Measurements) > 0 {
			configs = len(res.Measurements[0])
		}
		samples := configs * len(res.Measurements)
		numSamples += samples

		iters := rec.DeepSearch.Iterations[i]
		iterationsTotal += samples * iters

		_, runMin, ok := minColumn(res.Measurements)
		if !ok || math.Abs(runMin-best.Objective) > tol {
			continue
		}
		flat := make([]float64, 0, samples)
		for _, row := range res.Measurements {
			flat = append(flat, row...)
		}
		for _, hits := range CountMinEnergyHits(flat, len(res.Measurements), configs, tol) {
			countsTotal += hits
		}
	}

	summary := &Summary{
		ObjBest:         best.Objective,
		NumSamplesTotal: numSamples,
		IterationsTotal: iterationsTotal,
		CountsTotal:     countsTotal,
	}
	if numSamples > 0 {
		summary.SuccessRate = float64(countsTotal) / float64(numSamples)
		dur := rec.DeepSearch.Stop.Sub(rec.DeepSearch.Start)
		summary.TimePerSample = dur / time.Duration(numSamples)
	}
	return summary
}

const timeToSolutionTarget = 0.99

// TimeToSolution extrapolates the expected time to reach a 99%
// success probability from an observed success probability p over a
// run of duration t.
func TimeToSolution(p float64, t time.Duration) float64 {
	switch {
	case p >= timeToSolutionTarget:
		return float64(t)
	case p > 0:
		return float64(t) * math.Log(1-timeToSolutionTarget) / math.Log(1-p)
	default:
		return math.Inf(1)
	}
}

// NumOperationsToSolution is TimeToSolution's analogue substituting an
// operation count for a duration.
func NumOperationsToSolution(p float64, ops float64) float64 {
	switch {
	case p >= timeToSolutionTarget:
		return ops
	case p > 0:
		return ops * math.Log(1-timeToSolutionTarget) / math.Log(1-p)
	default:
		return math.Inf(1)
	}
}
