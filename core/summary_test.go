package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeToSolutionAboveTarget(t *testing.T) {
	require.Equal(t, float64(5*time.Second), TimeToSolution(0.99, 5*time.Second))
}

func TestTimeToSolutionBelowTarget(t *testing.T) {
	got := TimeToSolution(0.5, time.Second)
	want := float64(time.Second) * math.Log(1-0.99) / math.Log(0.5)
	require.InDelta(t, want, got, 1e-6)
}

func TestTimeToSolutionZeroProbability(t *testing.T) {
	require.True(t, math.IsInf(TimeToSolution(0, time.Second), 1))
}

func TestNumOperationsToSolution(t *testing.T) {
	require.Equal(t, 1000.0, NumOperationsToSolution(0.995, 1000))
}

func TestFindBestAcrossPhases(t *testing.T) {
	setup := Setup[float64]{Annealing: []float64{0.1, 0.2}, Gradient: []float64{0.5, 0.5}, Momentum: []float64{0.9, 0.9}}
	rec := &RuntimeRecord[float64]{
		Phase1: PhaseStatistics[float64]{
			Setup: setup,
			Results: []ExplorationResult[float64]{
				{Measurements: [][]float64{{5, 2}}, Best: BestFound[float64]{Objective: 2, Assignment: []float64{1, -1}}},
			},
		},
		DeepSearch: PhaseStatistics[float64]{
			Setup: setup,
			Results: []ExplorationResult[float64]{
				{Measurements: [][]float64{{0.5, 9}}, Best: BestFound[float64]{Objective: 0.5, Assignment: []float64{-1, 1}}},
			},
		},
	}

	best, ok := FindBest(rec)
	require.True(t, ok)
	require.Equal(t, 0.5, best.Objective)
	require.Equal(t, "deep_search", best.Label)
	require.Equal(t, []float64{-1, 1}, best.Vars)
}

func TestGetSolverResultsSummaryEmptyDeepSearch(t *testing.T) {
	rec := &RuntimeRecord[float64]{}
	require.Nil(t, GetSolverResultsSummary(rec, 1e-6))
}

func TestGetSolverResultsSummaryAggregates(t *testing.T) {
	start := time.Now()
	rec := &RuntimeRecord[float64]{
		DeepSearch: PhaseStatistics[float64]{
			Start:      start,
			Stop:       start.Add(10 * time.Second),
			Iterations: []int{100},
			Results: []ExplorationResult[float64]{
				{Measurements: [][]float64{{1, 1}, {1, 5}}, Best: BestFound[float64]{Objective: 1}},
			},
		},
	}
	summary := GetSolverResultsSummary(rec, 1e-6)
	require.NotNil(t, summary)
	require.Equal(t, 1.0, summary.ObjBest)
	require.Equal(t, 4, summary.NumSamplesTotal)
	require.Equal(t, 400, summary.IterationsTotal)
	require.Equal(t, 3, summary.CountsTotal)
	require.InDelta(t, 0.75, summary.SuccessRate, 1e-9)
}
