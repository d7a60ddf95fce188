package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSobolSampleWithinBounds(t *testing.T) {
	cs := ConfigurationSpace{
		Annealing: Interval{Lo: 0.01, Hi: 1},
		Gradient:  Interval{Lo: 0.01, Hi: 1},
		Momentum:  Interval{Lo: 0.95, Hi: 0.99},
	}
	annealing, gradient, momentum := SobolSample(cs, 64)
	require.Len(t, annealing, 64)
	for i := range annealing {
		require.GreaterOrEqual(t, annealing[i], cs.Annealing.Lo)
		require.LessOrEqual(t, annealing[i], cs.Annealing.Hi)
		require.GreaterOrEqual(t, gradient[i], cs.Gradient.Lo)
		require.LessOrEqual(t, gradient[i], cs.Gradient.Hi)
		require.GreaterOrEqual(t, momentum[i], cs.Momentum.Lo)
		require.LessOrEqual(t, momentum[i], cs.Momentum.Hi)
	}
}

func TestSobolSampleDeterministic(t *testing.T) {
	cs := ConfigurationSpace{Annealing: Interval{Lo: 0, Hi: 1}, Gradient: Interval{Lo: 0, Hi: 1}, Momentum: Interval{Lo: 0, Hi: 1}}
	a1, g1, m1 := SobolSample(cs, 16)
	a2, g2, m2 := SobolSample(cs, 16)
	require.Equal(t, a1, a2)
	require.Equal(t, g1, g2)
	require.Equal(t, m1, m2)
}

func TestSobolSampleLowDiscrepancySpread(t *testing.T) {
	cs := ConfigurationSpace{Annealing: Interval{Lo: 0, Hi: 1}, Gradient: Interval{Lo: 0, Hi: 1}, Momentum: Interval{Lo: 0, Hi: 1}}
	annealing, _, _ := SobolSample(cs, 256)
	seen := make(map[float64]bool)
	for _, v := range annealing {
		seen[v] = true
	}
	require.Greater(t, len(seen), 200) // points should be distinct, not degenerate
}
