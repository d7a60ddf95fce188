package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCalculateSymmetric checks the evaluator against a hand-computed
// 2-spin Ising energy: Q = [[0,1],[1,0]], h = nil.
func TestCalculateSymmetric(t *testing.T) {
	q := []float64{0, 1, 1, 0}
	spins := []float64{1, 1, -1, 1} // two columns: (1,1) and (-1,1)
	out, err := Calculate(spins, 2, 2, q, nil)
	require.NoError(t, err)
	// energy = -1/2 * spins^T Q spins
	require.InDelta(t, -1.0, out[0], 1e-9) // (1,1): -1/2*(2*1*1*1) = -1
	require.InDelta(t, 1.0, out[1], 1e-9)  // (-1,1): -1/2*(2*1*-1*1) = 1
}

func TestCalculateWithField(t *testing.T) {
	q := []float64{0, 0, 0, 0}
	h := []float64{1, 1}
	spins := []float64{1, 1}
	out, err := Calculate(spins, 2, 1, q, h)
	require.NoError(t, err)
	require.InDelta(t, -2.0, out[0], 1e-9)
}

func TestCalculateShapeMismatch(t *testing.T) {
	_, err := Calculate([]float64{1, 1}, 2, 1, []float64{0, 0, 0}, nil)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestCountMinEnergyHitsAllTies(t *testing.T) {
	// 2 rows x 2 cols, global min = 0, appears twice at col 0.
	obs := []float64{0, 5, 0, 6}
	counts := CountMinEnergyHits(obs, 2, 2, 1e-9)
	require.Equal(t, []int{2, 0}, counts)
}
