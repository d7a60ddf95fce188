package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaleToIsing(t *testing.T) {
	lower := []float64{0, -5}
	upper := []float64{10, 5}
	a, b := ScaleToIsing(lower, upper, -1, 1)
	require.InDelta(t, 0.2, a[0], 1e-9)
	require.InDelta(t, -1.0, b[0], 1e-9)
	require.InDelta(t, 0.2, a[1], 1e-9)
	require.InDelta(t, 0.0, b[1], 1e-9)
}

// TestToInteractionScalarQUMO checks the literal E3 scalar-QUMO 2x2
// conversion: Q = [[0,4],[4,5]], binary-prefix 1, continuous index 1.
func TestToInteractionScalarQUMO(t *testing.T) {
	q := [][]float64{{0, 4}, {4, 5}}
	quadratic, field, offset := ToInteraction(q, 4.0, 5.0)
	require.Equal(t, [][]float64{{0, 2}, {2, 5}}, quadratic)
	require.Equal(t, []float64{0, 4}, field)
	require.Equal(t, 0.0, offset)
}
