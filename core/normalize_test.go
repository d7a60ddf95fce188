package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSymmetricSameSign(t *testing.T) {
	// Diagonal matrix with eigenvalues 2, 4 (same sign): lambda = avg = 3.
	q := []float64{2, 0, 0, 4}
	lambda := normalize(q, 2, 0.01, 3)
	require.InDelta(t, 3.0, lambda, 0.05)
}

func TestNormalizeOppositeSign(t *testing.T) {
	// Eigenvalues 5, -5 (opposite sign, lambdaMax > 0.1): lambda = lambdaMax = 5.
	q := []float64{5, 0, 0, -5}
	lambda := normalize(q, 2, 0.01, 3)
	require.InDelta(t, 5.0, lambda, 0.05)
}

func TestNormalizeFloorFallback(t *testing.T) {
	// Eigenvalues near zero: combined value falls below the 0.1 floor,
	// normalize substitutes 1.0.
	q := []float64{0.01, 0, 0, 0.02}
	lambda := normalize(q, 2, 0.01, 3)
	require.Equal(t, 1.0, lambda)
}

func TestCombineSpectralBounds(t *testing.T) {
	require.InDelta(t, 3.0, combineSpectralBounds(2, 4), 1e-9)
	require.InDelta(t, 5.0, combineSpectralBounds(5, -5), 1e-9)
	require.Equal(t, 1.0, combineSpectralBounds(0.05, -0.05))
}
