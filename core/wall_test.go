package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	x := []float64{-2, -0.5, 0, 0.5, 2}
	require.NoError(t, Project(x, -1, 1))
	require.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, x)
}

func TestProjectShapeMismatch(t *testing.T) {
	require.ErrorIs(t, ProjectMomentum([]float64{1}, []float64{1, 2}, -1, 1), ErrInvalidShape)
}

func TestProjectMomentumZeroedOnClamp(t *testing.T) {
	x := []float64{2, 0.5, -2}
	m := []float64{0.9, 0.9, 0.9}
	require.NoError(t, ProjectMomentum(x, m, -1, 1))
	require.Equal(t, []float64{1, 0.5, -1}, x)
	require.Equal(t, []float64{0, 0.9, 0}, m)
}

func TestNewWallProjector(t *testing.T) {
	proj := NewWallProjector[float64](0, 1)
	x := []float64{-1, 0.5, 2}
	proj(x)
	require.Equal(t, []float64{0, 0.5, 1}, x)
}

func TestNewWallMomentumProjector(t *testing.T) {
	proj := NewWallMomentumProjector[float64](-1, 1)
	x := []float64{2, 0.5, -2}
	m := []float64{0.9, 0.9, 0.9}
	proj(x, m)
	require.Equal(t, []float64{1, 0.5, -1}, x)
	require.Equal(t, []float64{1, 0.9, -1}, m)
}
