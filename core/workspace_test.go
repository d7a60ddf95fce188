package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspaceReset(t *testing.T) {
	ws := NewWorkspace[float64](2, 2)
	ws.Y[0] = 5
	ws.Fields[0] = 9

	ws.Reset([]float64{1, 2, 3, 4}, []float64{0.5, 0.6})
	require.Equal(t, []float64{1, 2, 3, 4}, ws.X)
	require.Equal(t, []float64{0, 0, 0, 0}, ws.Y)
	require.Equal(t, []float64{0, 0, 0, 0}, ws.Fields)
	require.Equal(t, []float64{0.5, 0.6}, ws.AnnealingLive)
}

func TestWorkspaceCol(t *testing.T) {
	ws := NewWorkspace[float64](3, 2)
	copy(ws.X, []float64{1, 2, 3, 4, 5, 6})
	require.Equal(t, []float64{1, 2, 3}, ws.col(ws.X, 0))
	require.Equal(t, []float64{4, 5, 6}, ws.col(ws.X, 1))
}
