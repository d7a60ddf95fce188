package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestAssignmentCollector(t *testing.T) {
	c := NewBestAssignmentCollector[float64]()
	c.Create(make([]float64, 2), 2)

	c.Update([]float64{5, 2, 8}, []float64{1, 1, 0, 1, -1, -1}, 2)
	c.Update([]float64{9}, []float64{1, 1}, 2)
	c.Finish()

	best := c.Retrieve()
	require.Equal(t, 2.0, best.Objective)
	require.Equal(t, []float64{0, 1}, best.Assignment)
}

func TestFinalAssignmentCollectorInfo(t *testing.T) {
	c := NewFinalAssignmentCollector[float64]()
	c.Create(make([]float64, 2), 2)
	c.Update([]float64{3}, []float64{1, -1}, 2)
	c.Update([]float64{1}, []float64{-1, 1}, 2)
	c.Finish()

	info := c.Info().([][]float64)
	require.Len(t, info, 2)

	best := c.Retrieve()
	require.Equal(t, 1.0, best.Objective)
}
