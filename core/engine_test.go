package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrySelectReturnsLocalCPU(t *testing.T) {
	r := NewRegistry()
	e, err := r.Select()
	require.NoError(t, err)
	require.Equal(t, "cpu", e.Name())
}

func TestRegistrySelectEmpty(t *testing.T) {
	r := &Registry{}
	_, err := r.Select()
	require.ErrorIs(t, err, ErrNoEngines)
}

func TestRegistrySelectPrefersHigherPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeEngine{name: "accelerated", priority: 5000})
	e, err := r.Select()
	require.NoError(t, err)
	require.Equal(t, "accelerated", e.Name())
}

type fakeEngine struct {
	name     string
	priority int
}

func (f fakeEngine) Name() string                 { return f.name }
func (f fakeEngine) Priority() int                { return f.priority }
func (f fakeEngine) OptimalBatchSize(n int) int   { return 1 }
func (f fakeEngine) BackendHandle() any           { return nil }
