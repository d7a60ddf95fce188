package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	require.Equal(t, 1.0, Sign(2.0))
	require.Equal(t, -1.0, Sign(-2.0))
	require.Equal(t, 0.0, Sign(0.0))
}

func TestStepHalf(t *testing.T) {
	require.Equal(t, 1.0, StepHalf(0.6))
	require.Equal(t, 0.0, StepHalf(0.5))
	require.Equal(t, 0.0, StepHalf(0.4))
}

func TestSignIdempotent(t *testing.T) {
	for _, v := range []float64{-3, -1, 0, 1, 3} {
		require.Equal(t, Sign(v), Sign(Sign(v)))
	}
}

func TestApply(t *testing.T) {
	x := []float64{-2, 0, 3}
	Apply(Sign[float64], x)
	require.Equal(t, []float64{-1, 0, 1}, x)
}

func TestLookupBuiltins(t *testing.T) {
	fn, ok := Lookup("sign")
	require.True(t, ok)
	require.Equal(t, 1.0, fn(5))

	fn, ok = Lookup("step_half")
	require.True(t, ok)
	require.Equal(t, 1.0, fn(0.9))

	_, ok = Lookup("does_not_exist")
	require.False(t, ok)
}

func TestRegisterNonlinearityPanicsAfterExpand(t *testing.T) {
	Expand() // idempotent: ensures the registry is materialized

	require.Panics(t, func() {
		RegisterNonlinearity("sign", func(x float64) float64 { return x })
	})
}
