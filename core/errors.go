package core

import "errors"

// Error kinds surfaced structurally to callers. Cancellation is not
// one of these: it produces a valid, possibly truncated result.
var (
	// ErrInvalidShape covers non-square matrices, vector length
	// mismatches, asymmetric Q, and a non-zero diagonal on the binary
	// block.
	ErrInvalidShape = errors.New("core: invalid shape")

	// ErrInvalidRange covers fractions or intervals outside their
	// required range (e.g. phase fractions not in (0,1), their sum
	// >= 1, or momentum_hi >= 1).
	ErrInvalidRange = errors.New("core: invalid range")

	// ErrInvalidTimeout is returned by RunFor when the requested
	// budget is under one second.
	ErrInvalidTimeout = errors.New("core: timeout must be at least one second")

	// ErrNoEngines is returned by Registry.Select when the registry is
	// empty.
	ErrNoEngines = errors.New("core: no engines registered")

	// ErrEmptyConfig is returned by the exploration driver when the
	// configuration space has zero trajectories.
	ErrEmptyConfig = errors.New("core: configuration space is empty")

	// errNumericalDegeneracy is recovered internally by normalize.go
	// (substituting lambda=1 with a warning); it is not surfaced to
	// callers, but named here so the log line and tests can refer to
	// the same sentinel.
	errNumericalDegeneracy = errors.New("core: eigenvalue solver did not converge")
)
