package core

// WallFunc clamps a state vector in place. Created by NewWallProjector
// for a fixed (lower, upper) pair such as the "Ising wall" (-1,1) or
// the "positive wall" (0,1). The sampler dialects use the
// WallMomentumFunc form from NewWallMomentumProjector instead.
type WallFunc[T Real] func(x []T)

// WallMomentumFunc clamps x in place and snaps the paired momentum
// scratch to the clamped value wherever x was clamped, zeroing the
// velocity-like difference (x-momentum) the caller reads next (an
// inelastic wall).
type WallMomentumFunc[T Real] func(x, momentum []T)

// Project clamps every element of x into [lower, upper].
func Project[T Real](x []T, lower, upper T) error {
	for i := range x {
		x[i] = clamp(x[i], lower, upper)
	}
	return nil
}

// ProjectMomentum clamps x into [lower, upper] and sets momentum[i]
// to zero whenever x[i] was pulled to a bound. x and momentum must
// have equal length.
func ProjectMomentum[T Real](x, momentum []T, lower, upper T) error {
	if len(x) != len(momentum) {
		return ErrInvalidShape
	}
	for i := range x {
		v := x[i]
		if v > upper {
			x[i] = upper
			momentum[i] = 0
		} else if v < lower {
			x[i] = lower
			momentum[i] = 0
		}
	}
	return nil
}

// NewWallProjector specializes Project for a fixed (lower, upper),
// giving the sampler kernel a single call site per dialect rather than
// a branch on bounds in the hot loop.
func NewWallProjector[T Real](lower, upper T) WallFunc[T] {
	return func(x []T) {
		for i := range x {
			x[i] = clamp(x[i], lower, upper)
		}
	}
}

// NewWallMomentumProjector is the momentum-snapping counterpart of
// NewWallProjector.
func NewWallMomentumProjector[T Real](lower, upper T) WallMomentumFunc[T] {
	return func(x, momentum []T) {
		for i := range x {
			v := x[i]
			if v > upper {
				x[i] = upper
				momentum[i] = upper
			} else if v < lower {
				x[i] = lower
				momentum[i] = lower
			}
		}
	}
}
