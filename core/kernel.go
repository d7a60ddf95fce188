package core

// Dialect parameterizes the sampler kernel over its three concrete
// samplers: the non-linearity applied to the binary coordinate block,
// a wall projector over x's bounds, and the bias used in the
// restoring term.
type Dialect[T Real] struct {
	Name   string
	Binary Nonlinearity[T]
	Wall   WallMomentumFunc[T]
	Bias   T
}

// MixedIsingDialect: sign non-linearity, wall [-1,1], bias 0.
func MixedIsingDialect[T Real]() Dialect[T] {
	return Dialect[T]{Name: "mixed-ising", Binary: Sign[T], Wall: NewWallMomentumProjector[T](-1, 1), Bias: 0}
}

// PositiveQUMODialect: step-at-half non-linearity, wall [0,1], bias 0.5.
func PositiveQUMODialect[T Real]() Dialect[T] {
	return Dialect[T]{Name: "positive-qumo", Binary: StepHalf[T], Wall: NewWallMomentumProjector[T](0, 1), Bias: 0.5}
}

// QUMODialect: step-at-half non-linearity, wall [-1,1], bias 0.5.
func QUMODialect[T Real]() Dialect[T] {
	return Dialect[T]{Name: "qumo", Binary: StepHalf[T], Wall: NewWallMomentumProjector[T](-1, 1), Bias: 0.5}
}

// Observer bundles the two optional extensibility hooks a caller can
// use to instrument or steer a run. The zero value is a no-op.
type Observer[T Real] struct {
	// AdjustParameters is invoked once per iteration, before the step,
	// to derive this iteration's (gradient, momentum) from the live
	// state. It must return freshly allocated slices; the kernel does
	// not defend against aliasing across trajectories.
	AdjustParameters func(gradient, momentum, annealingLive []T) (gradient2, momentum2 []T)

	// PerIteration is invoked after the step completes, primarily for
	// sample tracers that snapshot spins.
	PerIteration func(iter int, spins []T)
}

// RunKernel runs the fused sampler update for the given number of
// iterations over a batch already staged in ws. delta is the
// per-trajectory annealing decrement (ws.M entries); q is N×N
// row-major, h is nil or length N.
func RunKernel[T Real](ws *Workspace[T], q, h []T, setup Setup[T], dialect Dialect[T], binaryPrefix int, delta []T, iterations int, obs Observer[T]) error {
	n, m := ws.N, ws.M
	if len(q) != n*n {
		return ErrInvalidShape
	}
	if h != nil && len(h) != n {
		return ErrInvalidShape
	}
	if setup.Len() != m || len(delta) != m {
		return ErrInvalidShape
	}

	gradient, momentum := setup.Gradient, setup.Momentum

	for iter := 0; iter < iterations; iter++ {
		g, mo := gradient, momentum
		if obs.AdjustParameters != nil {
			g, mo = obs.AdjustParameters(gradient, momentum, ws.AnnealingLive)
		}

		kernelStep(ws, q, h, g, mo, setup.Dt, dialect, binaryPrefix, delta)

		if obs.PerIteration != nil {
			obs.PerIteration(iter, ws.Spins)
		}
	}

	// Final reported spins: x -> spins -> non-linearity once more.
	copy(ws.Spins, ws.X)
	for j := 0; j < m; j++ {
		col := ws.col(ws.Spins, j)
		Apply(dialect.Binary, col[:binaryPrefix])
	}
	return nil
}

// kernelStep executes the fused update's nine steps for one iteration
// across all M trajectories in the batch.
func kernelStep[T Real](ws *Workspace[T], q, h []T, gradient, momentum []T, dt T, dialect Dialect[T], binaryPrefix int, delta []T) {
	n, m := ws.N, ws.M

	// 1-2: spins <- x; non-linearity on the binary prefix.
	copy(ws.Spins, ws.X)
	for j := 0; j < m; j++ {
		col := ws.col(ws.Spins, j)
		Apply(dialect.Binary, col[:binaryPrefix])
	}

	// 3: fields <- Q * spins.
	matMulColumns(ws.Fields, q, ws.Spins, n, m)

	// 4: spins <- x again (raw backup, used below as the y snapshot).
	copy(ws.Spins, ws.X)

	// 5-6: x <- x + dt*g*fields - dt*annealing*(x-bias) + momentum*(x-y) [+ dt*g*h]
	for j := 0; j < m; j++ {
		xCol := ws.col(ws.X, j)
		yCol := ws.col(ws.Y, j)
		fCol := ws.col(ws.Fields, j)
		g, mo, a := gradient[j], momentum[j], ws.AnnealingLive[j]

		for i := 0; i < n; i++ {
			v := xCol[i]
			v += dt*g*fCol[i] - dt*a*(xCol[i]-dialect.Bias) + mo*(xCol[i]-yCol[i])
			if h != nil {
				v += dt * g * h[i]
			}
			xCol[i] = v
		}
	}

	// 7: y <- spins (the raw pre-update x captured in step 4).
	copy(ws.Y, ws.Spins)

	// 8: wall(x). The kernel's velocity-like state is the position
	// difference (x-y) the momentum term reads next iteration, so the
	// dialect's wall projector clamps x and snaps y to the same
	// clamped value wherever x hit a bound: the next iteration's
	// momentum[j]*(x-y) term then starts at zero for that coordinate.
	for j := 0; j < m; j++ {
		xCol := ws.col(ws.X, j)
		yCol := ws.col(ws.Y, j)
		dialect.Wall(xCol, yCol)
	}

	// 9: annealing_live <- max(annealing_live - delta, 0).
	for j := 0; j < m; j++ {
		ws.AnnealingLive[j] = maxOf(ws.AnnealingLive[j]-delta[j], 0)
	}
}

// matMulColumns computes out[:,j] = q * in[:,j] for every column j, for
// an n×n row-major q and n×m column-major-by-trajectory in/out.
func matMulColumns[T Real](out, q, in []T, n, m int) {
	for j := 0; j < m; j++ {
		inCol := in[j*n : (j+1)*n]
		outCol := out[j*n : (j+1)*n]
		for i := 0; i < n; i++ {
			var acc T
			row := q[i*n : i*n+n]
			for k := 0; k < n; k++ {
				acc += row[k] * inCol[k]
			}
			outCol[i] = acc
		}
	}
}
