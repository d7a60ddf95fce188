package core

import (
	"errors"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvlath/matrix"
	"github.com/katalvlaran/lvlath/matrix/ops"
)

// minLambda is the floor enforced on the spectral factor.
const minLambda = 0.1

// normalize computes the spectral factor lambda used to rescale the
// gradient/annealing configuration space before phase 1.
//
// lvlath's ops.Eigen is a Jacobi solver over real symmetric matrices:
// it always returns real eigenvalues directly, so a guard against a
// complex-valued eigenvalue (relevant for a partial-Schur/Arnoldi
// solver that targets LR/SR separately and can report complex
// conjugate pairs) is structurally unreachable on this backend, and no
// such check is performed: the returned values are used as they are.
func normalize(qw []float64, n int, tolUser float64, retries int) float64 {
	tol := math.Min(tolUser, 0.1)

	var eigs []float64
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		eigs, err = eigenvalues(qw, n, tol)
		if err == nil && len(eigs) > 0 {
			break
		}
		tol *= 2
	}

	if err != nil || len(eigs) == 0 {
		slog.Warn("normalize: eigenvalue solver produced no result after retries, falling back to lambda=1",
			"error", err, "retries", retries)
		return 1.0
	}

	lambdaMax, lambdaMin := eigs[0], eigs[0]
	for _, v := range eigs {
		if v > lambdaMax {
			lambdaMax = v
		}
		if v < lambdaMin {
			lambdaMin = v
		}
	}

	lambda := combineSpectralBounds(lambdaMax, lambdaMin)

	if lambda < minLambda {
		slog.Warn("normalize: spectral factor below floor, substituting 1.0", "lambda", lambda)
		return 1.0
	}
	return lambda
}

// combineSpectralBounds implements the sign-dependent policy from spec
// §4.7: same-sign extremes average their magnitudes; opposite-sign
// extremes use lambdaMax when it clears 0.1, else fall back to 1.0.
func combineSpectralBounds(lambdaMax, lambdaMin float64) float64 {
	sameSign := (lambdaMax >= 0) == (lambdaMin >= 0)
	if sameSign {
		return (math.Abs(lambdaMax) + math.Abs(lambdaMin)) / 2
	}
	if lambdaMax > 0.1 {
		return lambdaMax
	}
	return 1.0
}

// eigenvalues wraps lvlath's Jacobi solver over an n×n symmetric
// matrix stored flat row-major in qw.
func eigenvalues(qw []float64, n int, tol float64) ([]float64, error) {
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if err := m.Set(i, j, qw[i*n+j]); err != nil {
				return nil, err
			}
		}
	}

	// ops.Eigen returns only real values (real-symmetric Jacobi
	// solver), so there is no imaginary-part check to perform here;
	// see the normalize doc comment.
	eigs, _, err := ops.Eigen(m, tol, 200)
	if err != nil {
		if errors.Is(err, ops.ErrEigenFailed) {
			return nil, errNumericalDegeneracy
		}
		return nil, err
	}
	return eigs, nil
}
