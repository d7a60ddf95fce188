package core

import (
	"math"

	"github.com/cwbudde/qumocore/core/half"
)

// Problem is the immutable interaction record: an N×N symmetric
// interaction matrix Q (row-major, flat), an optional external field
// H, and a binary-coordinate prefix count B (0 <= B <= N; coordinates
// [0,B) are binary, [B,N) continuous). Qw/Hw are widened float64
// copies used only by the energy evaluator and the normalizer, so
// that a half-precision Problem does not lose precision on those two
// paths.
type Problem[T Real] struct {
	N, B int
	Q    []T
	H    []T // nil when absent

	Qw []float64
	Hw []float64 // nil when H is nil
}

const diagonalTol = 1e-9
const symmetryTol = 1e-9

// NewProblem validates and constructs a Problem. Q must be N*N,
// row-major, symmetric, with a zero diagonal on the binary block
// (i < B); H, if non-nil, must have length N.
func NewProblem[T Real](n, b int, q []T, h []T) (*Problem[T], error) {
	if b < 0 || b > n {
		return nil, ErrInvalidShape
	}
	if len(q) != n*n {
		return nil, ErrInvalidShape
	}
	if h != nil && len(h) != n {
		return nil, ErrInvalidShape
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(float64(q[i*n+j]-q[j*n+i])) > symmetryTol {
				return nil, ErrInvalidShape
			}
		}
	}
	for i := 0; i < b; i++ {
		if math.Abs(float64(q[i*n+i])) > diagonalTol {
			return nil, ErrInvalidShape
		}
	}

	p := &Problem[T]{
		N: n,
		B: b,
		Q: append([]T(nil), q...),
	}
	if h != nil {
		p.H = append([]T(nil), h...)
	}

	p.Qw = make([]float64, len(p.Q))
	for i, v := range p.Q {
		p.Qw[i] = float64(v)
	}
	if p.H != nil {
		p.Hw = make([]float64, len(p.H))
		for i, v := range p.H {
			p.Hw[i] = float64(v)
		}
	}
	return p, nil
}

// NewHalfProblem constructs a float32 Problem from half-precision
// storage. The sampler kernel computes in the narrow (float32) copy;
// Qw/Hw are widened to float64 from the half bits via half.ToFloat32,
// which represents every binary16 value exactly, so the evaluator and
// normalizer lose no precision.
func NewHalfProblem(n, b int, q []half.Bits, h []half.Bits) (*Problem[float32], error) {
	qf := make([]float32, len(q))
	half.Decode(qf, q)

	var hf []float32
	if h != nil {
		hf = make([]float32, len(h))
		half.Decode(hf, h)
	}

	p, err := NewProblem(n, b, qf, hf)
	if err != nil {
		return nil, err
	}

	// Recompute the widened copies directly from the half bits rather
	// than from the already-narrowed float32 values.
	for i, bits := range q {
		p.Qw[i] = float64(half.ToFloat32(bits))
	}
	if h != nil {
		p.Hw = make([]float64, len(h))
		for i, bits := range h {
			p.Hw[i] = float64(half.ToFloat32(bits))
		}
	}
	return p, nil
}
