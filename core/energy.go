package core

import "math"

// CalculateInto computes, for each of the first len(out) columns of
// spins (an N×M matrix stored column by column, column j at
// [j*N, (j+1)*N)), the Hamiltonian
//
//	energies[j] = -1/2 * spins[:,j]^T Q spins[:,j] - h . spins[:,j]
//
// omitting the last term when h is nil. Q is N×N, row-major. spins is
// truncated to len(out) columns when the workspace is wider than the
// measured batch.
func CalculateInto(out []float64, spins []float64, n int, q []float64, h []float64) error {
	if len(q) != n*n {
		return ErrInvalidShape
	}
	if h != nil && len(h) != n {
		return ErrInvalidShape
	}
	m := len(out)
	if len(spins) < n*m {
		return ErrInvalidShape
	}

	field := make([]float64, n)
	for j := 0; j < m; j++ {
		col := j * n
		// field = Q * spins[:,j]
		for i := 0; i < n; i++ {
			var acc float64
			row := i * n
			for k := 0; k < n; k++ {
				acc += q[row+k] * spins[col+k]
			}
			field[i] = acc
		}

		var quad float64
		for i := 0; i < n; i++ {
			quad += spins[col+i] * field[i]
		}

		e := -0.5 * quad
		if h != nil {
			var lin float64
			for i := 0; i < n; i++ {
				lin += h[i] * spins[col+i]
			}
			e -= lin
		}
		out[j] = e
	}
	return nil
}

// Calculate is the value-returning counterpart of CalculateInto,
// evaluating every column of spins.
func Calculate(spins []float64, n, m int, q []float64, h []float64) ([]float64, error) {
	out := make([]float64, m)
	if err := CalculateInto(out, spins, n, q, h); err != nil {
		return nil, err
	}
	return out, nil
}

// CountMinEnergyHits scans an R×K row-major matrix of observations for
// the global minimum and returns, per column k, the count of rows
// whose entry is within tol of that minimum. Ties at the global
// minimum are all counted (see DESIGN.md).
func CountMinEnergyHits(observations []float64, rows, cols int, tol float64) []int {
	counts := make([]int, cols)
	if rows == 0 || cols == 0 {
		return counts
	}

	min := math.Inf(1)
	for _, v := range observations {
		if v < min {
			min = v
		}
	}

	for c := 0; c < cols; c++ {
		n := 0
		for r := 0; r < rows; r++ {
			if math.Abs(observations[r*cols+c]-min) <= tol {
				n++
			}
		}
		counts[c] = n
	}
	return counts
}
