package core

import "math/bits"

// Sobol low-discrepancy sampler. No ecosystem library for this is
// available (see DESIGN.md), so this is a from-scratch
// direction-number Sobol generator limited to the three dimensions
// this core ever samples: annealing, gradient, momentum.
//
// Direction numbers below are the first three dimensions of the
// standard Joe & Kuo (2008) initialization table, encoded as the
// classical (degree, polynomial, initial m-values) triples.
type sobolDim struct {
	degree int
	poly   uint32
	m      []uint32
}

var sobolDims = []sobolDim{
	{degree: 0, poly: 0, m: nil},          // dimension 0: van der Corput base-2
	{degree: 1, poly: 1, m: []uint32{1}},  // x + 1
	{degree: 2, poly: 1, m: []uint32{1, 3}}, // x^2 + x + 1
}

const sobolBits = 32

// sobolGenerator produces successive points of a 3-D Sobol sequence.
type sobolGenerator struct {
	dims  [3][]uint32 // per-dimension direction numbers, shifted into bit position
	x     [3]uint32   // current Gray-code state
	count uint32      // number of points generated so far
}

func newSobolGenerator() *sobolGenerator {
	g := &sobolGenerator{}
	for d := 0; d < 3; d++ {
		g.dims[d] = directionNumbers(sobolDims[d])
	}
	return g
}

// directionNumbers expands a (degree, poly, initial m) triple into
// sobolBits direction numbers v_i, each pre-shifted to bit position
// (sobolBits - i).
func directionNumbers(dim sobolDim) []uint32 {
	v := make([]uint32, sobolBits+1)

	if dim.degree == 0 {
		for i := 1; i <= sobolBits; i++ {
			v[i] = 1 << uint(sobolBits-i)
		}
		return v[1:]
	}

	for i, m := range dim.m {
		v[i+1] = m << uint(sobolBits-(i+1))
	}

	degree := dim.degree
	for i := degree + 1; i <= sobolBits; i++ {
		vi := v[i-degree] ^ (v[i-degree] >> uint(degree))
		for k := 1; k < degree; k++ {
			bit := (dim.poly >> uint(degree-1-k)) & 1
			if bit == 1 {
				vi ^= v[i-k]
			}
		}
		v[i] = vi
	}
	return v[1:]
}

// next advances the generator and returns the next point in [0,1)^3,
// using the standard Gray-code recurrence (Bratley & Fox): the c-th
// direction number is XORed in, where c is the number of trailing zero
// bits of the 1-based point count (equivalently, the position of the
// lowest zero bit of the count before this point).
func (g *sobolGenerator) next() [3]float64 {
	g.count++
	c := bits.TrailingZeros32(g.count)

	for d := 0; d < 3; d++ {
		g.x[d] ^= g.dims[d][c]
	}

	var out [3]float64
	for d := 0; d < 3; d++ {
		out[d] = float64(g.x[d]) / float64(uint64(1)<<sobolBits)
	}
	return out
}

// SobolSample draws k triples from a 3-D Sobol sequence scaled into
// cs's three intervals, after skipping the first k points as a
// low-discrepancy warm-up.
func SobolSample(cs ConfigurationSpace, k int) (annealing, gradient, momentum []float64) {
	g := newSobolGenerator()
	for i := 0; i < k; i++ {
		g.next()
	}

	annealing = make([]float64, k)
	gradient = make([]float64, k)
	momentum = make([]float64, k)

	for i := 0; i < k; i++ {
		p := g.next()
		annealing[i] = cs.Annealing.Lo + p[0]*(cs.Annealing.Hi-cs.Annealing.Lo)
		gradient[i] = cs.Gradient.Lo + p[1]*(cs.Gradient.Hi-cs.Gradient.Lo)
		momentum[i] = cs.Momentum.Lo + p[2]*(cs.Momentum.Hi-cs.Momentum.Lo)
	}
	return
}
