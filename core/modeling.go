package core

// ScaleToIsing computes a linear variable-bound scaling: a map from
// user variables y in [lower,upper] to solver
// variables Y in [dialectLower,dialectUpper], expressed as the affine
// transform Y = a*y + b, applied element-wise. All bounds must be
// finite. Lengths are not checked and no error is returned: a and b
// have len(lower) entries, and upper must be at least that long.
func ScaleToIsing(lower, upper []float64, dialectLower, dialectUpper float64) (a, b []float64) {
	n := len(lower)
	a = make([]float64, n)
	b = make([]float64, n)
	span := dialectUpper - dialectLower
	for i := range lower {
		scale := span / (upper[i] - lower[i])
		a[i] = scale
		b[i] = dialectLower - lower[i]*scale
	}
	return a, b
}

// ToInteraction converts a 2×2 scalar QUMO problem Q = [[0,w],[w,v]]
// (binary index 0, continuous index 1) into the (quadratic, field,
// offset) triple a dialect's energy evaluator consumes.
//
// Substituting the binary variable's spin form x0 = (s0+1)/2 into the
// bilinear term 2*w*x0*x1 (Q's off-diagonal counted from both symmetric
// entries) leaves w*s0*x1 + w*x1: the cross coefficient splits evenly
// across the symmetric quadratic entries (w/2 each, so the matrix
// product reproduces the full w*s0*x1 term) and the surviving w*x1
// term becomes a field on the continuous variable. The continuous
// variable's own self term v is unaffected, since it is not
// substituted.
func ToInteraction(q [][]float64, w, v float64) (quadratic [][]float64, field []float64, offset float64) {
	n := len(q)
	quadratic = make([][]float64, n)
	for i := range quadratic {
		quadratic[i] = append([]float64(nil), q[i]...)
	}
	field = make([]float64, n)
	if n >= 2 {
		quadratic[0][1] = w / 2
		quadratic[1][0] = w / 2
		quadratic[1][1] = v
		field[1] = w
	}
	offset = 0
	return quadratic, field, offset
}
