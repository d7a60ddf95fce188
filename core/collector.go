package core

// BestFound is the payload a Collector ultimately yields: the lowest
// objective observed and the assignment that produced it.
type BestFound[T Real] struct {
	Objective  float64
	Assignment []T
}

// Collector is a pluggable reducer over (energies, spins) streams:
// Create seeds state from a prototype assignment, Update folds in one
// batch's results, Finish closes the stream, and Retrieve/Info read
// back the result. Retrieve must be idempotent after Finish.
type Collector[T Real] interface {
	Create(prototype []T, n int)
	Update(energies []float64, spins []T, n int)
	Finish()
	Retrieve() BestFound[T]
	Info() any
}

// BestAssignmentCollector tracks only the best (objective, assignment)
// pair seen across all Update calls.
type BestAssignmentCollector[T Real] struct {
	best      float64
	assign    []T
	hasResult bool
}

// NewBestAssignmentCollector constructs a BestAssignmentCollector.
func NewBestAssignmentCollector[T Real]() *BestAssignmentCollector[T] {
	return &BestAssignmentCollector[T]{}
}

func (c *BestAssignmentCollector[T]) Create(prototype []T, n int) {
	c.assign = make([]T, n)
	copy(c.assign, prototype)
	c.best = 0
	c.hasResult = false
}

// Update scans energies for its minimum and, if it improves on the
// running best, copies the corresponding column of spins.
func (c *BestAssignmentCollector[T]) Update(energies []float64, spins []T, n int) {
	if len(energies) == 0 {
		return
	}
	minIdx, minVal := 0, energies[0]
	for i, e := range energies[1:] {
		if e < minVal {
			minVal, minIdx = e, i+1
		}
	}
	if !c.hasResult || minVal < c.best {
		c.best = minVal
		c.hasResult = true
		if len(c.assign) != n {
			c.assign = make([]T, n)
		}
		copy(c.assign, spins[minIdx*n:(minIdx+1)*n])
	}
}

func (c *BestAssignmentCollector[T]) Finish() {}

func (c *BestAssignmentCollector[T]) Retrieve() BestFound[T] {
	return BestFound[T]{Objective: c.best, Assignment: append([]T(nil), c.assign...)}
}

func (c *BestAssignmentCollector[T]) Info() any { return nil }

// FinalAssignmentCollector is BestAssignmentCollector plus a running
// log of every batch's valid spin columns, returned via Info.
type FinalAssignmentCollector[T Real] struct {
	BestAssignmentCollector[T]
	snapshots [][]T
	n         int
}

// NewFinalAssignmentCollector constructs a FinalAssignmentCollector.
func NewFinalAssignmentCollector[T Real]() *FinalAssignmentCollector[T] {
	return &FinalAssignmentCollector[T]{}
}

func (c *FinalAssignmentCollector[T]) Create(prototype []T, n int) {
	c.BestAssignmentCollector.Create(prototype, n)
	c.snapshots = nil
	c.n = n
}

func (c *FinalAssignmentCollector[T]) Update(energies []float64, spins []T, n int) {
	c.BestAssignmentCollector.Update(energies, spins, n)

	cols := len(energies)
	batch := make([]T, cols*n)
	copy(batch, spins[:cols*n])
	c.snapshots = append(c.snapshots, batch)
}

// Info returns a [][]T holding one snapshot per batch, each N*cols
// long, in submission order.
func (c *FinalAssignmentCollector[T]) Info() any {
	return c.snapshots
}
