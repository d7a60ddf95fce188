package core

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// PhaseStatistics is one phase's worth of exploration history.
type PhaseStatistics[T Real] struct {
	Start, Stop time.Time
	Setup       Setup[T]
	Results     []ExplorationResult[T]
	Iterations  []int
}

// RuntimeRecord is the sole artifact Solve/SolvePositive/SolveQUMO
// hand back to the caller: the core persists nothing else.
type RuntimeRecord[T Real] struct {
	ID            uuid.UUID
	Start, Stop   time.Time
	Backend       string
	Normalization float64
	Phase1        PhaseStatistics[T]
	Phase2        PhaseStatistics[T]
	DeepSearch    PhaseStatistics[T]
}

type solveConfig struct {
	rng                  *rand.Rand
	backend              string
	annealing            Interval
	gradient             Interval
	momentum             Interval
	deepSearchIterations [2]int
	dt                   float64
	phase1Fraction       float64
	phase2Fraction       float64
	metricsRegistry      *prometheus.Registry
}

// SolveOption configures a Solve/SolvePositive/SolveQUMO call.
type SolveOption func(*solveConfig)

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		rng:                  rand.New(rand.NewSource(1)),
		backend:              "cpu",
		annealing:            Interval{Lo: 0.01, Hi: 1},
		gradient:             Interval{Lo: 0.01, Hi: 1},
		momentum:             Interval{Lo: 0.95, Hi: 0.99},
		deepSearchIterations: [2]int{500, 20000},
		dt:                   0.5,
		phase1Fraction:       0.1,
		phase2Fraction:       0.2,
	}
}

func WithRNG(rng *rand.Rand) SolveOption { return func(c *solveConfig) { c.rng = rng } }
func WithBackend(name string) SolveOption { return func(c *solveConfig) { c.backend = name } }
func WithAnnealing(iv Interval) SolveOption { return func(c *solveConfig) { c.annealing = iv } }
func WithGradient(iv Interval) SolveOption { return func(c *solveConfig) { c.gradient = iv } }
func WithMomentum(iv Interval) SolveOption { return func(c *solveConfig) { c.momentum = iv } }
func WithDeepSearchIterations(lo, hi int) SolveOption {
	return func(c *solveConfig) { c.deepSearchIterations = [2]int{lo, hi} }
}
func WithDt(dt float64) SolveOption { return func(c *solveConfig) { c.dt = dt } }
func WithPhaseFractions(p1, p2 float64) SolveOption {
	return func(c *solveConfig) { c.phase1Fraction, c.phase2Fraction = p1, p2 }
}
func WithMetricsRegistry(reg *prometheus.Registry) SolveOption {
	return func(c *solveConfig) { c.metricsRegistry = reg }
}

func (c *solveConfig) validate() error {
	if c.phase1Fraction <= 0 || c.phase1Fraction >= 1 || c.phase2Fraction <= 0 || c.phase2Fraction >= 1 {
		return fmt.Errorf("phase fractions must be in (0,1): %w", ErrInvalidRange)
	}
	if c.phase1Fraction+c.phase2Fraction >= 1 {
		return fmt.Errorf("phase fractions must sum to < 1: %w", ErrInvalidRange)
	}
	if !c.annealing.valid() || !c.gradient.valid() || !c.momentum.valid() {
		return fmt.Errorf("solve: %w", ErrInvalidRange)
	}
	if c.momentum.Hi >= 1 {
		return fmt.Errorf("momentum_hi must be < 1: %w", ErrInvalidRange)
	}
	if c.deepSearchIterations[0] <= 0 || c.deepSearchIterations[1] < c.deepSearchIterations[0] {
		return fmt.Errorf("deep_search_iterations invalid: %w", ErrInvalidRange)
	}
	if c.dt <= 0 {
		return fmt.Errorf("dt must be positive: %w", ErrInvalidRange)
	}
	return nil
}

// Solve runs the three-phase orchestrator with the mixed-Ising dialect.
func Solve(ctx context.Context, q [][]float32, h []float32, b int, timeout time.Duration, opts ...SolveOption) (*RuntimeRecord[float32], error) {
	return solve(ctx, q, h, b, timeout, MixedIsingDialect[float32](), opts...)
}

// SolvePositive runs the orchestrator with the positive-QUMO dialect.
func SolvePositive(ctx context.Context, q [][]float32, h []float32, b int, timeout time.Duration, opts ...SolveOption) (*RuntimeRecord[float32], error) {
	return solve(ctx, q, h, b, timeout, PositiveQUMODialect[float32](), opts...)
}

// SolveQUMO runs the orchestrator with the QUMO dialect.
func SolveQUMO(ctx context.Context, q [][]float32, h []float32, b int, timeout time.Duration, opts ...SolveOption) (*RuntimeRecord[float32], error) {
	return solve(ctx, q, h, b, timeout, QUMODialect[float32](), opts...)
}

func solve[T Real](ctx context.Context, q [][]T, h []T, b int, timeout time.Duration, dialect Dialect[T], opts ...SolveOption) (*RuntimeRecord[T], error) {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	n := len(q)
	flat := make([]T, n*n)
	for i, row := range q {
		copy(flat[i*n:(i+1)*n], row)
	}
	problem, err := NewProblem(n, b, flat, h)
	if err != nil {
		return nil, err
	}

	mtx := defaultMetrics
	if cfg.metricsRegistry != nil {
		mtx = newMetrics(cfg.metricsRegistry)
	}

	rec := &RuntimeRecord[T]{ID: uuid.New(), Start: nowTime(), Backend: cfg.backend}
	slog.Info("solve: starting", "id", rec.ID, "n", n, "backend", cfg.backend)

	res1 := resourcesPhase1(n, timeout, cfg.phase1Fraction)
	res2 := resourcesPhase2(n, timeout, cfg.phase2Fraction)

	lambda := normalize(problem.Qw, n, 0.05, 3)
	rec.Normalization = lambda

	cs := ConfigurationSpace{Annealing: cfg.annealing, Gradient: cfg.gradient, Momentum: cfg.momentum}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	annealingF, gradientF, momentumF := SobolSample(cs, 32768)

	annealing := make([]T, len(annealingF))
	gradient := make([]T, len(gradientF))
	momentum := make([]T, len(momentumF))
	for i := range annealingF {
		g := gradientF[i]
		annealing[i] = T(annealingF[i] / g)
		gradient[i] = T(1 / (g * lambda))
		momentum[i] = T(momentumF[i])
	}

	registry := NewRegistry()
	engine, err := registry.Select()
	if err != nil {
		return nil, err
	}
	batchSize := engine.OptimalBatchSize(n)

	threads := 1
	if cfg.backend != "gpu" {
		threads = maxCPUThreads()
	}

	baseSetup := Setup[T]{Annealing: annealing, Gradient: gradient, Momentum: momentum, Dt: T(cfg.dt)}

	// Phase 1.
	p1rng := rand.New(rand.NewSource(cfg.rng.Int63()))
	setup1 := Setup[T]{Annealing: baseSetup.Annealing, Gradient: baseSetup.Gradient, Momentum: baseSetup.Momentum, Dt: baseSetup.Dt}
	rec.Phase1.Start = nowTime()
	rec.Phase1.Setup = setup1
	phase1Result, err := runPhase(ctx, problem, setup1, batchSize, res1.Samples, res1.Iterations, res1.TimeBudget, threads, dialect, p1rng)
	if err != nil {
		return nil, err
	}
	rec.Phase1.Results = []ExplorationResult[T]{*phase1Result}
	rec.Phase1.Iterations = []int{res1.Iterations}
	rec.Phase1.Stop = nowTime()
	mtx.batches.WithLabelValues("phase1").Inc()

	perm1 := sortByMeanEnergy(phase1Result.Measurements)
	setup2 := setup1.Reorder(perm1)

	// Phase 2.
	p2rng := rand.New(rand.NewSource(p1rng.Int63()))
	rec.Phase2.Start = nowTime()
	rec.Phase2.Setup = setup2
	phase2Result, err := runPhase(ctx, problem, setup2, batchSize, res2.Samples, res2.Iterations, res2.TimeBudget, threads, dialect, p2rng)
	if err != nil {
		return nil, err
	}
	rec.Phase2.Results = []ExplorationResult[T]{*phase2Result}
	rec.Phase2.Iterations = []int{res2.Iterations}
	rec.Phase2.Stop = nowTime()
	mtx.batches.WithLabelValues("phase2").Inc()

	perm2 := sortByMeanEnergy(phase2Result.Measurements)
	setup3 := setup2.Reorder(perm2).Truncate(res2.PointsToSave)

	// Deep search.
	p3rng := rand.New(rand.NewSource(p2rng.Int63()))
	iterChooserRng := rand.New(rand.NewSource(p2rng.Int63()))
	deadline := nowTime().Add(timeout - res1.TimeBudget - res2.TimeBudget)
	rec.DeepSearch.Start = nowTime()
	rec.DeepSearch.Setup = setup3

	iterLo, iterHi := cfg.deepSearchIterations[0], cfg.deepSearchIterations[1]
	estimate := float64(res2.TimeBudget) / float64(res2.Iterations)
	const decay = 0.5
	deepRepetitions := (batchSize + setup3.Len() - 1) / setup3.Len()
	if deepRepetitions < 1 {
		deepRepetitions = 1
	}

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		iters := iterLo
		if iterHi > iterLo {
			iters = iterLo + iterChooserRng.Intn(iterHi-iterLo+1)
		}
		if estimate > 0 {
			maxIters := int(float64(remaining) / (estimate * 4))
			if maxIters < 1 {
				maxIters = 1
			}
			if iters > maxIters {
				iters = maxIters
			}
		}

		estimatedLoop := estimate * float64(iters)
		if estimatedLoop > 2*float64(remaining) {
			break
		}

		t0 := nowTime()
		iterCount := iters
		res, err := runPhase(ctx, problem, setup3, batchSize, deepRepetitions, iterCount, remaining, threads, dialect, p3rng)
		if err != nil {
			return nil, err
		}
		elapsed := nowTime().Sub(t0)
		estimate = decay*estimate + (1-decay)*(float64(elapsed)/float64(iterCount))

		rec.DeepSearch.Results = append(rec.DeepSearch.Results, *res)
		rec.DeepSearch.Iterations = append(rec.DeepSearch.Iterations, iterCount)
		mtx.batches.WithLabelValues("deep_search").Inc()
	}
	rec.DeepSearch.Stop = nowTime()

	rec.Stop = nowTime()
	slog.Info("solve: finished", "id", rec.ID, "deep_search_runs", len(rec.DeepSearch.Results))
	return rec, nil
}

// runPhase invokes Explore under RunFor's worker pool for budget and
// returns the first worker's ExplorationResult. repetitions is the
// per-configuration replication factor Explore expands the setup by;
// batchSize is the fixed engine batch width shared by every phase.
func runPhase[T Real](ctx context.Context, problem *Problem[T], setup Setup[T], batchSize, repetitions, iterations int, budget time.Duration, threads int, dialect Dialect[T], rng *rand.Rand) (*ExplorationResult[T], error) {
	if budget < time.Second {
		budget = time.Second
	}

	results, err := RunFor(ctx, budget, threads, func(wctx context.Context) (any, error) {
		token := NewCancelToken()
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-wctx.Done():
				token.Cancel()
			case <-done:
			}
		}()

		workerRng := rand.New(rand.NewSource(rng.Int63()))
		return Explore(ExploreParams[T]{
			Problem:           problem,
			InitialSetup:      setup,
			BatchSize:         batchSize,
			Cancel:            token,
			IterationsChooser: func() int { return iterations },
			Repetitions:       repetitions,
			Rng:               workerRng,
			Collector:         NewBestAssignmentCollector[T](),
			Dialect:           dialect,
		})
	})
	if err != nil {
		return nil, err
	}
	// Take the first worker with a usable result. Explore always
	// completes its first batch and returns a result even when its
	// token is already cancelled, so a slot is nil only when the worker
	// returned a context error that RunFor swallowed.
	for _, v := range results {
		if v != nil {
			return v.(*ExplorationResult[T]), nil
		}
	}
	return nil, fmt.Errorf("explore phase produced no results: %w", ErrEmptyConfig)
}

// sortByMeanEnergy computes each configuration's mean energy across
// the first result row set and returns the ascending permutation.
func sortByMeanEnergy(measurements [][]float64) []int {
	if len(measurements) == 0 {
		return nil
	}
	cols := len(measurements[0])
	means := make([]float64, cols)
	for _, row := range measurements {
		for c, v := range row {
			means[c] += v
		}
	}
	for c := range means {
		means[c] /= float64(len(measurements))
	}

	perm := make([]int, cols)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return means[perm[i]] < means[perm[j]] })
	return perm
}

// nowTime is the only place solve reads the wall clock, isolated so
// deterministic tests can substitute a fake if ever needed.
func nowTime() time.Time { return time.Now() }
