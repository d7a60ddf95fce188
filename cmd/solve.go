package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/qumocore/core"
)

var (
	solveProblem string
	solveTimeout time.Duration
	solveDialect string
	solveSeed    int64
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run the three-phase orchestrator against an embedded toy problem",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveProblem, "problem", "five-cycle", "toy problem: five-cycle | two-edge")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 5*time.Second, "solve time budget")
	solveCmd.Flags().StringVar(&solveDialect, "dialect", "ising", "sampler dialect: ising | positive | qumo")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 1, "RNG seed")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	q, n, err := embeddedProblem(solveProblem)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(solveSeed))
	opts := []core.SolveOption{core.WithRNG(rng)}

	var rec *core.RuntimeRecord[float32]
	switch solveDialect {
	case "ising":
		rec, err = core.Solve(ctx, q, nil, n, solveTimeout, opts...)
	case "positive":
		rec, err = core.SolvePositive(ctx, q, nil, n, solveTimeout, opts...)
	case "qumo":
		rec, err = core.SolveQUMO(ctx, q, nil, n, solveTimeout, opts...)
	default:
		return fmt.Errorf("unknown dialect %q", solveDialect)
	}
	if err != nil {
		return err
	}

	best, ok := core.FindBest(rec)
	if !ok {
		fmt.Println("no result produced")
		return nil
	}
	fmt.Printf("best objective: %g\nassignment: %v\nfound in phase: %s\n", best.Objective, best.Vars, best.Label)

	if summary := core.GetSolverResultsSummary(rec, 1e-6); summary != nil {
		fmt.Printf("success rate: %.4f  time/sample: %s\n", summary.SuccessRate, summary.TimePerSample)
	}
	return nil
}

// embeddedProblem returns a couple of toy MaxCut problems for the
// demo: a 5-cycle graph and a 4-node two-edge graph. Both are returned
// as the negation of their adjacency matrix, since the orchestrator
// minimizes -0.5*xᵀQx and cutting an edge needs its endpoints to
// disagree in sign.
func embeddedProblem(name string) ([][]float32, int, error) {
	switch name {
	case "five-cycle":
		n := 5
		q := make([][]float32, n)
		for i := range q {
			q[i] = make([]float32, n)
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			q[i][j] = -1
			q[j][i] = -1
		}
		return q, n, nil
	case "two-edge":
		return [][]float32{
			{0, -1, 0, 0},
			{-1, 0, 0, 0},
			{0, 0, 0, -1},
			{0, 0, -1, 0},
		}, 4, nil
	default:
		return nil, 0, fmt.Errorf("unknown problem %q", name)
	}
}
