package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// RunFor fans fn out across threads goroutines, each under its own
// watchdog-armed child context, and returns once every worker has
// returned. A worker's own context.Canceled (what its watchdog
// produces) or context.DeadlineExceeded is swallowed rather than
// propagated as a group error, leaving that worker's result slot nil;
// any other error aborts the
// remaining workers via the errgroup's shared context.
func RunFor(ctx context.Context, timeout time.Duration, threads int, fn func(context.Context) (any, error)) ([]any, error) {
	if timeout < time.Second {
		return nil, fmt.Errorf("run for %s: %w", timeout, ErrInvalidTimeout)
	}
	if threads <= 0 {
		threads = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]any, threads)

	for w := 0; w < threads; w++ {
		worker := w
		g.Go(func() error {
			wctx, cancel := context.WithCancel(gctx)
			timer := time.AfterFunc(timeout, cancel)
			defer timer.Stop()
			defer cancel()

			v, err := fn(wctx)
			if err == context.DeadlineExceeded || err == context.Canceled {
				return nil
			}
			if err != nil {
				return err
			}
			results[worker] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
