// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package divisors

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/factors/pkg/types"
)

// FactorAll describes every input using up to workers goroutines. Results
// are returned in input order. The first failure cancels outstanding work
// and is returned; a workers value below 1 runs sequentially.
func FactorAll(ctx context.Context, nums []int, workers int) ([]types.Factorization, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]types.Factorization, len(nums))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, n := range nums {
		// Stop scheduling once the group has failed or the caller gave up.
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := Describe(n)
			if err != nil {
				return fmt.Errorf("input %d: %w", i+1, err)
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled parent with no worker error still means incomplete results.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
