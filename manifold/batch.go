// SPDX-License-Identifier: MIT

package manifold

import (
	"context"

	"github.com/katalvlaran/esh/matrix"
	"golang.org/x/sync/errgroup"
)

// SolveMany runs one independent solve per entry of ks on the same data.
// The affinity (and metric) is built once and shared read-only; each solve
// owns its iterate and trace. At most parallelism solves run at a time
// (<= 0 means unlimited). Results are returned in the order of ks. The
// first failure cancels the remaining solves and is returned.
func SolveMany(ctx context.Context, x, z matrix.Matrix, ks []int, variant Variant, parallelism int, opts ...Option) ([]*Result, error) {
	o := NewOptions(opts...)
	p, err := newProblem(x, z, variant)
	if err != nil {
		return nil, fail(ctx, o.logger.WithVariant(variant), variant, -1, err)
	}

	results := make([]*Result, len(ks))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, k := range ks {
		i, k := i, k
		g.Go(func() error {
			res, err := p.solve(gctx, k, variant, o)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
