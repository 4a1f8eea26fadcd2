// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/esh/anchor"
	"github.com/katalvlaran/esh/dataset"
	"github.com/katalvlaran/esh/matrix"
)

var errNoFeatures = errors.New("no feature file: set --features or data.features")

// loadTrainingData reads X and either reads Z or builds it from k-means
// anchors.
func (a *app) loadTrainingData(ctx context.Context) (x, z *matrix.Dense, err error) {
	d := a.cfg.Data
	if d.Features == "" {
		return nil, nil, errNoFeatures
	}
	if x, err = dataset.LoadCSV(d.Features); err != nil {
		return nil, nil, err
	}
	if d.Anchors != "" {
		if z, err = dataset.LoadCSV(d.Anchors); err != nil {
			return nil, nil, err
		}
		return x, z, nil
	}

	ac := a.cfg.Anchors
	count := min(ac.Count, x.Rows())
	nearest := min(ac.Nearest, count)
	a.logger.InfoContext(ctx, "building anchor graph", "anchors", count, "nearest", nearest)
	anchors, err := anchor.Train(ctx, x, count, anchor.WithMaxIter(ac.MaxIter), anchor.WithSeed(ac.Seed))
	if err != nil {
		return nil, nil, fmt.Errorf("anchors: %w", err)
	}
	if z, err = anchor.Map(x, anchors, nearest, ac.Sigma); err != nil {
		return nil, nil, fmt.Errorf("anchor mapping: %w", err)
	}
	a.logger.DebugContext(ctx, "anchor graph ready", slog.Int("rows", z.Rows()), slog.Int("cols", z.Cols()))

	return x, z, nil
}

// modelName is the default store name of a model.
func modelName(variant string, bits int) string {
	return fmt.Sprintf("%s/k%d.esh", variant, bits)
}
