// SPDX-License-Identifier: MIT

package anchor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/esh/matrix"
)

const (
	// DefaultMaxIter caps Lloyd iterations.
	DefaultMaxIter = 50
	// DefaultSeed seeds centroid initialization.
	DefaultSeed int64 = 1
)

var (
	// ErrBadCount indicates m < 1 or more anchors than samples.
	ErrBadCount = errors.New("anchor: anchor count out of range")

	// ErrBadNearest indicates s < 1 or s > number of anchors.
	ErrBadNearest = errors.New("anchor: nearest count out of range")
)

const (
	opTrain = "Train"
	opMap   = "Map"
)

func anchorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Option configures Train.
type Option func(*options)

type options struct {
	maxIter int
	seed    int64
}

// WithMaxIter caps Lloyd iterations. Panics on n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic("anchor: WithMaxIter: n must be >= 1")
	}

	return func(o *options) { o.maxIter = n }
}

// WithSeed sets the initialization seed.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// Train returns m anchors (m×d) computed with Lloyd's algorithm.
//
// Initialization takes m distinct samples chosen by a seeded permutation;
// an empty cluster is reseeded with a sample drawn from the same generator,
// so equal inputs and seed give equal anchors. ctx is checked before every
// iteration.
func Train(ctx context.Context, x matrix.Matrix, m int, opts ...Option) (*matrix.Dense, error) {
	o := options{maxIter: DefaultMaxIter, seed: DefaultSeed}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, anchorErrorf(opTrain, err)
	}
	n, dim := x.Rows(), x.Cols()
	if m < 1 || m > n {
		return nil, anchorErrorf(opTrain, ErrBadCount)
	}
	data, err := flatten(x)
	if err != nil {
		return nil, anchorErrorf(opTrain, err)
	}

	rng := rand.New(rand.NewSource(o.seed))
	centroids := make([]float64, m*dim)
	perm := rng.Perm(n)
	for i := 0; i < m; i++ {
		copy(centroids[i*dim:(i+1)*dim], data[perm[i]*dim:(perm[i]+1)*dim])
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, m)
	sums := make([]float64, m*dim)

	for iter := 0; iter < o.maxIter; iter++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		changed := false

		// Assignment step
		for i := 0; i < n; i++ {
			best, _ := nearest(data[i*dim:(i+1)*dim], centroids, dim)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// Update step
		clear(sums)
		clear(counts)
		for i := 0; i < n; i++ {
			c := assignments[i]
			vec := data[i*dim : (i+1)*dim]
			for d := 0; d < dim; d++ {
				sums[c*dim+d] += vec[d]
			}
			counts[c]++
		}
		for j := 0; j < m; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float64(counts[j])
				for d := 0; d < dim; d++ {
					centroids[j*dim+d] = sums[j*dim+d] * scale
				}
			} else {
				idx := rng.Intn(n)
				copy(centroids[j*dim:(j+1)*dim], data[idx*dim:(idx+1)*dim])
			}
		}
	}

	out, err := matrix.NewDenseFrom(m, dim, centroids)
	if err != nil {
		return nil, anchorErrorf(opTrain, err)
	}

	return out, nil
}

// nearest returns the index and squared distance of the closest centroid.
func nearest(vec, centroids []float64, dim int) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	k := len(centroids) / dim
	for j := 0; j < k; j++ {
		if d := sqDist(vec, centroids[j*dim:(j+1)*dim]); d < bestDist {
			best, bestDist = j, d
		}
	}

	return best, bestDist
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}

func flatten(m matrix.Matrix) ([]float64, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d.RawData(), nil
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i*c+j] = v
		}
	}

	return out, nil
}
