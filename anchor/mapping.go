// SPDX-License-Identifier: MIT

package anchor

import (
	"math"
	"sort"

	"github.com/katalvlaran/esh/matrix"
)

type anchorDist struct {
	id   int
	dist float64 // squared Euclidean
}

// Map returns the n×m mapping Z where row i holds Gaussian weights
// exp(-‖x_i − a_j‖² / 2σ²) for the s nearest anchors a_j and zeros
// elsewhere, normalized to sum to 1.
//
// With sigma <= 0 the bandwidth is estimated as the mean distance from each
// sample to its s-th nearest anchor. A row whose weights all underflow puts
// weight 1 on its nearest anchor.
//
// Errors:
//   - matrix.ErrDimensionMismatch when X and anchors differ in width.
//   - ErrBadNearest when s < 1 or s > anchors.Rows().
func Map(x, anchors matrix.Matrix, s int, sigma float64) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, anchorErrorf(opMap, err)
	}
	if err := matrix.ValidateNotNil(anchors); err != nil {
		return nil, anchorErrorf(opMap, err)
	}
	if x.Cols() != anchors.Cols() {
		return nil, anchorErrorf(opMap, matrix.ErrDimensionMismatch)
	}
	n, m, dim := x.Rows(), anchors.Rows(), x.Cols()
	if s < 1 || s > m {
		return nil, anchorErrorf(opMap, ErrBadNearest)
	}
	data, err := flatten(x)
	if err != nil {
		return nil, anchorErrorf(opMap, err)
	}
	cents, err := flatten(anchors)
	if err != nil {
		return nil, anchorErrorf(opMap, err)
	}

	// Nearest s anchors per sample, closest first.
	near := make([][]anchorDist, n)
	dists := make([]anchorDist, m)
	for i := 0; i < n; i++ {
		vec := data[i*dim : (i+1)*dim]
		for j := 0; j < m; j++ {
			dists[j] = anchorDist{id: j, dist: sqDist(vec, cents[j*dim:(j+1)*dim])}
		}
		sort.Slice(dists, func(a, b int) bool {
			if dists[a].dist == dists[b].dist {
				return dists[a].id < dists[b].id
			}
			return dists[a].dist < dists[b].dist
		})
		near[i] = append([]anchorDist(nil), dists[:s]...)
	}

	if sigma <= 0 {
		var sum float64
		for i := range near {
			sum += math.Sqrt(near[i][s-1].dist)
		}
		sigma = sum / float64(n)
		if sigma == 0 {
			sigma = 1
		}
	}
	twoSigmaSq := 2 * sigma * sigma

	z, err := matrix.NewDense(n, m)
	if err != nil {
		return nil, anchorErrorf(opMap, err)
	}
	w := make([]float64, s)
	for i := 0; i < n; i++ {
		var total float64
		for k, nd := range near[i] {
			w[k] = math.Exp(-nd.dist / twoSigmaSq)
			total += w[k]
		}
		if total == 0 {
			clear(w)
			w[0], total = 1, 1
		}
		for k, nd := range near[i] {
			if err = z.Set(i, nd.id, w[k]/total); err != nil {
				return nil, anchorErrorf(opMap, err)
			}
		}
	}

	return z, nil
}
