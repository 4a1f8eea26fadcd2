// SPDX-License-Identifier: MIT
package manifold_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/esh/matrix"
	"github.com/stretchr/testify/require"
)

// randX returns an n×d matrix with standard normal entries.
func randX(t testing.TB, n, d int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, n*d)
	for i := range vals {
		vals[i] = rng.NormFloat64()
	}
	m, err := matrix.NewDenseFrom(n, d, vals)
	require.NoError(t, err)

	return m
}

// randZ returns an n×m non-negative, row-stochastic anchor mapping.
func randZ(t testing.TB, n, m int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, n*m)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < m; j++ {
			v := rng.Float64()
			vals[i*m+j] = v
			sum += v
		}
		for j := 0; j < m; j++ {
			vals[i*m+j] /= sum
		}
	}
	z, err := matrix.NewDenseFrom(n, m, vals)
	require.NoError(t, err)

	return z
}

// orthonormal returns a d×k matrix with orthonormal columns (QR of a
// random matrix).
func orthonormal(t testing.TB, d, k int, seed int64) *matrix.Dense {
	t.Helper()
	w, err := matrix.Orthonormalize(randX(t, d, k, seed))
	require.NoError(t, err)

	return w
}
