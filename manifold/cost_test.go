// SPDX-License-Identifier: MIT
package manifold_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/esh/affinity"
	"github.com/katalvlaran/esh/manifold"
	"github.com/katalvlaran/esh/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost_KnownValue(t *testing.T) {
	// X = I₂, W = I₂, A = diag(3, 1): main = −4 and |XW| − 1 = [[0,−1],[−1,0]].
	x, _ := matrix.NewIdentity(2)
	w, _ := matrix.NewIdentity(2)
	a, err := matrix.NewDenseRows([][]float64{{3, 0}, {0, 1}})
	require.NoError(t, err)

	c, err := manifold.Cost(x, w, a, 2)
	require.NoError(t, err)
	// reg = ‖[[0,−1],[−1,0]]‖² = 2 → (−4 + 0.5·2·2)/2 = −1
	assert.InDelta(t, -1.0, c, 1e-15)
}

func TestGradient_MatchesFiniteDifferences(t *testing.T) {
	x := randX(t, 30, 6, 1)
	z := randZ(t, 30, 4, 2)
	a, err := affinity.Build(x, z)
	require.NoError(t, err)
	w := orthonormal(t, 6, 3, 3)
	const alpha = 0.7

	g, err := manifold.Gradient(x, w, a, alpha)
	require.NoError(t, err)

	const h = 1e-6
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			orig, _ := w.At(i, j)
			require.NoError(t, w.Set(i, j, orig+h))
			up, err := manifold.Cost(x, w, a, alpha)
			require.NoError(t, err)
			require.NoError(t, w.Set(i, j, orig-h))
			down, err := manifold.Cost(x, w, a, alpha)
			require.NoError(t, err)
			require.NoError(t, w.Set(i, j, orig))

			fd := (up - down) / (2 * h)
			got, _ := g.At(i, j)
			assert.InDelta(t, fd, got, 1e-6, "∂cost/∂W[%d,%d]", i, j)
		}
	}
}

func TestAlpha_BalancesTerms(t *testing.T) {
	x := randX(t, 40, 5, 4)
	z := randZ(t, 40, 3, 5)
	a, err := affinity.Build(x, z)
	require.NoError(t, err)
	w := orthonormal(t, 5, 2, 6)

	alpha, err := manifold.Alpha(x, w, a)
	require.NoError(t, err)
	require.Greater(t, alpha, 0.0)

	// With that alpha, ½·α·reg == |main|, so cost = 0 when main < 0.
	withAlpha, err := manifold.Cost(x, w, a, alpha)
	require.NoError(t, err)
	noReg, err := manifold.Cost(x, w, a, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, withAlpha, math.Abs(noReg)*1e-12)

	again, err := manifold.Alpha(x, w, a)
	require.NoError(t, err)
	assert.Equal(t, alpha, again)
}

func TestAlpha_ZeroRegularizer(t *testing.T) {
	// |XW| == 1 everywhere makes the binarization term vanish.
	x, err := matrix.NewDenseRows([][]float64{{1}, {-1}})
	require.NoError(t, err)
	w, err := matrix.NewDenseRows([][]float64{{1}})
	require.NoError(t, err)
	a, err := matrix.NewDenseRows([][]float64{{1}})
	require.NoError(t, err)

	_, err = manifold.Alpha(x, w, a)
	assert.ErrorIs(t, err, manifold.ErrNumerical)
}

func TestCost_ShapeErrors(t *testing.T) {
	x := randX(t, 5, 3, 1)
	w := randX(t, 4, 2, 2)
	a, _ := matrix.NewIdentity(3)
	_, err := manifold.Cost(x, w, a, 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	w = randX(t, 3, 2, 2)
	a, _ = matrix.NewIdentity(4)
	_, err = manifold.Gradient(x, w, a, 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
