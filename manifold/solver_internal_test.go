// SPDX-License-Identifier: MIT

package manifold

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/esh/matrix"
)

func mustDense(t *testing.T, r, c int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// An indefinite metric starts at W0 = e1 with G = [0, 2]ᵀ, so the first
// Cayley factor is [[1,1],[1,1]]. The solve must fail at iteration 0 with
// the singularity visible through the SolveError.
func TestSolve_SingularCayleyFactor(t *testing.T) {
	p := &problem{
		x:      mustDense(t, 1, 2, 1, 1),
		a:      mustDense(t, 2, 2, 0, -1, -1, 0),
		metric: mustDense(t, 2, 2, 1, 0, 0, -1),
	}
	o := NewOptions(WithAlpha(0), WithStepSize(1), WithMaxIter(5))

	res, err := p.solve(context.Background(), 1, VariantGeneralized, o)
	require.Nil(t, res)

	var se *SolveError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 0, se.Iteration)
	require.Equal(t, StateFailed, se.State)
	require.Equal(t, VariantGeneralized, se.Variant)
	require.ErrorIs(t, err, ErrNumerical)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

// The drift check wraps errDrift under ErrNumerical.
func TestSolve_DriftAbortWrapsSentinel(t *testing.T) {
	p := &problem{
		x: mustDense(t, 2, 2, 1, 0, 0, 1),
		a: mustDense(t, 2, 2, 2, 0, 0, 1),
	}
	o := NewOptions(
		WithInitial(mustDense(t, 2, 1, 3, 0)),
		WithAlpha(0),
		WithOrthogonalityCheck(1e-9),
	)

	_, err := p.solve(context.Background(), 1, VariantPlain, o)
	require.ErrorIs(t, err, errDrift)
	require.ErrorIs(t, err, ErrNumerical)

	var se *SolveError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 0, se.Iteration)
}
