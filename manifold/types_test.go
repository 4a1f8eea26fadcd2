// SPDX-License-Identifier: MIT
package manifold_test

import (
	"testing"

	"github.com/katalvlaran/esh/affinity"
	"github.com/katalvlaran/esh/manifold"
	"github.com/katalvlaran/esh/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAffinity(t testing.TB, x, z matrix.Matrix) *matrix.Dense {
	t.Helper()
	a, err := affinity.Build(x, z)
	require.NoError(t, err)

	return a
}

func TestStateAndVariantStrings(t *testing.T) {
	assert.Equal(t, "converged", manifold.StateConverged.String())
	assert.True(t, manifold.StateExhausted.Terminal())
	assert.False(t, manifold.StateIterating.Terminal())

	v, ok := manifold.ParseVariant("generalized")
	assert.True(t, ok)
	assert.Equal(t, manifold.VariantGeneralized, v)
	assert.Equal(t, "generalized", v.String())
	_, ok = manifold.ParseVariant("oblique")
	assert.False(t, ok)
}

func TestOptions_PanicOnProgrammerError(t *testing.T) {
	assert.Panics(t, func() { manifold.WithStepSize(0) })
	assert.Panics(t, func() { manifold.WithMaxIter(0) })
	assert.Panics(t, func() { manifold.WithAlpha(-1) })
	assert.Panics(t, func() { manifold.WithTolerance(0) })
	assert.Panics(t, func() { manifold.WithCheckEvery(0) })
	assert.Panics(t, func() { manifold.WithLogEvery(-1) })

	o := manifold.NewOptions(manifold.WithStepSize(0.5), nil, manifold.WithMaxIter(3))
	assert.Equal(t, 0.5, o.StepSize())
	assert.Equal(t, 3, o.MaxIter())
	_, set := o.Alpha()
	assert.False(t, set)
}
