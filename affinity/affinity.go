// SPDX-License-Identifier: MIT

package affinity

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/esh/matrix"
)

// DefaultCovarianceEps is the ridge added to XᵀX/n by Covariance.
const DefaultCovarianceEps = 0.01

// ErrShapeMismatch indicates X and Z disagree on the sample count.
// It also matches matrix.ErrDimensionMismatch.
var ErrShapeMismatch = fmt.Errorf("affinity: X and Z row counts differ: %w", matrix.ErrDimensionMismatch)

// ErrBadEpsilon indicates a negative or non-finite ridge for Covariance.
var ErrBadEpsilon = errors.New("affinity: epsilon must be finite and >= 0")

const (
	opNormalize  = "NormalizeAnchors"
	opBuild      = "Build"
	opCovariance = "Covariance"
)

func affinityErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NormalizeAnchors returns Ẑ = Z·Λ^{-1/2} with Λ = diag(1ᵀZ), the anchor
// graph normalization: the low-rank adjacency ẐẐᵀ = ZΛ⁻¹Zᵀ is doubly
// stochastic when every row of Z sums to 1. Columns whose sum is not
// positive are left as zeros.
func NormalizeAnchors(z matrix.Matrix) (*matrix.Dense, error) {
	sums, err := matrix.ColumnSums(z)
	if err != nil {
		return nil, affinityErrorf(opNormalize, err)
	}
	scale := make([]float64, len(sums))
	for j, s := range sums {
		if s > 0 {
			scale[j] = 1 / math.Sqrt(s)
		}
	}
	out, err := matrix.ScaleColumns(z, scale)
	if err != nil {
		return nil, affinityErrorf(opNormalize, err)
	}

	return out.(*matrix.Dense), nil
}

// Build returns the symmetric d×d affinity (XᵀẐ)(XᵀẐ)ᵀ.
//
// Errors:
//   - ErrShapeMismatch when X.Rows() != Z.Rows().
//   - matrix.ErrNilMatrix for nil input.
func Build(x, z matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, affinityErrorf(opBuild, err)
	}
	if err := matrix.ValidateNotNil(z); err != nil {
		return nil, affinityErrorf(opBuild, err)
	}
	if x.Rows() != z.Rows() {
		return nil, affinityErrorf(opBuild, ErrShapeMismatch)
	}
	zn, err := NormalizeAnchors(z)
	if err != nil {
		return nil, affinityErrorf(opBuild, err)
	}
	l, err := matrix.MulAT(x, zn)
	if err != nil {
		return nil, affinityErrorf(opBuild, err)
	}
	// Gram of Lᵀ is L·Lᵀ, computed from one triangle so A is exactly symmetric.
	lt, err := matrix.Transpose(l)
	if err != nil {
		return nil, affinityErrorf(opBuild, err)
	}
	a, err := matrix.Gram(lt)
	if err != nil {
		return nil, affinityErrorf(opBuild, err)
	}

	return a.(*matrix.Dense), nil
}

// Covariance returns M = XᵀX/n + eps·I, symmetric positive definite for eps > 0.
func Covariance(x matrix.Matrix, eps float64) (*matrix.Dense, error) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return nil, affinityErrorf(opCovariance, ErrBadEpsilon)
	}
	g, err := matrix.Gram(x)
	if err != nil {
		return nil, affinityErrorf(opCovariance, err)
	}
	id, err := matrix.NewIdentity(g.Rows())
	if err != nil {
		return nil, affinityErrorf(opCovariance, err)
	}
	scaled, err := matrix.Scale(g, 1/float64(x.Rows()))
	if err != nil {
		return nil, affinityErrorf(opCovariance, err)
	}
	m, err := matrix.AddScaled(scaled, id, eps)
	if err != nil {
		return nil, affinityErrorf(opCovariance, err)
	}

	return m.(*matrix.Dense), nil
}
