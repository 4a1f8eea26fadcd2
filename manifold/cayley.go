// SPDX-License-Identifier: MIT

package manifold

import (
	"github.com/katalvlaran/esh/matrix"
)

const (
	opRetract       = "Retract"
	opRetractMetric = "RetractMetric"
)

// Retract moves W along the Cayley curve of F = GWᵀ − WGᵀ:
//
//	W' = (I + lr/2·F)⁻¹ (I − lr/2·F) W
//
// F is skew-symmetric, so the factor is orthogonal and W'ᵀW' = WᵀW.
//
// Errors:
//   - matrix.ErrDimensionMismatch when G and W differ in shape.
//   - ErrNumerical (wrapping matrix.ErrSingular) if I + lr/2·F is singular.
func Retract(w, g matrix.Matrix, lr float64) (*matrix.Dense, error) {
	if err := matrix.ValidateBinarySameShape(w, g); err != nil {
		return nil, manifoldErrorf(opRetract, err)
	}
	f0, err := matrix.MulBT(g, w) // G Wᵀ
	if err != nil {
		return nil, manifoldErrorf(opRetract, err)
	}
	f, err := skew(f0)
	if err != nil {
		return nil, manifoldErrorf(opRetract, err)
	}

	return cayley(opRetract, w, f, lr)
}

// RetractMetric is the M-metric Cayley step of the generalized solver:
//
//	F0 = (G Wᵀ) M,  F = (F0 − F0ᵀ) M,  W' = (I + lr/2·F)⁻¹ (I − lr/2·F) W
//
// It preserves WᵀMW rather than WᵀW.
func RetractMetric(w, g, m matrix.Matrix, lr float64) (*matrix.Dense, error) {
	if err := matrix.ValidateBinarySameShape(w, g); err != nil {
		return nil, manifoldErrorf(opRetractMetric, err)
	}
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, manifoldErrorf(opRetractMetric, err)
	}
	gwt, err := matrix.MulBT(g, w)
	if err != nil {
		return nil, manifoldErrorf(opRetractMetric, err)
	}
	f0, err := matrix.Mul(gwt, m)
	if err != nil {
		return nil, manifoldErrorf(opRetractMetric, err)
	}
	s, err := skew(f0)
	if err != nil {
		return nil, manifoldErrorf(opRetractMetric, err)
	}
	f, err := matrix.Mul(s, m)
	if err != nil {
		return nil, manifoldErrorf(opRetractMetric, err)
	}

	return cayley(opRetractMetric, w, f, lr)
}

// skew returns f0 − f0ᵀ.
func skew(f0 matrix.Matrix) (matrix.Matrix, error) {
	f0t, err := matrix.Transpose(f0)
	if err != nil {
		return nil, err
	}

	return matrix.Sub(f0, f0t)
}

// cayley solves (I + lr/2·F) W' = (I − lr/2·F) W for W'.
func cayley(op string, w, f matrix.Matrix, lr float64) (*matrix.Dense, error) {
	half := 0.5 * lr
	id, err := matrix.NewIdentity(f.Rows())
	if err != nil {
		return nil, manifoldErrorf(op, err)
	}
	lhs, err := matrix.AddScaled(id, f, half)
	if err != nil {
		return nil, manifoldErrorf(op, err)
	}
	fw, err := matrix.Mul(f, w)
	if err != nil {
		return nil, manifoldErrorf(op, err)
	}
	rhs, err := matrix.AddScaled(w, fw, -half)
	if err != nil {
		return nil, manifoldErrorf(op, err)
	}
	next, err := matrix.Solve(lhs, rhs)
	if err != nil {
		return nil, numerical(op, err)
	}
	if !matrix.IsFinite(next) {
		return nil, numerical(op, errNonFiniteW)
	}

	return next.(*matrix.Dense), nil
}
