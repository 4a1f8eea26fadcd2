// SPDX-License-Identifier: MIT

package manifold

import (
	"math"

	"github.com/katalvlaran/esh/matrix"
)

const opStepSize = "StepSize"

// StepSize returns the Barzilai–Borwein step
//
//	lr' = |⟨ΔW, ΔY⟩_F / ⟨ΔY, ΔY⟩_F|,  ΔW = W − Wold,
//	ΔY = GradJ(G, W) − GradJ(Gold, Wold)
//
// where G is the gradient at W and Gold the gradient at Wold. When
// ⟨ΔY, ΔY⟩ < eps the ratio is not computed and lr is returned unchanged
// with kept = true.
//
// Errors:
//   - ErrNumerical when the new step is NaN or Inf.
func StepSize(w, wOld, g, gOld matrix.Matrix, lr, eps float64) (next float64, kept bool, err error) {
	dw, err := matrix.Sub(w, wOld)
	if err != nil {
		return 0, false, manifoldErrorf(opStepSize, err)
	}
	y, err := GradJ(g, w)
	if err != nil {
		return 0, false, manifoldErrorf(opStepSize, err)
	}
	yOld, err := GradJ(gOld, wOld)
	if err != nil {
		return 0, false, manifoldErrorf(opStepSize, err)
	}
	dy, err := matrix.Sub(y, yOld)
	if err != nil {
		return 0, false, manifoldErrorf(opStepSize, err)
	}
	num, err := matrix.FrobeniusInner(dw, dy)
	if err != nil {
		return 0, false, manifoldErrorf(opStepSize, err)
	}
	den, err := matrix.FrobeniusInner(dy, dy)
	if err != nil {
		return 0, false, manifoldErrorf(opStepSize, err)
	}
	if math.IsNaN(den) || math.IsNaN(num) {
		return 0, false, numerical(opStepSize, errNonFiniteStep)
	}
	if den < eps {
		return lr, true, nil
	}
	next = math.Abs(num / den)
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return 0, false, numerical(opStepSize, errNonFiniteStep)
	}

	return next, false, nil
}
