// SPDX-License-Identifier: MIT

package manifold

import (
	"math"

	"github.com/katalvlaran/esh/matrix"
)

const (
	opCost     = "Cost"
	opGradient = "Gradient"
	opAlpha    = "Alpha"
)

// terms holds the pieces shared by cost and gradient at one iterate.
type terms struct {
	aw   matrix.Matrix // A·W
	dev  matrix.Matrix // |XW| − 1
	sign matrix.Matrix // sign(XW)
	main float64       // −tr(WᵀAW)
	reg  float64       // ‖|XW| − 1‖²_F
}

func evalTerms(x, w, a matrix.Matrix) (*terms, error) {
	aw, err := matrix.Mul(a, w)
	if err != nil {
		return nil, err
	}
	tr, err := matrix.FrobeniusInner(w, aw) // tr(WᵀAW)
	if err != nil {
		return nil, err
	}
	p, err := matrix.Mul(x, w)
	if err != nil {
		return nil, err
	}
	abs, err := matrix.Abs(p)
	if err != nil {
		return nil, err
	}
	dev, err := matrix.AddScalar(abs, -1)
	if err != nil {
		return nil, err
	}
	reg, err := matrix.FrobeniusInner(dev, dev)
	if err != nil {
		return nil, err
	}
	sign, err := matrix.Sign(p)
	if err != nil {
		return nil, err
	}

	return &terms{aw: aw, dev: dev, sign: sign, main: -tr, reg: reg}, nil
}

func (t *terms) cost(alpha float64, n int) float64 {
	return (t.main + 0.5*alpha*t.reg) / float64(n)
}

// gradient returns (−2AW + α·Xᵀ((|XW|−1) ⊙ sign(XW))) / n.
func (t *terms) gradient(x matrix.Matrix, alpha float64) (*matrix.Dense, error) {
	masked, err := matrix.Hadamard(t.dev, t.sign)
	if err != nil {
		return nil, err
	}
	back, err := matrix.MulAT(x, masked)
	if err != nil {
		return nil, err
	}
	back, err = matrix.Scale(back, alpha)
	if err != nil {
		return nil, err
	}
	g, err := matrix.AddScaled(back, t.aw, -2)
	if err != nil {
		return nil, err
	}
	g, err = matrix.Scale(g, 1/float64(x.Rows()))
	if err != nil {
		return nil, err
	}

	return g.(*matrix.Dense), nil
}

// Cost returns [−tr(WᵀAW) + ½·α·‖|XW| − 1‖²_F] / n.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch for bad shapes
//     (X n×d, W d×K, A d×d).
func Cost(x, w, a matrix.Matrix, alpha float64) (float64, error) {
	if err := checkShapes(x, w, a); err != nil {
		return 0, manifoldErrorf(opCost, err)
	}
	t, err := evalTerms(x, w, a)
	if err != nil {
		return 0, manifoldErrorf(opCost, err)
	}

	return t.cost(alpha, x.Rows()), nil
}

// Gradient returns the Euclidean gradient of Cost with respect to W,
//
//	(−2AW + α·Xᵀ((|XW| − 1) ⊙ sign(XW))) / n,
//
// taking sign(0) = 0 as the subgradient of |·| at zero. A is assumed symmetric.
func Gradient(x, w, a matrix.Matrix, alpha float64) (*matrix.Dense, error) {
	if err := checkShapes(x, w, a); err != nil {
		return nil, manifoldErrorf(opGradient, err)
	}
	t, err := evalTerms(x, w, a)
	if err != nil {
		return nil, manifoldErrorf(opGradient, err)
	}
	g, err := t.gradient(x, alpha)
	if err != nil {
		return nil, manifoldErrorf(opGradient, err)
	}

	return g, nil
}

// Alpha returns |2·(−tr(WᵀAW)) / ‖|XW| − 1‖²_F|, the weight that puts both
// cost terms on the same scale at w.
//
// Errors:
//   - ErrNumerical when the binarization term is zero or the ratio is not finite.
func Alpha(x, w, a matrix.Matrix) (float64, error) {
	if err := checkShapes(x, w, a); err != nil {
		return 0, manifoldErrorf(opAlpha, err)
	}
	t, err := evalTerms(x, w, a)
	if err != nil {
		return 0, manifoldErrorf(opAlpha, err)
	}
	if t.reg == 0 {
		return 0, numerical(opAlpha, errZeroReg)
	}
	alpha := math.Abs(2 * t.main / t.reg)
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return 0, numerical(opAlpha, errNonFiniteCost)
	}

	return alpha, nil
}

func checkShapes(x, w, a matrix.Matrix) error {
	if err := matrix.ValidateMulCompatible(x, w); err != nil {
		return err
	}
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return err
	}
	if a.Rows() != w.Rows() {
		return matrix.ErrDimensionMismatch
	}

	return nil
}
