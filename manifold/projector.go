// SPDX-License-Identifier: MIT

package manifold

import "github.com/katalvlaran/esh/matrix"

const (
	opGradJ            = "GradJ"
	opGeneralizedGradJ = "GeneralizedGradJ"
)

// wgtw returns W·(GᵀW), i.e. W Gᵀ W, without forming the d×d product WGᵀ.
func wgtw(g, w matrix.Matrix) (matrix.Matrix, error) {
	gtw, err := matrix.MulAT(g, w) // K×K
	if err != nil {
		return nil, err
	}

	return matrix.Mul(w, gtw)
}

// GradJ returns G − W Gᵀ W, the tangent-space gradient used by the
// step-size rule. The retraction itself does not need it.
func GradJ(g, w matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateBinarySameShape(g, w); err != nil {
		return nil, manifoldErrorf(opGradJ, err)
	}
	p, err := wgtw(g, w)
	if err != nil {
		return nil, manifoldErrorf(opGradJ, err)
	}
	out, err := matrix.Sub(g, p)
	if err != nil {
		return nil, manifoldErrorf(opGradJ, err)
	}

	return out.(*matrix.Dense), nil
}

// GeneralizedGradJ returns G − M·(W Gᵀ W)·K⁻¹. A nil kinv stands for the
// identity, which is how both solvers use it.
func GeneralizedGradJ(g, w, m, kinv matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateBinarySameShape(g, w); err != nil {
		return nil, manifoldErrorf(opGeneralizedGradJ, err)
	}
	p, err := wgtw(g, w)
	if err != nil {
		return nil, manifoldErrorf(opGeneralizedGradJ, err)
	}
	p, err = matrix.Mul(m, p)
	if err != nil {
		return nil, manifoldErrorf(opGeneralizedGradJ, err)
	}
	if kinv != nil {
		if p, err = matrix.Mul(p, kinv); err != nil {
			return nil, manifoldErrorf(opGeneralizedGradJ, err)
		}
	}
	out, err := matrix.Sub(g, p)
	if err != nil {
		return nil, manifoldErrorf(opGeneralizedGradJ, err)
	}

	return out.(*matrix.Dense), nil
}
