// SPDX-License-Identifier: MIT

package manifold

import (
	"math"

	"github.com/katalvlaran/esh/affinity"
	"github.com/katalvlaran/esh/matrix"
	"github.com/katalvlaran/esh/spectral"
)

const (
	opSetup = "setup"
	opInit  = "initialize"
)

// problem holds the per-dataset matrices shared by every solve on it.
// All fields are read-only after newProblem returns.
type problem struct {
	x      *matrix.Dense
	a      *matrix.Dense
	metric *matrix.Dense // generalized variant only
}

func asDenseCopy(m matrix.Matrix) (*matrix.Dense, error) {
	return matrix.NewDenseFrom(m.Rows(), m.Cols(), flatten(m))
}

func flatten(m matrix.Matrix) []float64 {
	if d, ok := m.(*matrix.Dense); ok {
		return d.RawData()
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j], _ = m.At(i, j) // in range by construction
		}
	}

	return out
}

// newProblem validates X and Z and builds A (and M for the generalized variant).
func newProblem(x, z matrix.Matrix, variant Variant) (*problem, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, precondition(opSetup, err)
	}
	if err := matrix.ValidateNotNil(z); err != nil {
		return nil, precondition(opSetup, err)
	}
	if x.Rows() != z.Rows() {
		return nil, precondition(opSetup, errRowMismatch)
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return nil, precondition(opSetup, err)
	}
	if err := matrix.ValidateFinite(z); err != nil {
		return nil, precondition(opSetup, err)
	}
	xd, err := asDenseCopy(x)
	if err != nil {
		return nil, precondition(opSetup, err)
	}
	a, err := affinity.Build(xd, z)
	if err != nil {
		return nil, precondition(opSetup, err)
	}
	p := &problem{x: xd, a: a}
	if variant == VariantGeneralized {
		if p.metric, err = affinity.Covariance(xd, CovarianceEpsilon); err != nil {
			return nil, precondition(opSetup, err)
		}
	}

	return p, nil
}

func (p *problem) checkK(k int) error {
	if k < 1 || k > p.x.Cols() {
		return precondition(opSetup, errBadK)
	}

	return nil
}

// initialPlain returns W0: the caller's matrix, or the top-K eigenvectors of A.
func (p *problem) initialPlain(k int, o Options) (*matrix.Dense, error) {
	if o.initial != nil {
		if err := matrix.ValidateNotNil(o.initial); err != nil {
			return nil, precondition(opInit, err)
		}
		if o.initial.Rows() != p.x.Cols() || o.initial.Cols() != k {
			return nil, precondition(opInit, errInitialShape)
		}
		if err := matrix.ValidateFinite(o.initial); err != nil {
			return nil, precondition(opInit, err)
		}
		w, err := asDenseCopy(o.initial)
		if err != nil {
			return nil, precondition(opInit, err)
		}

		return w, nil
	}
	_, w, err := spectral.TopK(o.eigen, p.a, k)
	if err != nil {
		return nil, numerical(opInit, err)
	}

	return w, nil
}

// initialGeneralized returns V·Λ^{-1/2} for the top-K eigenpairs of M,
// which satisfies WᵀMW = I.
func (p *problem) initialGeneralized(k int, o Options) (*matrix.Dense, error) {
	if o.initial != nil {
		return nil, precondition(opInit, errInitialVariant)
	}
	vals, vecs, err := spectral.TopK(o.eigen, p.metric, k)
	if err != nil {
		return nil, numerical(opInit, err)
	}
	scale := make([]float64, k)
	for j, v := range vals {
		if !(v > 0) {
			return nil, numerical(opInit, errNonPositiveEig)
		}
		scale[j] = 1 / math.Sqrt(v)
	}
	w, err := matrix.ScaleColumns(vecs, scale)
	if err != nil {
		return nil, numerical(opInit, err)
	}

	return w.(*matrix.Dense), nil
}

// drift returns max|WᵀW − I|, or max|WᵀMW − I| when metric is non-nil.
func drift(w, metric matrix.Matrix) (float64, error) {
	if metric == nil {
		return matrix.OrthogonalityError(w)
	}
	mw, err := matrix.Mul(metric, w)
	if err != nil {
		return 0, err
	}
	wtmw, err := matrix.MulAT(w, mw)
	if err != nil {
		return 0, err
	}
	id, err := matrix.NewIdentity(w.Cols())
	if err != nil {
		return 0, err
	}

	return matrix.MaxAbsDiff(wtmw, id)
}
