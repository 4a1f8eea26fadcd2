// SPDX-License-Identifier: MIT

package hashing

import (
	"errors"

	"github.com/katalvlaran/esh/matrix"
)

// Encoder maps feature rows to codes through a fixed projection.
type Encoder struct {
	w *matrix.Dense
}

// NewEncoder copies w (d×K) into a new Encoder.
func NewEncoder(w matrix.Matrix) (*Encoder, error) {
	if err := matrix.ValidateNotNil(w); err != nil {
		return nil, hashingErrorf("NewEncoder", errors.Join(ErrNoProjection, err))
	}
	if err := matrix.ValidateFinite(w); err != nil {
		return nil, hashingErrorf("NewEncoder", err)
	}
	d, ok := w.Clone().(*matrix.Dense)
	if !ok {
		var err error
		if d, err = matrix.NewDenseFrom(w.Rows(), w.Cols(), flatten(w)); err != nil {
			return nil, hashingErrorf("NewEncoder", err)
		}
	}

	return &Encoder{w: d}, nil
}

func flatten(m matrix.Matrix) []float64 {
	out := make([]float64, 0, m.Rows()*m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			out = append(out, v)
		}
	}

	return out
}

// Bits returns K, the code width.
func (e *Encoder) Bits() int { return e.w.Cols() }

// Features returns d, the expected row width.
func (e *Encoder) Features() int { return e.w.Rows() }

// Project returns XW (n×K).
func (e *Encoder) Project(x matrix.Matrix) (*matrix.Dense, error) {
	p, err := matrix.Mul(x, e.w)
	if err != nil {
		return nil, hashingErrorf("Project", err)
	}

	return p.(*matrix.Dense), nil
}

// Encode returns one code per row of x: bit j is set iff (XW)[i,j] > 0.
func (e *Encoder) Encode(x matrix.Matrix) ([]Code, error) {
	p, err := e.Project(x)
	if err != nil {
		return nil, hashingErrorf("Encode", err)
	}
	k := e.Bits()
	codes := make([]Code, p.Rows())
	p.Do(func(i, j int, v float64) bool {
		if j == 0 {
			codes[i] = NewCode(k)
		}
		if v > 0 {
			codes[i].SetBit(j)
		}
		return true
	})

	return codes, nil
}
