// SPDX-License-Identifier: MIT
// Package matrix - constructors and composite helpers.
//
// Purpose:
//   - Thin, intention-revealing entry points that compose canonical kernels.
//   - No loop duplication: every helper delegates to the kernels above it.

package matrix

import "math"

const (
	opIdentity      = "NewIdentity"
	opOrthogonality = "OrthogonalityError"
)

// NewIdentity returns the n×n identity matrix.
//
// Errors:
//   - ErrInvalidDimensions if n <= 0.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1
	}

	return id, nil
}

// OrthogonalityError returns max |WᵀW − I| over all entries: 0 for a
// matrix with exactly orthonormal columns.
func OrthogonalityError(w Matrix) (float64, error) {
	if err := ValidateNotNil(w); err != nil {
		return 0, matrixErrorf(opOrthogonality, err)
	}
	wtw, err := Gram(w)
	if err != nil {
		return 0, matrixErrorf(opOrthogonality, err)
	}
	d := wtw.(*Dense)
	k := d.r
	worst := 0.0
	var i, j int
	var want float64
	for i = 0; i < k; i++ {
		for j = 0; j < k; j++ {
			want = 0
			if i == j {
				want = 1
			}
			worst = math.Max(worst, math.Abs(d.data[i*k+j]-want))
		}
	}

	return worst, nil
}

// Column returns a copy of column j.
func Column(m Matrix, j int) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if j < 0 || j >= m.Cols() {
		return nil, ErrOutOfRange
	}
	d, err := asDense(m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.r)
	for i := 0; i < d.r; i++ {
		out[i] = d.data[i*d.c+j]
	}

	return out, nil
}
