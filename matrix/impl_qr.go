// SPDX-License-Identifier: MIT
// Package matrix: Householder QR for tall matrices.
//
// Purpose:
//   - Factor an r×c matrix (r ≥ c) as Q·R with Q r×c orthonormal and R c×c
//     upper triangular.
//   - Give callers a cheap way back onto the Stiefel manifold (Orthonormalize).
//
// Determinism:
//   - Fixed reflection order, no pivoting; R's diagonal is made non-negative
//     so the factorization is unique for full-rank input.

package matrix

import "math"

const (
	opQR             = "QR"
	opOrthonormalize = "Orthonormalize"
)

// QR computes the thin factorization m = Q·R by Householder reflections.
//
// Contract:
//   - m is r×c with r ≥ c; otherwise ErrDimensionMismatch.
//   - Q is r×c with QᵀQ = I; R is c×c upper triangular with R[j,j] ≥ 0.
//   - A zero column leaves its reflection out; Q stays orthonormal and the
//     matching R[j,j] is 0.
//
// Complexity: O(r·c²) time, O(r·c) space.
func QR(m Matrix) (Matrix, Matrix, error) {
	q, r, err := qrDense(m)
	if err != nil {
		return nil, nil, err
	}

	return q, r, nil
}

func qrDense(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows < cols {
		return nil, nil, matrixErrorf(opQR, ErrDimensionMismatch)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	a := make([]float64, len(src.data))
	copy(a, src.data)

	// Stage 1: reduce A to upper triangular form, keeping each reflector.
	var (
		i, j, k          int
		norm, alpha, sum float64
		beta             float64
	)
	vs := make([][]float64, cols)
	taus := make([]float64, cols)
	for k = 0; k < cols; k++ {
		norm = 0
		for i = k; i < rows; i++ {
			norm += a[i*cols+k] * a[i*cols+k]
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		alpha = -math.Copysign(norm, a[k*cols+k])
		v := make([]float64, rows)
		for i = k; i < rows; i++ {
			v[i] = a[i*cols+k]
		}
		v[k] -= alpha
		beta = 0
		for i = k; i < rows; i++ {
			beta += v[i] * v[i]
		}
		vs[k], taus[k] = v, 2/beta

		for j = k; j < cols; j++ {
			sum = 0
			for i = k; i < rows; i++ {
				sum += v[i] * a[i*cols+j]
			}
			sum *= taus[k]
			for i = k; i < rows; i++ {
				a[i*cols+j] -= sum * v[i]
			}
		}
	}

	// Stage 2: R is the top c×c block of A.
	r, err := NewDense(cols, cols)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	for i = 0; i < cols; i++ {
		for j = i; j < cols; j++ {
			r.data[i*cols+j] = a[i*cols+j]
		}
	}

	// Stage 3: Q = H_0 ⋯ H_{c-1} applied to the first c columns of I.
	q, err := NewDense(rows, cols)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	for i = 0; i < cols; i++ {
		q.data[i*cols+i] = 1
	}
	for k = cols - 1; k >= 0; k-- {
		v := vs[k]
		if v == nil {
			continue
		}
		for j = 0; j < cols; j++ {
			sum = 0
			for i = k; i < rows; i++ {
				sum += v[i] * q.data[i*cols+j]
			}
			sum *= taus[k]
			for i = k; i < rows; i++ {
				q.data[i*cols+j] -= sum * v[i]
			}
		}
	}

	// Stage 4: flip signs so diag(R) ≥ 0.
	for j = 0; j < cols; j++ {
		if r.data[j*cols+j] >= 0 {
			continue
		}
		for k = j; k < cols; k++ {
			r.data[j*cols+k] = -r.data[j*cols+k]
		}
		for i = 0; i < rows; i++ {
			q.data[i*cols+j] = -q.data[i*cols+j]
		}
	}

	return q, r, nil
}

// Orthonormalize returns the Q factor of m: a matrix with orthonormal
// columns spanning the column space of a full-rank m. A matrix that already
// has orthonormal columns comes back unchanged up to round-off.
func Orthonormalize(m Matrix) (*Dense, error) {
	q, _, err := qrDense(m)
	if err != nil {
		return nil, matrixErrorf(opOrthonormalize, err)
	}

	return q, nil
}
