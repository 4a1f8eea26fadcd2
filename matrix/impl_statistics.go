// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column sums and Gram products built as
//     deterministic compositions over the canonical kernels.
//
// Exposed API:
//   - ColumnSums(X)    -> []float64          // Σ_i X[i,j]
//   - Gram(X)          -> XᵀX                // symmetric c×c
//   - Symmetrize(M)    -> (M + Mᵀ)/2
//
// Determinism & Performance:
//   - Fixed i→j traversal; row-major flat buffers only.

package matrix

const (
	opColumnSums = "ColumnSums"
	opGram       = "Gram"
	opSymmetrize = "Symmetrize"
)

// ColumnSums returns s where s[j] = Σ_i X[i,j].
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnSums, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnSums, err)
	}
	sums := make([]float64, d.c)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			sums[j] += d.data[base+j]
		}
	}

	return sums, nil
}

// Gram returns XᵀX (c×c). Only the upper triangle is computed; the lower
// triangle is mirrored so the result is exactly symmetric.
//
// Complexity:
//   - Time O(r*c²/2), Space O(c²).
func Gram(X Matrix) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	c := d.c
	out, err := NewDense(c, c)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}

	var s, i, j, base int
	var v float64
	for s = 0; s < d.r; s++ {
		base = s * c
		for i = 0; i < c; i++ {
			v = d.data[base+i]
			if v == 0 {
				continue
			}
			for j = i; j < c; j++ {
				out.data[i*c+j] += v * d.data[base+j]
			}
		}
	}
	for i = 0; i < c; i++ {
		for j = i + 1; j < c; j++ {
			out.data[j*c+i] = out.data[i*c+j]
		}
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2, repairing round-off asymmetry before an
// eigen-decomposition.
func Symmetrize(m Matrix) (Matrix, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}

	return Scale(sum, 0.5)
}
