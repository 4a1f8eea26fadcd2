// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition/subtraction, products (plain and transposed), traces,
// Frobenius forms, Doolittle LU with inverse and linear solves, and a Jacobi
// eigen-solver for symmetric input. All functions validate fail-fast and
// return tagged sentinels on dimension mismatches.
//
// Notes:
//   - Every kernel allocates a fresh *Dense result; inputs are never mutated.
//   - Non-*Dense operands are materialized once via asDense, so the numeric
//     loops below only ever walk flat row-major buffers.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations and substitutions.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Solve.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opAddScaled = "AddScaled"
	opMul       = "Mul"
	opMulAT     = "MulAT"
	opMulBT     = "MulBT"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opFrobenius = "Frobenius"
	opEigen     = "Eigen"
	opSolve     = "Solve"
	opLU        = "LU"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a materialized copy.
// The copy keeps m's values verbatim (numeric policy off) so kernels see
// exactly what the caller stored.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// addSub computes out = a + sign*b for shape-equal a and b.
// Shared by Add, Sub and AddScaled.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// AddScaled computes C = A + s·B without materializing s·B.
func AddScaled(a, b Matrix, s float64) (Matrix, error) { return addSub(a, b, s, opAddScaled) }

// Mul performs standard matrix multiplication C = A × B.
//
// Implementation:
//   - Stage 1: validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loop over row-major strides, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k      int
		av           float64
		rowA, rowB   int
		rowR, bCols  = 0, db.c
		aCols, aRows = da.c, da.r
	)
	for i = 0; i < aRows; i++ {
		rowA = i * aCols
		rowR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowR+j] += av * db.data[rowB+j]
			}
		}
	}

	return res, nil
}

// MulAT computes C = Aᵀ × B without forming Aᵀ (A: n×r, B: n×c → C: r×c).
// Used for XᵀZ and XᵀX style products where n (samples) dominates.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (A.Rows != B.Rows).
func MulAT(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMulAT, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMulAT, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opMulAT, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMulAT, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMulAT, err)
	}
	res, err := NewDense(da.c, db.c)
	if err != nil {
		return nil, matrixErrorf(opMulAT, err)
	}

	// Accumulate outer products of row s of A with row s of B.
	var s, i, j, rowA, rowB, rowR int
	var av float64
	for s = 0; s < da.r; s++ {
		rowA = s * da.c
		rowB = s * db.c
		for i = 0; i < da.c; i++ {
			av = da.data[rowA+i]
			if av == 0 {
				continue
			}
			rowR = i * db.c
			for j = 0; j < db.c; j++ {
				res.data[rowR+j] += av * db.data[rowB+j]
			}
		}
	}

	return res, nil
}

// MulBT computes C = A × Bᵀ without forming Bᵀ (A: r×n, B: c×n → C: r×c).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (A.Cols != B.Cols).
func MulBT(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}
	if a.Cols() != b.Cols() {
		return nil, matrixErrorf(opMulBT, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}
	res, err := NewDense(da.r, db.r)
	if err != nil {
		return nil, matrixErrorf(opMulBT, err)
	}

	// Row-by-row dot products; both operands are read along contiguous rows.
	n := da.c
	var i, j, k int
	var sum float64
	for i = 0; i < da.r; i++ {
		ra := da.data[i*n : (i+1)*n]
		for j = 0; j < db.r; j++ {
			rb := db.data[j*n : (j+1)*n]
			sum = ZeroSum
			for k = 0; k < n; k++ {
				sum += ra[k] * rb[k]
			}
			res.data[i*db.r+j] = sum
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j, base int
	for i = 0; i < dm.r; i++ {
		base = i * dm.c
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[base+j]
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// NaN/Inf alpha propagates into the result; callers check with IsFinite.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// Hadamard computes the element-wise product C[i,j] = A[i,j]·B[i,j].
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] * db.data[idx]
	}

	return res, nil
}

// FrobeniusInner returns ⟨A,B⟩_F = Σ A[i,j]·B[i,j] = trace(AᵀB).
// It never forms AᵀB, so it costs O(r*c) instead of O(r*c²).
func FrobeniusInner(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	da, err := asDense(a)
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	db, err := asDense(b)
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	sum := ZeroSum
	for idx := range da.data {
		sum += da.data[idx] * db.data[idx]
	}

	return sum, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// classical Jacobi rotations.
//
// Implementation:
//   - Stage 1: validate symmetric square input within tol.
//   - Stage 2: repeatedly pick (p,q) with the largest |A[p,q]| in i→j order,
//     annihilate it with a rotation and accumulate the rotation into Q.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix), unsorted.
//   - Matrix: Q whose columns are the matching eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry,
//     ErrEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Complexity:
//   - Time O(maxIter * n), Space O(n^2).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Clone().(*Dense)
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, p, qi int
		app, aqq, apq  float64
		aip, aiq       float64
		qip, qiq       float64
		theta, t, c, s float64
	)
	maxOffDiag := func() (float64, int, int) {
		best, bp, bq := 0.0, 0, 0
		for r := 0; r < n; r++ {
			for col := r + 1; col < n; col++ {
				if off := math.Abs(a.data[r*n+col]); off > best {
					best, bp, bq = off, r, col
				}
			}
		}
		return best, bp, bq
	}

	for iter = 0; iter < maxIter; iter++ {
		var maxOff float64
		maxOff, p, qi = maxOffDiag()
		if maxOff < tol {
			break
		}
		app = a.data[p*n+p]
		aqq = a.data[qi*n+qi]
		apq = a.data[p*n+qi]

		// t = sign(θ) / (|θ| + √(θ²+1)), c = 1/√(1+t²), s = t·c.
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == qi {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+qi]
			a.data[i*n+p] = c*aip - s*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+qi] = s*aip + c*aiq
			a.data[qi*n+i] = a.data[i*n+qi]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[qi*n+qi] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+qi], a.data[qi*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+qi]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+qi] = s*qip + c*qiq
		}
	}

	if maxOff, _, _ := maxOffDiag(); maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// LU computes P·A = L·U by Doolittle elimination with partial pivoting:
// at step k the row with the largest |A[i,k]| (i >= k, first on ties)
// becomes the pivot row. L has a unit diagonal. perm[i] is the row of A
// that ends up in row i of P·A.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (a pivot column is
//     exactly zero, i.e. A is singular).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (Matrix, Matrix, []int, error) {
	lu, perm, err := luPivot(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	n := lu.r
	l, err := NewIdentity(n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if j < i {
				l.data[i*n+j] = lu.data[i*n+j]
			} else {
				u.data[i*n+j] = lu.data[i*n+j]
			}
		}
	}

	return l, u, perm, nil
}

// luPivot factors a copy of m in place: the strict lower triangle holds L
// (unit diagonal implied), the upper triangle holds U.
func luPivot(m Matrix) (*Dense, []int, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, err
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, err
	}
	n := src.r
	lu, err := NewDense(n, n, WithNoValidateNaNInf())
	if err != nil {
		return nil, nil, err
	}
	copy(lu.data, src.data)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, k, p int
	var best, v, f, pivot float64
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(lu.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(lu.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == ZeroPivot {
			return nil, nil, ErrSingular
		}
		if p != k {
			for j = 0; j < n; j++ {
				lu.data[k*n+j], lu.data[p*n+j] = lu.data[p*n+j], lu.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		pivot = lu.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = lu.data[i*n+k] / pivot
			lu.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				lu.data[i*n+j] -= f * lu.data[k*n+j]
			}
		}
	}

	return lu, perm, nil
}

// luSubstitute overwrites x with the solution of L·U·y = x, where lu holds
// the packed factors from luPivot.
func luSubstitute(lu *Dense, x []float64) {
	n := lu.r
	var i, k int
	var sum float64
	for i = 1; i < n; i++ {
		sum = x[i]
		for k = 0; k < i; k++ {
			sum -= lu.data[i*n+k] * x[k]
		}
		x[i] = sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= lu.data[i*n+k] * x[k]
		}
		x[i] = sum / lu.data[i*n+i]
	}
}

// Solve returns X with A·X = B, via one pivoted LU factorization and a
// triangular solve pair per column of B. A is reported singular only when
// a whole pivot column is exactly zero.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (A non-square or A.Rows != B.Rows),
//     ErrSingular.
func Solve(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	lu, perm, err := luPivot(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if b.Rows() != lu.r {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n, cols := lu.r, db.c
	res, err := NewDense(n, cols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	x := make([]float64, n)
	var i, col int
	for col = 0; col < cols; col++ {
		for i = 0; i < n; i++ {
			x[i] = db.data[perm[i]*cols+col]
		}
		luSubstitute(lu, x)
		for i = 0; i < n; i++ {
			res.data[i*cols+col] = x[i]
		}
	}

	return res, nil
}
