// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise and broadcast kernels used by the hashing objective:
//     |A|, sign(A), A + s, column scaling and column broadcasts.
//   - Keep tight loops in one place; higher layers compose them.
//
// Determinism & Performance:
//   - Flat 0..n-1 loops over the materialized row-major buffer.
//   - One output allocation per call; O(r*c) time and space.

package matrix

import (
	"fmt"
	"math"
)

const (
	opAbs       = "Abs"
	opSign      = "Sign"
	opAddScalar = "AddScalar"
	opMap       = "Map"
	opScaleCols = "ScaleColumns"
	opAllClose  = "AllClose"
)

// ewMap returns out[idx] = f(m[idx]) for every element. Validation of m is
// left to the caller so the op tag stays accurate.
func ewMap(m Matrix, f func(float64) float64, opTag string) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx, v := range dm.data {
		out.data[idx] = f(v)
	}

	return out, nil
}

// Map returns a new matrix with f applied to every element.
// Non-finite results are kept; check with IsFinite when it matters.
func Map(m Matrix, f func(float64) float64) (Matrix, error) {
	if f == nil {
		return nil, matrixErrorf(opMap, ErrNilMatrix)
	}

	return ewMap(m, f, opMap)
}

// Abs returns |m| element-wise.
func Abs(m Matrix) (Matrix, error) { return ewMap(m, math.Abs, opAbs) }

// Sign returns sign(m) element-wise with sign(0) = 0 and sign(NaN) = NaN.
func Sign(m Matrix) (Matrix, error) { return ewMap(m, signum, opSign) }

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return v // 0 stays 0, NaN stays NaN
	}
}

// AddScalar returns m + s element-wise.
func AddScalar(m Matrix, s float64) (Matrix, error) {
	return ewMap(m, func(v float64) float64 { return v + s }, opAddScalar)
}

// ScaleColumns returns out[i,j] = m[i,j] * scale[j].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(scale) != Cols).
func ScaleColumns(m Matrix, scale []float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	if len(scale) != m.Cols() {
		return nil, matrixErrorf(opScaleCols, ErrDimensionMismatch)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	out, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	var i, j, base int
	for i = 0; i < dm.r; i++ {
		base = i * dm.c
		for j = 0; j < dm.c; j++ {
			out.data[base+j] = dm.data[base+j] * scale[j]
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
//   - NaN never compares close.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range da.data {
		// written as !(≤) so NaN fails the check
		if !(math.Abs(da.data[idx]-db.data[idx]) <= atol+rtol*math.Abs(db.data[idx])) {
			return false, nil
		}
	}

	return true, nil
}

// MaxAbsDiff returns max |a-b| over all elements. Handy for test diagnostics.
func MaxAbsDiff(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, fmt.Errorf("MaxAbsDiff: %w", err)
	}
	da, err := asDense(a)
	if err != nil {
		return 0, fmt.Errorf("MaxAbsDiff: %w", err)
	}
	db, err := asDense(b)
	if err != nil {
		return 0, fmt.Errorf("MaxAbsDiff: %w", err)
	}
	worst := 0.0
	for idx := range da.data {
		worst = math.Max(worst, math.Abs(da.data[idx]-db.data[idx]))
	}

	return worst, nil
}
