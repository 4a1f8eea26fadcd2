// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the linear algebra kernels.
package matrix_test

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/esh/matrix"
)

func TestAddSub(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	b := NewFilledDense(t, 2, 2, []float64{5, 6, 7, 8})

	sum, err := matrix.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	CompareExact(t, [][]float64{{6, 8}, {10, 12}}, sum)

	diff, err := matrix.Sub(b, a)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	CompareExact(t, [][]float64{{4, 4}, {4, 4}}, diff)

	axpy, err := matrix.AddScaled(a, b, -0.5)
	if err != nil {
		t.Fatalf("AddScaled: %v", err)
	}
	CompareExact(t, [][]float64{{-1.5, -1}, {-0.5, 0}}, axpy)

	// inputs untouched
	CompareExact(t, [][]float64{{1, 2}, {3, 4}}, a)
}

func TestBinaryKernels_Errors(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 2, 3)
	b := MustDense(t, 3, 2)
	var nilDense *matrix.Dense

	_, err := matrix.Add(a, b)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Hadamard(a, nilDense)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Mul(a, a)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulAT(a, b)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulBT(a, b)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.FrobeniusInner(a, b)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMul_KnownProduct(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})
	got, err := matrix.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	CompareExact(t, [][]float64{{58, 64}, {139, 154}}, got)

	// Fallback path yields the same bits.
	got2, err := matrix.Mul(hide{a}, hide{b})
	if err != nil {
		t.Fatalf("Mul(hide): %v", err)
	}
	CompareExact(t, [][]float64{{58, 64}, {139, 154}}, got2)
}

func TestMulTransposedVariants_MatchExplicitTranspose(t *testing.T) {
	t.Parallel()
	for _, shape := range []struct{ n, r, c int }{{5, 3, 4}, {1, 1, 1}, {7, 2, 6}} {
		name := fmt.Sprintf("%dx%dx%d", shape.n, shape.r, shape.c)
		t.Run(name, func(t *testing.T) {
			a := RandFilledDense(t, shape.n, shape.r, 11)
			b := RandFilledDense(t, shape.n, shape.c, 12)

			at, err := matrix.Transpose(a)
			if err != nil {
				t.Fatalf("Transpose: %v", err)
			}
			want, err := matrix.Mul(at, b)
			if err != nil {
				t.Fatalf("Mul: %v", err)
			}
			got, err := matrix.MulAT(a, b)
			if err != nil {
				t.Fatalf("MulAT: %v", err)
			}
			CompareClose(t, got, want, 0, 1e-12)

			// A·Aᵀ through MulBT equals Mul(A, Aᵀ).
			wantBT, err := matrix.Mul(a, at)
			if err != nil {
				t.Fatalf("Mul: %v", err)
			}
			gotBT, err := matrix.MulBT(a, a)
			if err != nil {
				t.Fatalf("MulBT: %v", err)
			}
			CompareClose(t, gotBT, wantBT, 0, 1e-12)
		})
	}
}

func TestTransposeScaleHadamard(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	at, err := matrix.Transpose(hide{a})
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)

	s, err := matrix.Scale(a, -2)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	CompareExact(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, s)

	h, err := matrix.Hadamard(a, a)
	if err != nil {
		t.Fatalf("Hadamard: %v", err)
	}
	CompareExact(t, [][]float64{{1, 4, 9}, {16, 25, 36}}, h)
}

// diagSum adds the diagonal of a square matrix.
func diagSum(t *testing.T, m matrix.Matrix) float64 {
	t.Helper()
	sum := 0.0
	for i := 0; i < m.Rows(); i++ {
		sum += MustAt(t, m, i, i)
	}

	return sum
}

func TestFrobeniusInner(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 2, []float64{1, -2, 3, 4})
	self, err := matrix.FrobeniusInner(a, a)
	if err != nil || self != 30 {
		t.Fatalf("FrobeniusInner(A,A) = %v, %v; want 30", self, err)
	}

	// ⟨A,B⟩_F == trace(AᵀB) on random input.
	x := RandFilledDense(t, 6, 3, 3)
	y := RandFilledDense(t, 6, 3, 4)
	inner, err := matrix.FrobeniusInner(x, y)
	if err != nil {
		t.Fatalf("FrobeniusInner: %v", err)
	}
	xty, err := matrix.MulAT(x, y)
	if err != nil {
		t.Fatalf("MulAT: %v", err)
	}
	if tr := diagSum(t, xty); !AlmostEqual(inner, tr, 1e-12) {
		t.Fatalf("FrobeniusInner = %v, trace(XᵀY) = %v", inner, tr)
	}
}

// permuteRows returns P·A for the row order perm.
func permuteRows(t *testing.T, a matrix.Matrix, perm []int) *matrix.Dense {
	t.Helper()
	r, c := a.Rows(), a.Cols()
	out := MustDense(t, r, c)
	for i, src := range perm {
		for j := 0; j < c; j++ {
			MustSet(t, out, i, j, MustAt(t, a, src, j))
		}
	}

	return out
}

func TestLU_Reconstructs(t *testing.T) {
	t.Parallel()
	for name, a := range map[string]*matrix.Dense{
		"dominant": NewFilledDense(t, 3, 3, []float64{4, 3, 2, 2, 5, 1, 1, 2, 6}),
		"swaps":    NewFilledDense(t, 3, 3, []float64{0, 2, 1, 1, 1, 1, 3, 0, 2}),
	} {
		l, u, perm, err := matrix.LU(a)
		if err != nil {
			t.Fatalf("%s: LU: %v", name, err)
		}
		prod, err := matrix.Mul(l, u)
		if err != nil {
			t.Fatalf("%s: Mul: %v", name, err)
		}
		CompareClose(t, prod, permuteRows(t, a, perm), 0, 1e-12)

		for i := 0; i < 3; i++ {
			if MustAt(t, l, i, i) != 1 {
				t.Fatalf("%s: L[%d,%d] != 1", name, i, i)
			}
			for j := i + 1; j < 3; j++ {
				if MustAt(t, l, i, j) != 0 || MustAt(t, u, j, i) != 0 {
					t.Fatalf("%s: triangularity broken at (%d,%d)", name, i, j)
				}
				// partial pivoting bounds every multiplier by 1
				if math.Abs(MustAt(t, l, j, i)) > 1 {
					t.Fatalf("%s: |L[%d,%d]| > 1", name, j, i)
				}
			}
		}
	}
}

func TestSolve(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 3, 3, []float64{4, 3, 2, 2, 5, 1, 1, 2, 6})
	id, _ := matrix.NewIdentity(3)
	inv, err := matrix.Solve(a, id)
	if err != nil {
		t.Fatalf("Solve(A, I): %v", err)
	}
	prod, err := matrix.Mul(a, inv)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	CompareClose(t, prod, id, 0, 1e-12)

	b := RandFilledDense(t, 3, 4, 9)
	x, err := matrix.Solve(hide{a}, hide{b})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	ax, err := matrix.Mul(a, x)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	CompareClose(t, ax, b, 0, 1e-12)

	// inputs untouched
	CompareExact(t, [][]float64{{4, 3, 2}, {2, 5, 1}, {1, 2, 6}}, a)
}

// A zero leading entry needs a row swap; the matrix itself is well conditioned.
func TestSolve_ZeroLeadingPivot(t *testing.T) {
	t.Parallel()
	swap := NewFilledDense(t, 2, 2, []float64{0, 1, 1, 0})
	b := NewFilledDense(t, 2, 1, []float64{3, 5})
	x, err := matrix.Solve(swap, b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	CompareExact(t, [][]float64{{5}, {3}}, x)

	// Leading minor vanishes after one elimination step.
	a := NewFilledDense(t, 3, 3, []float64{1, 2, 3, 2, 4, 7, 1, 3, 4})
	id, _ := matrix.NewIdentity(3)
	inv, err := matrix.Solve(a, id)
	if err != nil {
		t.Fatalf("Solve(A, I): %v", err)
	}
	prod, _ := matrix.Mul(a, inv)
	CompareClose(t, prod, id, 0, 1e-12)
}

func TestSolve_SingularAndShape(t *testing.T) {
	t.Parallel()
	sing := NewFilledDense(t, 2, 2, []float64{1, 2, 2, 4})
	_, err := matrix.Solve(sing, MustDense(t, 2, 1))
	AssertErrorIs(t, err, matrix.ErrSingular)
	_, _, _, err = matrix.LU(sing)
	AssertErrorIs(t, err, matrix.ErrSingular)

	_, _, _, err = matrix.LU(MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Solve(NewFilledDense(t, 2, 2, []float64{2, 0, 0, 2}), MustDense(t, 3, 1))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Solve(sing, nil)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

// I + S with S skew-symmetric is always invertible; the Cayley step relies on it.
func TestSolve_IdentityPlusSkew(t *testing.T) {
	t.Parallel()
	r := RandFilledDense(t, 6, 6, 21)
	rt, _ := matrix.Transpose(r)
	skew, _ := matrix.Sub(r, rt)
	id, _ := matrix.NewIdentity(6)
	m, _ := matrix.AddScaled(id, skew, 3)
	x, err := matrix.Solve(m, id)
	if err != nil {
		t.Fatalf("Solve(I+S, I): %v", err)
	}
	prod, _ := matrix.Mul(m, x)
	CompareClose(t, prod, id, 0, 1e-10)
}

func TestEigen_DiagonalizesSymmetric(t *testing.T) {
	t.Parallel()
	a := RandSymmetric(t, 5, 31)
	vals, q, err := matrix.Eigen(a, matrix.DefaultEigenTol, matrix.DefaultEigenMaxIter)
	if err != nil {
		t.Fatalf("Eigen: %v", err)
	}
	if len(vals) != 5 {
		t.Fatalf("len(vals) = %d", len(vals))
	}
	orth, err := matrix.OrthogonalityError(q)
	if err != nil || orth > 1e-10 {
		t.Fatalf("QᵀQ deviates from I by %g (%v)", orth, err)
	}

	// A·q_j == λ_j·q_j for every column.
	aq, _ := matrix.Mul(a, q)
	lq, _ := matrix.ScaleColumns(q, vals)
	CompareClose(t, aq, lq, 0, 1e-9)

	// Trace is preserved.
	tr := diagSum(t, a)
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	if !AlmostEqual(tr, sum, 1e-10) {
		t.Fatalf("Σλ = %v, trace = %v", sum, tr)
	}
}

func TestEigen_KnownSpectrum(t *testing.T) {
	t.Parallel()
	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	vals, _, err := matrix.Eigen(a, 1e-14, 100)
	if err != nil {
		t.Fatalf("Eigen: %v", err)
	}
	sort.Float64s(vals)
	if !AlmostEqual(vals[0], 1, 1e-12) || !AlmostEqual(vals[1], 3, 1e-12) {
		t.Fatalf("eigenvalues = %v, want [1 3]", vals)
	}
}

func TestEigen_Errors(t *testing.T) {
	t.Parallel()
	_, _, err := matrix.Eigen(NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4}), 1e-12, 10)
	AssertErrorIs(t, err, matrix.ErrAsymmetry)

	// Zero rotations allowed on a non-diagonal input cannot converge.
	_, _, err = matrix.Eigen(NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2}), 1e-12, 0)
	AssertErrorIs(t, err, matrix.ErrEigenFailed)
}
