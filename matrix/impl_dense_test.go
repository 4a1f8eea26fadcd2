// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/esh/matrix"
)

func TestNewDense_Shapes(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(tc.r, tc.c)
		AssertErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
	m := MustDense(t, 3, 2)
	if r, c := m.Shape(); r != 3 || c != 2 {
		t.Fatalf("Shape = %d×%d", r, c)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()
	m := MustDense(t, 2, 2)
	MustSet(t, m, 1, 0, 7)
	if v := MustAt(t, m, 1, 0); v != 7 {
		t.Fatalf("At = %v", v)
	}
	_, err := m.At(2, 0)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
	AssertErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	AssertErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	loose, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}
	if err = loose.Set(0, 0, math.Inf(1)); err != nil {
		t.Fatalf("Set(Inf) with policy off: %v", err)
	}
}

func TestNewDenseFrom_CopiesAndValidates(t *testing.T) {
	t.Parallel()
	src := []float64{1, 2, 3, 4}
	m := NewFilledDense(t, 2, 2, src)
	src[0] = 99
	if MustAt(t, m, 0, 0) != 1 {
		t.Fatalf("NewDenseFrom aliases its input")
	}

	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	AssertErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.NewDenseRows([][]float64{{1, 2}, {3}})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	rows, err := matrix.NewDenseRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewDenseRows: %v", err)
	}
	CompareExact(t, [][]float64{{1, 2}, {3, 4}}, rows)
}

func TestDense_CloneRowRawData(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	c := m.Clone()
	MustSet(t, c, 0, 0, -1)
	if MustAt(t, m, 0, 0) != 1 {
		t.Fatalf("Clone shares storage")
	}

	row, err := m.Row(1)
	if err != nil || row[2] != 6 {
		t.Fatalf("Row(1) = %v, %v", row, err)
	}
	row[2] = 0
	raw := m.RawData()
	if raw[5] != 6 {
		t.Fatalf("Row returned a view")
	}
	raw[0] = 42
	if MustAt(t, m, 0, 0) != 1 {
		t.Fatalf("RawData returned a view")
	}
	_, err = m.Row(2)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_DoString(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	visited := 0
	m.Do(func(_, _ int, v float64) bool {
		visited++
		return v < 2
	})
	if visited != 2 {
		t.Fatalf("Do visited %d, want early stop after 2", visited)
	}

	if s := NewFilledDense(t, 1, 2, []float64{1, 2}).String(); !strings.Contains(s, "1, 2") {
		t.Fatalf("String = %q", s)
	}
}
