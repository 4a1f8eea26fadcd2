// SPDX-License-Identifier: MIT

package spectral

import (
	"math"
	"sort"

	"github.com/katalvlaran/esh/matrix"
	"gonum.org/v1/gonum/mat"
)

const (
	opGonum  = "Gonum.EigenSym"
	opJacobi = "Jacobi.EigenSym"
	opTopK   = "TopK"
)

// Solver returns all eigenvalues of a symmetric matrix together with the
// matching eigenvectors as columns. Order is backend-defined.
type Solver interface {
	EigenSym(a matrix.Matrix) (values []float64, vectors matrix.Matrix, err error)
}

// Gonum solves with gonum's mat.EigenSym.
type Gonum struct{}

// Jacobi solves with matrix.Eigen. Zero fields fall back to
// matrix.DefaultEigenTol and matrix.DefaultEigenMaxIter.
type Jacobi struct {
	Tol     float64
	MaxIter int
}

var (
	_ Solver = Gonum{}
	_ Solver = Jacobi{}
)

// Default is the backend used when callers pass nil.
var Default Solver = Gonum{}

// EigenSym implements Solver. The input is symmetrized from its upper
// triangle, so tiny round-off asymmetry is ignored.
func (Gonum) EigenSym(a matrix.Matrix) ([]float64, matrix.Matrix, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, nil, spectralErrorf(opGonum, err)
	}
	n := a.Rows()
	data, err := toRowMajor(a)
	if err != nil {
		return nil, nil, spectralErrorf(opGonum, err)
	}
	sym := mat.NewSymDense(n, data)

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, spectralErrorf(opGonum, ErrFactorize)
	}
	values := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	var out *matrix.Dense
	if raw := vecs.RawMatrix(); raw.Stride == n {
		out, err = matrix.NewDenseFrom(n, n, raw.Data[:n*n])
	} else {
		out, err = fromGonum(&vecs)
	}
	if err != nil {
		return nil, nil, spectralErrorf(opGonum, err)
	}

	return values, out, nil
}

// EigenSym implements Solver.
func (j Jacobi) EigenSym(a matrix.Matrix) ([]float64, matrix.Matrix, error) {
	tol, maxIter := j.Tol, j.MaxIter
	if tol <= 0 {
		tol = matrix.DefaultEigenTol
	}
	if maxIter <= 0 {
		maxIter = matrix.DefaultEigenMaxIter
	}
	sym, err := matrix.Symmetrize(a)
	if err != nil {
		return nil, nil, spectralErrorf(opJacobi, err)
	}
	values, vectors, err := matrix.Eigen(sym, tol, maxIter)
	if err != nil {
		return nil, nil, spectralErrorf(opJacobi, err)
	}

	return values, vectors, nil
}

// TopK returns the k algebraically largest eigenpairs of the symmetric
// matrix a: values in descending order and a d×k matrix of unit
// eigenvectors in matching column order. A nil solver means Default.
//
// Errors:
//   - ErrBadK if k < 1 or k > a.Rows().
//   - Backend errors wrapped with the "TopK" tag.
func TopK(s Solver, a matrix.Matrix, k int) ([]float64, *matrix.Dense, error) {
	if s == nil {
		s = Default
	}
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, nil, spectralErrorf(opTopK, err)
	}
	n := a.Rows()
	if k < 1 || k > n {
		return nil, nil, spectralErrorf(opTopK, ErrBadK)
	}
	values, vectors, err := s.EigenSym(a)
	if err != nil {
		return nil, nil, spectralErrorf(opTopK, err)
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	// Stable so that equal eigenvalues keep the backend's column order.
	sort.SliceStable(order, func(x, y int) bool { return values[order[x]] > values[order[y]] })

	out, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, nil, spectralErrorf(opTopK, err)
	}
	top := make([]float64, k)
	var col, row int
	var v float64
	for col = 0; col < k; col++ {
		src := order[col]
		top[col] = values[src]
		column, err := matrix.Column(vectors, src)
		if err != nil {
			return nil, nil, spectralErrorf(opTopK, err)
		}
		flip := signOfLargest(column)
		for row = 0; row < n; row++ {
			v = flip * column[row]
			if err = out.Set(row, col, v); err != nil {
				return nil, nil, spectralErrorf(opTopK, err)
			}
		}
	}

	return top, out, nil
}

// signOfLargest returns -1 when the largest-magnitude entry of v is
// negative, otherwise +1. Ties resolve to the first index.
func signOfLargest(v []float64) float64 {
	best, bestAbs := 0, -1.0
	for i, x := range v {
		if a := math.Abs(x); a > bestAbs {
			best, bestAbs = i, a
		}
	}
	if len(v) > 0 && v[best] < 0 {
		return -1
	}

	return 1
}

// toRowMajor returns the row-major contents of a, taking the upper
// triangle as authoritative.
func toRowMajor(a matrix.Matrix) ([]float64, error) {
	n := a.Rows()
	data := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v, err := a.At(i, j)
			if err != nil {
				return nil, err
			}
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}

	return data, nil
}

func fromGonum(d *mat.Dense) (*matrix.Dense, error) {
	r, c := d.Dims()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = out.Set(i, j, d.At(i, j)); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
