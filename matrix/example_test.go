package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/esh/matrix"
)

// ExampleSolve solves (I + S)·X = B for a skew-symmetric S, the linear
// system behind a Cayley step.
func ExampleSolve() {
	a, _ := matrix.NewDenseRows([][]float64{{1, 1}, {-1, 1}})
	b, _ := matrix.NewDenseRows([][]float64{{2}, {0}})
	x, _ := matrix.Solve(a, b)
	fmt.Print(x)
	// Output:
	// [1]
	// [1]
}

// ExampleOrthogonalityError measures how far a basis is from orthonormal.
func ExampleOrthogonalityError() {
	w, _ := matrix.NewDenseRows([][]float64{{1, 0}, {0, 1}, {0, 0}})
	e, _ := matrix.OrthogonalityError(w)
	fmt.Println(e)
	// Output: 0
}
