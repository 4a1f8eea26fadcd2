// Package spectral computes eigenpairs of symmetric matrices.
//
// A Solver returns the full spectrum of a symmetric matrix; TopK narrows it
// to the k algebraically largest eigenpairs, ordered by descending value,
// with eigenvectors as the columns of a d×k matrix.
//
// Two backends are provided:
//
//   - Gonum: LAPACK-style tridiagonal QL via gonum/mat. The default.
//   - Jacobi: classical Jacobi rotations from the matrix package. No
//     external dependency, slower for large inputs.
//
// Eigenvectors are defined up to sign. TopK fixes the sign so that the
// largest-magnitude component of every returned vector is positive, which
// makes results comparable across backends.
package spectral
