// Package matrix provides a small, deterministic dense linear-algebra core.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional NaN/Inf rejection policy.
//   - Kernels (Add, Sub, AddScaled, AddScalar, Mul, MulAT, MulBT, Transpose,
//     Scale, ScaleColumns, Hadamard, Abs, Sign, Map) that allocate a fresh
//     result and never mutate inputs.
//   - Reductions (FrobeniusInner, ColumnSums, Gram, MaxAbsDiff,
//     OrthogonalityError) and Symmetrize.
//   - Factorizations: LU with partial pivoting (LU, Solve), Jacobi Eigen
//     for symmetric matrices, and Householder QR with Orthonormalize.
//
// Every function validates its operands first and reports failures with
// the sentinel errors in errors.go, wrapped with an operation tag.
//
// Any Matrix implementation is accepted; *Dense operands skip the copy that
// other implementations go through before the flat-buffer loops run.
package matrix
