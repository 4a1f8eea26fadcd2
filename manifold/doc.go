// Package manifold learns spectral hash projections on the Stiefel manifold.
//
// Given training features X (n×d) and an anchor mapping Z (n×m), the
// solvers look for W (d×K) that minimizes
//
//	cost(W) = [ -tr(WᵀAW) + ½·α·‖ |XW| − 1 ‖²_F ] / n,   A = (XᵀẐ)(XᵀẐ)ᵀ
//
// subject to WᵀW = I (SolvePlain) or WᵀMW = I with M = XᵀX/n + 0.01·I
// (SolveGeneralized).
//
// Every iteration takes the closed-form Euclidean gradient G, builds the
// skew-symmetric direction F = GWᵀ − WGᵀ (metric-weighted in the generalized
// variant) and moves along the Cayley curve
//
//	W ← (I + lr/2·F)⁻¹ (I − lr/2·F) W
//
// which keeps W on the manifold without re-orthonormalization. The plain
// variant adapts lr with a Barzilai–Borwein step; the generalized variant
// keeps lr fixed. A Monitor stops the loop once the relative cost change
// over the last CheckEvery iterations drops below Tolerance.
//
// Failures are reported as *SolveError values that match ErrPrecondition
// (bad shapes, K out of range, misused options) or ErrNumerical (singular
// Cayley factor, NaN/Inf in cost, gradient or step size). Running out of
// iterations is not an error: the Result carries StateExhausted.
//
// Independent solves (for example several code lengths) can run in
// parallel with SolveMany; a single solve is strictly sequential.
package manifold
