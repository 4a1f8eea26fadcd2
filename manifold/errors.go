// SPDX-License-Identifier: MIT

package manifold

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks invalid input: nil or mismatched matrices,
	// K outside [1, d], non-finite data or options the variant rejects.
	ErrPrecondition = errors.New("manifold: precondition violated")

	// ErrNumerical marks a numerical breakdown during a solve: a singular
	// Cayley factor, NaN/Inf in cost or gradient, or a non-finite step size.
	ErrNumerical = errors.New("manifold: numerical failure")
)

// SolveError describes a failed solve. It unwraps to the taxonomy sentinel
// (ErrPrecondition or ErrNumerical, or a context error) and to the
// underlying cause, so errors.Is works against both.
type SolveError struct {
	Variant   Variant
	Iteration int // -1 when the solve failed before the first iteration
	State     State
	Err       error
}

// Error implements error.
func (e *SolveError) Error() string {
	if e.Iteration < 0 {
		return fmt.Sprintf("manifold: %s solve failed during setup: %v", e.Variant, e.Err)
	}

	return fmt.Sprintf("manifold: %s solve failed at iteration %d: %v", e.Variant, e.Iteration, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *SolveError) Unwrap() error { return e.Err }

// precondition tags err with ErrPrecondition under op.
func precondition(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPrecondition, err)
}

// numerical tags err with ErrNumerical under op.
func numerical(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNumerical, err)
}

// manifoldErrorf wraps err with an operation tag, preserving the sentinel via %w.
func manifoldErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

var (
	errNonFiniteCost  = errors.New("cost is not finite")
	errNonFiniteGrad  = errors.New("gradient is not finite")
	errNonFiniteStep  = errors.New("step size is not finite")
	errNonFiniteW     = errors.New("iterate is not finite")
	errZeroReg        = errors.New("binarization term is zero at the initial point")
	errBadK           = errors.New("K must satisfy 1 <= K <= d")
	errRowMismatch    = errors.New("X and Z row counts differ")
	errInitialShape   = errors.New("initial W must be d×K")
	errInitialVariant = errors.New("initial W is only accepted by the plain variant")
	errNonPositiveEig = errors.New("metric has a non-positive eigenvalue")
	errDrift          = errors.New("orthogonality drift above tolerance")
)
