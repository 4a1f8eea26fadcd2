// SPDX-License-Identifier: MIT

package manifold

import "github.com/katalvlaran/esh/matrix"

// State is the solver's lifecycle stage.
type State int

const (
	StateInit State = iota
	StateIterating
	StateConverged
	StateExhausted
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a solve.
func (s State) Terminal() bool { return s >= StateConverged }

// Variant selects the solver flavor.
type Variant int

const (
	// VariantPlain constrains WᵀW = I and adapts the step size.
	VariantPlain Variant = iota
	// VariantGeneralized constrains WᵀMW = I and keeps the step size fixed.
	VariantGeneralized
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantGeneralized:
		return "generalized"
	default:
		return "unknown"
	}
}

// ParseVariant maps "plain" / "generalized" to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "plain":
		return VariantPlain, true
	case "generalized":
		return VariantGeneralized, true
	default:
		return 0, false
	}
}

// Result is the outcome of a successful solve.
type Result struct {
	// W is the learned d×K projection.
	W *matrix.Dense
	// Costs holds one cost per executed iteration.
	Costs []float64
	// Alpha is the regularization weight used (supplied or auto-selected).
	Alpha float64
	// StepSize is the step size used by the last retraction.
	StepSize float64
	// Iterations equals len(Costs).
	Iterations int
	// State is StateConverged or StateExhausted.
	State   State
	Variant Variant
}

// Iteration is passed to an Observer after every retraction.
// W is the new iterate; it is never modified afterwards, and observers
// must not modify it either.
type Iteration struct {
	Index    int
	Cost     float64 // cost at the iterate the step started from
	StepSize float64 // step size used for this retraction
	W        matrix.Matrix
}
