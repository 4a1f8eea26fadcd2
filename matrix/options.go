// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults and functional options.
//
// Design goals:
//   - Deterministic behavior: no global mutable state, no implicit randomness.
//   - Safe by construction: option constructors panic only on nonsensical
//     values (programmer error); kernels never panic on user input.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the non-negative tolerance used by structural checks
	// (symmetry, AllClose atol).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTol is the off-diagonal threshold for the Jacobi sweep.
	DefaultEigenTol = 1e-12

	// DefaultEigenMaxIter caps Jacobi rotations; quadratic in n is enough for
	// the feature dimensions this module targets (d ≤ a few hundred).
	DefaultEigenMaxIter = 100_000
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// Options carries the numeric policy for constructors that accept ...Option.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
}

// NewOptions returns Options with defaults applied, then each opt in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Epsilon reports the configured tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether finite-only validation is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithEpsilon sets the structural tolerance. Panics on NaN, Inf or negative eps.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables finite-only validation on Set.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-only validation. Intended for
// scratch buffers whose contents are checked explicitly afterwards.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}
