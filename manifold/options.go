// SPDX-License-Identifier: MIT

// Package manifold: solver defaults and functional options.
//
// Option constructors panic on nonsensical values (programmer error); values
// that come from users should be validated before they reach an Option.
package manifold

import (
	"math"

	"github.com/katalvlaran/esh/matrix"
	"github.com/katalvlaran/esh/spectral"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultStepSize is the initial Cayley step.
	DefaultStepSize = 0.01

	// DefaultMaxIter caps solver iterations.
	DefaultMaxIter = 10_000

	// DefaultTolerance is the relative cost change that counts as converged.
	DefaultTolerance = 1e-4

	// DefaultCheckEvery is the convergence window, in iterations.
	DefaultCheckEvery = 10

	// DefaultLogEvery is the progress log interval; 0 disables progress logs.
	DefaultLogEvery = 50

	// DefaultStepEpsilon is the smallest ⟨ΔY,ΔY⟩ for which the
	// Barzilai–Borwein ratio is computed; below it the step is kept.
	DefaultStepEpsilon = 1e-20

	// CovarianceEpsilon is the ridge of the generalized metric M.
	CovarianceEpsilon = 0.01
)

// Option mutates Options. Safe to apply repeatedly; the last writer wins.
type Option func(*Options)

// Options carries per-solve settings. Build with NewOptions.
type Options struct {
	alpha       float64
	alphaSet    bool
	stepSize    float64
	maxIter     int
	initial     matrix.Matrix
	eigen       spectral.Solver
	logger      *Logger
	tolerance   float64
	checkEvery  int
	logEvery    int
	stepEpsilon float64
	orthoTol    float64 // 0 disables the per-iteration check
	fixedStep   bool
	observer    func(Iteration)
}

// NewOptions returns Options with defaults applied, then each opt in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		stepSize:    DefaultStepSize,
		maxIter:     DefaultMaxIter,
		eigen:       spectral.Default,
		logger:      NoopLogger(),
		tolerance:   DefaultTolerance,
		checkEvery:  DefaultCheckEvery,
		logEvery:    DefaultLogEvery,
		stepEpsilon: DefaultStepEpsilon,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Alpha reports the fixed regularization weight and whether one was set.
func (o Options) Alpha() (float64, bool) { return o.alpha, o.alphaSet }

// StepSize reports the initial step size.
func (o Options) StepSize() float64 { return o.stepSize }

// MaxIter reports the iteration cap.
func (o Options) MaxIter() int { return o.maxIter }

func finitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }

// WithAlpha fixes the regularization weight instead of auto-selecting it.
// Panics on negative, NaN or Inf alpha.
func WithAlpha(alpha float64) Option {
	if alpha < 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		panic("manifold: WithAlpha: alpha must be finite and >= 0")
	}

	return func(o *Options) { o.alpha, o.alphaSet = alpha, true }
}

// WithStepSize sets the initial step size. Panics unless lr is finite and > 0.
func WithStepSize(lr float64) Option {
	if !finitePositive(lr) {
		panic("manifold: WithStepSize: lr must be finite and > 0")
	}

	return func(o *Options) { o.stepSize = lr }
}

// WithMaxIter caps the number of iterations. Panics on n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic("manifold: WithMaxIter: n must be >= 1")
	}

	return func(o *Options) { o.maxIter = n }
}

// WithInitial starts the plain solver from w0 (d×K) instead of the top-K
// eigenvectors of A. w0 is copied and used as given: its columns are not
// re-orthonormalized, so the retraction preserves W0ᵀW0 rather than I.
// Pass matrix.Orthonormalize(w0) to start on the manifold.
// SolveGeneralized rejects this option with ErrPrecondition.
func WithInitial(w0 matrix.Matrix) Option {
	return func(o *Options) { o.initial = w0 }
}

// WithEigenSolver selects the eigen backend used for initialization.
// nil restores spectral.Default.
func WithEigenSolver(s spectral.Solver) Option {
	return func(o *Options) {
		if s == nil {
			s = spectral.Default
		}
		o.eigen = s
	}
}

// WithLogger sets the solver logger. nil restores the no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithTolerance sets the relative cost change treated as converged.
// Panics unless tol is finite and > 0.
func WithTolerance(tol float64) Option {
	if !finitePositive(tol) {
		panic("manifold: WithTolerance: tol must be finite and > 0")
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithCheckEvery sets the convergence window. Panics on n < 1.
func WithCheckEvery(n int) Option {
	if n < 1 {
		panic("manifold: WithCheckEvery: n must be >= 1")
	}

	return func(o *Options) { o.checkEvery = n }
}

// WithLogEvery sets the progress log interval; 0 disables progress logs.
// Panics on n < 0.
func WithLogEvery(n int) Option {
	if n < 0 {
		panic("manifold: WithLogEvery: n must be >= 0")
	}

	return func(o *Options) { o.logEvery = n }
}

// WithStepEpsilon sets the Barzilai–Borwein denominator threshold.
// Panics on negative, NaN or Inf eps.
func WithStepEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic("manifold: WithStepEpsilon: eps must be finite and >= 0")
	}

	return func(o *Options) { o.stepEpsilon = eps }
}

// WithOrthogonalityCheck fails the solve with ErrNumerical as soon as
// max|WᵀW − I| (WᵀMW for the generalized variant) exceeds tol after a
// retraction. 0 disables the check. Panics on negative, NaN or Inf tol.
func WithOrthogonalityCheck(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("manifold: WithOrthogonalityCheck: tol must be finite and >= 0")
	}

	return func(o *Options) { o.orthoTol = tol }
}

// WithObserver registers fn to be called after every retraction.
func WithObserver(fn func(Iteration)) Option {
	return func(o *Options) { o.observer = fn }
}

// WithFixedStep disables Barzilai–Borwein adaptation in the plain variant,
// so every retraction uses the initial step size. The generalized variant
// always runs with a fixed step.
func WithFixedStep() Option {
	return func(o *Options) { o.fixedStep = true }
}
