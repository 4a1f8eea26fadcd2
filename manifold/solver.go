// SPDX-License-Identifier: MIT

package manifold

import (
	"context"
	"errors"
	"math"

	"github.com/katalvlaran/esh/matrix"
)

const (
	opSolve = "solve"
	opDrift = "orthogonality"

	// traceReserve bounds the up-front cost trace allocation.
	traceReserve = 1024
)

var errUnknownVariant = errors.New("unknown variant")

// SolvePlain learns W (d×K) with WᵀW = I from features x (n×d) and anchor
// mapping z (n×m). W starts from the top-K eigenvectors of the affinity
// unless WithInitial is given; the step size adapts every iteration.
func SolvePlain(ctx context.Context, x, z matrix.Matrix, k int, opts ...Option) (*Result, error) {
	return Solve(ctx, x, z, k, VariantPlain, opts...)
}

// SolveGeneralized learns W (d×K) with WᵀMW = I for the regularized feature
// covariance M = XᵀX/n + 0.01·I. The step size stays at its initial value.
func SolveGeneralized(ctx context.Context, x, z matrix.Matrix, k int, opts ...Option) (*Result, error) {
	return Solve(ctx, x, z, k, VariantGeneralized, opts...)
}

// Solve runs the given variant. See SolvePlain and SolveGeneralized.
func Solve(ctx context.Context, x, z matrix.Matrix, k int, variant Variant, opts ...Option) (*Result, error) {
	o := NewOptions(opts...)
	p, err := newProblem(x, z, variant)
	if err != nil {
		return nil, fail(ctx, o.logger.WithVariant(variant).WithK(k), variant, -1, err)
	}

	return p.solve(ctx, k, variant, o)
}

func fail(ctx context.Context, log *Logger, variant Variant, it int, err error) error {
	log.LogFailure(ctx, it, err)

	return &SolveError{Variant: variant, Iteration: it, State: StateFailed, Err: err}
}

// evaluate returns cost and gradient at w, rejecting non-finite values.
func (p *problem) evaluate(w *matrix.Dense, alpha float64) (float64, *matrix.Dense, error) {
	t, err := evalTerms(p.x, w, p.a)
	if err != nil {
		return 0, nil, manifoldErrorf(opSolve, err)
	}
	cost := t.cost(alpha, p.x.Rows())
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, nil, numerical(opCost, errNonFiniteCost)
	}
	g, err := t.gradient(p.x, alpha)
	if err != nil {
		return 0, nil, manifoldErrorf(opSolve, err)
	}
	if !matrix.IsFinite(g) {
		return 0, nil, numerical(opGradient, errNonFiniteGrad)
	}

	return cost, g, nil
}

func (p *problem) solve(ctx context.Context, k int, variant Variant, o Options) (*Result, error) {
	log := o.logger.WithVariant(variant).WithK(k)
	if err := p.checkK(k); err != nil {
		return nil, fail(ctx, log, variant, -1, err)
	}

	// INIT: starting point, alpha, trace buffer.
	var (
		w   *matrix.Dense
		err error
	)
	switch variant {
	case VariantPlain:
		w, err = p.initialPlain(k, o)
	case VariantGeneralized:
		w, err = p.initialGeneralized(k, o)
	default:
		err = precondition(opSetup, errUnknownVariant)
	}
	if err != nil {
		return nil, fail(ctx, log, variant, -1, err)
	}

	alpha, fixed := o.Alpha()
	if !fixed {
		if alpha, err = Alpha(p.x, w, p.a); err != nil {
			return nil, fail(ctx, log, variant, -1, err)
		}
		log.LogAlpha(ctx, alpha)
	}

	var metric matrix.Matrix
	if variant == VariantGeneralized {
		metric = p.metric
	}
	adapt := variant == VariantPlain && !o.fixedStep
	lr := o.stepSize
	mon := NewMonitor(o.checkEvery, o.tolerance, min(o.maxIter, traceReserve))

	cost, g, err := p.evaluate(w, alpha)
	if err != nil {
		return nil, fail(ctx, log, variant, 0, err)
	}

	// ITERATING
	state := StateIterating
	var (
		next, wOld, gOld *matrix.Dense
		kept             bool
	)
	for it := 0; it < o.maxIter; it++ {
		if err = ctx.Err(); err != nil {
			return nil, fail(ctx, log, variant, it, err)
		}
		mon.Record(cost)

		if metric == nil {
			next, err = Retract(w, g, lr)
		} else {
			next, err = RetractMetric(w, g, metric, lr)
		}
		if err != nil {
			return nil, fail(ctx, log, variant, it, err)
		}
		if o.orthoTol > 0 {
			d, derr := drift(next, metric)
			if derr != nil {
				return nil, fail(ctx, log, variant, it, manifoldErrorf(opDrift, derr))
			}
			if !(d <= o.orthoTol) {
				return nil, fail(ctx, log, variant, it, numerical(opDrift, errDrift))
			}
		}
		if o.observer != nil {
			o.observer(Iteration{Index: it, Cost: cost, StepSize: lr, W: next})
		}
		if o.logEvery > 0 && (it+1)%o.logEvery == 0 {
			log.LogProgress(ctx, it+1, cost, lr)
		}

		converged := mon.Converged()
		wOld, gOld, w = w, g, next
		if converged {
			state = StateConverged
			break
		}
		if it+1 == o.maxIter {
			break
		}

		if cost, g, err = p.evaluate(w, alpha); err != nil {
			return nil, fail(ctx, log, variant, it+1, err)
		}
		if adapt {
			var step float64
			if step, kept, err = StepSize(w, wOld, g, gOld, lr, o.stepEpsilon); err != nil {
				return nil, fail(ctx, log, variant, it+1, err)
			}
			if kept {
				log.LogStepFallback(ctx, it+1, lr)
			}
			lr = step
		}
	}
	if state != StateConverged {
		state = StateExhausted
	}
	log.LogConvergence(ctx, state, mon.Len(), mon.Last())

	return &Result{
		W:          w,
		Costs:      mon.Costs(),
		Alpha:      alpha,
		StepSize:   lr,
		Iterations: mon.Len(),
		State:      state,
		Variant:    variant,
	}, nil
}
