// SPDX-License-Identifier: MIT

package manifold

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with solver-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// FromSlog adopts an existing *slog.Logger.
func FromSlog(l *slog.Logger) *Logger {
	if l == nil {
		return NoopLogger()
	}

	return &Logger{Logger: l}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})

	return &Logger{Logger: slog.New(handler)}
}

// WithVariant adds the solver variant.
func (l *Logger) WithVariant(v Variant) *Logger {
	return &Logger{Logger: l.Logger.With("variant", v.String())}
}

// WithK adds the number of hash bits.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// LogAlpha logs the auto-selected regularization weight.
func (l *Logger) LogAlpha(ctx context.Context, alpha float64) {
	l.InfoContext(ctx, "alpha selected", "alpha", alpha)
}

// LogProgress logs the cost after a number of iterations.
func (l *Logger) LogProgress(ctx context.Context, iterations int, cost, lr float64) {
	l.InfoContext(ctx, "cost update",
		"iterations", iterations,
		"cost", cost,
		"lr", lr,
	)
}

// LogConvergence logs the terminal state of a successful solve.
func (l *Logger) LogConvergence(ctx context.Context, state State, iterations int, cost float64) {
	if state == StateConverged {
		l.InfoContext(ctx, "converged",
			"iterations", iterations,
			"cost", cost,
		)
		return
	}
	l.InfoContext(ctx, "iteration limit reached",
		"iterations", iterations,
		"cost", cost,
	)
}

// LogStepFallback logs a Barzilai–Borwein update that kept the previous step.
func (l *Logger) LogStepFallback(ctx context.Context, iteration int, lr float64) {
	l.DebugContext(ctx, "step size kept",
		"iteration", iteration,
		"lr", lr,
	)
}

// LogFailure logs a failed solve.
func (l *Logger) LogFailure(ctx context.Context, iteration int, err error) {
	l.ErrorContext(ctx, "solve failed",
		"iteration", iteration,
		"error", err,
	)
}
