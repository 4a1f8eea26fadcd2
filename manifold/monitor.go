// SPDX-License-Identifier: MIT

package manifold

import "math"

// Monitor records the cost trace and decides convergence.
//
// After recording cost c[it], Converged reports true when it is a positive
// multiple of every and |(c[it] − c[it−every]) / c[it−every]| < tol.
// A zero reference cost never converges: the relative change is undefined.
type Monitor struct {
	every int
	tol   float64
	costs []float64
}

// NewMonitor returns a Monitor with room for capacity costs.
// every < 1 falls back to DefaultCheckEvery, tol <= 0 to DefaultTolerance.
func NewMonitor(every int, tol float64, capacity int) *Monitor {
	if every < 1 {
		every = DefaultCheckEvery
	}
	if !(tol > 0) {
		tol = DefaultTolerance
	}
	if capacity < 0 {
		capacity = 0
	}

	return &Monitor{every: every, tol: tol, costs: make([]float64, 0, capacity)}
}

// Record appends a cost and returns its iteration index.
func (m *Monitor) Record(cost float64) int {
	m.costs = append(m.costs, cost)

	return len(m.costs) - 1
}

// Converged evaluates the rule on the latest recorded cost.
func (m *Monitor) Converged() bool {
	it := len(m.costs) - 1
	if it <= 0 || it%m.every != 0 {
		return false
	}
	cur, ref := m.costs[it], m.costs[it-m.every]
	if ref == 0 {
		return false
	}

	return math.Abs((cur-ref)/ref) < m.tol
}

// Len returns the number of recorded costs.
func (m *Monitor) Len() int { return len(m.costs) }

// Last returns the latest cost, or NaN when nothing was recorded.
func (m *Monitor) Last() float64 {
	if len(m.costs) == 0 {
		return math.NaN()
	}

	return m.costs[len(m.costs)-1]
}

// Costs returns a copy of the trace.
func (m *Monitor) Costs() []float64 {
	out := make([]float64, len(m.costs))
	copy(out, m.costs)

	return out
}
