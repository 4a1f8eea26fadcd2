// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/esh/hashing"
	"github.com/katalvlaran/esh/manifold"
	"github.com/katalvlaran/esh/matrix"
)

var (
	// ErrNoResult indicates FromResult got a nil or empty result.
	ErrNoResult = errors.New("model: empty result")

	// ErrCorrupt indicates a blob that does not decode to a valid model.
	ErrCorrupt = errors.New("model: corrupt data")

	// ErrUnsupported indicates an unknown format version or compression.
	ErrUnsupported = errors.New("model: unsupported format")
)

func modelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Model is a learned hash function plus the metadata of the solve that
// produced it. W is stored row-major.
type Model struct {
	ID         string    `msgpack:"id"`
	Variant    string    `msgpack:"variant"`
	Bits       int       `msgpack:"bits"`
	Features   int       `msgpack:"features"`
	Alpha      float64   `msgpack:"alpha"`
	StepSize   float64   `msgpack:"step_size"`
	Iterations int       `msgpack:"iterations"`
	State      string    `msgpack:"state"`
	Costs      []float64 `msgpack:"costs"`
	W          []float64 `msgpack:"w"`
	CreatedAt  time.Time `msgpack:"created_at"`
}

// FromResult snapshots a solver result into a new Model with a fresh id.
func FromResult(res *manifold.Result) (*Model, error) {
	if res == nil || res.W == nil {
		return nil, modelErrorf("FromResult", ErrNoResult)
	}
	costs := make([]float64, len(res.Costs))
	copy(costs, res.Costs)

	return &Model{
		ID:         uuid.NewString(),
		Variant:    res.Variant.String(),
		Bits:       res.W.Cols(),
		Features:   res.W.Rows(),
		Alpha:      res.Alpha,
		StepSize:   res.StepSize,
		Iterations: res.Iterations,
		State:      res.State.String(),
		Costs:      costs,
		W:          res.W.RawData(),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Validate checks the shape fields against W.
func (m *Model) Validate() error {
	if m.Bits < 1 || m.Features < 1 || len(m.W) != m.Bits*m.Features {
		return modelErrorf("Validate", ErrCorrupt)
	}
	if _, ok := manifold.ParseVariant(m.Variant); !ok {
		return modelErrorf("Validate", fmt.Errorf("%w: variant %q", ErrCorrupt, m.Variant))
	}

	return nil
}

// Projection returns W as a Features×Bits matrix.
func (m *Model) Projection() (*matrix.Dense, error) {
	if err := m.Validate(); err != nil {
		return nil, modelErrorf("Projection", err)
	}
	w, err := matrix.NewDenseFrom(m.Features, m.Bits, m.W)
	if err != nil {
		return nil, modelErrorf("Projection", err)
	}

	return w, nil
}

// Encoder returns a hashing encoder over W.
func (m *Model) Encoder() (*hashing.Encoder, error) {
	w, err := m.Projection()
	if err != nil {
		return nil, modelErrorf("Encoder", err)
	}

	return hashing.NewEncoder(w)
}

// FinalCost returns the last recorded cost, or false if the trace is empty.
func (m *Model) FinalCost() (float64, bool) {
	if len(m.Costs) == 0 {
		return 0, false
	}

	return m.Costs[len(m.Costs)-1], true
}
