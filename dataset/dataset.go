// SPDX-License-Identifier: MIT

// Package dataset reads and writes dense matrices as CSV.
//
// One row per line, one value per field, no header unless WithHeader is
// given. Lines starting with '#' are comments.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/esh/matrix"
)

var (
	// ErrEmpty indicates input without data rows.
	ErrEmpty = errors.New("dataset: no rows")

	// ErrRagged indicates rows of different widths.
	ErrRagged = errors.New("dataset: ragged rows")
)

type options struct {
	header bool
	comma  rune
}

// Option configures ReadCSV and LoadCSV.
type Option func(*options)

// WithHeader skips the first record.
func WithHeader() Option { return func(o *options) { o.header = true } }

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) Option { return func(o *options) { o.comma = r } }

// ReadCSV parses a dense matrix. Every value must be a finite float.
func ReadCSV(r io.Reader, opts ...Option) (*matrix.Dense, error) {
	o := options{comma: ','}
	for _, fn := range opts {
		fn(&o)
	}
	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		data []float64
		cols int
		rows int
		line int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		line++
		if o.header && line == 1 {
			continue
		}
		if rows == 0 {
			cols = len(rec)
		} else if len(rec) != cols {
			pos, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("dataset: line %d has %d fields, want %d: %w", pos, len(rec), cols, ErrRagged)
		}
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				pos, col := cr.FieldPos(j)
				return nil, fmt.Errorf("dataset: line %d col %d: %w", pos, col, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if rows == 0 || cols == 0 {
		return nil, ErrEmpty
	}
	m, err := matrix.NewDenseFrom(rows, cols, data)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	return m, nil
}

// LoadCSV opens path and calls ReadCSV.
func LoadCSV(path string, opts ...Option) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, opts...)
}

// WriteCSV writes m with the shortest float formatting that round-trips.
func WriteCSV(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	cw := csv.NewWriter(w)
	rec := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range rec {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("dataset: %w", err)
			}
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}
