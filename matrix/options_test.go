// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/esh/matrix"
)

func TestNewOptions_Defaults(t *testing.T) {
	o := matrix.NewOptions()
	if o.Epsilon() != matrix.DefaultEpsilon {
		t.Fatalf("eps default mismatch: got %v, want %v", o.Epsilon(), matrix.DefaultEpsilon)
	}
	if o.ValidateNaNInf() != matrix.DefaultValidateNaNInf {
		t.Fatalf("validateNaNInf default mismatch: got %v", o.ValidateNaNInf())
	}
}

func TestNewOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewOptions(matrix.WithNoValidateNaNInf(), nil, matrix.WithValidateNaNInf(), matrix.WithEpsilon(1e-3))
	if !o.ValidateNaNInf() || o.Epsilon() != 1e-3 {
		t.Fatalf("options = %+v", o)
	}
}

func TestWithEpsilon_PanicsOnInvalid(t *testing.T) {
	for _, eps := range []float64{-1, math.NaN(), math.Inf(1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("WithEpsilon(%v) did not panic", eps)
				}
			}()
			_ = matrix.WithEpsilon(eps)
		}()
	}
}
