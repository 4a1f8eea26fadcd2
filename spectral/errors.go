// SPDX-License-Identifier: MIT

package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrBadK indicates k < 1 or k greater than the matrix order.
	ErrBadK = errors.New("spectral: k out of range")

	// ErrFactorize indicates the backend failed to factorize the input.
	ErrFactorize = errors.New("spectral: factorization failed")
)

func spectralErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
