// SPDX-License-Identifier: MIT

package hashing

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	// ErrBitWidth indicates codes (or a code and an index) of different widths.
	ErrBitWidth = errors.New("hashing: bit width mismatch")

	// ErrBadCode indicates a malformed textual code.
	ErrBadCode = errors.New("hashing: malformed code")

	// ErrNoProjection indicates an Encoder without a usable W.
	ErrNoProjection = errors.New("hashing: empty projection")
)

func hashingErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Code is a packed binary code. Bits beyond the code width are zero.
type Code []uint64

// words returns the number of uint64 words holding k bits.
func words(k int) int { return (k + 63) / 64 }

// NewCode returns an all-zero code of k bits.
func NewCode(k int) Code { return make(Code, words(k)) }

// Bit reports bit j.
func (c Code) Bit(j int) bool { return c[j/64]>>(uint(j)%64)&1 == 1 }

// SetBit sets bit j.
func (c Code) SetBit(j int) { c[j/64] |= 1 << (uint(j) % 64) }

// FlipBit toggles bit j.
func (c Code) FlipBit(j int) { c[j/64] ^= 1 << (uint(j) % 64) }

// Clone returns an independent copy.
func (c Code) Clone() Code {
	out := make(Code, len(c))
	copy(out, c)

	return out
}

// Equal reports whether both codes hold the same words.
func (c Code) Equal(o Code) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}

	return true
}

// key is the map key of a code (its words as little-endian bytes).
func (c Code) key() string {
	buf := make([]byte, 8*len(c))
	for i, w := range c {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}

	return string(buf)
}

// String renders the code as lowercase hex, most significant word first.
func (c Code) String() string {
	var b strings.Builder
	for i := len(c) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%016x", c[i])
	}

	return b.String()
}

// ParseCode is the inverse of Code.String for a k-bit code.
func ParseCode(s string, k int) (Code, error) {
	n := words(k)
	if k < 1 || len(s) != 16*n {
		return nil, hashingErrorf("ParseCode", ErrBadCode)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, hashingErrorf("ParseCode", errors.Join(ErrBadCode, err))
	}
	c := make(Code, n)
	for i := 0; i < n; i++ {
		c[n-1-i] = binary.BigEndian.Uint64(raw[8*i:])
	}
	if rem := uint(k) % 64; rem != 0 && c[n-1]>>rem != 0 {
		return nil, hashingErrorf("ParseCode", ErrBadCode)
	}

	return c, nil
}

// Hamming returns the number of differing bits. Codes of different word
// counts report -1.
func Hamming(a, b Code) int {
	if len(a) != len(b) {
		return -1
	}
	var d int
	for i := range a {
		d += bits.OnesCount64(a[i] ^ b[i])
	}

	return d
}
