// SPDX-License-Identifier: MIT
package hashing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/esh/hashing"
)

func codeOf(k int, set ...int) hashing.Code {
	c := hashing.NewCode(k)
	for _, j := range set {
		c.SetBit(j)
	}

	return c
}

func TestCode_Bits(t *testing.T) {
	c := codeOf(70, 0, 63, 64, 69)
	require.Len(t, c, 2)
	for _, j := range []int{0, 63, 64, 69} {
		assert.True(t, c.Bit(j), "bit %d", j)
	}
	assert.False(t, c.Bit(1))

	c.FlipBit(63)
	assert.False(t, c.Bit(63))
	assert.Equal(t, uint64(1), c[0])
}

func TestCode_StringRoundTrip(t *testing.T) {
	c := codeOf(70, 0, 5, 69)
	s := c.String()
	require.Len(t, s, 32)
	assert.Equal(t, "0000000000000020"+"0000000000000021", s)

	back, err := hashing.ParseCode(s, 70)
	require.NoError(t, err)
	assert.True(t, back.Equal(c))
}

func TestParseCode_Rejects(t *testing.T) {
	cases := map[string]struct {
		s string
		k int
	}{
		"short":      {"00ff", 8},
		"not hex":    {"zz00000000000000", 8},
		"zero width": {"0000000000000000", 0},
		"stray bits": {"0000000000000100", 8},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := hashing.ParseCode(tc.s, tc.k)
			require.ErrorIs(t, err, hashing.ErrBadCode)
		})
	}
}

func TestHamming(t *testing.T) {
	a := codeOf(100, 1, 2, 99)
	b := codeOf(100, 2, 3)
	assert.Equal(t, 3, hashing.Hamming(a, b))
	assert.Equal(t, 0, hashing.Hamming(a, a))
	assert.Equal(t, -1, hashing.Hamming(a, hashing.NewCode(8)))
}
