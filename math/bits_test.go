package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(8))
	assert.True(t, IsPowerOfTwo(uint64(1<<40)))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(-8))
	assert.False(t, IsPowerOfTwo(12))
}

func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, align, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{13, 16, 16},
		{4097, 4096, 8192},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, AlignUp(c.n, c.align), "AlignUp(%d, %d)", c.n, c.align)
	}
}
