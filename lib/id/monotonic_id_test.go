package id

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMonotonicNonZeroID(t *testing.T) {
	gen, err := MonotonicNonZeroID()
	assert.Nil(t, err)
	prev := uint64(0)
	for i := 0; i < 1000; i++ {
		n := gen.Number()
		assert.Greater(t, n, prev)
		prev = n
	}
	assert.Equal(t, "1001", gen.Str())
}
