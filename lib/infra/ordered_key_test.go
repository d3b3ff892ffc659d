package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedKeyCompare(t *testing.T) {
	require.Equal(t, int64(0), OrderedKeyCompare[uint64](1, 1))
	require.Equal(t, int64(1), OrderedKeyCompare[uint64](2, 1))
	require.Equal(t, int64(-1), OrderedKeyCompare[uint64](1, 2))
	require.Equal(t, int64(1), OrderedKeyCompare("abc", "abb"))
	require.Equal(t, int64(-1), OrderedKeyCompare(1.5, 2.5))
	require.Equal(t, int64(0), OrderedKeyCompare(int8(-7), int8(-7)))
}

func TestReverse(t *testing.T) {
	desc := Reverse[int64](OrderedKeyCompare[int64])
	require.Equal(t, int64(-1), desc(2, 1))
	require.Equal(t, int64(1), desc(1, 2))
	require.Equal(t, int64(0), desc(7, 7))
}
