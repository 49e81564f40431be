package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/leapsbounds/internal/bitset"
)

func TestInsertAndContains(t *testing.T) {
	t.Parallel()

	s := bitset.New(130)
	require.Equal(t, 0, s.Len())

	s.Insert(0)
	s.Insert(64)
	s.Insert(129)
	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains(0))
	require.True(t, s.Contains(64))
	require.True(t, s.Contains(129))
	require.False(t, s.Contains(1))

	s.Insert(0) // duplicate insert must not double-count
	require.Equal(t, 3, s.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := bitset.New(10)
	s.Insert(3)

	clone := s.Clone()
	clone.Insert(7)

	require.False(t, s.Contains(7), "mutating the clone must not affect the original")
	require.True(t, clone.Contains(3))
	require.True(t, clone.Contains(7))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 2, clone.Len())
}

func TestBytesRoundTrip(t *testing.T) {
	t.Parallel()

	s := bitset.New(37)
	for _, bit := range []int{0, 1, 8, 15, 36} {
		s.Insert(bit)
	}

	packed := s.Bytes()
	restored := bitset.FromBytes(37, packed)

	require.Equal(t, s.Len(), restored.Len())

	for i := 0; i < 37; i++ {
		require.Equal(t, s.Contains(i), restored.Contains(i), "bit %d", i)
	}
}
