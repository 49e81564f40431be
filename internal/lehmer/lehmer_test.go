package lehmer_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/leapsbounds/internal/lehmer"
)

func TestMaxValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 6},
		{4, 24},
		{5, 120},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, lehmer.MaxValue(tc.n))
	}
}

func TestEncodeIdentityIsZero(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}

		require.Equal(t, 0, lehmer.Encode(perm))
	}
}

func TestEncodeIsABijection(t *testing.T) {
	t.Parallel()

	// n=5 is small enough to enumerate all 120 permutations exhaustively
	// and check that Encode assigns each one a distinct id in [0, 120).
	const n = 5

	perm := []int{0, 1, 2, 3, 4}
	seen := make(map[int]bool)

	var permute func(k int)
	permute = func(k int) {
		if k == len(perm) {
			id := lehmer.Encode(perm)
			require.GreaterOrEqual(t, id, 0)
			require.Less(t, id, lehmer.MaxValue(n))
			require.False(t, seen[id], "id %d produced by more than one permutation", id)
			seen[id] = true

			return
		}

		for i := k; i < len(perm); i++ {
			perm[k], perm[i] = perm[i], perm[k]
			permute(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}

	permute(0)
	require.Len(t, seen, lehmer.MaxValue(n))
}

func TestEncodeKnownValues(t *testing.T) {
	t.Parallel()

	// Worked examples for n=3: 3! = 6 permutations, lexicographic order
	// of the Lehmer code matches lexicographic order of the permutation.
	cases := []struct {
		perm []int
		want int
	}{
		{[]int{0, 1, 2}, 0},
		{[]int{0, 2, 1}, 1},
		{[]int{1, 0, 2}, 2},
		{[]int{1, 2, 0}, 3},
		{[]int{2, 0, 1}, 4},
		{[]int{2, 1, 0}, 5},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, lehmer.Encode(tc.perm))
	}
}

func TestEncodeRandomPermutationsStayInRange(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(8)
		perm := rng.Perm(n)

		id := lehmer.Encode(perm)
		require.GreaterOrEqual(t, id, 0)
		require.Less(t, id, lehmer.MaxValue(n))
	}
}
