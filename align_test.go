package dandy_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/dandy"
)

func alignStrings(a, b string) []dandy.Pair {
	return dandy.Align(func(i, j int) bool { return a[i] == b[j] }, len(a), len(b))
}

func TestAlign(t *testing.T) {
	for _, tc := range []struct {
		a, b     string
		expected []dandy.Pair
	}{
		{"", "", nil},
		{"abc", "", nil},
		{"", "abc", nil},
		{"abc", "xyz", nil},
		{"abc", "abc", []dandy.Pair{{0, 0}, {1, 1}, {2, 2}}},
		{"bc", "abc", []dandy.Pair{{0, 1}, {1, 2}}},
		{"abc", "ac", []dandy.Pair{{0, 0}, {2, 1}}},
		{"ab", "ba", []dandy.Pair{{0, 1}}},
		{"axxxxb", "ab", []dandy.Pair{{0, 0}, {5, 1}}},
	} {
		require.Equal(t, tc.expected, alignStrings(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestAlignerIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := "abcd"

	randomString := func() string {
		b := make([]byte, rng.Intn(20))
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	for i := 0; i < 200; i++ {
		a, b := randomString(), randomString()
		pairs := alignStrings(a, b)

		prev := dandy.Pair{A: -1, B: -1}
		for _, pair := range pairs {
			require.Greater(t, pair.A, prev.A)
			require.Greater(t, pair.B, prev.B)
			require.Less(t, pair.A, len(a))
			require.Less(t, pair.B, len(b))
			require.Equal(t, a[pair.A], b[pair.B])
			prev = pair
		}

		if a == b {
			require.Len(t, pairs, len(a))
		}
	}
}

func TestAlignerNext(t *testing.T) {
	calls := 0
	al := dandy.NewAligner(func(a, b int) bool {
		calls++
		return a == b
	}, 3, 3)

	pair, ok := al.Next()
	require.True(t, ok)
	require.Equal(t, dandy.Pair{A: 0, B: 0}, pair)
	require.Equal(t, 1, calls)

	_, _ = al.Next()
	_, _ = al.Next()
	_, ok = al.Next()
	require.False(t, ok)
	_, ok = al.Next()
	require.False(t, ok)
}
