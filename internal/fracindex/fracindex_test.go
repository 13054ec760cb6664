package fracindex

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyBetween_EmptyOrder(t *testing.T) {
	k, err := KeyBetween("", "")
	require.NoError(t, err)
	require.Equal(t, "a0", k)
}

func TestKeyBetween_Append(t *testing.T) {
	tests := []struct{ a, want string }{
		{"a0", "a1"},
		{"a1", "a2"},
		{"az", "b00"},
		{"b00", "b01"},
	}
	for _, tt := range tests {
		got, err := KeyBetween(tt.a, "")
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestKeyBetween_Prepend(t *testing.T) {
	tests := []struct{ b, want string }{
		{"a0", "Zz"},
		{"Zz", "Zy"},
	}
	for _, tt := range tests {
		got, err := KeyBetween("", tt.b)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestKeyBetween_Middle(t *testing.T) {
	got, err := KeyBetween("a0", "a1")
	require.NoError(t, err)
	require.Equal(t, "a0V", got)
}

func TestKeyBetween_Ordering(t *testing.T) {
	a, b := "a0", "a1"
	// Squeeze keys against the lower bound; every result must stay strictly
	// inside (a, b) and the sequence must keep descending toward a.
	prev := b
	for i := 0; i < 50; i++ {
		k, err := KeyBetween(a, prev)
		require.NoError(t, err)
		require.Greater(t, k, a)
		require.Less(t, k, prev)
		prev = k
	}
}

func TestKeyBetween_AppendChainSorted(t *testing.T) {
	var keys []string
	k := ""
	for i := 0; i < 200; i++ {
		next, err := KeyBetween(k, "")
		require.NoError(t, err)
		keys = append(keys, next)
		k = next
	}
	require.True(t, sort.StringsAreSorted(keys))
}

func TestKeyBetween_RejectsBadArguments(t *testing.T) {
	for _, tt := range []struct{ a, b string }{
		{"a1", "a0"},
		{"a0", "a0"},
		{"a00", ""},
		{"", "x"},
	} {
		_, err := KeyBetween(tt.a, tt.b)
		require.ErrorIs(t, err, ErrInvalidKey, "KeyBetween(%q, %q)", tt.a, tt.b)
	}
}

func TestValidate(t *testing.T) {
	for _, key := range []string{"a0", "a1", "Zz", "a0V", "b0000", "a0V3"} {
		require.NoError(t, Validate(key), "key %q", key)
	}
	for _, key := range []string{"", "a00", "a0V0", "0", "!", "a", "A00000000000000000000000000"} {
		require.ErrorIs(t, Validate(key), ErrInvalidKey, "key %q", key)
	}
}

func TestNKeysBetween(t *testing.T) {
	keys, err := NKeysBetween("", "", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"a0", "a1", "a2"}, keys)

	keys, err = NKeysBetween("a0", "a1", 7)
	require.NoError(t, err)
	require.Len(t, keys, 7)
	require.True(t, sort.StringsAreSorted(keys))
	require.Greater(t, keys[0], "a0")
	require.Less(t, keys[len(keys)-1], "a1")

	keys, err = NKeysBetween("", "a0", 4)
	require.NoError(t, err)
	require.Len(t, keys, 4)
	require.True(t, sort.StringsAreSorted(keys))
	require.Less(t, keys[len(keys)-1], "a0")

	keys, err = NKeysBetween("", "", 0)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestNKeysBetween_AllValid(t *testing.T) {
	keys, err := NKeysBetween("", "", 100)
	require.NoError(t, err)
	for _, k := range keys {
		require.NoError(t, Validate(k))
	}
	require.True(t, sort.StringsAreSorted(keys))
}
