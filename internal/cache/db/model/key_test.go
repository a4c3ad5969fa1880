package model

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestHash_Deterministic returns the same hash for equal bytes.
func TestHash_Deterministic(t *testing.T) {
	require.Equal(t, Hash([]byte("test")), Hash([]byte("test")))
	require.NotEqual(t, Hash([]byte("test")), Hash([]byte("different")))
}

// TestEntry_IsTheSame compares keys by exact bytes.
func TestEntry_IsTheSame(t *testing.T) {
	e := NewEntry[int]([]byte("key"), 1, 1, nil)

	require.True(t, e.IsTheSame(Hash([]byte("key")), []byte("key")))
	require.False(t, e.IsTheSame(Hash([]byte("kez")), []byte("kez")))
}

// TestEntry_IsTheSame_ForgedHash rejects a different key even when the hash matches.
func TestEntry_IsTheSame_ForgedHash(t *testing.T) {
	e := NewEntry[int]([]byte("key"), 1, 1, nil)
	require.False(t, e.IsTheSame(e.Hash(), []byte("other")), "bytes must decide, not the hash")
}

// TestEntry_EmptyKey is a valid key.
func TestEntry_EmptyKey(t *testing.T) {
	e := NewEntry[int](nil, 1, 1, nil)
	require.True(t, e.IsTheSame(Hash(nil), []byte{}))
}
