package model

import (
	"bytes"
	"github.com/zeebo/xxh3"
)

// Hash returns the index hash of a key. Collisions are resolved by IsTheSame.
func Hash(key []byte) uint64 {
	return xxh3.Hash(key)
}

func (e *Entry[V]) Key() []byte  { return e.key }
func (e *Entry[V]) Hash() uint64 { return e.hash }

// IsTheSame compares by exact bytes; the hash only short-circuits mismatches.
func (e *Entry[V]) IsTheSame(hash uint64, key []byte) bool {
	return e.hash == hash && bytes.Equal(e.key, key)
}
