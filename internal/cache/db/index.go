package db

import (
	"github.com/Borislavv/go-cost-cache/internal/cache/db/model"
	"slices"
)

// lookup returns the newest entry stored under key. Buckets hold more than one entry only on
// a hash collision or, in shadow mode, for duplicated keys.
func (s *Store[V]) lookup(hash uint64, key []byte) *model.Entry[V] {
	bucket := s.items[hash]
	for i := len(bucket) - 1; i >= 0; i-- {
		if bucket[i].IsTheSame(hash, key) {
			return bucket[i]
		}
	}
	return nil
}

func (s *Store[V]) index(e *model.Entry[V]) {
	s.items[e.Hash()] = append(s.items[e.Hash()], e)
}

func (s *Store[V]) unindex(e *model.Entry[V]) {
	hash := e.Hash()
	bucket := s.items[hash]
	i := slices.Index(bucket, e)
	if i < 0 {
		return
	}
	if len(bucket) == 1 {
		delete(s.items, hash)
		return
	}
	s.items[hash] = slices.Delete(bucket, i, i+1)
}
