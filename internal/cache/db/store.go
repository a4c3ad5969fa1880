// Package db implements the single-threaded storage behind the cache: a hash index over
// exact byte keys, an intrusive recency list and the cost-driven eviction loop.
// Nothing here is safe for concurrent use; the caller serializes every call.
//
// Entries returned by Set, Remove and Clear have already left the store but are not
// released yet. The caller must Release each of them exactly once.
package db

import (
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/Borislavv/go-cost-cache/internal/cache/db/model"
)

// Store is a cost-bounded LRU store.
type Store[V any] struct {
	shadow   bool   // keep duplicates instead of replacing them
	capacity int64  // immutable
	cost     int64  // sum of resident entries' cost
	len      int64  // number of resident entries, shadowed ones included
	clock    uint64 // logical clock, ticks on every insert and every hit

	items map[uint64][]*model.Entry[V] // hash -> entries, oldest insert first

	head *model.Entry[V] // most recently used
	tail *model.Entry[V] // least recently used, next victim
}

func NewStore[V any](cfg *config.Cache) *Store[V] {
	capacity := cfg.DB.Capacity
	if capacity < 0 {
		capacity = 0
	}
	return &Store[V]{
		shadow:   cfg.DB.IsShadow,
		capacity: capacity,
		items:    make(map[uint64][]*model.Entry[V]),
	}
}

func (s *Store[V]) Len() int64        { return s.len }
func (s *Store[V]) Cost() int64       { return s.cost }
func (s *Store[V]) Capacity() int64   { return s.capacity }
func (s *Store[V]) Clock() uint64     { return s.clock }
func (s *Store[V]) IsShadowing() bool { return s.shadow }

// Set inserts e as the most recently used entry and evicts until the cost is back under capacity.
// In upsert mode a resident entry with the same key is detached and returned as replaced.
// e itself may be among evicted when its cost alone reaches the capacity.
func (s *Store[V]) Set(e *model.Entry[V]) (replaced *model.Entry[V], evicted []*model.Entry[V]) {
	if !s.shadow {
		if old := s.lookup(e.Hash(), e.Key()); old != nil {
			s.detach(old)
			replaced = old
		}
	}

	e.Touch(s.tick())
	s.index(e)
	s.pushFront(e)
	s.cost += e.Cost()
	s.len++

	if s.cost >= s.capacity {
		evicted = s.evictUntilWithinLimit()
	}
	return replaced, evicted
}

// Get finds the visible entry for key and marks it as the most recently used.
func (s *Store[V]) Get(key []byte) (*model.Entry[V], bool) {
	e := s.lookup(model.Hash(key), key)
	if e == nil {
		return nil, false
	}
	e.Touch(s.tick())
	s.moveToFront(e)
	return e, true
}

// Peek finds the visible entry for key without touching recency or the clock.
func (s *Store[V]) Peek(key []byte) (*model.Entry[V], bool) {
	e := s.lookup(model.Hash(key), key)
	return e, e != nil
}

// Remove detaches the visible entry for key. In shadow mode the next older entry becomes visible.
func (s *Store[V]) Remove(key []byte) (*model.Entry[V], bool) {
	e := s.lookup(model.Hash(key), key)
	if e == nil {
		return nil, false
	}
	s.detach(e)
	return e, true
}

// Clear detaches every entry from the least recently used one on. Capacity and clock are kept.
func (s *Store[V]) Clear() (detached []*model.Entry[V]) {
	if s.len == 0 {
		return nil
	}
	detached = make([]*model.Entry[V], 0, s.len)
	for e := s.tail; e != nil; e = e.Prev() {
		detached = append(detached, e)
	}
	for _, e := range detached {
		e.SetPrev(nil)
		e.SetNext(nil)
	}

	clear(s.items)
	s.head, s.tail = nil, nil
	s.cost, s.len = 0, 0
	return detached
}

func (s *Store[V]) tick() uint64 {
	now := s.clock
	s.clock++
	return now
}

// detach removes e from the index and the recency list and takes its cost off the total.
func (s *Store[V]) detach(e *model.Entry[V]) {
	s.unindex(e)
	s.unlink(e)
	s.cost -= e.Cost()
	s.len--
}
