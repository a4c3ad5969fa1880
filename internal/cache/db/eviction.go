package db

import "github.com/Borislavv/go-cost-cache/internal/cache/db/model"

// evictUntilWithinLimit detaches least recently used entries while the total cost is at or above
// capacity. The loop stops strictly below capacity, or on an empty store when capacity is zero.
func (s *Store[V]) evictUntilWithinLimit() (evicted []*model.Entry[V]) {
	for s.cost >= s.capacity && s.tail != nil {
		victim := s.tail
		s.detach(victim)
		evicted = append(evicted, victim)
	}
	return evicted
}
