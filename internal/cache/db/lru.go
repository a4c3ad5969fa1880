package db

import "github.com/Borislavv/go-cost-cache/internal/cache/db/model"

// pushFront makes e the head of the recency list.
func (s *Store[V]) pushFront(e *model.Entry[V]) {
	e.SetPrev(nil)
	e.SetNext(s.head)
	if s.head != nil {
		s.head.SetPrev(e)
	}
	s.head = e

	// the very first entry is the head and the tail at the same time
	if s.tail == nil {
		s.tail = e
	}
}

// moveToFront marks e as the most recently used.
func (s *Store[V]) moveToFront(e *model.Entry[V]) {
	if e == s.head {
		return
	}
	s.unlink(e)
	s.pushFront(e)
}

// unlink removes e from the recency list.
func (s *Store[V]) unlink(e *model.Entry[V]) {
	if prev := e.Prev(); prev != nil {
		prev.SetNext(e.Next())
	} else {
		s.head = e.Next()
	}
	if next := e.Next(); next != nil {
		next.SetPrev(e.Prev())
	} else {
		s.tail = e.Prev()
	}
	e.SetPrev(nil)
	e.SetNext(nil)
}

// Walk visits entries from the most to the least recently used until fn returns false.
func (s *Store[V]) Walk(fn func(e *model.Entry[V]) bool) {
	for e := s.head; e != nil; e = e.Next() {
		if !fn(e) {
			return
		}
	}
}
