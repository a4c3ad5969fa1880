package model

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-cost-cache/model"
)

var ErrDoubleRelease = errors.New("cache entry released twice")

type Entry[V any] struct {
	key      []byte              // private copy, callers may reuse their buffer
	hash     uint64              // xxh3 of key
	value    V                   // owned by the cache until Release
	cost     int64               // weight against the capacity budget
	recency  uint64              // logical clock value of the last insert/hit
	destroy  model.Destructor[V] // nil means the value owns nothing but memory
	released bool

	// recency list links: prev is the more recently used neighbour
	prev *Entry[V]
	next *Entry[V]
}

// NewEntry copies key and takes ownership of value.
func NewEntry[V any](key []byte, value V, cost int64, destroy model.Destructor[V]) *Entry[V] {
	k := make([]byte, len(key))
	copy(k, key)
	return &Entry[V]{
		key:     k,
		hash:    Hash(k),
		value:   value,
		cost:    cost,
		destroy: model.DestructorFor(value, destroy),
	}
}

func (e *Entry[V]) Value() V           { return e.value }
func (e *Entry[V]) Cost() int64        { return e.cost }
func (e *Entry[V]) Recency() uint64    { return e.recency }
func (e *Entry[V]) IsReleased() bool   { return e.released }
func (e *Entry[V]) Touch(clock uint64) { e.recency = clock }

func (e *Entry[V]) Prev() *Entry[V]     { return e.prev }
func (e *Entry[V]) Next() *Entry[V]     { return e.next }
func (e *Entry[V]) SetPrev(p *Entry[V]) { e.prev = p }
func (e *Entry[V]) SetNext(n *Entry[V]) { e.next = n }

// Release runs the destructor. It must be called exactly once, after the entry left the store.
func (e *Entry[V]) Release() {
	if e.released {
		panic(fmt.Errorf("%w: key %x", ErrDoubleRelease, e.key))
	}
	e.released = true

	if e.destroy != nil {
		e.destroy(e.value)
	}

	var zero V
	e.value = zero
	e.destroy = nil
}
