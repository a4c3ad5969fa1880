package cache

import (
	"context"
	"fmt"
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/Borislavv/go-cost-cache/internal/cache/db"
	dbmodel "github.com/Borislavv/go-cost-cache/internal/cache/db/model"
	"github.com/Borislavv/go-cost-cache/model"
	"log/slog"
	"sync"
)

// Stater is the non-generic, read-only view used by telemetry.
type Stater interface {
	Len() int64
	Cost() int64
	Capacity() int64
	Metrics() Metrics
}

type Cacher[V any] interface {
	Stater
	Add(key []byte, value V, cost int64, destroy model.Destructor[V]) error
	Get(key []byte) (value V, ok bool)
	GetOrAdd(key []byte, compute model.Compute[V]) (value V, owned bool, err error)
	Contains(key []byte) bool
	Del(key []byte) (ok bool)
	Clear()
}

// Cache serializes every operation on one store behind a single mutex. Destructors of the entries
// an operation detached run after the mutex is released, before the operation returns.
type Cache[V any] struct {
	mu        sync.Mutex
	ctx       context.Context
	cfg       *config.Cache
	db        *db.Store[V]
	logger    *slog.Logger
	counters  *counters
	destroyed bool
}

func New[V any](ctx context.Context, cfg *config.Cache, logger *slog.Logger) *Cache[V] {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.AdjustConfig()

	c := &Cache[V]{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		counters: newCounters(),
		db:       db.NewStore[V](cfg),
	}
	logger.Info("cache is created",
		"capacity", c.db.Capacity(),
		"max_key_len", cfg.DB.MaxKeyLen,
		"on_duplicate", string(cfg.DB.OnDuplicate),
	)
	return c
}

// Add transfers ownership of value to the cache. On error the caller still owns value.
func (c *Cache[V]) Add(key []byte, value V, cost int64, destroy model.Destructor[V]) error {
	if err := c.validate(key, cost); err != nil {
		c.counters.rejected.Add(1)
		return err
	}
	entry := dbmodel.NewEntry(key, value, cost, destroy)

	c.lock("add")
	replaced, evicted := c.db.Set(entry)
	c.mu.Unlock()

	c.counters.added.Add(1)
	if replaced != nil {
		c.counters.replaced.Add(1)
		c.release(replaced)
	}
	if len(evicted) > 0 {
		c.releaseEvicted(evicted)
	}
	return nil
}

// Get returns a borrowed value: the caller must not destroy it and must not use it after the
// next mutating call (Add, GetOrAdd, Del, Clear, Close).
func (c *Cache[V]) Get(key []byte) (value V, ok bool) {
	c.lock("get")
	entry, ok := c.db.Get(key)
	if ok {
		value = entry.Value()
	}
	c.mu.Unlock()

	if ok {
		c.counters.hits.Add(1)
	} else {
		c.counters.misses.Add(1)
	}
	return value, ok
}

// GetOrAdd returns the cached value for key or computes and caches it.
// A computed value whose cost reaches the capacity would be destroyed by its own insertion, so it
// is returned uncached with owned set: the caller is responsible for releasing it. The same holds
// when compute reports a negative cost (err wraps ErrInvalidCost).
func (c *Cache[V]) GetOrAdd(key []byte, compute model.Compute[V]) (value V, owned bool, err error) {
	if err = c.validateKey(key); err != nil {
		c.counters.rejected.Add(1)
		return value, false, err
	}
	if value, ok := c.Get(key); ok {
		return value, false, nil
	}

	computed, cost, destroy, err := compute()
	if err != nil {
		return value, false, err
	}
	if cost >= 0 && cost >= c.Capacity() {
		c.counters.bypassed.Add(1)
		return computed, true, nil
	}
	if err = c.Add(key, computed, cost, destroy); err != nil {
		return computed, true, err
	}
	return computed, false, nil
}

// Contains reports whether key is resident without touching its recency.
func (c *Cache[V]) Contains(key []byte) bool {
	c.lock("contains")
	_, ok := c.db.Peek(key)
	c.mu.Unlock()
	return ok
}

// Del destroys the entry stored under key.
func (c *Cache[V]) Del(key []byte) bool {
	c.lock("del")
	entry, ok := c.db.Remove(key)
	c.mu.Unlock()

	if ok {
		c.counters.removed.Add(1)
		c.release(entry)
	}
	return ok
}

// Clear destroys every resident entry. Capacity and the logical clock are kept.
func (c *Cache[V]) Clear() {
	c.lock("clear")
	detached := c.db.Clear()
	c.mu.Unlock()

	c.releaseCleared(detached)
}

// Destroy clears the cache and invalidates it. Any later call except Destroy and the
// read-only stats panics with ErrUseAfterDestroy.
func (c *Cache[V]) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	detached := c.db.Clear()
	c.mu.Unlock()

	c.releaseCleared(detached)
	c.logger.Info("cache is destroyed", "released_items", len(detached))
}

func (c *Cache[V]) Len() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Len()
}

func (c *Cache[V]) Cost() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Cost()
}

func (c *Cache[V]) Capacity() int64  { return c.db.Capacity() }
func (c *Cache[V]) Metrics() Metrics { return c.counters.snapshot() }

/**
 * Private API.
 */

// lock acquires the mutex of a live cache. Using a destroyed cache is a programming error.
func (c *Cache[V]) lock(op string) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		panic(fmt.Errorf("%w: %s", ErrUseAfterDestroy, op))
	}
}

func (c *Cache[V]) validate(key []byte, cost int64) error {
	if err := c.validateKey(key); err != nil {
		return err
	}
	if cost < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidCost, cost)
	}
	return nil
}

func (c *Cache[V]) validateKey(key []byte) error {
	if len(key) > c.cfg.DB.MaxKeyLen {
		return fmt.Errorf("%w: length %d exceeds %d bytes", ErrInvalidKey, len(key), c.cfg.DB.MaxKeyLen)
	}
	return nil
}

func (c *Cache[V]) release(entry *dbmodel.Entry[V]) {
	entry.Release()
	c.counters.destroyed.Add(1)
}

func (c *Cache[V]) releaseEvicted(evicted []*dbmodel.Entry[V]) {
	var freed int64
	for _, entry := range evicted {
		freed += entry.Cost()
		c.release(entry)
	}
	c.counters.evictedItems.Add(int64(len(evicted)))
	c.counters.evictedCost.Add(freed)

	if c.logger.Enabled(c.ctx, slog.LevelDebug) {
		c.logger.DebugContext(c.ctx, "evicted entries", "items", len(evicted), "freed_cost", freed)
	}
}

func (c *Cache[V]) releaseCleared(detached []*dbmodel.Entry[V]) {
	for _, entry := range detached {
		c.release(entry)
	}
	c.counters.cleared.Add(int64(len(detached)))
}
