package cache

import "sync/atomic"

// Metrics holds cumulative (monotonic) counters of a cache.
type Metrics struct {
	Hits         int64 // Get/GetOrAdd found the key
	Misses       int64 // Get/GetOrAdd did not find the key
	Added        int64 // entries inserted by Add
	Replaced     int64 // entries destroyed because Add upserted their key
	Removed      int64 // entries destroyed by Del
	EvictedItems int64 // entries destroyed by capacity pressure
	EvictedCost  int64 // cost freed by capacity pressure
	Cleared      int64 // entries destroyed by Clear or Close
	Destroyed    int64 // destructor invocations, all reasons
	Rejected     int64 // Add calls refused with ErrInvalidKey or ErrInvalidCost
	Bypassed     int64 // GetOrAdd values too costly to ever stay resident
}

type counters struct {
	hits         atomic.Int64
	misses       atomic.Int64
	added        atomic.Int64
	replaced     atomic.Int64
	removed      atomic.Int64
	evictedItems atomic.Int64
	evictedCost  atomic.Int64
	cleared      atomic.Int64
	destroyed    atomic.Int64
	rejected     atomic.Int64
	bypassed     atomic.Int64
}

func newCounters() *counters {
	return &counters{}
}

func (c *counters) snapshot() Metrics {
	return Metrics{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Added:        c.added.Load(),
		Replaced:     c.replaced.Load(),
		Removed:      c.removed.Load(),
		EvictedItems: c.evictedItems.Load(),
		EvictedCost:  c.evictedCost.Load(),
		Cleared:      c.cleared.Load(),
		Destroyed:    c.destroyed.Load(),
		Rejected:     c.rejected.Load(),
		Bypassed:     c.bypassed.Load(),
	}
}
