package telemetry

import "github.com/Borislavv/go-cost-cache/internal/cache"

type sampler struct {
	cache cache.Stater
}

func newSampler(c cache.Stater) sampler {
	return sampler{cache: c}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	hits   uint64
	misses uint64

	added    uint64
	rejected uint64
	bypassed uint64

	replaced     uint64
	removed      uint64
	evictedItems uint64
	evictedCost  uint64
	cleared      uint64
	destroyed    uint64
}

func (s sampler) snapshot() snapshot {
	m := s.cache.Metrics()
	return snapshot{
		hits:   uint64(max(m.Hits, 0)),
		misses: uint64(max(m.Misses, 0)),

		added:    uint64(max(m.Added, 0)),
		rejected: uint64(max(m.Rejected, 0)),
		bypassed: uint64(max(m.Bypassed, 0)),

		replaced:     uint64(max(m.Replaced, 0)),
		removed:      uint64(max(m.Removed, 0)),
		evictedItems: uint64(max(m.EvictedItems, 0)),
		evictedCost:  uint64(max(m.EvictedCost, 0)),
		cleared:      uint64(max(m.Cleared, 0)),
		destroyed:    uint64(max(m.Destroyed, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:   delta(prev.hits, cur.hits),
		misses: delta(prev.misses, cur.misses),

		added:    delta(prev.added, cur.added),
		rejected: delta(prev.rejected, cur.rejected),
		bypassed: delta(prev.bypassed, cur.bypassed),

		replaced:     delta(prev.replaced, cur.replaced),
		removed:      delta(prev.removed, cur.removed),
		evictedItems: delta(prev.evictedItems, cur.evictedItems),
		evictedCost:  delta(prev.evictedCost, cur.evictedCost),
		cleared:      delta(prev.cleared, cur.cleared),
		destroyed:    delta(prev.destroyed, cur.destroyed),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}

// hitRatio returns hits / lookups, or 0 without lookups.
func (s snapshot) hitRatio() float64 {
	lookups := s.hits + s.misses
	if lookups == 0 {
		return 0
	}
	return float64(s.hits) / float64(lookups)
}
