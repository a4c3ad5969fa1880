package costcache

import "github.com/Borislavv/go-cost-cache/internal/cache"

var (
	ErrInvalidKey      = cache.ErrInvalidKey
	ErrInvalidCost     = cache.ErrInvalidCost
	ErrUseAfterDestroy = cache.ErrUseAfterDestroy
)

// Metrics holds cumulative counters of a cache.
type Metrics = cache.Metrics
