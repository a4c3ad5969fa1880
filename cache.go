package costcache

import (
	"context"
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/Borislavv/go-cost-cache/internal/cache"
	"github.com/Borislavv/go-cost-cache/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"io"
	"log/slog"
)

type CostCache[V any] interface {
	cache.Cacher[V]
	telemetry.Logger
	Collector() prometheus.Collector
	io.Closer
}

type Cache[V any] struct {
	*cache.Cache[V]
	telemetry.Logger
	collector *telemetry.Collector
	cls       context.CancelFunc
}

var _ CostCache[[]byte] = (*Cache[[]byte])(nil)

// New creates a cost-bounded LRU cache. Stat logs start when cfg.DB.IsTelemetryLogsEnabled is set.
func New[V any](ctx context.Context, cfg *config.Cache, logger *slog.Logger) *Cache[V] {
	if cfg == nil {
		cfg = &config.Cache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	cacher := cache.New[V](ctx, cfg, logger)
	namespace, subsystem := cfg.Namespace()

	return &Cache[V]{
		Cache:     cacher,
		Logger:    telemetry.New(ctx, cfg, logger, cacher),
		collector: telemetry.NewCollector(namespace, subsystem, cacher),
		cls:       cancel,
	}
}

// Collector exposes the cache to a prometheus.Registerer.
func (c *Cache[V]) Collector() prometheus.Collector {
	return c.collector
}

// Close stops stat logs and destroys every resident value. It is idempotent;
// any other call but the stats afterward panics with ErrUseAfterDestroy.
func (c *Cache[V]) Close() error {
	c.cls()
	err := c.Logger.Close()
	c.Cache.Destroy()
	return err
}
