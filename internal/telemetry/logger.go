package telemetry

import (
	"context"
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/Borislavv/go-cost-cache/internal/cache"
	"log/slog"
	"time"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Cache
	logger   *slog.Logger
	cache    cache.Stater
	interval time.Duration
	done     chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.Cache,
	logger *slog.Logger,
	cache cache.Stater,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		cache:    cache,
		interval: cfg.DB.TelemetryLogsInterval,
		done:     make(chan struct{}),
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

// Close stops the loop and waits until it has returned.
func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg != nil && l.cfg.DB.IsTelemetryLogsEnabled && l.interval > 0 {
		go l.loop()
	} else {
		close(l.done)
	}
	return l
}

func (l *Logs) loop() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	s := newSampler(l.cache)
	prev := s.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			prev = l.report(prev, cur)
		}
	}
}

// report logs one interval and returns cur as the next baseline.
func (l *Logs) report(prev, cur snapshot) snapshot {
	d := deltaSnapshot(prev, cur)
	common := []any{"interval", l.interval.String()}

	l.logger.Info("lookups",
		append(common,
			"hits", int64(d.hits),
			"misses", int64(d.misses),
			"hit_ratio", d.hitRatio(),
			"added", int64(d.added),
			"rejected", int64(d.rejected),
			"bypassed", int64(d.bypassed),
		)...,
	)

	if d.destroyed > 0 {
		l.logger.Info("destructions",
			append(common,
				"evicted_items", int64(d.evictedItems),
				"evicted_cost", int64(d.evictedCost),
				"replaced", int64(d.replaced),
				"removed", int64(d.removed),
				"cleared", int64(d.cleared),
				"total", int64(d.destroyed),
			)...,
		)
	}

	capacity := l.cache.Capacity()
	cost := l.cache.Cost()
	var usage float64
	if capacity > 0 {
		usage = float64(cost) / float64(capacity)
	}
	l.logger.Info("storage",
		append(common,
			"entries", l.cache.Len(),
			"cost", cost,
			"capacity", capacity,
			"usage", usage,
		)...,
	)

	return cur
}
