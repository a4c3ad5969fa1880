package telemetry

import (
	"github.com/Borislavv/go-cost-cache/internal/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports cache counters and gauges. It reads the cache on every scrape,
// so it never drifts from Metrics().
type Collector struct {
	cache cache.Stater

	entries     *prometheus.Desc
	cost        *prometheus.Desc
	capacity    *prometheus.Desc
	lookups     *prometheus.Desc
	added       *prometheus.Desc
	rejected    *prometheus.Desc
	bypassed    *prometheus.Desc
	destroyed   *prometheus.Desc
	evictedCost *prometheus.Desc
}

func NewCollector(namespace, subsystem string, c cache.Stater) *Collector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, subsystem, n) }
	return &Collector{
		cache:       c,
		entries:     prometheus.NewDesc(name("entries"), "Number of resident entries.", nil, nil),
		cost:        prometheus.NewDesc(name("cost"), "Sum of the cost of resident entries.", nil, nil),
		capacity:    prometheus.NewDesc(name("capacity"), "Cost budget of the cache.", nil, nil),
		lookups:     prometheus.NewDesc(name("lookups_total"), "Lookups by result.", []string{"result"}, nil),
		added:       prometheus.NewDesc(name("added_total"), "Entries inserted.", nil, nil),
		rejected:    prometheus.NewDesc(name("rejected_total"), "Insertions refused for an invalid key or cost.", nil, nil),
		bypassed:    prometheus.NewDesc(name("bypassed_total"), "Computed values too costly to be cached.", nil, nil),
		destroyed:   prometheus.NewDesc(name("destroyed_total"), "Destructor calls by reason.", []string{"reason"}, nil),
		evictedCost: prometheus.NewDesc(name("evicted_cost_total"), "Cost freed by eviction.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.cost
	ch <- c.capacity
	ch <- c.lookups
	ch <- c.added
	ch <- c.rejected
	ch <- c.bypassed
	ch <- c.destroyed
	ch <- c.evictedCost
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.cache.Metrics()

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.cache.Len()))
	ch <- prometheus.MustNewConstMetric(c.cost, prometheus.GaugeValue, float64(c.cache.Cost()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.cache.Capacity()))

	ch <- prometheus.MustNewConstMetric(c.lookups, prometheus.CounterValue, float64(m.Hits), "hit")
	ch <- prometheus.MustNewConstMetric(c.lookups, prometheus.CounterValue, float64(m.Misses), "miss")

	ch <- prometheus.MustNewConstMetric(c.added, prometheus.CounterValue, float64(m.Added))
	ch <- prometheus.MustNewConstMetric(c.rejected, prometheus.CounterValue, float64(m.Rejected))
	ch <- prometheus.MustNewConstMetric(c.bypassed, prometheus.CounterValue, float64(m.Bypassed))

	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue, float64(m.EvictedItems), "evicted")
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue, float64(m.Replaced), "replaced")
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue, float64(m.Removed), "removed")
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue, float64(m.Cleared), "cleared")

	ch <- prometheus.MustNewConstMetric(c.evictedCost, prometheus.CounterValue, float64(m.EvictedCost))
}
