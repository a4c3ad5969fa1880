package telemetry

import (
	"github.com/Borislavv/go-cost-cache/internal/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"testing"
)

func gather(t *testing.T, c prometheus.Collector) map[string]*dto.MetricFamily {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}
	return byName
}

func labeled(f *dto.MetricFamily, name, value string) float64 {
	for _, m := range f.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == name && l.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return -1
}

// TestCollector_ExportsEveryMetric reports gauges and counters under the configured namespace.
func TestCollector_ExportsEveryMetric(t *testing.T) {
	stats := &stubStats{
		len:      2,
		cost:     60,
		capacity: 100,
		metrics: cache.Metrics{
			Hits: 7, Misses: 3, Added: 5, Replaced: 1, Removed: 1,
			EvictedItems: 2, EvictedCost: 70, Cleared: 0, Destroyed: 4,
			Rejected: 1, Bypassed: 1,
		},
	}
	families := gather(t, NewCollector("costcache", "blocks", stats))

	require.Equal(t, 2.0, families["costcache_blocks_entries"].GetMetric()[0].GetGauge().GetValue())
	require.Equal(t, 60.0, families["costcache_blocks_cost"].GetMetric()[0].GetGauge().GetValue())
	require.Equal(t, 100.0, families["costcache_blocks_capacity"].GetMetric()[0].GetGauge().GetValue())

	lookups := families["costcache_blocks_lookups_total"]
	require.Equal(t, 7.0, labeled(lookups, "result", "hit"))
	require.Equal(t, 3.0, labeled(lookups, "result", "miss"))

	destroyed := families["costcache_blocks_destroyed_total"]
	require.Equal(t, 2.0, labeled(destroyed, "reason", "evicted"))
	require.Equal(t, 1.0, labeled(destroyed, "reason", "replaced"))
	require.Equal(t, 1.0, labeled(destroyed, "reason", "removed"))
	require.Equal(t, 0.0, labeled(destroyed, "reason", "cleared"))

	require.Equal(t, 5.0, families["costcache_blocks_added_total"].GetMetric()[0].GetCounter().GetValue())
	require.Equal(t, 1.0, families["costcache_blocks_rejected_total"].GetMetric()[0].GetCounter().GetValue())
	require.Equal(t, 1.0, families["costcache_blocks_bypassed_total"].GetMetric()[0].GetCounter().GetValue())
	require.Equal(t, 70.0, families["costcache_blocks_evicted_cost_total"].GetMetric()[0].GetCounter().GetValue())
}

// TestCollector_Count emits one sample per gauge, counter and label value.
func TestCollector_Count(t *testing.T) {
	c := NewCollector("costcache", "", &stubStats{})
	require.Equal(t, 13, testutil.CollectAndCount(c))
}

// TestCollector_ReadsOnEveryScrape reflects changes between scrapes.
func TestCollector_ReadsOnEveryScrape(t *testing.T) {
	stats := &stubStats{capacity: 10}
	c := NewCollector("costcache", "", stats)

	families := gather(t, c)
	require.Equal(t, 0.0, families["costcache_entries"].GetMetric()[0].GetGauge().GetValue())

	stats.set(func(s *stubStats) { s.len = 4 })

	families = gather(t, c)
	require.Equal(t, 4.0, families["costcache_entries"].GetMetric()[0].GetGauge().GetValue())
}
