package costcache

import (
	"context"
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/Borislavv/go-cost-cache/model"
	"github.com/dgraph-io/ristretto"
	"github.com/stretchr/testify/require"
	"testing"
)

const (
	benchKeys     = 1 << 14
	benchCost     = 64
	benchCapacity = benchKeys * benchCost / 2
)

func benchKeySet() [][]byte {
	keys := make([][]byte, benchKeys)
	for i := range keys {
		keys[i] = model.CoordsKey(int32(i), int32(i>>4), int32(i>>8))
	}
	return keys
}

func newBenchCache(b *testing.B) *Cache[[]byte] {
	c := New[[]byte](context.Background(), &config.Cache{DB: config.DBCfg{Capacity: benchCapacity}}, discardLogger())
	b.Cleanup(func() { _ = c.Close() })
	return c
}

func BenchmarkCache_Add(b *testing.B) {
	c := newBenchCache(b)
	keys := benchKeySet()
	value := make([]byte, benchCost)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Add(keys[i&(benchKeys-1)], value, benchCost, nil)
	}
}

func BenchmarkCache_Get(b *testing.B) {
	c := newBenchCache(b)
	keys := benchKeySet()
	value := make([]byte, benchCost)
	for _, key := range keys {
		require.NoError(b, c.Add(key, value, benchCost, nil))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(keys[i&(benchKeys-1)])
	}
}

func BenchmarkCache_GetOrAddParallel(b *testing.B) {
	c := newBenchCache(b)
	keys := benchKeySet()
	compute := func() ([]byte, int64, model.Destructor[[]byte], error) {
		return make([]byte, benchCost), benchCost, nil, nil
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _, _ = c.GetOrAdd(keys[i&(benchKeys-1)], compute)
			i++
		}
	})
}

// BenchmarkRistretto_SetGet is the baseline for BenchmarkCache_GetOrAddParallel.
func BenchmarkRistretto_SetGet(b *testing.B) {
	r, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: benchKeys * 10,
		MaxCost:     benchCapacity,
		BufferItems: 64,
	})
	require.NoError(b, err)
	b.Cleanup(r.Close)

	keys := benchKeySet()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := keys[i&(benchKeys-1)]
			if _, ok := r.Get(key); !ok {
				r.Set(key, make([]byte, benchCost), benchCost)
			}
			i++
		}
	})
}
