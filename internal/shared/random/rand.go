// Package random is a lock-free SplitMix64 source sharded across CPUs, used to draw workload keys.
package random

import (
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

const golden = 0x9e3779b97f4a7c15

type shard struct {
	state atomic.Uint64
	_     [56]byte
}

type Source struct {
	shards []shard
	mask   uint32
	rr     atomic.Uint32
}

// New creates a source with n shards rounded up to a power of two. n <= 0 means GOMAXPROCS*4.
// A zero seed is replaced by the wall clock.
func New(n int, seed int64) *Source {
	if n <= 0 {
		n = max(runtime.GOMAXPROCS(0)*4, 1)
	}
	p := 1
	for p < n {
		p <<= 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Source{shards: make([]shard, p), mask: uint32(p - 1)}
	state := mixSeed(seed)
	for i := range s.shards {
		next := mix(state + uint64(i+1)*golden)
		if next == 0 {
			next = golden
		}
		s.shards[i].state.Store(next)
	}
	return s
}

// Float64 returns a uniform value in [0,1).
func (s *Source) Float64() float64 {
	const inv53 = 1.0 / (1 << 53)
	return float64(s.next()>>11) * inv53
}

// Intn returns a uniform value in [0,n). It returns 0 for n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}

// Skewed returns an index in [0,n) where small indexes are drawn more often.
// skew 1 is uniform; larger values concentrate draws on the head, modelling a hot working set.
func (s *Source) Skewed(n int, skew float64) int {
	if n <= 0 {
		return 0
	}
	if skew <= 1 {
		return s.Intn(n)
	}
	i := int(float64(n) * math.Pow(s.Float64(), skew))
	return min(i, n-1)
}

func (s *Source) next() uint64 {
	i := s.rr.Add(1) & s.mask
	st := &s.shards[i].state
	for {
		old := st.Load()
		x := old + golden
		if st.CompareAndSwap(old, x) {
			return mix(x)
		}
	}
}

func mix(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}

func mixSeed(seed int64) uint64 {
	z := mix(uint64(seed) + golden)
	if z == 0 {
		z = golden
	}
	return z
}
