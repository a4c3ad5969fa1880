package main

import (
	"context"
	"encoding/binary"
	costcache "github.com/Borislavv/go-cost-cache"
	"github.com/Borislavv/go-cost-cache/internal/shared/random"
	"github.com/Borislavv/go-cost-cache/internal/shared/rate"
	"github.com/Borislavv/go-cost-cache/model"
	"sync"
	"sync/atomic"
	"time"
)

type workloadCfg struct {
	Requests     int
	Keys         int
	Skew         float64
	Rate         int
	Workers      int
	ArtifactSize int
	Seed         int64
}

// report is the outcome of one simulation run.
type report struct {
	Requests int64
	Computed int64
	Released int64
	Bypassed int64
	Elapsed  time.Duration
}

// Outstanding is the number of computed artifacts not yet released.
func (r report) Outstanding() int64 {
	return r.Computed - r.Released
}

// artifacts builds fake merged block meshes and recycles their buffers when the cache
// destroys them.
type artifacts struct {
	size     int
	pool     sync.Pool
	computed atomic.Int64
	released atomic.Int64
}

func newArtifacts(size int) *artifacts {
	size = max(size, 8)
	a := &artifacts{size: size}
	a.pool.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return a
}

// compute returns a Compute merging the block at idx.
func (a *artifacts) compute(idx uint64) model.Compute[*[]byte] {
	return func() (*[]byte, int64, model.Destructor[*[]byte], error) {
		buf := a.pool.Get().(*[]byte)
		b := *buf
		for i := 0; i+8 <= len(b); i += 8 {
			binary.LittleEndian.PutUint64(b[i:], idx*uint64(i+1))
		}
		a.computed.Add(1)
		return buf, int64(len(b)), a.release, nil
	}
}

func (a *artifacts) release(buf *[]byte) {
	a.released.Add(1)
	a.pool.Put(buf)
}

// runWorkload drives cfg.Requests GetOrAdd calls spread across workers.
// It stops early when ctx is done and closes the cache before returning.
func runWorkload(ctx context.Context, c *costcache.Cache[*[]byte], cfg workloadCfg) report {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	art := newArtifacts(cfg.ArtifactSize)
	rnd := random.New(0, cfg.Seed)
	pacer := rate.NewPacer(ctx, cfg.Rate)

	var (
		wg       sync.WaitGroup
		issued   atomic.Int64
		bypassed atomic.Int64
	)
	start := time.Now()

	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for issued.Add(1) <= int64(cfg.Requests) {
				if !pacer.Take() {
					issued.Add(-1)
					return
				}
				idx := uint64(rnd.Skewed(cfg.Keys, cfg.Skew))
				key := model.CoordsKey(int32(idx&0xff), int32(idx>>8&0xff), int32(idx>>16))

				value, owned, err := c.GetOrAdd(key, art.compute(idx))
				if err != nil {
					continue
				}
				if owned {
					bypassed.Add(1)
					art.release(value)
				}
			}
			issued.Add(-1)
		})
	}
	wg.Wait()
	elapsed := time.Since(start)

	_ = c.Close()

	return report{
		Requests: issued.Load(),
		Computed: art.computed.Load(),
		Released: art.released.Load(),
		Bypassed: bypassed.Load(),
		Elapsed:  elapsed,
	}
}
