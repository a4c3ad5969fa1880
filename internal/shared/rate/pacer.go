// Package rate paces request loops.
package rate

import (
	"context"
	"go.uber.org/ratelimit"
)

// Pacer hands out permits at a fixed rate through a small buffered channel, so short stalls
// of a consumer are absorbed as a burst of up to 10% of the rate.
type Pacer struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
}

// NewPacer starts a pacer allowing limit permits per second. limit <= 0 disables pacing.
// The permit channel is closed once ctx is done.
func NewPacer(ctx context.Context, limit int) *Pacer {
	brst := max(int(float64(limit)*0.1), 1)

	var l ratelimit.Limiter
	if limit > 0 {
		l = ratelimit.New(limit)
	} else {
		l = ratelimit.NewUnlimited()
	}

	p := &Pacer{
		limit: limit,
		ch:    make(chan struct{}, brst),
		l:     l,
	}
	go p.provider(ctx)
	return p
}

func (p *Pacer) provider(ctx context.Context) {
	defer close(p.ch)
	for {
		p.l.Take()
		select {
		case <-ctx.Done():
			return
		case p.ch <- struct{}{}:
		}
	}
}

// Take blocks until a permit is available. It reports false once the pacer is stopped.
func (p *Pacer) Take() bool {
	_, ok := <-p.ch
	return ok
}

func (p *Pacer) Chan() <-chan struct{} {
	return p.ch
}

// Limit returns permits per second, or 0 when unlimited.
func (p *Pacer) Limit() int {
	return max(p.limit, 0)
}
