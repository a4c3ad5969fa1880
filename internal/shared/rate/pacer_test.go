package rate

import (
	"context"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// TestNewPacer_EmitsPermits receives a permit within the first interval.
func TestNewPacer_EmitsPermits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 10)
	require.Equal(t, 10, p.Limit())

	select {
	case <-p.Chan():
	case <-time.After(200 * time.Millisecond):
		t.Fatal("pacer should emit permits")
	}
}

// TestPacer_Take returns true while running.
func TestPacer_Take(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 10)

	done := make(chan bool, 1)
	go func() { done <- p.Take() }()

	select {
	case ok := <-done:
		require.True(t, ok)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Take should not block forever")
	}
}

// TestNewPacer_Unlimited issues permits without pacing for non-positive limits.
func TestNewPacer_Unlimited(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 0)
	require.Zero(t, p.Limit())

	start := time.Now()
	for i := 0; i < 1000; i++ {
		require.True(t, p.Take())
	}
	require.Less(t, time.Since(start), time.Second)
}

// TestPacer_StopsOnContextCancel closes the channel and makes Take report false.
func TestPacer_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPacer(ctx, 100)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-p.Chan():
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.False(t, p.Take())
}
