package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The x/time/rate limiter does not take an injectable clock, so spacing is
// asserted against the wall clock. The lower bound only grows under scheduler
// load, so the assertion stays stable on slow CI hosts.
func TestLimiter_MinimumSpacing(t *testing.T) {
	const minDelay = 20 * time.Millisecond
	l := New(minDelay)
	ctx := context.Background()

	const n = 4
	start := time.Now()
	for i := 0; i < n; i++ {
		require.NoError(t, l.Wait(ctx, "https://www.saramin.co.kr/zf_user/search/recruit"))
	}
	elapsed := time.Since(start)
	// N consecutive requests to one host take at least (N-1) * minDelay.
	assert.GreaterOrEqual(t, elapsed, time.Duration(n-1)*minDelay)
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := New(time.Hour)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "https://a.example.com/"))
	require.NoError(t, l.Wait(ctx, "https://b.example.com/"))
	// Two different hosts each consume their own initial token immediately.
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_CancelAbortsWait(t *testing.T) {
	l := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, l.Wait(ctx, "https://a.example.com/"))

	done := make(chan error, 1)
	go func() {
		done <- l.Wait(ctx, "https://a.example.com/")
	}()
	cancel()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("wait did not abort after cancellation")
	}
}

func TestLimiter_DisabledWhenNonPositive(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Wait(ctx, "https://a.example.com/"))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
