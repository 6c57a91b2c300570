package apiclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	// Burst exhausted.
	assert.False(t, rl.Allow())
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(100, 1)

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	// The second wait needs a fresh token at 100/s, so roughly 10ms.
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestRateLimiterWaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter(0.1, 1)
	require.True(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.Error(t, err)
}

func TestRateLimiterSetRate(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.SetRate(500)

	require.True(t, rl.Allow())
	time.Sleep(10 * time.Millisecond)
	// At 500/s the bucket refills within the sleep.
	assert.True(t, rl.Allow())
}

func TestRateLimiterTokens(t *testing.T) {
	rl := NewRateLimiter(10, 5)

	assert.InDelta(t, 5, rl.Tokens(), 0.5)
	rl.Allow()
	assert.Less(t, rl.Tokens(), 5.0)
}
