package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBlocksAfterMax(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	now = now.Add(20 * time.Second)
	third, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
	assert.Equal(t, 40*time.Second, third.RetryAfter)

	other, _ := limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, other.Allowed)
}

func TestMemoryLimiterResetsAfterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	res, _ := limiter.Allow(ctx, "k")
	assert.True(t, res.Allowed)
	res, _ = limiter.Allow(ctx, "k")
	assert.False(t, res.Allowed)

	now = now.Add(time.Minute)
	res, _ = limiter.Allow(ctx, "k")
	assert.True(t, res.Allowed)
	assert.Len(t, limiter.windows, 1)
}
