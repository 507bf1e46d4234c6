package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func TestLimiterBlocksAfterLimit(t *testing.T) {
	counter := &memoryCounter{}
	limiter := NewLimiter(counter, 2, time.Minute)
	fixed := time.Date(2024, 5, 1, 10, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	first, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	_, err = limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)

	third, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 1, 0, 0, time.UTC), third.ResetAt)
}

func TestLimiterStartsFreshWindow(t *testing.T) {
	counter := &memoryCounter{}
	limiter := NewLimiter(counter, 1, time.Minute)
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	_, _ = limiter.Allow(context.Background(), "k")
	blocked, _ := limiter.Allow(context.Background(), "k")
	assert.False(t, blocked.Allowed)

	current = current.Add(time.Minute)
	next, err := limiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, next.Allowed)
}

func TestLimiterPropagatesStoreError(t *testing.T) {
	limiter := NewLimiter(&memoryCounter{err: errors.New("redis down")}, 5, time.Minute)
	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}
