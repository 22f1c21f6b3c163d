package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cultofdrive/internal/cache"
)

func TestRedisStore_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	defer c.Close()

	s := NewRedisStore(c, "ratelimit:subscribe:", 3, time.Minute, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		ok, err := s.Allow("203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := s.Allow("203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	ttl := mr.TTL("ratelimit:subscribe:203.0.113.7")
	assert.True(t, ttl > 0 && ttl <= time.Minute, "window key expires, got %s", ttl)

	mr.FastForward(time.Minute + time.Second)
	ok, err = s.Allow("203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_FallsBackWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	defer c.Close()
	mr.Close()

	fallback, _ := newTestMemoryStore(1, time.Minute)
	s := NewRedisStore(c, "rl:", 1, time.Minute, fallback, zap.NewNop())

	ok, err := s.Allow("203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Allow("203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, fallback.Len())
}
