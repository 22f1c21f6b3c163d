package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemoryStore(limit int, period time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(limit, period)
	s.now = clock.now
	return s, clock
}

func TestMemoryStore_Allow(t *testing.T) {
	s, clock := newTestMemoryStore(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := s.Allow("203.0.113.7")
		assert.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, _ := s.Allow("203.0.113.7")
	assert.False(t, ok, "fourth request inside the window is denied")

	ok, _ = s.Allow("198.51.100.2")
	assert.True(t, ok, "other clients have their own window")

	clock.advance(time.Minute)
	ok, _ = s.Allow("203.0.113.7")
	assert.True(t, ok, "window resets after the period")
}

func TestMemoryStore_Sweep(t *testing.T) {
	s, clock := newTestMemoryStore(1, time.Minute)

	_, _ = s.Allow("a")
	clock.advance(30 * time.Second)
	_, _ = s.Allow("b")
	assert.Equal(t, 2, s.Len())

	clock.advance(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	clock.advance(time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
}
