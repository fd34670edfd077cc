package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemory(ttl time.Duration) (*Memory, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory(ttl)
	m.now = clock.now
	return m, clock
}

func TestMemoryExpiresOnRead(t *testing.T) {
	m, clock := newTestMemory(time.Minute)

	m.Put("a", 1, 0)
	m.Put("b", 2, 10*time.Second)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	clock.advance(10 * time.Second)
	_, ok = m.Get("b")
	assert.False(t, ok, "entry is gone exactly at its expiry")
	assert.Equal(t, 1, m.Size(), "expired entry removed on read")

	clock.advance(time.Minute)
	assert.Empty(t, m.Keys())
	assert.Equal(t, 1, m.Size(), "Keys does not evict")
}

func TestMemoryDeleteClearKeys(t *testing.T) {
	m, _ := newTestMemory(0)
	m.Put("b", "x", 0)
	m.Put("a", "y", 0)
	m.Put("c", "z", 0)

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	m.Delete("b")
	assert.Equal(t, []string{"a", "c"}, m.Keys())

	m.Clear()
	assert.Zero(t, m.Size())
}

func TestMemoryDeletePrefix(t *testing.T) {
	m, _ := newTestMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, m.SetBytes(ctx, "customers:/api/customers?page=1", []byte("1"), 0))
	require.NoError(t, m.SetBytes(ctx, "customers:/api/customers/abc", []byte("2"), 0))
	require.NoError(t, m.SetBytes(ctx, "deals:/api/deals", []byte("3"), 0))

	require.NoError(t, m.DeletePrefix(ctx, "customers:"))
	assert.Equal(t, []string{"deals:/api/deals"}, m.Keys())

	b, ok, err := m.GetBytes(ctx, "deals:/api/deals")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), b)
}

func TestMemoryIncrWindow(t *testing.T) {
	m, clock := newTestMemory(0)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := m.Incr(ctx, "rl:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	clock.advance(time.Minute)
	n, _ := m.Incr(ctx, "rl:1.2.3.4", time.Minute)
	assert.Equal(t, int64(1), n, "window restarts after expiry")
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Put("k", j, 0)
				m.Get("k")
				_, _ = m.Incr(ctx, "n", time.Minute)
			}
		}()
	}
	wg.Wait()

	v, ok := m.Get("n")
	require.True(t, ok)
	assert.Equal(t, int64(5000), v)
}
