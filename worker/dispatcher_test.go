package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsAndCounts(t *testing.T) {
	d := NewDispatcher(3, 16, time.Second)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.True(t, d.Submit("ok", func(context.Context) error {
			ran.Add(1)
			return nil
		}))
	}
	require.True(t, d.Submit("fail", func(context.Context) error { return errors.New("boom") }))
	require.True(t, d.Submit("panic", func(context.Context) error { panic("bad") }))

	require.NoError(t, d.Close(context.Background()))

	s := d.Stats()
	assert.Equal(t, int32(5), ran.Load())
	assert.Equal(t, uint64(5), s.Processed)
	assert.Equal(t, uint64(2), s.Failed)
	assert.Zero(t, s.Dropped)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	require.True(t, d.Submit("block", func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	assert.True(t, d.Submit("queued", func(context.Context) error { return nil }))
	assert.False(t, d.Submit("overflow", func(context.Context) error { return nil }))
	assert.Equal(t, uint64(1), d.Stats().Dropped)

	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, uint64(2), d.Stats().Processed)
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(1, 4, time.Second)
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()), "second close is a no-op")

	assert.False(t, d.Submit("late", func(context.Context) error { return nil }))
	assert.Equal(t, uint64(1), d.Stats().Dropped)
}

func TestDispatcherJobTimeout(t *testing.T) {
	d := NewDispatcher(1, 1, 20*time.Millisecond)

	var got error
	var wg sync.WaitGroup
	wg.Add(1)
	d.Submit("slow", func(ctx context.Context) error {
		defer wg.Done()
		<-ctx.Done()
		got = ctx.Err()
		return got
	})
	wg.Wait()

	assert.ErrorIs(t, got, context.DeadlineExceeded)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, uint64(1), d.Stats().Failed)
}

func TestDispatcherCloseHonoursContext(t *testing.T) {
	d := NewDispatcher(1, 1, time.Minute)
	release := make(chan struct{})
	d.Submit("block", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := d.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}
