package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(calls *atomic.Int32, v any) FetchFunc {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return v, nil
	}
}

func TestCache_HitAfterMiss(t *testing.T) {
	c := New(10, time.Minute)
	var calls atomic.Int32

	v, err := c.Fetch(context.Background(), "requests?page=1", []string{"Request"}, counter(&calls, 42))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.Fetch(context.Background(), "requests?page=1", []string{"Request"}, counter(&calls, 43))
	require.NoError(t, err)
	assert.Equal(t, 42, v, "second lookup is served from cache")
	assert.EqualValues(t, 1, calls.Load())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	c := New(10, time.Minute)
	boom := errors.New("boom")
	var calls atomic.Int32

	_, err := c.Fetch(context.Background(), "k", nil, func(context.Context) (any, error) {
		calls.Add(1)
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())

	v, err := c.Fetch(context.Background(), "k", nil, counter(&calls, "ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_ConcurrentFetchesShareOneCall(t *testing.T) {
	c := New(10, time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), "same", nil, fn)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, v := range results {
		assert.Equal(t, "v", v)
	}
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New(10, time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	fn := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return "v", nil
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Fetch(first, "k", nil, fn)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   any
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := c.Fetch(context.Background(), "k", nil, fn)
		second <- result{v, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled, "the cancelled caller stops waiting")

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "v", res.v)
	assert.EqualValues(t, 1, calls.Load(), "the load is shared")

	v, err := c.Fetch(context.Background(), "k", nil, counter(&calls, "other"))
	require.NoError(t, err)
	assert.Equal(t, "v", v, "the shared result is cached")
}

func TestCache_InvalidateRacingStoresLeavesNothing(t *testing.T) {
	c := New(1000, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("requests?page=%d-%d", i, j)
				_, err := c.Fetch(ctx, key, []string{"Request"}, func(context.Context) (any, error) { return j, nil })
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Invalidate("Request")
			}
		}()
	}
	wg.Wait()

	c.Invalidate("Request")
	assert.Zero(t, c.Len(), "every stored key is reachable through its tag")
}

func TestCache_InvalidateByTag(t *testing.T) {
	c := New(10, time.Minute)
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = c.Fetch(ctx, "requests?page=1", []string{"Request"}, counter(&calls, 1))
	_, _ = c.Fetch(ctx, "requests?page=2", []string{"Request"}, counter(&calls, 2))
	_, _ = c.Fetch(ctx, "payments?page=1", []string{"Payment"}, counter(&calls, 3))
	require.Equal(t, 3, c.Len())

	assert.Equal(t, 2, c.Invalidate("Request"))
	assert.Equal(t, 1, c.Len())
	assert.Zero(t, c.Invalidate("Request"), "index is cleaned on eviction")

	v, _ := c.Fetch(ctx, "payments?page=1", []string{"Payment"}, counter(&calls, 99))
	assert.Equal(t, 3, v, "other tags survive")
}

func TestCache_InvalidationDuringFetchSkipsStore(t *testing.T) {
	c := New(10, time.Minute)
	ctx := context.Background()

	_, err := c.Fetch(ctx, "k", []string{"Visitor"}, func(context.Context) (any, error) {
		c.Invalidate("Visitor")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestCache_TTL(t *testing.T) {
	c := New(10, 30*time.Millisecond)
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = c.Fetch(ctx, "k", nil, counter(&calls, 1))
	time.Sleep(80 * time.Millisecond)
	_, _ = c.Fetch(ctx, "k", nil, counter(&calls, 2))
	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_Purge(t *testing.T) {
	c := New(0, 0)
	_, _ = c.Fetch(context.Background(), "k", []string{"Button"}, func(context.Context) (any, error) { return 1, nil })
	c.Purge()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Invalidate("Button"))
}
