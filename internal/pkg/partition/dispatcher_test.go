package partition

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PreservesPerKeyOrder(t *testing.T) {
	d := New(4, 16)
	defer d.Close()

	var mu sync.Mutex
	seen := map[string][]int{}
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("driver-%d", i%7)
		i := i
		wg.Add(1)
		require.NoError(t, d.Submit(context.Background(), key, func(ctx context.Context) {
			defer wg.Done()
			mu.Lock()
			seen[key] = append(seen[key], i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	for key, order := range seen {
		for j := 1; j < len(order); j++ {
			assert.Less(t, order[j-1], order[j], "out of order for %s", key)
		}
	}
}

func TestDispatcher_SameKeyNeverOverlaps(t *testing.T) {
	d := New(8, 4)
	defer d.Close()

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		require.NoError(t, d.Submit(context.Background(), "trip-1", func(ctx context.Context) {
			defer wg.Done()
			n := atomic.AddInt32(&running, 1)
			for {
				m := atomic.LoadInt32(&maxRunning)
				if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
		}))
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}

func TestDispatcher_PartitionIsStable(t *testing.T) {
	d := New(8, 0)
	defer d.Close()

	assert.Equal(t, d.Partition("driver-42"), d.Partition("driver-42"))
	assert.Equal(t, 8, d.Partitions())
	assert.GreaterOrEqual(t, d.Partition("x"), 0)
	assert.Less(t, d.Partition("x"), 8)
}

func TestDispatcher_CloseCancelsTasks(t *testing.T) {
	d := New(1, 4)

	started := make(chan struct{})
	cancelled := make(chan struct{})
	require.NoError(t, d.Submit(context.Background(), "k", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	}))

	<-started
	d.Close()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("task did not observe cancellation")
	}
	assert.ErrorIs(t, d.Submit(context.Background(), "k", func(context.Context) {}), ErrClosed)
}

func TestDispatcher_SubmitHonoursContext(t *testing.T) {
	d := New(1, 0)
	defer d.Close()

	block := make(chan struct{})
	require.NoError(t, d.Submit(context.Background(), "k", func(ctx context.Context) {
		select {
		case <-block:
		case <-ctx.Done():
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Submit(ctx, "k", func(context.Context) {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(block)
}
