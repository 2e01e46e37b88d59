// Package partition runs tasks on a fixed set of ordered workers selected by key.
// Tasks sharing a key run one at a time in submission order; different keys may run in parallel.
package partition

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
)

// ErrClosed is returned by Submit after Close
var ErrClosed = errors.New("partition dispatcher closed")

// Task is a unit of work. ctx is cancelled when the dispatcher closes.
type Task func(ctx context.Context)

// Dispatcher fans tasks out to key-partitioned workers
type Dispatcher struct {
	queues []chan Task
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New starts n workers, each with a queue of the given depth
func New(n, depth int) *Dispatcher {
	if n < 1 {
		n = 1
	}
	if depth < 0 {
		depth = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		queues: make([]chan Task, n),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := range d.queues {
		d.queues[i] = make(chan Task, depth)
		d.wg.Add(1)
		go d.run(d.queues[i])
	}
	return d
}

func (d *Dispatcher) run(queue <-chan Task) {
	defer d.wg.Done()
	for task := range queue {
		task(d.ctx)
	}
}

// Partitions returns the number of workers
func (d *Dispatcher) Partitions() int {
	return len(d.queues)
}

// Partition returns the worker index for key
func (d *Dispatcher) Partition(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.queues)))
}

// Submit queues task on the worker owning key. It blocks while that queue is full
// and gives up when ctx is done or the dispatcher closes.
func (d *Dispatcher) Submit(ctx context.Context, key string, task Task) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.queues[d.Partition(key)] <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.ctx.Done():
		return ErrClosed
	}
}

// Close cancels the task context, lets queued tasks observe the cancellation and
// waits for every worker to exit.
func (d *Dispatcher) Close() {
	d.cancel()

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, q := range d.queues {
			close(q)
		}
	}
	d.mu.Unlock()

	d.wg.Wait()
}
