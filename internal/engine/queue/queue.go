// Package queue provides an unbounded FIFO used as the engine's ingress and
// output channels.
//
// Push never blocks, so producers may push while holding their own locks.
// Pop blocks until an item is available, the queue is closed and drained, or
// the context ends.
package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Push after Close, and by Pop once a closed queue
// has been drained.
var ErrClosed = errors.New("queue closed")

// Queue is an unbounded FIFO safe for concurrent use.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	// ready holds at most one wake-up token for blocked poppers.
	ready chan struct{}
	done  chan struct{}
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		items: make([]T, 0, 16),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Push appends v. It returns ErrClosed if the queue has been closed.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.signal()
	return nil
}

// TryPop removes and returns the oldest item without blocking.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) > 0 {
		q.signal()
	}
	return v, true
}

// Pop removes and returns the oldest item, blocking until one is available.
// After Close, remaining items are still returned; once the queue is empty
// Pop returns ErrClosed.
func (q *Queue[T]) Pop(ctx context.Context) (T, error) {
	for {
		if v, ok := q.TryPop(); ok {
			return v, nil
		}

		q.mu.Lock()
		drained := q.closed && len(q.items) == 0
		q.mu.Unlock()
		if drained {
			var zero T
			return zero, ErrClosed
		}

		select {
		case <-q.ready:
		case <-q.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops the queue from accepting items and wakes blocked poppers.
// It is safe to call more than once.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

// signal leaves a wake-up token unless one is already pending.
func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
