// Package queue provides the blocking FIFO used as a worker's private task
// queue.
//
// Queue is unbounded (limited only by memory), safe for any number of
// concurrent producers and consumers, and wakes a blocked consumer on every
// push instead of polling. Items are stored in an eapache/queue ring buffer
// which is not goroutine safe on its own; every access goes through mu.
package queue

import (
	"sync"

	"github.com/eapache/queue"
)

// Queue is a blocking multi-producer/multi-consumer FIFO.
//
// The zero value is not usable; create queues with New.
type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items *queue.Queue
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		items: queue.New(),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// PushBack appends item and wakes at most one blocked consumer.
func (q *Queue[T]) PushBack(item T) {
	q.mu.Lock()
	q.items.Add(item)
	q.mu.Unlock()

	// signalled outside the lock so the woken consumer does not immediately
	// block on mu again
	q.cond.Signal()
}

// PopFront blocks until an item is available, then removes and returns the
// oldest one.
func (q *Queue[T]) PopFront() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() == 0 {
		q.cond.Wait()
	}
	v, _ := q.items.Remove().(T)
	return v
}

// TryPopFront removes and returns the oldest item without blocking.
// The boolean is false when the queue was empty.
func (q *Queue[T]) TryPopFront() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}
	v, _ := q.items.Remove().(T)
	return v, true
}

// Size returns the number of pending items at the time of the call.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// IsEmpty reports whether the queue had no pending items at the time of the call.
func (q *Queue[T]) IsEmpty() bool {
	return q.Size() == 0
}

// Clear discards every pending item without handing it to a consumer and
// returns how many items were dropped.
func (q *Queue[T]) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.items.Length()
	q.items = queue.New()
	return n
}
