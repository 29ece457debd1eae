package types

import (
	"context"
	"sync"
	"time"
)

// Resolver is the producer end of a Future. Only the first call takes
// effect; later calls are ignored.
type Resolver[R any] func(value R, err error)

// Future is the consumer end of a one-shot result cell.
//
// It is resolved exactly once, either with a value or with an error, and
// every read observes that same outcome. A Future never times out on its
// own: callers that need a deadline use GetWithContext or GetWithTimeout.
type Future[R any] struct {
	once  sync.Once
	done  chan struct{}
	value R
	err   error
}

// NewFuture creates an unresolved Future together with the Resolver that
// completes it.
//
// Example:
//
//	future, resolve := NewFuture[int]()
//	go func() { resolve(42, nil) }()
//	v, err := future.Get() // 42, nil
func NewFuture[R any]() (*Future[R], Resolver[R]) {
	f := &Future[R]{
		done: make(chan struct{}),
	}
	return f, f.resolve
}

func (f *Future[R]) resolve(value R, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Get blocks until the Future is resolved and returns its outcome.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext waits for the outcome or for ctx to end, whichever comes
// first. When ctx ends first, the zero value and ctx.Err() are returned and
// the Future stays readable.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout is GetWithContext with a timeout measured from now.
// It returns context.DeadlineExceeded when the timeout elapses first.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

// TryGet returns the outcome without blocking. ready is false while the
// Future is unresolved, in which case value and err are zero.
func (f *Future[R]) TryGet() (value R, err error, ready bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero R
		return zero, nil, false
	}
}

// Done returns a channel closed once the Future is resolved.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the Future has been resolved.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
