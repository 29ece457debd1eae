package pool

import "github.com/utkarsh5026/pinpool/internal/types"

// Unpinned marks an affinity entry whose worker is not bound to any CPU.
// Every negative entry passed to StartPinned is treated the same way.
const Unpinned = -1

// Task is a zero-argument unit of work producing a value of type R.
// A returned error, or a panic, is the task's failure and is delivered
// through its Future; it never stops the worker.
type Task[R any] func() (R, error)

// Future is the caller-held handle to a pushed task's outcome.
// See the methods of types.Future for the ways to wait on it.
type Future[R any] = types.Future[R]

// FromFunc adapts a function that cannot fail into a Task.
func FromFunc[R any](fn func() R) Task[R] {
	if fn == nil {
		return nil
	}
	return func() (R, error) {
		return fn(), nil
	}
}

// FromAction adapts a function without a result into a Task for a
// Pool[struct{}].
func FromAction(fn func()) Task[struct{}] {
	if fn == nil {
		return nil
	}
	return func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	}
}
