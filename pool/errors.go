package pool

import "errors"

var (
	// ErrInvalidThreadCount is returned by Start and StartPinned when the
	// requested thread count is zero or exceeds MaxThreadNum. The pool state
	// is left unchanged.
	ErrInvalidThreadCount = errors.New("pinpool: invalid thread count")

	// ErrNoAvailableWorkers is returned by the push methods while the pool is
	// stopped. The task is never enqueued.
	ErrNoAvailableWorkers = errors.New("pinpool: no available workers")

	// ErrNilTask is returned by the push methods for a nil task.
	ErrNilTask = errors.New("pinpool: task cannot be nil")

	// ErrTaskPanicked wraps the panic value and stack of a task that
	// panicked. It is only ever delivered through the task's Future.
	ErrTaskPanicked = errors.New("pinpool: task panicked")
)
