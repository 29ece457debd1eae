// Package pool provides a fixed-capacity, generic worker pool in which every
// worker owns its own FIFO queue and its own OS thread.
//
// The primary type is Pool[R], a set of workers executing Tasks that return
// values of type R. Every push returns a Future through which the caller
// obtains the task's value or failure.
//
// # Basic Usage
//
//	p := pool.New[int]()
//	if err := p.Start(4); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.End()
//
//	future, err := p.Push(func() (int, error) { return 6 * 7, nil })
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := future.Get() // 42, nil
//
// # Routing
//
// A pool with n active workers routes a task to worker hash % n:
//
//   - Push: a random hash per task, spreading load uniformly
//   - PushHash: a caller-chosen hash; equal hashes reach the same worker
//   - PushKey: a string key hashed with xxhash; equal keys reach the same worker
//
// Because each worker runs its queue in order, tasks pushed with the same
// hash execute one at a time in push order, while tasks with different
// hashes run in parallel. The guarantee holds as long as the active worker
// count does not change between the pushes.
//
// # CPU Pinning
//
// StartPinned binds worker i to logical CPU affinity[i]; negative entries
// leave the worker unpinned:
//
//	err := p.StartPinned([]int{0, 1, pool.Unpinned, pool.Unpinned})
//
// Pinning is best effort. On platforms without support, or when the
// operating system refuses, the failure is logged and the worker runs
// unpinned. Stats reports which workers ended up pinned.
//
// # Lifecycle
//
// A pool is Stopped after New, Running after Start or StartPinned, and
// Stopped again after End. End runs every task queued before it was called,
// then joins every worker thread. Starting a running pool drains the current
// workers first and then starts the new set. Pushing to a stopped pool
// returns ErrNoAvailableWorkers.
//
// # Configuration Options
//
//   - WithMaxThreads(n): fixed worker capacity (default: 128)
//   - WithLogger(l): slog logger for lifecycle events and failures
//   - WithName(name): pool name attached to logs and metrics
//   - WithRateLimit(tps, burst): cap task execution rate across all workers
//   - WithBeforeTaskStart(fn), WithOnTaskEnd(fn): per-task hooks
//   - WithMeterProvider(mp): OpenTelemetry metrics
//
// # Error Handling
//
// Configuration and push errors are returned synchronously and can be
// checked with errors.Is against ErrInvalidThreadCount,
// ErrNoAvailableWorkers and ErrNilTask. Task errors are delivered through
// the Future unchanged; a panicking task yields an error wrapping
// ErrTaskPanicked with the panic value and stack trace.
package pool
