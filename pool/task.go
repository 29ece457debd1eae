package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/utkarsh5026/pinpool/internal/types"
)

// submittedTask is a queue entry: the task plus the producer end of its
// Future. An entry without a task is the wake-up sentinel pushed by
// worker.end.
type submittedTask[R any] struct {
	task     Task[R]
	resolve  types.Resolver[R]
	enqueued time.Time
}

func (s *submittedTask[R]) isSentinel() bool {
	return s.task == nil
}

// executor carries what every worker of a pool needs to run a task.
type executor struct {
	conf    *config
	logger  *slog.Logger
	metrics *poolMetrics
}

// executeSubmitted runs one entry on the calling worker thread and returns
// its outcome. The caller resolves the Future once its own bookkeeping is
// done, so a caller returning from Future.Get observes every side effect of
// the hooks and counters.
//
// Order: rate limit, BeforeTaskStart, task, OnTaskEnd, metrics.
func executeSubmitted[R any](ex *executor, workerID int, s *submittedTask[R]) (R, error) {
	if ex.conf.rateLimiter != nil {
		// Background never expires, so Wait only fails when burst < 1,
		// which WithRateLimit rejects.
		_ = ex.conf.rateLimiter.Wait(context.Background())
	}

	if ex.conf.beforeTaskStart != nil {
		ex.runHook("before_task_start", workerID, func() {
			ex.conf.beforeTaskStart(workerID)
		})
	}

	start := time.Now()
	result, err := processWithRecovery(s.task)
	elapsed := time.Since(start)

	if errors.Is(err, ErrTaskPanicked) {
		ex.logger.Error("task panicked", "worker", workerID, "error", err)
	}

	if ex.conf.onTaskEnd != nil {
		ex.runHook("on_task_end", workerID, func() {
			ex.conf.onTaskEnd(workerID, err)
		})
	}

	ex.metrics.recordExecuted(err, start.Sub(s.enqueued), elapsed)
	return result, err
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs, it's converted to an error wrapping ErrTaskPanicked so
// a single task can never take its worker down.
func processWithRecovery[R any](task Task[R]) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			var zero R
			result = zero
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrTaskPanicked, r, buf[:n])
		}
	}()

	return task()
}

// runHook calls a user hook, logging instead of propagating a panic.
func (ex *executor) runHook(name string, workerID int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ex.logger.Error("task hook panicked", "hook", name, "worker", workerID, "panic", r)
		}
	}()
	fn()
}
