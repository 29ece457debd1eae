package pool

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/pinpool/internal/cpu"
	"github.com/utkarsh5026/pinpool/internal/queue"
	"github.com/utkarsh5026/pinpool/internal/types"
)

// worker owns one task queue and, while running, one goroutine locked to its
// own OS thread. Workers live in the pool's fixed array for the pool's whole
// lifetime and are restarted across Start/End cycles.
//
// affinity and done are only written under the pool's exclusive lock.
type worker[R any] struct {
	id       int
	affinity int
	queue    *queue.Queue[*submittedTask[R]]
	ex       *executor

	// done stands in for the thread handle: nil while stopped, closed by
	// the loop once it has drained and exited.
	done chan struct{}

	pinned   atomic.Bool
	executed atomic.Int64
	failed   atomic.Int64
}

func newWorker[R any](id int, ex *executor) *worker[R] {
	return &worker[R]{
		id:       id,
		affinity: Unpinned,
		queue:    queue.New[*submittedTask[R]](),
		ex:       ex,
	}
}

func (w *worker[R]) setAffinity(cpuID int) {
	if cpuID < 0 {
		cpuID = Unpinned
	}
	w.affinity = cpuID
}

func (w *worker[R]) running() bool {
	return w.done != nil
}

// start launches the worker loop against the pool's shared stop flag.
// The caller must have ended the worker first; starting a running worker
// would leave two loops draining one queue.
func (w *worker[R]) start(stop *atomic.Bool) {
	if w.running() {
		panic("pinpool: worker started while running")
	}

	w.done = make(chan struct{})
	w.pinned.Store(false)

	go w.run(w.affinity, stop, w.done)
}

// end wakes the loop with a sentinel entry in case it is blocked on an empty
// queue and waits until the loop has run every entry queued before it and
// exited. The caller raises the shared stop flag first; end never touches
// it, so ending one worker cannot stop the others.
func (w *worker[R]) end() {
	if !w.running() {
		return
	}

	w.queue.PushBack(&submittedTask[R]{})
	<-w.done
	w.done = nil
}

// push wraps task in a queue entry and enqueues it without waiting for it to run.
func (w *worker[R]) push(task Task[R]) *Future[R] {
	future, resolve := types.NewFuture[R]()
	w.queue.PushBack(&submittedTask[R]{
		task:     task,
		resolve:  resolve,
		enqueued: time.Now(),
	})
	return future
}

func (w *worker[R]) run(affinity int, stop *atomic.Bool, done chan struct{}) {
	defer close(done)

	runtime.LockOSThread()
	if !w.pin(affinity) {
		defer runtime.UnlockOSThread()
	}
	// A pinned goroutine exits still locked: the runtime then destroys the
	// thread instead of handing a CPU-restricted thread to other goroutines.

	w.ex.logger.Debug("worker started", "worker", w.id, "cpu", affinity, "pinned", w.pinned.Load())

	for !stop.Load() {
		w.execute(w.queue.PopFront())
	}

	drained := 0
	for {
		s, ok := w.queue.TryPopFront()
		if !ok {
			break
		}
		if w.execute(s) {
			drained++
		}
	}

	w.ex.logger.Debug("worker stopped", "worker", w.id, "drained", drained)
}

// pin binds the locked thread to affinity once, before the first task.
// Failure is logged and the worker keeps running unpinned.
func (w *worker[R]) pin(affinity int) bool {
	if affinity < 0 {
		return false
	}

	if err := cpu.Pin(affinity); err != nil {
		w.ex.logger.Warn("worker pinning failed, running unpinned",
			"worker", w.id, "cpu", affinity, "error", err)
		return false
	}

	w.pinned.Store(true)
	return true
}

// execute runs one entry and reports whether it was a real task.
func (w *worker[R]) execute(s *submittedTask[R]) bool {
	if s.isSentinel() {
		return false
	}

	result, err := executeSubmitted(w.ex, w.id, s)
	if err != nil {
		w.failed.Add(1)
	}
	w.executed.Add(1)
	s.resolve(result, err)
	return true
}
