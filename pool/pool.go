package pool

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed-capacity set of workers, each with its own FIFO queue and
// its own OS thread, executing Tasks that produce results of type R.
//
// A Pool is Stopped after New. Start or StartPinned makes the first n workers
// of its preallocated array active; End drains and stops them again. Tasks
// pushed with the same hash while the active count is unchanged always reach
// the same worker and therefore run in push order.
//
// All methods are safe for concurrent use. Start, StartPinned and End hold
// the lifecycle lock exclusively; pushes share it, so they run concurrently
// with each other but never overlap a lifecycle change.
type Pool[R any] struct {
	conf   *config
	ex     *executor
	mu     sync.RWMutex
	stop   atomic.Bool
	active atomic.Int64

	// allocated once with maxThreads entries to avoid reallocation under
	// concurrent Start calls
	workers []*worker[R]

	pushed   atomic.Int64
	rejected atomic.Int64
}

var _ io.Closer = (*Pool[any])(nil)

// New creates a stopped pool with a fixed capacity of worker slots.
// No goroutines are started until Start or StartPinned.
//
// Default configuration:
//   - maxThreads: DefaultMaxThreads (128)
//   - logger: slog.Default()
//   - no rate limit, no hooks, no metrics
//
// Example:
//
//	p := pool.New[string](pool.WithMaxThreads(16), pool.WithName("ingest"))
//	if err := p.Start(4); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.End()
func New[R any](opts ...Option) *Pool[R] {
	cfg := createConfig(opts...)

	logger := cfg.logger
	if cfg.name != "" {
		logger = logger.With("pool", cfg.name)
	}

	p := &Pool[R]{
		conf: cfg,
		ex: &executor{
			conf:   cfg,
			logger: logger,
		},
		workers: make([]*worker[R], cfg.maxThreads),
	}
	p.stop.Store(true)

	for i := range p.workers {
		p.workers[i] = newWorker[R](i, p.ex)
	}

	metrics, err := newPoolMetrics(cfg.meterProvider, cfg.name, p.ThreadNum)
	if err != nil {
		logger.Warn("pool metrics disabled", "error", err)
	}
	p.ex.metrics = metrics

	return p
}

// ThreadNum returns the number of active workers, 0 when the pool is stopped.
func (p *Pool[R]) ThreadNum() int {
	return int(p.active.Load())
}

// MaxThreadNum returns the fixed worker capacity chosen at construction.
func (p *Pool[R]) MaxThreadNum() int {
	return len(p.workers)
}

// Start starts numThreads unpinned workers.
// It is StartPinned with numThreads Unpinned entries.
//
// Returns:
//   - error: ErrInvalidThreadCount if numThreads is not in [1, MaxThreadNum()]
//
// Example:
//
//	if err := p.Start(runtime.NumCPU()); err != nil {
//	    return err
//	}
func (p *Pool[R]) Start(numThreads int) error {
	if numThreads <= 0 {
		return fmt.Errorf("%w: requested %d threads", ErrInvalidThreadCount, numThreads)
	}
	if numThreads > p.MaxThreadNum() {
		return fmt.Errorf("%w: requested %d threads, capacity is %d",
			ErrInvalidThreadCount, numThreads, p.MaxThreadNum())
	}

	affinity := make([]int, numThreads)
	for i := range affinity {
		affinity[i] = Unpinned
	}
	return p.StartPinned(affinity)
}

// StartPinned starts len(affinity) workers. Worker i is pinned to logical
// CPU affinity[i]; a negative entry (Unpinned) leaves worker i unpinned.
// Pinning failures are logged and the worker runs unpinned.
//
// Calling StartPinned on a running pool first drains and stops every active
// worker, then starts the new set. Same-hash ordering does not carry across
// that boundary.
//
// Parameters:
//   - affinity: one entry per worker to start, at most MaxThreadNum() entries
//
// Returns:
//   - error: ErrInvalidThreadCount if affinity is empty or too long; the pool
//     is left untouched in that case
//
// Example:
//
//	// five workers, three of them pinned to cpus 1, 2 and 5
//	err := p.StartPinned([]int{1, 2, pool.Unpinned, pool.Unpinned, 5})
func (p *Pool[R]) StartPinned(affinity []int) error {
	if len(affinity) == 0 {
		return fmt.Errorf("%w: requested 0 threads", ErrInvalidThreadCount)
	}
	if len(affinity) > p.MaxThreadNum() {
		return fmt.Errorf("%w: requested %d threads, capacity is %d",
			ErrInvalidThreadCount, len(affinity), p.MaxThreadNum())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if prev := p.endLocked(); prev > 0 {
		p.ex.logger.Info("pool restarting", "previous_threads", prev)
	}

	p.stop.Store(false)
	pinned := 0
	for i, cpuID := range affinity {
		w := p.workers[i]
		w.setAffinity(cpuID)
		if w.affinity != Unpinned {
			pinned++
		}
		w.start(&p.stop)
	}
	p.active.Store(int64(len(affinity)))

	p.ex.logger.Info("pool started", "threads", len(affinity), "pinned", pinned)
	return nil
}

// End stops the pool. It blocks until every active worker has executed all
// tasks queued before End was called and its thread has exited. Calling End
// on a stopped pool is a no-op.
//
// Example:
//
//	p.Start(4)
//	for _, job := range jobs {
//	    p.Push(job)
//	}
//	p.End() // every pushed job has run once End returns
func (p *Pool[R]) End() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := p.endLocked(); n > 0 {
		p.ex.logger.Info("pool ended", "threads", n)
	}
}

// Close ends the pool; it always returns nil.
func (p *Pool[R]) Close() error {
	p.End()
	return nil
}

// endLocked zeroes the active count, raises the stop flag and ends the
// previously active workers in parallel. The caller holds mu exclusively.
func (p *Pool[R]) endLocked() int {
	n := int(p.active.Swap(0))
	p.stop.Store(true)

	var g errgroup.Group
	for _, w := range p.workers[:n] {
		g.Go(func() error {
			w.end()
			return nil
		})
	}
	_ = g.Wait()

	return n
}

// Push enqueues task on a randomly chosen active worker.
// Tasks pushed this way have no ordering guarantee between them.
//
// Returns:
//   - *Future[R]: handle resolved with the task's value or failure
//   - error: ErrNoAvailableWorkers if the pool is stopped, ErrNilTask for a nil task
//
// Example:
//
//	future, err := p.Push(func() (int, error) { return compute(), nil })
//	if err != nil {
//	    return err
//	}
//	v, err := future.Get()
func (p *Pool[R]) Push(task Task[R]) (*Future[R], error) {
	// math/rand/v2's top-level source is per-thread, so concurrent pushers
	// never share generator state
	return p.PushHash(task, rand.Uint32())
}

// PushHash enqueues task on worker hash % ThreadNum(). Tasks pushed with
// equal hashes while the active count does not change run on the same
// worker, one after another, in push order.
//
// Returns:
//   - *Future[R]: handle resolved with the task's value or failure
//   - error: ErrNoAvailableWorkers if the pool is stopped, ErrNilTask for a nil task
//
// Example:
//
//	// every update for one account is applied in order
//	future, err := p.PushHash(applyUpdate(u), u.AccountID)
func (p *Pool[R]) PushHash(task Task[R], hash uint32) (*Future[R], error) {
	if task == nil {
		p.reject()
		return nil, ErrNilTask
	}

	// many pushers share the lock; Start/End wait for all of them
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := p.active.Load()
	if n == 0 {
		p.reject()
		return nil, ErrNoAvailableWorkers
	}

	future := p.workers[uint64(hash)%uint64(n)].push(task)
	p.pushed.Add(1)
	p.ex.metrics.recordPushed()
	return future, nil
}

// PushKey enqueues task on the worker selected by KeyHash(key), giving
// string keys the same ordering guarantee PushHash gives hashes.
func (p *Pool[R]) PushKey(task Task[R], key string) (*Future[R], error) {
	return p.PushHash(task, KeyHash(key))
}

// KeyHash maps key to the routing hash used by PushKey: the 64-bit xxhash
// of key folded to 32 bits.
func KeyHash(key string) uint32 {
	h := xxhash.Sum64String(key)
	return uint32(h ^ (h >> 32)) // #nosec G115 -- folding is intentional
}

func (p *Pool[R]) reject() {
	p.rejected.Add(1)
	p.ex.metrics.recordRejected()
}
