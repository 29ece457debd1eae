package pool

// Stats is a point-in-time snapshot of a pool.
type Stats struct {
	ThreadNum    int
	MaxThreadNum int
	// Pushed counts tasks accepted since New; Rejected counts pushes that
	// returned an error.
	Pushed   int64
	Rejected int64
	// Workers has one entry per active worker, in worker order.
	Workers []WorkerStats
}

// WorkerStats describes one active worker.
type WorkerStats struct {
	ID       int
	Affinity int
	// Pinned reports whether the worker's thread was successfully bound to
	// Affinity in the current run.
	Pinned bool
	Queued int
	// Executed and Failed are totals across every run of the worker.
	Executed int64
	Failed   int64
}

// Stats returns a snapshot of the pool. It takes the lifecycle lock in shared
// mode, so it never observes a half-started pool.
func (p *Pool[R]) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := p.ThreadNum()
	s := Stats{
		ThreadNum:    n,
		MaxThreadNum: p.MaxThreadNum(),
		Pushed:       p.pushed.Load(),
		Rejected:     p.rejected.Load(),
		Workers:      make([]WorkerStats, n),
	}

	for i, w := range p.workers[:n] {
		s.Workers[i] = WorkerStats{
			ID:       w.id,
			Affinity: w.affinity,
			Pinned:   w.pinned.Load(),
			Queued:   w.queue.Size(),
			Executed: w.executed.Load(),
			Failed:   w.failed.Load(),
		}
	}

	return s
}

// Executed sums Executed over the active workers.
func (s Stats) Executed() int64 {
	var total int64
	for _, w := range s.Workers {
		total += w.Executed
	}
	return total
}
