package benchmarks

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/utkarsh5026/pinpool/pool"
)

// startConfig defines a benchmark configuration for bringing a pool up
type startConfig struct {
	name  string
	start func(p *pool.Pool[int], workers int) error
}

// getAllStartConfigs returns the unpinned and pinned ways of starting a pool
func getAllStartConfigs() []startConfig {
	return []startConfig{
		{
			name: "Unpinned",
			start: func(p *pool.Pool[int], workers int) error {
				return p.Start(workers)
			},
		},
		{
			name: "Pinned",
			start: func(p *pool.Pool[int], workers int) error {
				affinity := make([]int, workers)
				for i := range affinity {
					affinity[i] = i
				}
				return p.StartPinned(affinity)
			},
		},
	}
}

// newStartedPool creates a pool with a discarding logger and starts it
func newStartedPool(b *testing.B, sc startConfig, workers int) *pool.Pool[int] {
	b.Helper()
	p := pool.New[int](pool.WithLogger(slog.New(slog.DiscardHandler)))
	if err := sc.start(p, workers); err != nil {
		b.Fatal(err)
	}
	return p
}

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations, task int) pool.Task[int] {
	return func() (int, error) {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * task
		}
		return result, nil
	}
}

// reportThroughput reports tasks/sec given the number of tasks per op
func reportThroughput(b *testing.B, tasksPerOp, workers int) {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
	tasksPerSec := (float64(tasksPerOp) / nsPerOp) * 1e9

	b.ReportMetric(tasksPerSec, "tasks/sec")
	if workers > 0 {
		b.ReportMetric(tasksPerSec/float64(workers), "tasks/sec/worker")
	}
}

func name(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}
