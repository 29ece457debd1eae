package benchmarks

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"testing"

	"github.com/utkarsh5026/pinpool/pool"
)

// =============================================================================
// Throughput Benchmarks
// =============================================================================

func BenchmarkThroughput_WorkerScaling(b *testing.B) {
	workerCounts := []int{1, 2, 4, 8, 16}
	taskCount := 10000

	for _, sc := range getAllStartConfigs() {
		for _, workers := range workerCounts {
			b.Run(name("%s/workers_%d", sc.name, workers), func(b *testing.B) {
				p := newStartedPool(b, sc, workers)
				defer p.End()

				futures := make([]*pool.Future[int], taskCount)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					for j := range futures {
						f, err := p.Push(cpuBoundWork(100, j))
						if err != nil {
							b.Fatal(err)
						}
						futures[j] = f
					}
					for _, f := range futures {
						if _, err := f.Get(); err != nil {
							b.Fatal(err)
						}
					}
				}
				b.StopTimer()

				reportThroughput(b, taskCount, workers)
			})
		}
	}
}

func BenchmarkThroughput_Routing(b *testing.B) {
	workers := min(runtime.NumCPU(), 8)
	taskCount := 10000
	keys := make([]string, 64)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	routes := []struct {
		name string
		push func(p *pool.Pool[int], task pool.Task[int], i int) (*pool.Future[int], error)
	}{
		{"Random", func(p *pool.Pool[int], task pool.Task[int], _ int) (*pool.Future[int], error) {
			return p.Push(task)
		}},
		{"Hash", func(p *pool.Pool[int], task pool.Task[int], i int) (*pool.Future[int], error) {
			return p.PushHash(task, uint32(i%64)) // #nosec G115
		}},
		{"Key", func(p *pool.Pool[int], task pool.Task[int], i int) (*pool.Future[int], error) {
			return p.PushKey(task, keys[i%64])
		}},
		{"SingleHash", func(p *pool.Pool[int], task pool.Task[int], _ int) (*pool.Future[int], error) {
			return p.PushHash(task, 42)
		}},
	}

	for _, route := range routes {
		b.Run(route.name, func(b *testing.B) {
			p := newStartedPool(b, getAllStartConfigs()[0], workers)
			defer p.End()

			futures := make([]*pool.Future[int], taskCount)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for j := range futures {
					f, err := route.push(p, cpuBoundWork(100, j), j)
					if err != nil {
						b.Fatal(err)
					}
					futures[j] = f
				}
				for _, f := range futures {
					_, _ = f.Get()
				}
			}
			b.StopTimer()

			reportThroughput(b, taskCount, workers)
		})
	}
}

// =============================================================================
// Push Latency Benchmarks
// =============================================================================

func BenchmarkPush_Parallel(b *testing.B) {
	workers := min(runtime.NumCPU(), 8)
	p := newStartedPool(b, getAllStartConfigs()[0], workers)
	defer p.End()

	task := cpuBoundWork(10, 1)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := p.Push(task); err != nil {
				b.Error(err)
				return
			}
		}
	})
	b.StopTimer()
}

func BenchmarkPush_RoundTrip(b *testing.B) {
	for _, sc := range getAllStartConfigs() {
		b.Run(sc.name, func(b *testing.B) {
			p := newStartedPool(b, sc, 1)
			defer p.End()

			task := cpuBoundWork(1, 1)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := p.PushHash(task, 0)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := f.Get(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// =============================================================================
// Lifecycle Benchmarks
// =============================================================================

func BenchmarkLifecycle_StartEnd(b *testing.B) {
	for _, workers := range []int{1, 4, 16} {
		b.Run(name("workers_%d", workers), func(b *testing.B) {
			p := pool.New[int](pool.WithMaxThreads(16), pool.WithLogger(slog.New(slog.DiscardHandler)))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := p.Start(workers); err != nil {
					b.Fatal(err)
				}
				p.End()
			}
		})
	}
}

// BenchmarkContention_ConcurrentPushers measures pushers sharing the
// lifecycle lock.
func BenchmarkContention_ConcurrentPushers(b *testing.B) {
	workers := min(runtime.NumCPU(), 8)
	taskCount := 1000

	for _, pushers := range []int{1, 4, 16} {
		b.Run(name("pushers_%d", pushers), func(b *testing.B) {
			p := newStartedPool(b, getAllStartConfigs()[0], workers)
			defer p.End()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var wg sync.WaitGroup
				for range pushers {
					wg.Add(1)
					go func() {
						defer wg.Done()
						futures := make([]*pool.Future[int], 0, taskCount)
						for j := range taskCount {
							f, err := p.Push(cpuBoundWork(10, j))
							if err != nil {
								b.Error(err)
								return
							}
							futures = append(futures, f)
						}
						for _, f := range futures {
							_, _ = f.Get()
						}
					}()
				}
				wg.Wait()
			}
			b.StopTimer()

			reportThroughput(b, taskCount*pushers, workers)
		})
	}
}
