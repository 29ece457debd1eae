package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

// startMode describes one way of bringing a pool to n active workers.
type startMode struct {
	name  string
	start func(p *Pool[int], n int) error
}

// getAllStartModes returns every start mode the routing and lifecycle tests
// run under. Pinning may fail on small or restricted machines; the pool must
// behave identically either way.
func getAllStartModes() []startMode {
	return []startMode{
		{
			name: "Unpinned",
			start: func(p *Pool[int], n int) error {
				return p.Start(n)
			},
		},
		{
			name: "Pinned",
			start: func(p *Pool[int], n int) error {
				affinity := make([]int, n)
				for i := range affinity {
					affinity[i] = i
				}
				return p.StartPinned(affinity)
			},
		},
		{
			name: "Mixed",
			start: func(p *Pool[int], n int) error {
				affinity := make([]int, n)
				for i := range affinity {
					affinity[i] = Unpinned
					if i%2 == 0 {
						affinity[i] = i
					}
				}
				return p.StartPinned(affinity)
			},
		},
	}
}

// runStartModeTest runs testFunc once per start mode against a running pool
// of n workers, ending the pool afterwards.
func runStartModeTest(t *testing.T, n int, testFunc func(t *testing.T, p *Pool[int]), opts ...Option) {
	t.Helper()
	for _, mode := range getAllStartModes() {
		t.Run(mode.name, func(t *testing.T) {
			p := New[int](append([]Option{WithLogger(quietLogger())}, opts...)...)
			require.NoError(t, mode.start(p, n))
			defer p.End()

			testFunc(t, p)
		})
	}
}

// valueTask returns a task that yields v.
func valueTask(v int) Task[int] {
	return func() (int, error) { return v, nil }
}

// waitAll waits for every future and fails the test on any task error.
func waitAll(t *testing.T, futures []*Future[int]) []int {
	t.Helper()
	values := make([]int, len(futures))
	for i, f := range futures {
		v, err := f.GetWithTimeout(testTimeout)
		require.NoError(t, err, "future %d", i)
		values[i] = v
	}
	return values
}
