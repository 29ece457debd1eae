package pool

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// DefaultMaxThreads is the worker capacity of a pool created without WithMaxThreads.
const DefaultMaxThreads = 128

// Option is a functional option for configuring a Pool.
// Options that receive an invalid value leave the default in place.
type Option func(*config)

type config struct {
	maxThreads      int
	logger          *slog.Logger
	name            string
	rateLimiter     *rate.Limiter
	beforeTaskStart func(workerID int)
	onTaskEnd       func(workerID int, err error)
	meterProvider   metric.MeterProvider
}

func createConfig(opts ...Option) *config {
	cfg := &config{
		maxThreads: DefaultMaxThreads,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithMaxThreads sets the fixed worker capacity of the pool.
// The worker array is allocated once with this size and never grows, so it
// bounds every later Start call. If not specified, defaults to DefaultMaxThreads.
func WithMaxThreads(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxThreads = n
		}
	}
}

// WithLogger sets the logger used for lifecycle events, pinning failures and
// task panics. Defaults to slog.Default(); nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithName names the pool. The name is attached to every log record and
// metric so several pools in one process can be told apart.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithRateLimit caps how fast the pool executes tasks.
// tasksPerSecond is the sustained rate shared by all workers, burst the
// number of tasks that may run back to back before the limit applies.
// If not specified, tasks execute as fast as workers can pick them up.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithBeforeTaskStart registers a hook that runs on the worker thread right
// before each task, with the index of the executing worker.
func WithBeforeTaskStart(fn func(workerID int)) Option {
	return func(cfg *config) {
		cfg.beforeTaskStart = fn
	}
}

// WithOnTaskEnd registers a hook that runs on the worker thread after each
// task, before its Future is resolved. err is the task's outcome.
func WithOnTaskEnd(fn func(workerID int, err error)) Option {
	return func(cfg *config) {
		cfg.onTaskEnd = fn
	}
}

// WithMeterProvider enables OpenTelemetry metrics for the pool.
// Without it no instruments are created.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *config) {
		if mp != nil {
			cfg.meterProvider = mp
		}
	}
}
