package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/utkarsh5026/pinpool/internal/config"
	"github.com/utkarsh5026/pinpool/pool"
)

// result is what one run reports.
type result struct {
	profile  config.Profile
	stats    pool.Stats
	pushed   int
	failed   int
	elapsed  time.Duration
	busyTime time.Duration
}

func runBenchmark(ctx context.Context, profile config.Profile, showProgress bool) error {
	logger, closer := newLogger(profile.LogFile, profile.LogLevel)
	defer func() { _ = closer.Close() }()

	opts := []pool.Option{
		pool.WithMaxThreads(profile.MaxThreads),
		pool.WithLogger(logger),
		pool.WithName(profile.Name),
	}
	if profile.Rate > 0 {
		opts = append(opts, pool.WithRateLimit(profile.Rate, profile.Burst))
	}
	p := pool.New[time.Duration](opts...)

	var err error
	if len(profile.Affinity) > 0 {
		err = p.StartPinned(profile.Affinity)
	} else {
		err = p.Start(profile.Threads)
	}
	if err != nil {
		return err
	}
	defer p.End()

	printHeader(profile)

	var bar *progressbar.ProgressBar
	if showProgress && profile.Tasks > 0 {
		bar = makeProgressBar(profile.Tasks)
	}

	start := time.Now()
	futures, pushErr := pushWorkload(ctx, p, profile)

	res := result{profile: profile, pushed: len(futures)}
	for _, f := range futures {
		busy, err := f.Get()
		if err != nil {
			res.failed++
		}
		res.busyTime += busy
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	res.elapsed = time.Since(start)
	res.stats = p.Stats()

	if bar != nil {
		_ = bar.Finish()
	}

	renderResult(res)

	if errors.Is(pushErr, context.Canceled) {
		_, _ = yellow.Fprintf(os.Stderr, "interrupted after %d of %d tasks\n", res.pushed, profile.Tasks)
		return nil
	}
	return pushErr
}

// pushWorkload pushes profile.Tasks spin tasks routed by profile.Mode and
// stops early when ctx ends.
func pushWorkload(ctx context.Context, p *pool.Pool[time.Duration], profile config.Profile) ([]*pool.Future[time.Duration], error) {
	futures := make([]*pool.Future[time.Duration], 0, profile.Tasks)

	for i := range profile.Tasks {
		if err := ctx.Err(); err != nil {
			return futures, err
		}

		task := spinTask(profile.Work)

		var (
			f   *pool.Future[time.Duration]
			err error
		)
		switch profile.Mode {
		case config.ModeHash:
			f, err = p.PushHash(task, profile.Hash)
		case config.ModeKey:
			f, err = p.PushKey(task, fmt.Sprintf("key-%d", i%profile.Keys))
		default:
			f, err = p.Push(task)
		}
		if err != nil {
			return futures, fmt.Errorf("push task %d: %w", i, err)
		}
		futures = append(futures, f)
	}

	return futures, nil
}

// spinTask keeps its worker's cpu busy for d and reports how long it ran.
func spinTask(d time.Duration) pool.Task[time.Duration] {
	return func() (time.Duration, error) {
		start := time.Now()
		for time.Since(start) < d {
		}
		return time.Since(start), nil
	}
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Running tasks"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
