// pinbench drives a pinpool pool with a configurable workload and reports how
// tasks were spread over its workers.
//
// Usage:
//
//	pinbench run [--config file] [--threads N | --affinity 0,1,-1] [--tasks K]
//	             [--mode random|hash|key] [--hash H] [--keys K] [--work D]
//	             [--rate R] [--burst B] [--log-file path] [--log-level level]
//	pinbench cpus
//
// Examples:
//
//	pinbench run --threads 8 --tasks 100000
//	pinbench run --affinity 1,2,-1,-1,5 --mode hash --hash 42
//	pinbench run --config profiles/pinned.yaml --rate 500
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Version is injected with -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

func main() {
	enableANSI()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := createApp().Run(ctx, os.Args); err != nil {
		_, _ = red.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "pinbench",
		Usage:   "benchmark hash-routed, cpu-pinned worker pools",
		Version: Version,
		Commands: []*cli.Command{
			createRunCommand(),
			createCPUsCommand(),
		},
		DefaultCommand: "run",
	}
}

func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "start a pool, push a workload and print per-worker results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "run profile (.yaml, .yml or .json); flags override its values",
			},
			&cli.IntFlag{
				Name:  "max-threads",
				Usage: "pool capacity",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"n"},
				Usage:   "number of unpinned workers",
			},
			&cli.IntSliceFlag{
				Name:    "affinity",
				Aliases: []string{"a"},
				Usage:   "one cpu per worker, -1 for unpinned (overrides --threads)",
			},
			&cli.IntFlag{
				Name:    "tasks",
				Aliases: []string{"t"},
				Usage:   "number of tasks to push",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "routing: random, hash or key",
			},
			&cli.UintFlag{
				Name:  "hash",
				Usage: "routing hash of every task in hash mode",
			},
			&cli.IntFlag{
				Name:  "keys",
				Usage: "number of distinct routing keys in key mode",
			},
			&cli.DurationFlag{
				Name:  "work",
				Usage: "busy time per task",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "max tasks per second across the pool, 0 for unlimited",
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "rate limiter burst",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to this rotating file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "hide the progress bar",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			profile, err := loadProfile(cmd)
			if err != nil {
				return err
			}
			return runBenchmark(ctx, profile, !cmd.Bool("no-progress"))
		},
	}
}

func createCPUsCommand() *cli.Command {
	return &cli.Command{
		Name:  "cpus",
		Usage: "print the logical cpus available for pinning",
		Action: func(_ context.Context, _ *cli.Command) error {
			printCPUs()
			return nil
		},
	}
}
