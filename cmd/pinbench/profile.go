package main

import (
	"github.com/urfave/cli/v3"

	"github.com/utkarsh5026/pinpool/internal/config"
)

// loadProfile reads --config (or the defaults) and applies every flag the
// user set explicitly on top of it.
func loadProfile(cmd *cli.Command) (config.Profile, error) {
	profile := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if profile, err = config.Load(path); err != nil {
			return config.Profile{}, err
		}
	}

	if cmd.IsSet("max-threads") {
		profile.MaxThreads = cmd.Int("max-threads")
	}
	if cmd.IsSet("threads") {
		profile.Threads = cmd.Int("threads")
		profile.Affinity = nil
	}
	if cmd.IsSet("affinity") {
		profile.Affinity = cmd.IntSlice("affinity")
	}
	if cmd.IsSet("tasks") {
		profile.Tasks = cmd.Int("tasks")
	}
	if cmd.IsSet("mode") {
		profile.Mode = cmd.String("mode")
	}
	if cmd.IsSet("hash") {
		profile.Hash = uint32(cmd.Uint("hash")) // #nosec G115 -- routing hash is 32 bits
	}
	if cmd.IsSet("keys") {
		profile.Keys = cmd.Int("keys")
	}
	if cmd.IsSet("work") {
		profile.Work = cmd.Duration("work")
	}
	if cmd.IsSet("rate") {
		profile.Rate = cmd.Float("rate")
	}
	if cmd.IsSet("burst") {
		profile.Burst = cmd.Int("burst")
	}
	if cmd.IsSet("log-file") {
		profile.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("log-level") {
		profile.LogLevel = cmd.String("log-level")
	}

	return profile, profile.Validate()
}
