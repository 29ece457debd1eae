// Package config loads pinbench run profiles from YAML or JSON.
//
// A profile describes one benchmark run: how the pool is sized and pinned,
// how many tasks are pushed and how they are routed. Keys absent from the
// file keep the values of Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format is a profile file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Routing modes.
const (
	ModeRandom = "random"
	ModeHash   = "hash"
	ModeKey    = "key"
)

var (
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	ErrLoadFailed        = errors.New("config: load failed")
	ErrParseFailed       = errors.New("config: parse failed")
	ErrInvalidProfile    = errors.New("config: invalid profile")
)

// Profile is one pinbench run.
type Profile struct {
	Name string `koanf:"name"`

	// MaxThreads is the pool capacity.
	MaxThreads int `koanf:"max_threads"`
	// Threads starts that many unpinned workers. Ignored when Affinity is set.
	Threads int `koanf:"threads"`
	// Affinity starts one worker per entry, pinned to that cpu; -1 is unpinned.
	Affinity []int `koanf:"affinity"`

	Tasks int    `koanf:"tasks"`
	Mode  string `koanf:"mode"`
	// Hash is the routing hash of every task in hash mode.
	Hash uint32 `koanf:"hash"`
	// Keys is the number of distinct routing keys in key mode.
	Keys int `koanf:"keys"`
	// Work is how long each task busy-spins.
	Work time.Duration `koanf:"work"`

	Rate  float64 `koanf:"rate"`
	Burst int     `koanf:"burst"`

	LogFile  string `koanf:"log_file"`
	LogLevel string `koanf:"log_level"`
}

// Default returns the profile used when no file is given.
func Default() Profile {
	return Profile{
		Name:       "pinbench",
		MaxThreads: 128,
		Threads:    4,
		Tasks:      10_000,
		Mode:       ModeRandom,
		Keys:       16,
		Work:       50 * time.Microsecond,
		Burst:      1,
		LogLevel:   "info",
	}
}

// Load reads a profile file, detecting the format from its extension.
func Load(path string) (Profile, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Profile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return Parse(data, format)
}

// Parse decodes a profile over Default and validates it.
func Parse(data []byte, format Format) (Profile, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Profile{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	p := Default()
	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// WorkerCount is the number of workers the profile starts.
func (p Profile) WorkerCount() int {
	if len(p.Affinity) > 0 {
		return len(p.Affinity)
	}
	return p.Threads
}

// Validate checks the profile against the limits the pool enforces, so a bad
// file fails before any worker starts.
func (p Profile) Validate() error {
	var errs []error

	if p.MaxThreads <= 0 {
		errs = append(errs, fmt.Errorf("max_threads must be positive, got %d", p.MaxThreads))
	}
	if n := p.WorkerCount(); n <= 0 || n > p.MaxThreads {
		errs = append(errs, fmt.Errorf("worker count %d outside [1, %d]", n, p.MaxThreads))
	}
	if p.Tasks < 0 {
		errs = append(errs, fmt.Errorf("tasks must not be negative, got %d", p.Tasks))
	}
	switch p.Mode {
	case ModeRandom, ModeHash:
	case ModeKey:
		if p.Keys <= 0 {
			errs = append(errs, fmt.Errorf("keys must be positive in key mode, got %d", p.Keys))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", p.Mode))
	}
	if p.Work < 0 {
		errs = append(errs, fmt.Errorf("work must not be negative, got %s", p.Work))
	}
	if p.Rate < 0 {
		errs = append(errs, fmt.Errorf("rate must not be negative, got %g", p.Rate))
	}
	if p.Rate > 0 && p.Burst <= 0 {
		errs = append(errs, fmt.Errorf("burst must be positive when rate is set, got %d", p.Burst))
	}
	switch strings.ToLower(p.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", p.LogLevel))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}
