// Package config handles command-line and environment configuration for the
// prime counter.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "PRIMECALC_"

const (
	// DefaultN is the default exclusive upper bound of the candidate range.
	DefaultN = 100
	// DefaultThreads is the default number of workers.
	DefaultThreads = 8
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the exclusive upper bound: primes in [0, N) are counted.
	N int
	// Threads is the number of workers. Zero selects one per logical CPU.
	Threads int
	// Compare also runs a single-worker pass and checks both counts agree.
	Compare bool
	// Details prints the per-worker breakdown.
	Details bool
	// Quiet prints only the prime count.
	Quiet bool
	// OutputFile, when set, receives a result report.
	OutputFile string
	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string
	// MemoryLimit caps the marker store size (e.g. "512M"). Empty keeps the
	// orchestrator default of 4G.
	MemoryLimit string
	// LogLevel is the minimum zerolog level written to stderr.
	LogLevel string
	// NoColor disables colored output.
	NoColor bool
	// TUI launches the interactive dashboard.
	TUI bool
	// Completion, when set, prints a completion script for that shell.
	Completion string
}

// ParseConfig parses the command-line arguments, applies PRIMECALC_
// environment overrides for flags that were not given explicitly, and
// validates the result. flag.ErrHelp is returned unwrapped when -h is used.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Counts the primes below a bound with a fixed pool of workers.\n\n")
		fmt.Fprintf(errWriter, "Options:\n")
		fs.PrintDefaults()
	}

	var cfg AppConfig
	fs.IntVar(&cfg.N, "n", DefaultN, "Exclusive upper bound of the candidates (alias --max).")
	fs.IntVar(&cfg.N, "max", DefaultN, "Exclusive upper bound of the candidates.")
	fs.IntVar(&cfg.Threads, "t", DefaultThreads, "Number of workers, 0 for one per CPU (alias --threads).")
	fs.IntVar(&cfg.Threads, "threads", DefaultThreads, "Number of workers, 0 for one per CPU.")
	fs.BoolVar(&cfg.Compare, "compare", false, "Cross-check the count against a single-worker run.")
	fs.BoolVar(&cfg.Details, "d", false, "Show the per-worker breakdown (alias --details).")
	fs.BoolVar(&cfg.Details, "details", false, "Show the per-worker breakdown.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the prime count (alias --quiet).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the prime count.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write a result report to this file (alias --output).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write a result report to this file.")
	fs.StringVar(&cfg.MetricsFile, "metrics-out", "", "Write run metrics in Prometheus text format to this file.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "Maximum marker store size (e.g. 512M, 2G; default 4G).")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic validity of the configuration. It is the
// only gate before workers are spawned.
func (c AppConfig) Validate() error {
	if c.N < 0 {
		return apperrors.NewConfigError("the bound (-n) must be non-negative, got %d", c.N)
	}
	if c.Threads < 0 {
		return apperrors.NewConfigError("the worker count (-t) must be positive, or 0 for auto, got %d", c.Threads)
	}
	if c.MemoryLimit != "" {
		if _, err := ParseMemoryLimit(c.MemoryLimit); err != nil {
			return apperrors.NewConfigError("invalid --memory-limit: %v", err)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid --log-level: %v", err)
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported shell for --completion: %q", c.Completion)
	}
	return nil
}

// ParseMemoryLimit parses a size such as "512", "64K", "512M" or "2G"
// (binary multiples) into bytes.
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	s = strings.TrimSuffix(s, "B")
	if s == "" {
		return 0, errors.New("empty size")
	}
	multiplier := uint64(1)
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1 << 10
	case 'M':
		multiplier = 1 << 20
	case 'G':
		multiplier = 1 << 30
	case 'T':
		multiplier = 1 << 40
	}
	if multiplier != 1 {
		s = s[:len(s)-1]
	}
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if value == 0 {
		return 0, errors.New("size must be positive")
	}
	if value > math.MaxUint64/multiplier {
		return 0, fmt.Errorf("size %q overflows 64 bits", s)
	}
	return value * multiplier, nil
}
