// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PRIMECALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
// Malformed numeric values are configuration errors.
var envOverrides = []envOverride{
	// Numeric overrides
	{"N", []string{"n", "max"}, func(c *AppConfig, v string) error {
		return parseIntEnv("N", v, &c.N)
	}},
	{"THREADS", []string{"t", "threads"}, func(c *AppConfig, v string) error {
		return parseIntEnv("THREADS", v, &c.Threads)
	}},

	// String overrides
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"METRICS_OUT", []string{"metrics-out"}, func(c *AppConfig, v string) error {
		c.MetricsFile = v
		return nil
	}},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) error {
		c.MemoryLimit = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},

	// Boolean overrides
	{"COMPARE", []string{"compare"}, func(c *AppConfig, v string) error {
		c.Compare = parseBoolEnv(v, c.Compare)
		return nil
	}},
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, v string) error {
		c.Details = parseBoolEnv(v, c.Details)
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) error {
		c.TUI = parseBoolEnv(v, c.TUI)
		return nil
	}},
}

// parseIntEnv parses the decimal value of PRIMECALC_<key> into dst.
func parseIntEnv(key, val string, dst *int) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return apperrors.NewConfigError("invalid %s%s=%q: not an integer", EnvPrefix, key, val)
	}
	*dst = parsed
	return nil
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with PRIMECALC_):
//   - N, THREADS, OUTPUT, METRICS_OUT, MEMORY_LIMIT, LOG_LEVEL,
//     COMPARE, DETAILS, QUIET, NO_COLOR, TUI
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return err
			}
		}
	}
	return nil
}
