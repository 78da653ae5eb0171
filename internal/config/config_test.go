package config

import (
	"errors"
	"flag"
	"io"
	"math"
	"testing"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("primecalc", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.N != DefaultN || cfg.Threads != DefaultThreads {
		t.Errorf("defaults = (n=%d, t=%d), want (%d, %d)", cfg.N, cfg.Threads, DefaultN, DefaultThreads)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{"short bound and threads", []string{"-n", "1000", "-t", "4"}, func(t *testing.T, c AppConfig) {
			if c.N != 1000 || c.Threads != 4 {
				t.Errorf("got n=%d t=%d", c.N, c.Threads)
			}
		}},
		{"long aliases", []string{"--max", "50", "--threads", "3"}, func(t *testing.T, c AppConfig) {
			if c.N != 50 || c.Threads != 3 {
				t.Errorf("got n=%d t=%d", c.N, c.Threads)
			}
		}},
		{"zero bound is legal", []string{"-n", "0"}, func(t *testing.T, c AppConfig) {
			if c.N != 0 {
				t.Errorf("got n=%d", c.N)
			}
		}},
		{"more threads than candidates", []string{"-n", "2", "-t", "64"}, func(t *testing.T, c AppConfig) {
			if c.Threads != 64 {
				t.Errorf("got t=%d", c.Threads)
			}
		}},
		{"switches", []string{"--compare", "-d", "-q", "--no-color", "-o", "out.txt", "--metrics-out", "m.prom"}, func(t *testing.T, c AppConfig) {
			if !c.Compare || !c.Details || !c.Quiet || !c.NoColor {
				t.Errorf("switches not set: %+v", c)
			}
			if c.OutputFile != "out.txt" || c.MetricsFile != "m.prom" {
				t.Errorf("files not set: %+v", c)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("primecalc", tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseConfig(%v): %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative bound", []string{"-n", "-5"}},
		{"negative threads", []string{"-t", "-1"}},
		{"not a number", []string{"-n", "ten"}},
		{"unknown flag", []string{"--sieve"}},
		{"positional argument", []string{"100"}},
		{"bad memory limit", []string{"--memory-limit", "lots"}},
		{"bad log level", []string{"--log-level", "chatty"}},
		{"bad shell", []string{"--completion", "tcsh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("primecalc", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ParseConfig(%v) error = %v, want ConfigError", tt.args, err)
			}
			if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCode(err), apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("primecalc", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
}

func TestParseMemoryLimit(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"512", 512, false},
		{"64K", 64 << 10, false},
		{"512M", 512 << 20, false},
		{"2g", 2 << 30, false},
		{"1GB", 1 << 30, false},
		{"1T", 1 << 40, false},
		{"", 0, true},
		{"0M", 0, true},
		{"-1M", 0, true},
		{"lots", 0, true},
		{"18446744073709551615", math.MaxUint64, false},
		{"16777215T", 16777215 << 40, false},
		{"16777216T", 0, true},
		{"99999999999T", 0, true},
		{"18446744073709551615K", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMemoryLimit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMemoryLimit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMemoryLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResolveWorkers(t *testing.T) {
	if got := ResolveWorkers(AppConfig{Threads: 0}).Threads; got != EstimateWorkers() {
		t.Errorf("auto workers = %d, want %d", got, EstimateWorkers())
	}
	if got := ResolveWorkers(AppConfig{Threads: 3}).Threads; got != 3 {
		t.Errorf("explicit workers = %d, want 3", got)
	}
	if EstimateWorkers() < 1 {
		t.Error("EstimateWorkers must be at least 1")
	}
}
