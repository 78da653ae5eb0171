// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error returns message", ConfigError{Message: "invalid flag value"}, "invalid flag value"},
		{"NewConfigError formats", NewConfigError("invalid value %d for flag %s", -5, "-n"), "invalid value -5 for flag -n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			var configErr ConfigError
			if !errors.As(tt.err, &configErr) {
				t.Error("expected error to be ConfigError type")
			}
		})
	}
}

func TestWorkerError(t *testing.T) {
	t.Parallel()
	cause := errors.New("thread limit reached")
	tests := []struct {
		name     string
		err      WorkerError
		expected string
	}{
		{"known worker", WorkerError{Worker: 3, Cause: cause}, "worker 3 failed: thread limit reached"},
		{"unknown worker", WorkerError{Worker: -1, Cause: cause}, "worker failure: thread limit reached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if !errors.Is(tt.err, cause) {
				t.Error("errors.Is should find the cause")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "n", Message: "must be non-negative"}
	if err.Error() != `validation error for "n": must be non-negative` {
		t.Errorf("unexpected message %q", err.Error())
	}
	var validationErr ValidationError
	if !errors.As(WrapError(err, "config check failed"), &validationErr) {
		t.Error("errors.As should find ValidationError through WrapError")
	}
}

func TestMemoryError(t *testing.T) {
	t.Parallel()
	err := MemoryError{Requested: 1 << 30, Limit: 1 << 20}
	want := "memory error: marker store needs 1073741824 bytes, limit is 1048576"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestMismatchError(t *testing.T) {
	t.Parallel()
	err := MismatchError{N: 100, Expected: 25, Got: 24, Reference: "1 worker", Candidate: "8 workers"}
	want := "count mismatch for n=100: 1 worker found 25 primes, 8 workers found 24"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("out of memory"),
			format:      "allocating marker store",
			expectedMsg: "allocating marker store: out of memory",
		},
		{
			name:        "preserves error chain",
			original:    context.Canceled,
			format:      "run interrupted",
			expectedMsg: "run interrupted: context canceled",
			checkIs:     context.Canceled,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("panic"),
			format:      "worker %d of %d",
			args:        []any{2, 8},
			expectedMsg: "worker 2 of 8: panic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)
			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}
			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "run canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "threads", Message: "must be >= 0"}, ExitErrorConfig},
		{"wrapped config", WrapError(NewConfigError("bad"), "parsing"), ExitErrorConfig},
		{"mismatch", MismatchError{N: 10, Expected: 4, Got: 3}, ExitErrorMismatch},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"worker", WorkerError{Worker: 1, Cause: errors.New("panic")}, ExitErrorGeneric},
		{"memory", MemoryError{Requested: 2, Limit: 1}, ExitErrorGeneric},
		{"plain", errors.New("x"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

type testColors struct{}

func (testColors) Red() string    { return "<r>" }
func (testColors) Yellow() string { return "<y>" }
func (testColors) Reset() string  { return "</>" }

func TestHandleRunError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		colors   ColorProvider
		wantCode int
		contains []string
	}{
		{"nil", nil, nil, ExitSuccess, nil},
		{"config", NewConfigError("n must be non-negative, got -1"), nil, ExitErrorConfig,
			[]string{"Configuration error:", "got -1"}},
		{"worker", WorkerError{Worker: 2, Cause: errors.New("panic")}, testColors{}, ExitErrorGeneric,
			[]string{"<r>Run aborted after 5ms: worker 2 failed: panic</>", "No partial count"}},
		{"memory", MemoryError{Requested: 10, Limit: 5}, nil, ExitErrorGeneric,
			[]string{"Resource error:"}},
		{"mismatch", MismatchError{N: 10, Expected: 4, Got: 5, Reference: "a", Candidate: "b"}, nil, ExitErrorMismatch,
			[]string{"CRITICAL"}},
		{"canceled", context.Canceled, testColors{}, ExitErrorCanceled,
			[]string{"<y>Run canceled"}},
		{"other", errors.New("disk full"), nil, ExitErrorGeneric,
			[]string{"Error: disk full"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleRunError(tt.err, 5*time.Millisecond, &buf, tt.colors)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got %q", want, buf.String())
				}
			}
			if tt.err == nil && buf.Len() != 0 {
				t.Errorf("nil error should print nothing, got %q", buf.String())
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
