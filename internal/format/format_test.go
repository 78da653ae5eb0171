package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0\u00b5s"},
		{500 * time.Nanosecond, "0\u00b5s"},
		{42 * time.Microsecond, "42\u00b5s"},
		{999 * time.Microsecond, "999\u00b5s"},
		{time.Millisecond, "1ms"},
		{350 * time.Millisecond, "350ms"},
		{2*time.Second + 500*time.Millisecond, "2.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{400 * time.Millisecond, "< 1s"},
		{1400 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{3 * time.Minute, "3m"},
		{3*time.Minute + 7*time.Second, "3m7s"},
		{5 * time.Hour, "5h"},
		{5*time.Hour + 20*time.Minute + 30*time.Second, "5h20m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tt.eta); got != tt.want {
				t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0", "0"},
		{"168", "168"},
		{"1229", "1,229"},
		{"664579", "664,579"},
		{"50847534", "50,847,534"},
		{"-9592", "-9,592"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatNumber(5761455); got != "5,761,455" {
		t.Errorf("FormatNumber(5761455) = %q", got)
	}
	if got := FormatNumber(-100); got != "-100" {
		t.Errorf("FormatNumber(-100) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10_000_000, "9.5 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
