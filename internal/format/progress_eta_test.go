package format

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestProgressState_Average(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	if got := ps.CalculateAverage(); got != 0 {
		t.Fatalf("initial average = %v, want 0", got)
	}

	// Workers report 0 on start and 1 when their range is counted.
	ps.Update(0, 1)
	ps.Update(2, 1)
	if got := ps.CalculateAverage(); got != 0.5 {
		t.Errorf("average after two of four workers = %v, want 0.5", got)
	}

	ps.Update(1, 7)  // clamped to 1
	ps.Update(3, -2) // clamped to 0
	ps.Update(9, 1)  // ignored
	ps.Update(-1, 1) // ignored
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("average = %v, want 0.75", got)
	}
}

func TestProgressState_NoWorkers(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -3} {
		ps := NewProgressState(n)
		ps.Update(0, 1)
		if got := ps.CalculateAverage(); got != 0 {
			t.Errorf("NewProgressState(%d) average = %v, want 0", n, got)
		}
	}
}

func TestProgressState_ConcurrentUpdates(t *testing.T) {
	t.Parallel()
	const workers = 64
	ps := NewProgressState(workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ps.Update(i, 0)
			ps.Update(i, 1)
		}(i)
	}
	wg.Wait()

	if got := ps.CalculateAverage(); got != 1 {
		t.Errorf("average = %v, want 1", got)
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	if p.GetETA() != 0 {
		t.Error("no estimate should exist before any progress")
	}

	time.Sleep(5 * time.Millisecond)
	avg, eta := p.UpdateWithETA(0, 1)
	if avg != 0.5 {
		t.Errorf("average = %v, want 0.5", avg)
	}
	if eta <= 0 || eta > maxETA {
		t.Errorf("ETA = %v, want a positive estimate", eta)
	}

	avg, eta = p.UpdateWithETA(1, 1)
	if avg != 1 || eta != 0 {
		t.Errorf("finished run: average = %v, ETA = %v; want 1 and 0", avg, eta)
	}
}

func TestProgressWithETA_RateEstimate(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.5)
	p.progressRate = 0.1 // 10% per second

	if eta := p.GetETA(); eta < 5*time.Second-time.Millisecond || eta > 5*time.Second+time.Millisecond {
		t.Errorf("ETA = %v, want about 5s", eta)
	}

	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("stalled ETA = %v, want the %v cap", eta, maxETA)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1, 4, "████"},
		{1.5, 4, "████"},
		{-1, 4, "░░░░"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.25, 90*time.Second, 8)
	want := "[██░░░░░░]  25.0% ETA: 1m30s"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := FormatProgressBarWithETA(1, 0, 4); !strings.HasSuffix(got, "100.0% ETA: calculating...") {
		t.Errorf("finished bar = %q", got)
	}
}
