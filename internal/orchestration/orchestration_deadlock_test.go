package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/primecalc/internal/progress"
)

// mockRunner simulates various run behaviors for deadlock testing.
type mockRunner struct {
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *mockRunner) Run(ctx context.Context, n, workers int, progressChan chan<- progress.Update) (RunResult, error) {
	report := progress.ChannelCallback(progressChan)
	switch m.behavior {
	case "slow":
		for i := 0; i < workers; i++ {
			report(progress.Update{WorkerIndex: i, Value: 0})
			time.Sleep(m.delay)
			report(progress.Update{WorkerIndex: i, Value: 1})
		}
	case "error":
		return RunResult{N: n, Workers: workers}, fmt.Errorf("simulated error")
	case "progress_flood":
		for i := 0; i < 10000; i++ {
			report(progress.Update{WorkerIndex: i % max(workers, 1), Value: float64(i) / 10000.0})
		}
	}
	return RunResult{N: n, Workers: workers, Total: 1}, nil
}

// slowProgressReporter drains the channel slowly, as a terminal would.
type slowProgressReporter struct{}

func (slowProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		time.Sleep(100 * time.Microsecond)
	}
}

// TestExecuteRunsNoDeadlock_MixedBehaviors verifies that ExecuteRuns
// completes without deadlocking under various run behaviors.
func TestExecuteRunsNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name     string
		runner   Runner
		reporter ProgressReporter
		plans    []RunPlan
	}{
		{"instant", &mockRunner{behavior: "instant"}, NullProgressReporter{}, ComparePlans(100, 8)},
		{"slow", &mockRunner{behavior: "slow", delay: time.Millisecond}, slowProgressReporter{}, ComparePlans(100, 4)},
		{"error", &mockRunner{behavior: "error"}, NullProgressReporter{}, ComparePlans(100, 2)},
		{"progress_flood", &mockRunner{behavior: "progress_flood"}, slowProgressReporter{}, ComparePlans(100, 2)},
		{"zero_workers", &mockRunner{behavior: "instant"}, NullProgressReporter{}, []RunPlan{{N: 100, Workers: 0}}},
		{"real_orchestrator", New(), slowProgressReporter{}, ComparePlans(1000, 16)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			done := make(chan []RunResult)
			go func() {
				done <- ExecuteRuns(context.Background(), tc.runner, tc.plans, tc.reporter, io.Discard)
			}()

			select {
			case results := <-done:
				if len(results) != len(tc.plans) {
					t.Errorf("got %d results for %d plans", len(results), len(tc.plans))
				}
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteRuns did not complete within timeout")
			}
		})
	}
}

// TestExecuteRuns_ReporterJoinedPerRun verifies that each run's display
// goroutine sees every update of that run and finishes before the next run.
func TestExecuteRuns_ReporterJoinedPerRun(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	active := 0
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.Update, numWorkers int, _ io.Writer) {
		defer wg.Done()
		mu.Lock()
		active++
		if active > 1 {
			t.Error("two display goroutines were active at once")
		}
		mu.Unlock()

		count := 0
		for range ch {
			count++
		}

		mu.Lock()
		active--
		seen = append(seen, count)
		mu.Unlock()
	})

	results := ExecuteRuns(context.Background(), New(), ComparePlans(200, 6), reporter, io.Discard)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Name != "1 worker" || results[1].Name != "6 workers" {
		t.Errorf("unexpected names: %q, %q", results[0].Name, results[1].Name)
	}
	if results[0].Total != 46 || results[1].Total != 46 {
		t.Errorf("totals = %d, %d, want 46", results[0].Total, results[1].Total)
	}
	if len(seen) != 2 || seen[0] != 2 || seen[1] != 12 {
		t.Errorf("updates per run = %v, want [2 12]", seen)
	}
}

// TestExecuteRuns_CanceledContext verifies that a canceled context fails
// every run without deadlocking.
func TestExecuteRuns_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ExecuteRuns(ctx, New(), ComparePlans(100, 4), nil, io.Discard)
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("run %s should have failed", r.Name)
		}
	}
}
