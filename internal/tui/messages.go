package tui

import (
	"time"

	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/progress"
)

// RunStartedMsg announces a run with the given number of workers. In
// comparison mode one is sent per run.
type RunStartedMsg struct {
	Workers int
}

// WorkerProgressMsg carries one worker update and the aggregated progress.
type WorkerProgressMsg struct {
	Update     progress.Update
	Aggregated orchestration.AggregatedProgress
}

// RunDoneMsg reports the end of all runs of a generation.
type RunDoneMsg struct {
	Results    []orchestration.RunResult
	ExitCode   int
	Generation uint64
}

// TickMsg refreshes the elapsed time while a run is in flight.
type TickMsg time.Time
