package orchestration

import (
	"time"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/progress"
)

// ProgressAggregator folds per-worker updates into an overall progress value
// and ETA. Both CLI and TUI use it to avoid duplicating the aggregation setup
// and update logic.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numWorkers int
	done       []bool
	completed  int
	found      int
}

// NewProgressAggregator creates a new aggregator for the given number of
// workers. Returns nil if numWorkers <= 0.
func NewProgressAggregator(numWorkers int) *ProgressAggregator {
	if numWorkers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numWorkers),
		numWorkers: numWorkers,
		done:       make([]bool, numWorkers),
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// WorkerIndex is the index of the worker that sent the update.
	WorkerIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all workers.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
	// Completed is the number of workers that have reported completion.
	Completed int
	// PrimesSoFar sums the local counts of the completed workers.
	PrimesSoFar int
}

// Update processes a single progress update and returns the aggregated
// result. A worker's completion is counted once even if it is reported
// again. The aggregator is not safe for concurrent use; it belongs to the
// goroutine draining the progress channel.
func (a *ProgressAggregator) Update(update progress.Update) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.WorkerIndex, update.Value)
	if update.Done() && update.WorkerIndex >= 0 && update.WorkerIndex < a.numWorkers && !a.done[update.WorkerIndex] {
		a.done[update.WorkerIndex] = true
		a.completed++
		a.found += update.LocalCount
	}
	return AggregatedProgress{
		WorkerIndex:     update.WorkerIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
		Completed:       a.completed,
		PrimesSoFar:     a.found,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumWorkers returns the number of workers being tracked.
func (a *ProgressAggregator) NumWorkers() int {
	return a.numWorkers
}

// Completed returns how many workers have finished.
func (a *ProgressAggregator) Completed() int {
	return a.completed
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numWorkers <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
