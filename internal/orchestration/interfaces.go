package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/sieve"
)

// WorkerResult is the value a worker returns when it joins.
type WorkerResult struct {
	// Index is the worker index in [0, workers).
	Index int
	// Range is the half-open candidate range the worker owned.
	Range sieve.Range
	// LocalCount is the number of primes found in Range.
	LocalCount int
	// Duration is the time the worker spent classifying and counting.
	Duration time.Duration
}

// RunResult encapsulates the outcome of one counting run. It serves as the
// shared domain type between orchestration and presentation layers.
type RunResult struct {
	// Name identifies the run in comparison tables (e.g. "8 workers").
	Name string
	// N is the exclusive upper bound of the candidates.
	N int
	// Workers is the number of workers the run forked.
	Workers int
	// Total is the number of primes below N. It is zero if Err is set.
	Total int64
	// Duration covers the classify and reduce phase.
	Duration time.Duration
	// PerWorker holds the joined worker results in index order.
	PerWorker []WorkerResult
	// Err contains any error that aborted the run.
	Err error
}

// RunPlan describes one run to execute.
type RunPlan struct {
	Name    string
	N       int
	Workers int
}

// Runner executes a single counting run. *Orchestrator is the production
// implementation.
type Runner interface {
	Run(ctx context.Context, n, workers int, progressChan chan<- progress.Update) (RunResult, error)
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N       int
	Details bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying run progress.
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the workers.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting run results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []RunResult, out io.Writer)

	// PresentResult displays the final count of a run.
	PresentResult(result RunResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
