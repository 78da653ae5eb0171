package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/progress"
)

// ExecuteRuns runs each plan in turn and returns one result per plan, in
// plan order. Runs are sequential so that their timings do not compete for
// CPUs. Each run gets its own progress channel; the reporter's display
// goroutine is always joined before the next run starts.
func ExecuteRuns(ctx context.Context, runner Runner, plans []RunPlan, reporter ProgressReporter, out io.Writer) []RunResult {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	results := make([]RunResult, len(plans))
	for i, plan := range plans {
		progressChan := make(chan progress.Update, max(plan.Workers, 0)*ProgressBufferMultiplier)

		var displayWg sync.WaitGroup
		displayWg.Add(1)
		go reporter.DisplayProgress(&displayWg, progressChan, plan.Workers, out)

		res, err := runner.Run(ctx, plan.N, plan.Workers, progressChan)
		close(progressChan)
		displayWg.Wait()

		if plan.Name != "" {
			res.Name = plan.Name
		}
		res.Err = err
		results[i] = res
	}
	return results
}

// ComparePlans returns the plans of a thread-count cross-check: a
// single-worker reference run followed by the configured worker count.
func ComparePlans(n, workers int) []RunPlan {
	plans := []RunPlan{{Name: RunName(1), N: n, Workers: 1}}
	if workers != 1 {
		plans = append(plans, RunPlan{Name: RunName(workers), N: n, Workers: workers})
	}
	return plans
}

// CompareTotals checks that every successful result found the same number
// of primes. The first successful result is the reference.
func CompareTotals(results []RunResult) error {
	var ref *RunResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if ref == nil {
			ref = &results[i]
			continue
		}
		if results[i].Total != ref.Total {
			return apperrors.MismatchError{
				N:         ref.N,
				Expected:  ref.Total,
				Got:       results[i].Total,
				Reference: ref.Name,
				Candidate: results[i].Name,
			}
		}
	}
	return nil
}

// AnalyzeComparisonResults processes the results of a cross-check and
// reports the global status.
//
// The comparison table is printed first. A failed run fails the whole
// comparison, since a count that could not be produced cannot be checked.
// Otherwise every total must agree; a disagreement yields
// ExitErrorMismatch. On success the last result, which uses the configured
// worker count, is presented.
func AnalyzeComparisonResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	if len(results) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No run was executed.\n")
		return apperrors.ExitErrorGeneric
	}

	presenter.PresentComparisonTable(sortedByDuration(results), out)

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "\nGlobal Status: Failure. The %s run did not complete.\n", res.Name)
			return handler.HandleError(res.Err, res.Duration, out)
		}
	}

	if err := CompareTotals(results); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", err)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All worker counts agree.\n")
	presenter.PresentResult(results[len(results)-1], opts, out)
	return apperrors.ExitSuccess
}

// sortedByDuration returns a copy of results, successful runs first, then
// by ascending duration.
func sortedByDuration(results []RunResult) []RunResult {
	sorted := make([]RunResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if (sorted[i].Err == nil) != (sorted[j].Err == nil) {
			return sorted[i].Err == nil
		}
		return sorted[i].Duration < sorted[j].Duration
	})
	return sorted
}
