package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/primecalc/internal/cli"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/orchestration"
)

// runCalculate orchestrates the execution of the CLI counting command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// SIGINT only matters until the workers are forked; after that the run
	// always completes.
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runner, err := a.newRunner()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	plans := a.plans()

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(a.Config.Threads, a.Config.Compare, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.ExecuteRuns(ctx, runner, plans, progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Details:    a.Config.Details,
	}

	exitCode := a.analyzeResultsWithOutput(results, outputCfg, out)
	if code := a.writeMetrics(); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		return code
	}
	return exitCode
}

// plans returns the runs to execute: the configured worker count, preceded
// by a single-worker reference run in comparison mode.
func (a *Application) plans() []orchestration.RunPlan {
	if a.Config.Compare {
		return orchestration.ComparePlans(a.Config.N, a.Config.Threads)
	}
	return []orchestration.RunPlan{{
		Name:    orchestration.RunName(a.Config.Threads),
		N:       a.Config.N,
		Workers: a.Config.Threads,
	}}
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.RunResult, outputCfg cli.OutputConfig, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}

	if a.Config.Compare && !outputCfg.Quiet {
		presOpts := orchestration.PresentationOptions{
			N:       a.Config.N,
			Details: a.Config.Details,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
		if exitCode != apperrors.ExitSuccess {
			return exitCode
		}
		return a.saveResultIfNeeded(results[len(results)-1], outputCfg, out)
	}

	// Single run, or a quiet cross-check: errors go to stderr and stdout
	// carries only the count.
	for _, res := range results {
		if res.Err != nil {
			return presenter.HandleError(res.Err, res.Duration, a.errOut(outputCfg, out))
		}
	}
	if err := orchestration.CompareTotals(results); err != nil {
		return presenter.HandleError(err, 0, a.errOut(outputCfg, out))
	}

	best := results[len(results)-1]
	if err := cli.DisplayResultWithConfig(out, best, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// errOut picks where failures are reported: stderr in quiet mode so that
// stdout stays parseable.
func (a *Application) errOut(cfg cli.OutputConfig, out io.Writer) io.Writer {
	if cfg.Quiet {
		return a.ErrWriter
	}
	return out
}

func (a *Application) saveResultIfNeeded(res orchestration.RunResult, cfg cli.OutputConfig, out io.Writer) int {
	if cfg.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteResultToFile(res, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "\nResult saved to: %s\n", cfg.OutputFile)
	return apperrors.ExitSuccess
}

// writeMetrics exports the run metrics when --metrics-out is set.
func (a *Application) writeMetrics() int {
	if a.Config.MetricsFile == "" {
		return apperrors.ExitSuccess
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
