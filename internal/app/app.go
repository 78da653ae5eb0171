package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/primecalc/internal/cli"
	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/tui"
	"github.com/agbru/primecalc/internal/ui"
)

// Application represents the primecalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.RunMetrics

	// Runner overrides the orchestrator built from the configuration.
	Runner orchestration.Runner
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRunner sets a custom Runner for the application.
func WithRunner(r orchestration.Runner) AppOption {
	return func(a *Application) { a.Runner = r }
}

// WithLogger sets the logger handed to the orchestrator.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "primecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "primecalc")
	}
	app.Metrics = metrics.NewRunMetrics()
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	a.Config = config.ResolveWorkers(a.Config)

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Log lines would tear the alternate screen.
	a.Logger = logging.NewNopLogger()
	runner, err := a.newRunner()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	exitCode := tui.Run(ctx, runner, a.Config, VersionString())
	if code := a.writeMetrics(); code != apperrors.ExitSuccess {
		return code
	}
	return exitCode
}

// newRunner builds the orchestrator for this configuration unless a Runner
// was injected.
func (a *Application) newRunner() (orchestration.Runner, error) {
	if a.Runner != nil {
		return a.Runner, nil
	}
	opts := []orchestration.Option{
		orchestration.WithLogger(a.Logger),
		orchestration.WithMetrics(a.Metrics),
	}
	if a.Config.MemoryLimit != "" {
		limit, err := config.ParseMemoryLimit(a.Config.MemoryLimit)
		if err != nil {
			return nil, apperrors.WrapError(err, "invalid --memory-limit")
		}
		opts = append(opts, orchestration.WithMemoryLimit(limit))
	}
	return orchestration.New(opts...), nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
