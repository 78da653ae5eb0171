package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/sieve"
	"github.com/agbru/primecalc/internal/ui"
)

// maxWorkerRows caps the worker list; the remaining workers are summarized
// in one line.
const maxWorkerRows = 16

type workerState int

const (
	workerIdle workerState = iota
	workerBusy
	workerDone
)

type workerRow struct {
	rng   sieve.Range
	state workerState
	local int
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	keymap KeyMap
	help   help.Model
	bar    progressbar.Model

	ctx     context.Context
	runner  orchestration.Runner
	plans   []orchestration.RunPlan
	version string
	ref     *programRef

	rows      []workerRow
	runIndex  int
	average   float64
	found     int
	completed int
	startTime time.Time
	elapsed   time.Duration

	running     bool
	quitPending bool
	generation  uint64
	results     []orchestration.RunResult
	exitCode    int
	width       int
}

// NewModel creates a dashboard that runs the configured count as soon as
// the program starts. cfg.Threads must already be resolved.
func NewModel(ctx context.Context, runner orchestration.Runner, cfg config.AppConfig, version string) Model {
	plans := []orchestration.RunPlan{{Name: orchestration.RunName(cfg.Threads), N: cfg.N, Workers: cfg.Threads}}
	if cfg.Compare {
		plans = orchestration.ComparePlans(cfg.N, cfg.Threads)
	}

	opts := []progressbar.Option{progressbar.WithoutPercentage()}
	if t := ui.GetCurrentTUITheme(); t.BarFrom != "" {
		opts = append(opts, progressbar.WithGradient(t.BarFrom, t.BarTo))
	}

	return Model{
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		bar:       progressbar.New(opts...),
		ctx:       ctx,
		runner:    runner,
		plans:     plans,
		version:   version,
		ref:       &programRef{},
		startTime: time.Now(),
		running:   true,
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init starts the first run and the elapsed-time ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(startRunCmd(m.ref, m.ctx, m.runner, m.plans, m.generation), tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(msg.Width-24, 60))
		return m, nil

	case RunStartedMsg:
		m.rows = make([]workerRow, msg.Workers)
		m.runIndex++
		m.average, m.found, m.completed = 0, 0, 0
		return m, nil

	case WorkerProgressMsg:
		i := msg.Update.WorkerIndex
		if i < 0 || i >= len(m.rows) {
			return m, nil
		}
		m.rows[i].rng = sieve.Range{Start: msg.Update.Start, End: msg.Update.End}
		if msg.Update.Done() {
			m.rows[i].state = workerDone
			m.rows[i].local = msg.Update.LocalCount
		} else if m.rows[i].state == workerIdle {
			m.rows[i].state = workerBusy
		}
		m.average = msg.Aggregated.AverageProgress
		m.found = msg.Aggregated.PrimesSoFar
		m.completed = msg.Aggregated.Completed
		return m, nil

	case TickMsg:
		if !m.running {
			return m, nil
		}
		m.elapsed = time.Since(m.startTime)
		return m, tickCmd()

	case RunDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous generation
		}
		m.running = false
		m.results = msg.Results
		m.exitCode = msg.ExitCode
		m.elapsed = time.Since(m.startTime)
		if m.quitPending {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		// Workers cannot be interrupted; quit once they have joined.
		if m.running {
			m.quitPending = true
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Rerun):
		if m.running {
			return m, nil
		}
		m.generation++
		m.rows = nil
		m.runIndex = 0
		m.average, m.found, m.completed = 0, 0, 0
		m.results = nil
		m.exitCode = apperrors.ExitSuccess
		m.running = true
		m.startTime = time.Now()
		m.elapsed = 0
		return m, tea.Batch(startRunCmd(m.ref, m.ctx, m.runner, m.plans, m.generation), tickCmd())
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	plan := m.plans[len(m.plans)-1]
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		titleStyle.Render("primecalc"), dimStyle.Render(m.version),
		dimStyle.Render("primes below"), valueStyle.Render(format.FormatNumber(int64(plan.N))),
		dimStyle.Render("workers"), valueStyle.Render(fmt.Sprint(plan.Workers)))

	if m.runIndex > 0 && m.runIndex <= len(m.plans) {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("Run %d/%d: %s", m.runIndex, len(m.plans), m.plans[m.runIndex-1].Name)))
	}

	b.WriteString(panelStyle.Render(m.workerList()))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d/%d done, %s primes so far\n",
		m.bar.ViewAs(m.average), m.completed, len(m.rows), format.FormatNumber(int64(m.found)))

	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) workerList() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("Creating workers...")
	}
	lines := make([]string, 0, min(len(m.rows), maxWorkerRows)+1)
	for i, row := range m.rows {
		if i == maxWorkerRows {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("... and %d more workers", len(m.rows)-maxWorkerRows)))
			break
		}
		rng := row.rng.String()
		if row.state == workerIdle {
			rng = "-"
		}
		var state string
		switch row.state {
		case workerIdle:
			state = workerIdleStyle.Render("waiting")
		case workerBusy:
			state = workerBusyStyle.Render("working")
		case workerDone:
			state = workerDoneStyle.Render(fmt.Sprintf("done, %d primes", row.local))
		}
		lines = append(lines, fmt.Sprintf("Worker %-3d %-18s %s", i, rng, state))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) status() string {
	if m.running {
		line := dimStyle.Render("Elapsed: " + format.FormatExecutionDuration(m.elapsed))
		if m.quitPending {
			line += "\n" + warningStyle.Render("Waiting for workers to finish before quitting...")
		}
		return line
	}

	var b strings.Builder
	for _, res := range m.results {
		if res.Err != nil {
			fmt.Fprintf(&b, "%s\n", errorStyle.Render(fmt.Sprintf("%s: %v", res.Name, res.Err)))
			continue
		}
		if len(m.results) > 1 {
			fmt.Fprintf(&b, "%s: %s primes in %s\n", res.Name, format.FormatNumber(res.Total), format.FormatExecutionDuration(res.Duration))
		}
	}
	if err := orchestration.CompareTotals(m.results); err != nil {
		fmt.Fprintf(&b, "%s\n", errorStyle.Render(err.Error()))
	}
	if m.exitCode == apperrors.ExitSuccess && len(m.results) > 0 {
		last := m.results[len(m.results)-1]
		fmt.Fprintf(&b, "Total number of primes: %s\n", valueStyle.Render(format.FormatNumber(last.Total)))
		fmt.Fprintf(&b, "Total time: %s", format.FormatExecutionDuration(last.Duration))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ExitCode returns the exit code of the last completed generation.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, runner orchestration.Runner, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, runner, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that executes every plan and reports the
// outcome.
func startRunCmd(ref *programRef, ctx context.Context, runner orchestration.Runner, plans []orchestration.RunPlan, gen uint64) tea.Cmd {
	return func() tea.Msg {
		results := orchestration.ExecuteRuns(ctx, runner, plans, &TUIProgressReporter{ref: ref}, io.Discard)
		return RunDoneMsg{Results: results, ExitCode: exitCodeFor(results), Generation: gen}
	}
}

// exitCodeFor maps the results of one generation to an exit code: the
// first failed run wins, then a count mismatch.
func exitCodeFor(results []orchestration.RunResult) int {
	for _, res := range results {
		if res.Err != nil {
			return apperrors.ExitCode(res.Err)
		}
	}
	return apperrors.ExitCode(orchestration.CompareTotals(results))
}

// tickCmd returns a command that sends a TickMsg after 100ms.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
