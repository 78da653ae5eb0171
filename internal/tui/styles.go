package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecalc/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	valueStyle      lipgloss.Style
	workerIdleStyle lipgloss.Style
	workerBusyStyle lipgloss.Style
	workerDoneStyle lipgloss.Style
	errorStyle      lipgloss.Style
	warningStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	workerIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	workerBusyStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	workerDoneStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)
}
