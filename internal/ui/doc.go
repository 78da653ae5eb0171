// Package ui provides theme and color support for the prime counter's
// terminal output. It holds the ANSI palette used by the CLI and the
// lipgloss palette used by the TUI, and tracks which one is active.
package ui
