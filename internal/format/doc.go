// Package format holds the display helpers shared by the CLI and the TUI:
// durations, ETAs, progress bars and thousands-separated numbers.
package format
