package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/sieve"
	"github.com/agbru/primecalc/internal/ui"
)

// PrintExecutionConfig displays the bound, the worker count and the
// environment the run will use.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Counting primes below %s%s%s with %s%d%s workers (chunk of %d candidates).\n",
		ui.ColorMagenta(), format.FormatNumber(int64(cfg.N)), ui.ColorReset(),
		ui.ColorCyan(), cfg.Threads, ui.ColorReset(), sieve.ChunkSize(cfg.N, max(cfg.Threads, 1)))
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Marker store: %s.\n", format.FormatBytes(sieve.StoreBytes(cfg.N)))
}

// PrintExecutionMode announces the worker pool, and the reference run in
// comparison mode.
func PrintExecutionMode(workers int, compare bool, out io.Writer) {
	if compare {
		fmt.Fprintf(out, "Execution mode: cross-check of %s1%s worker against %s%d%s workers.\n",
			ui.ColorGreen(), ui.ColorReset(), ui.ColorGreen(), workers, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Execution mode: single run.\n")
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
	fmt.Fprintf(out, "Creating %d workers.........\n", workers)
}
