// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the count.
	Quiet bool
	// Details adds the per-worker table.
	Details bool
}

// WriteResultToFile writes a result report to config.OutputFile. It does
// nothing when no file is configured.
func WriteResultToFile(result orchestration.RunResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Prime Count Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# N: %d\n", result.N)
	fmt.Fprintf(file, "# Workers: %d\n", result.Workers)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "\n")
	writeWorkerTable(file, result)
	fmt.Fprintf(file, "\nprimes(n < %d) = %d\n", result.N, result.Total)

	return file.Close()
}

// FormatQuietResult formats a result for quiet mode: the bare count.
func FormatQuietResult(result orchestration.RunResult) string {
	return strconv.FormatInt(result.Total, 10)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result orchestration.RunResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResult prints the final count and the elapsed time, preceded by
// the per-worker table when details is set.
func DisplayResult(result orchestration.RunResult, details bool, out io.Writer) {
	if details {
		fmt.Fprintf(out, "\n--- Worker Details ---\n")
		writeWorkerTable(out, result)
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Total number of primes: %s%s%s\n",
		ui.ColorGreen(), format.FormatNumber(result.Total), ui.ColorReset())
	fmt.Fprintf(out, "Total time: %s%s%s\n",
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
}

// writeWorkerTable prints one row per worker. tabwriter alignment ignores
// escape codes poorly, so the table is written without color.
func writeWorkerTable(out io.Writer, result orchestration.RunResult) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Worker\tRange\tCandidates\tPrimes\tDuration\t\n")
	for _, w := range result.PerWorker {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t\n",
			w.Index, w.Range, w.Range.Len(), w.LocalCount, format.FormatExecutionDuration(w.Duration))
	}
	tw.Flush()
}

// DisplayResultWithConfig displays a result and saves it to a file when one
// is configured.
func DisplayResultWithConfig(out io.Writer, result orchestration.RunResult, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, config.Details, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
