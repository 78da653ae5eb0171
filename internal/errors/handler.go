package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when printing errors.
// A nil provider prints without color.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError prints a user-facing description of err to out and returns
// the matching exit code. A nil err prints nothing and returns ExitSuccess.
func HandleRunError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var (
		workerErr WorkerError
		memErr    MemoryError
	)
	switch code := ExitCode(err); {
	case code == ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", red, reset, err)
		return code
	case code == ExitErrorMismatch:
		fmt.Fprintf(out, "%sCRITICAL: %v%s\n", red, err, reset)
		return code
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sRun canceled before workers started.%s\n", yellow, reset)
		return code
	case errors.As(err, &memErr):
		fmt.Fprintf(out, "%sResource error:%s %v\n", red, reset, err)
		return code
	case errors.As(err, &workerErr):
		fmt.Fprintf(out, "%sRun aborted after %s: %v%s\n", red, duration, err, reset)
		fmt.Fprintln(out, "No partial count is reported.")
		return code
	default:
		fmt.Fprintf(out, "%sError:%s %v\n", red, reset, err)
		return code
	}
}
