//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the text displayed after the spinner. The spinner
// library reads Suffix under its own lock, so Lock/Unlock guard the write.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the number of finished workers, the
// primes found so far and an overall progress bar until progressChan is
// closed. It then prints a final summary line and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	last := orchestration.AggregatedProgress{}
	s.UpdateSuffix(progressSuffix(last, agg))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s\n", progressLine(last, agg))
				return
			}
			last = agg.Update(update)
			s.UpdateSuffix(progressSuffix(last, agg))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(last, agg))
		}
	}
}

func progressSuffix(p orchestration.AggregatedProgress, agg *orchestration.ProgressAggregator) string {
	return " " + progressLine(p, agg)
}

func progressLine(p orchestration.AggregatedProgress, agg *orchestration.ProgressAggregator) string {
	return fmt.Sprintf("Workers %d/%d done, %s primes so far %s",
		p.Completed, agg.NumWorkers(), format.FormatNumber(int64(p.PrimesSoFar)),
		format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth))
}
