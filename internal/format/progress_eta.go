package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates so a stalled rate never prints an absurd duration.
const maxETA = 24 * time.Hour

// ProgressState tracks the latest progress value of each worker. It is safe
// for concurrent use.
type ProgressState struct {
	mu         sync.Mutex
	progresses []float64
	numWorkers int
}

// NewProgressState creates a state for numWorkers workers, all at zero.
func NewProgressState(numWorkers int) *ProgressState {
	if numWorkers < 0 {
		numWorkers = 0
	}
	return &ProgressState{
		progresses: make([]float64, numWorkers),
		numWorkers: numWorkers,
	}
}

// Update records the progress of one worker. Out-of-range indices are
// ignored and values are clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= ps.numWorkers {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress over all workers.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.averageLocked()
}

func (ps *ProgressState) averageLocked() float64 {
	if ps.numWorkers == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numWorkers)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate used to
// estimate the time remaining.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second, exponentially smoothed
}

// NewProgressWithETA creates a tracker for numWorkers workers starting now.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numWorkers),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a worker update and returns the overall progress and
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	p.mu.Lock()
	defer p.mu.Unlock()

	progress := p.averageLocked()
	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && progress > p.lastProgress {
		instant := (progress - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instant
		} else {
			p.progressRate = 0.3*instant + 0.7*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}
	return progress, p.etaLocked(progress)
}

// GetETA returns the current estimate without recording an update.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.averageLocked())
}

func (p *ProgressWithETA) etaLocked(progress float64) time.Duration {
	if p.progressRate <= 0 || progress >= 1 {
		return 0
	}
	eta := time.Duration((1 - progress) / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders a fixed-width bar of full and light shade blocks.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
