package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "primecalc"

// RunMetrics records the outcome of counting runs in a private Prometheus
// registry. A nil *RunMetrics is valid and records nothing.
type RunMetrics struct {
	registry *prometheus.Registry

	runDuration    *prometheus.HistogramVec
	workerDuration prometheus.Histogram
	primes         *prometheus.GaugeVec
	workers        prometheus.Gauge
	candidates     *prometheus.GaugeVec
	failures       *prometheus.CounterVec
}

// NewRunMetrics creates the metric set and registers it, together with the Go
// runtime collector, in a fresh registry.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Wall-clock time of the classify and reduce phase, by worker count.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		}, []string{"workers"}),
		workerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "duration_seconds",
			Help:      "Time spent by a single worker classifying its range.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
		primes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "primes_found",
			Help:      "Primes found below the bound in the last run, by bound.",
		}, []string{"n"}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Workers used by the last run.",
		}),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "candidates",
			Help:      "Candidates assigned to each worker in the last run.",
		}, []string{"worker"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "failures_total",
			Help:      "Runs aborted before producing a count, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.runDuration,
		m.workerDuration,
		m.primes,
		m.workers,
		m.candidates,
		m.failures,
	)
	return m
}

// Registry exposes the underlying registry, e.g. for Gather in tests.
func (m *RunMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRun records a completed run.
func (m *RunMetrics) ObserveRun(n, workers int, total int64, d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.WithLabelValues(strconv.Itoa(workers)).Observe(d.Seconds())
	m.primes.WithLabelValues(strconv.Itoa(n)).Set(float64(total))
	m.workers.Set(float64(workers))
}

// ObserveWorker records one worker's share of a run.
func (m *RunMetrics) ObserveWorker(index, candidates int, d time.Duration) {
	if m == nil {
		return
	}
	m.workerDuration.Observe(d.Seconds())
	m.candidates.WithLabelValues(strconv.Itoa(index)).Set(float64(candidates))
}

// RunFailed counts an aborted run.
func (m *RunMetrics) RunFailed(reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// exposition format, suitable for the node_exporter textfile collector.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
