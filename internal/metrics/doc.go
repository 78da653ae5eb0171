// Package metrics collects runtime memory readings and per-run Prometheus
// metrics for the prime counter.
package metrics
