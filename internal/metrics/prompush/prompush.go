// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// It adapts the generic metrics.Backend interface to Prometheus by mapping
// the pipeline labels onto CounterVec/SummaryVec collectors and pushing the
// registry to a Pushgateway instead of exposing a scrape endpoint, which
// suits a run-to-completion batch job. All Prometheus-specific dependencies
// live here so the rest of the project stays decoupled.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"dataforge/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // etl_stage_total
	stageDuration *prometheus.SummaryVec // etl_stage_duration_seconds
	rowCounter    *prometheus.CounterVec // etl_rows_total
	failCounter   *prometheus.CounterVec // etl_table_failures_total
}

// NewBackend constructs a Pushgateway backend. jobName becomes the
// Pushgateway "job" grouping key.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "dataforge"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_stage_total",
			Help: "Total pipeline stage executions, partitioned by job, stage, and status.",
		},
		[]string{"job", "stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "etl_stage_duration_seconds",
			Help: "Pipeline stage duration in seconds.",
		},
		[]string{"job", "stage", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_rows_total",
			Help: "Rows processed, partitioned by job, table, and kind.",
		},
		[]string{"job", "table", "kind"},
	)
	failCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_table_failures_total",
			Help: "Per-table failures, partitioned by job, table, and stage.",
		},
		[]string{"job", "table", "stage"},
	)

	reg.MustRegister(stageCounter, stageDuration, rowCounter, failCounter)

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		rowCounter:    rowCounter,
		failCounter:   failCounter,
	}, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "etl_stage_total":
		b.stageCounter.With(prometheus.Labels(labels)).Add(delta)
	case "etl_rows_total":
		b.rowCounter.With(prometheus.Labels(labels)).Add(delta)
	case "etl_table_failures_total":
		b.failCounter.With(prometheus.Labels(labels)).Add(delta)
	}
}

// ObserveDuration implements metrics.Backend.
func (b *Backend) ObserveDuration(name string, seconds float64, labels metrics.Labels) {
	if name == "etl_stage_duration_seconds" {
		b.stageDuration.With(prometheus.Labels(labels)).Observe(seconds)
	}
}

// Flush pushes the registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push()
}
