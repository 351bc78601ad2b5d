// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the migration pipeline.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metric calls are always safe even when no real
//     backend is configured.
//   - It mirrors the storage abstraction pattern: the rest of the codebase
//     depends only on this interface while concrete metric systems stay
//     isolated in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g.
	// Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStage records latency plus success/failure for one pipeline stage
// (extract, transform, load).
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	backend.IncCounter("etl_stage_total", 1, lbls)
	backend.ObserveDuration("etl_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row counter for the given job, table, and kind.
// Typical kinds: "extracted", "transformed", "loaded".
func RecordRows(job, tbl, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_rows_total", float64(delta), Labels{
		"job":   job,
		"table": tbl,
		"kind":  kind,
	})
}

// RecordTableFailure counts a per-table failure at the given stage.
func RecordTableFailure(job, tbl, stage string) {
	backend.IncCounter("etl_table_failures_total", 1, Labels{
		"job":   job,
		"table": tbl,
		"stage": stage,
	})
}
