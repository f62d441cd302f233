// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline driver.
//
// It exposes a narrow Backend interface (counters plus duration
// observations) behind a global, pluggable backend that defaults to a
// no-op, so metric calls are always safe even when nothing is configured.
// Concrete systems live in subpackages (see prompush); the core stages
// themselves never call into this package — instrumentation is the
// driver's concern.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the current one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStage measures one stage execution for one lottery: a success or
// failure count plus its duration.
func RecordStage(loteria, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"loteria": loteria, "stage": stage, "status": status}
	backend.IncCounter("loterias_etl_stage_total", 1, lbls)
	backend.ObserveDuration("loterias_etl_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for one lottery. Typical kinds:
//
//   - "raw"      rows entering the cleaning stage
//   - "dropped"  rows removed by validation
//   - "persisted" rows written to the store
func RecordRows(loteria, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("loterias_etl_rows_total", float64(delta), Labels{
		"loteria": loteria,
		"kind":    kind,
	})
}
