// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package. All Prometheus-specific dependencies stay here so the
// rest of the project depends only on metrics.Backend.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/metrics"
)

// Backend pushes stage and row metrics to a Prometheus Pushgateway.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // loterias_etl_stage_total
	stageDuration *prometheus.SummaryVec // loterias_etl_stage_duration_seconds
	rowCounter    *prometheus.CounterVec // loterias_etl_rows_total
}

// NewBackend constructs a Pushgateway backend. jobName is the Pushgateway
// "job" grouping key.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "loterias_etl"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loterias_etl_stage_total",
			Help: "Stage executions, partitioned by lottery, stage and status.",
		},
		[]string{"loteria", "stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "loterias_etl_stage_duration_seconds",
			Help:       "Stage durations in seconds, partitioned by lottery, stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"loteria", "stage", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loterias_etl_rows_total",
			Help: "Row counts per lottery and kind (raw, dropped, persisted).",
		},
		[]string{"loteria", "kind"},
	)

	for _, c := range []prometheus.Collector{stageCounter, stageDuration, rowCounter} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register: %w", err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		rowCounter:    rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "loterias_etl_stage_total":
		b.stageCounter.WithLabelValues(labels["loteria"], labels["stage"], labels["status"]).Add(delta)
	case "loterias_etl_rows_total":
		b.rowCounter.WithLabelValues(labels["loteria"], labels["kind"]).Add(delta)
	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveDuration(name string, value float64, labels metrics.Labels) {
	if name != "loterias_etl_stage_duration_seconds" {
		return
	}
	b.stageDuration.WithLabelValues(labels["loteria"], labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
