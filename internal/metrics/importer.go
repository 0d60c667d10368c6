package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	importRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carcat",
			Name:      "import_rows_total",
			Help:      "CSV rows processed by import steps, by outcome",
		},
		[]string{"step", "outcome"},
	)

	importStepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carcat",
			Name:      "import_step_duration_seconds",
			Help:      "Wall time of one import step",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"step", "result"},
	)
)

// ImportRecorder records import step outcomes.
type ImportRecorder struct{}

// NewImportRecorder creates an ImportRecorder backed by the default registry.
func NewImportRecorder() *ImportRecorder {
	return &ImportRecorder{}
}

// ObserveStep adds one step's row counts. failed marks a step whose commit did not happen.
func (ImportRecorder) ObserveStep(step string, created, updated, unchanged, skipped int, elapsed time.Duration, failed bool) {
	importRowsTotal.WithLabelValues(step, "created").Add(float64(created))
	importRowsTotal.WithLabelValues(step, "updated").Add(float64(updated))
	importRowsTotal.WithLabelValues(step, "unchanged").Add(float64(unchanged))
	importRowsTotal.WithLabelValues(step, "skipped").Add(float64(skipped))

	result := "ok"
	if failed {
		result = "error"
	}
	importStepDuration.WithLabelValues(step, result).Observe(elapsed.Seconds())
}
