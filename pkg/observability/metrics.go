package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of one backend-guard run. It
// implements linter.Recorder.
type Metrics struct {
	Registry *prometheus.Registry

	FilesScanned    prometheus.Counter
	ViolationsTotal *prometheus.CounterVec
	RuleDuration    *prometheus.HistogramVec
	RunDuration     prometheus.Histogram
}

// NewMetrics creates the run collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		FilesScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "backend_guard_files_scanned_total",
				Help: "Total number of source files scanned",
			},
		),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_guard_violations_total",
				Help: "Total number of violations by rule and severity",
			},
			[]string{"rule", "severity"},
		),
		RuleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_guard_rule_duration_seconds",
				Help:    "Time spent in a single rule evaluation",
				Buckets: prometheus.ExponentialBuckets(0.00001, 10, 6),
			},
			[]string{"rule"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "backend_guard_run_duration_seconds",
				Help:    "Duration of a full guard run",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
	}

	m.Registry.MustRegister(
		m.FilesScanned,
		m.ViolationsTotal,
		m.RuleDuration,
		m.RunDuration,
	)

	return m
}

// ObserveFiles records the number of files in a run
func (m *Metrics) ObserveFiles(count int) {
	m.FilesScanned.Add(float64(count))
}

// ObserveRule records one rule evaluation
func (m *Metrics) ObserveRule(rule string, duration time.Duration) {
	m.RuleDuration.WithLabelValues(rule).Observe(duration.Seconds())
}

// ObserveViolation counts one violation
func (m *Metrics) ObserveViolation(rule, severity string) {
	m.ViolationsTotal.WithLabelValues(rule, severity).Inc()
}

// ObserveRun records the wall time of a run
func (m *Metrics) ObserveRun(duration time.Duration) {
	m.RunDuration.Observe(duration.Seconds())
}

// WriteTextfile writes every collector in the textfile collector format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics %s: %w", path, err)
	}
	return nil
}
