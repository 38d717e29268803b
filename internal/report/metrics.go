package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "contentlint"

// Metrics holds the gauges describing the last validation run.
type Metrics struct {
	registry       *prometheus.Registry
	issues         *prometheus.GaugeVec
	filesValidated prometheus.Gauge
	passed         prometheus.Gauge
	duration       prometheus.Gauge
}

// NewMetrics registers the run gauges in a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		issues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "issues",
			Help:      "Validation issues found by the last run, by severity and code.",
		}, []string{"severity", "code"}),
		filesValidated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "files_validated",
			Help:      "Content files present and checked by the last run.",
		}),
		passed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_passed",
			Help:      "1 if the last run found no errors, 0 otherwise.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall-clock duration of the last run.",
		}),
	}
	m.registry.MustRegister(m.issues, m.filesValidated, m.passed, m.duration)
	return m
}

// Observe replaces the gauge values with those of r.
func (m *Metrics) Observe(r *Report) {
	m.issues.Reset()
	for _, i := range r.Errors {
		m.issues.WithLabelValues(string(i.Severity), string(i.Code)).Inc()
	}
	for _, i := range r.Warnings {
		m.issues.WithLabelValues(string(i.Severity), string(i.Code)).Inc()
	}

	m.filesValidated.Set(float64(r.Summary.FilesValidated))
	if r.Passed {
		m.passed.Set(1)
	} else {
		m.passed.Set(0)
	}
	m.duration.Set(float64(r.DurationMs) / 1000)
}

// WriteTextfile writes the gauges in the textfile-collector format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
