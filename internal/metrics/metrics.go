// Package metrics exposes Prometheus instrumentation for the camera
// server's dispatch and capture-interval paths.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every camera-server Prometheus collector. Unlike the
// global-singleton pattern some of the pack uses, this is constructed once
// in main and threaded through explicitly, matching the rest of this
// module's dependency-injection style.
type Metrics struct {
	CommandsTotal    *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	CapturesTotal    *prometheus.CounterVec
	IntervalActive   prometheus.Gauge
	ParamSetsTotal   *prometheus.CounterVec
	StorageCapacityB prometheus.Gauge
}

// New registers and returns a fresh Metrics instance against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mavcam",
				Name:      "commands_total",
				Help:      "Total COMMAND_LONG messages dispatched, by command and result",
			},
			[]string{"command", "result"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mavcam",
				Name:      "command_dispatch_seconds",
				Help:      "Time to handle one COMMAND_LONG end to end",
				Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"command"},
		),
		CapturesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mavcam",
				Name:      "captures_total",
				Help:      "Total completed photo captures, by outcome",
			},
			[]string{"outcome"},
		),
		IntervalActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mavcam",
				Name:      "capture_interval_active",
				Help:      "1 if a timed photo-capture interval is currently running",
			},
		),
		ParamSetsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mavcam",
				Name:      "param_sets_total",
				Help:      "Total PARAM_SET/PARAM_EXT_SET requests, by parameter name",
			},
			[]string{"param"},
		),
		StorageCapacityB: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mavcam",
				Name:      "storage_available_bytes",
				Help:      "Last reported available storage capacity",
			},
		),
	}
}

// ObserveCommand records one COMMAND_LONG dispatch.
func (m *Metrics) ObserveCommand(command, result string, d time.Duration) {
	m.CommandsTotal.WithLabelValues(command, result).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordCapture records one completed (or failed) photo capture.
func (m *Metrics) RecordCapture(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.CapturesTotal.WithLabelValues(outcome).Inc()
}

// SetIntervalActive reflects whether a timed capture interval is running.
func (m *Metrics) SetIntervalActive(active bool) {
	if active {
		m.IntervalActive.Set(1)
		return
	}
	m.IntervalActive.Set(0)
}

// RecordParamSet records one applied PARAM_SET/PARAM_EXT_SET.
func (m *Metrics) RecordParamSet(name string) {
	m.ParamSetsTotal.WithLabelValues(name).Inc()
}
