package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bridge.
type Metrics struct {
	// Bridge call metrics
	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec

	// Owned-string handle metrics
	HandlesLive   *prometheus.GaugeVec
	HandleAllocs  *prometheus.CounterVec
	HandleFrees   *prometheus.CounterVec
	ReleaseErrors *prometheus.CounterVec

	// OCR input metrics
	OCRImageBytes prometheus.Histogram
}

// NewMetrics creates a metrics collector registered on reg. A nil reg uses
// the default registerer; tests pass a fresh registry to avoid duplicate
// registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_calls_total",
				Help: "Total bridge boundary calls",
			},
			[]string{"operation", "outcome"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_call_duration_seconds",
				Help:    "Bridge call duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
			[]string{"operation"},
		),
		HandlesLive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bridge_handles_live",
				Help: "Owned string handles currently live, per family",
			},
			[]string{"family"},
		),
		HandleAllocs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_handle_allocs_total",
				Help: "Owned string handles allocated, per family",
			},
			[]string{"family"},
		),
		HandleFrees: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_handle_frees_total",
				Help: "Owned string handles released, per family",
			},
			[]string{"family"},
		),
		ReleaseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_handle_release_errors_total",
				Help: "Invalid release attempts (double free, unknown handle), per family",
			},
			[]string{"family", "reason"},
		),
		OCRImageBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bridge_ocr_image_bytes",
				Help:    "Size of image buffers handed to the OCR provider",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}
}

// RecordCall records one boundary call with its outcome and duration.
func (m *Metrics) RecordCall(operation string, ok bool, duration time.Duration) {
	outcome := "unavailable"
	if ok {
		outcome = "ok"
	}
	m.CallsTotal.WithLabelValues(operation, outcome).Inc()
	m.CallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAlloc records a handle allocation for a family.
func (m *Metrics) RecordAlloc(family string) {
	m.HandleAllocs.WithLabelValues(family).Inc()
	m.HandlesLive.WithLabelValues(family).Inc()
}

// RecordFree records a successful handle release for a family.
func (m *Metrics) RecordFree(family string) {
	m.HandleFrees.WithLabelValues(family).Inc()
	m.HandlesLive.WithLabelValues(family).Dec()
}

// RecordReleaseError records an invalid release attempt.
func (m *Metrics) RecordReleaseError(family, reason string) {
	m.ReleaseErrors.WithLabelValues(family, reason).Inc()
}
