// Package metrics exposes prometheus collectors for payload generation.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkadit/ethqr"
)

// Metrics groups the collectors. Each instance owns its registry so that
// several servers (and tests) can coexist in one process.
type Metrics struct {
	registry      *prometheus.Registry
	builds        *prometheus.CounterVec
	verifications *prometheus.CounterVec
	payloadBytes  prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ethqr",
			Subsystem: "payload",
			Name:      "builds_total",
			Help:      "Payload builds segmented by point-of-initiation mode and outcome.",
		}, []string{"mode", "outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ethqr",
			Subsystem: "payload",
			Name:      "verifications_total",
			Help:      "CRC verifications segmented by result.",
		}, []string{"result"}),
		payloadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ethqr",
			Subsystem: "payload",
			Name:      "size_bytes",
			Help:      "Size distribution of assembled payloads.",
			Buckets:   prometheus.LinearBuckets(64, 64, 8),
		}),
	}
	m.registry.MustRegister(m.builds, m.verifications, m.payloadBytes)
	return m
}

// ObserveBuild records one build attempt.
func (m *Metrics) ObserveBuild(mode ethqr.Mode, payload string, err error) {
	m.builds.WithLabelValues(mode.String(), Outcome(err)).Inc()
	if err == nil {
		m.payloadBytes.Observe(float64(len(payload)))
	}
}

// ObserveVerify records one verification outcome.
func (m *Metrics) ObserveVerify(err error) {
	m.verifications.WithLabelValues(Outcome(err)).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome maps an error to a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ethqr.ErrValueTooLong):
		return "value_too_long"
	case errors.Is(err, ethqr.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, ethqr.ErrMissingField):
		return "missing_field"
	case errors.Is(err, ethqr.ErrPayloadTooLong):
		return "payload_too_long"
	case errors.Is(err, ethqr.ErrUnsupportedScheme):
		return "unsupported_scheme"
	case errors.Is(err, ethqr.ErrInvalidCRC):
		return "invalid_crc"
	case errors.Is(err, ethqr.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ethqr.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
