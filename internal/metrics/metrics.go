// Package metrics holds the Prometheus collectors for SpendWise.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission results.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

// Metrics groups the collectors. The zero value is not usable; call New.
type Metrics struct {
	registry *prometheus.Registry

	Submissions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	BackendLatency     *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendwise",
			Name:      "submissions_total",
			Help:      "Expense and settle-up submissions by kind and result.",
		}, []string{"kind", "result"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendwise",
			Name:      "validation_failures_total",
			Help:      "Pre-submit validation failures by form field.",
		}, []string{"field"}),
		BackendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spendwise",
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of backend API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
	}
	m.registry.MustRegister(
		m.Submissions,
		m.ValidationFailures,
		m.BackendLatency,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSubmission counts one submission outcome. field is recorded when
// err carries one (see FieldError).
func (m *Metrics) ObserveSubmission(kind string, err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.Submissions.WithLabelValues(kind, ResultOK).Inc()
		return
	}
	var fe FieldError
	if errors.As(err, &fe) {
		m.Submissions.WithLabelValues(kind, ResultInvalid).Inc()
		m.ValidationFailures.WithLabelValues(fe.FieldName()).Inc()
		return
	}
	m.Submissions.WithLabelValues(kind, ResultFailed).Inc()
}

// FieldError is implemented by validation errors that name a form field.
type FieldError interface {
	error
	FieldName() string
}
