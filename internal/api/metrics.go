package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the API server. A dedicated
// registry keeps repeated construction (tests, embedded servers) safe.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SavesTotal      prometheus.Counter
	AuthFailures    prometheus.Counter
}

// NewMetrics creates and registers the metric set
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taxatlas_http_requests_total",
			Help: "HTTP requests served, by method, path, and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taxatlas_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SavesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taxatlas_dataset_saves_total",
			Help: "Successful dataset saves through the API.",
		}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taxatlas_auth_failures_total",
			Help: "Rejected write submissions.",
		}),
	}

	registry.MustRegister(m.RequestsTotal, m.RequestDuration, m.SavesTotal, m.AuthFailures)
	registry.MustRegister(collectors.NewGoCollector())
	return m
}

// ObserveRequest records one served request
func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Handler returns the /metrics endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
