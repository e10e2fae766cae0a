package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var backendDurationBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics holds the Prometheus metric instruments for the catalog client.
type Metrics struct {
	BackendRequestsTotal   *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec
	BackendErrorsTotal     *prometheus.CounterVec
}

// InitMetrics creates and registers all Prometheus metric instruments.
func InitMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BackendRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_backend_requests_total",
			Help: "Total number of backend requests.",
		}, []string{"method", "path", "status"}),
		BackendRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_backend_request_duration_seconds",
			Help:    "Backend request duration in seconds.",
			Buckets: backendDurationBuckets,
		}, []string{"method", "path"}),
		BackendErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_backend_errors_total",
			Help: "Total number of backend requests that produced no HTTP response.",
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.BackendRequestsTotal,
		m.BackendRequestDuration,
		m.BackendErrorsTotal,
	)

	return m
}

// ObserveRequest records a completed backend request.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.BackendRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveFailure records a backend request that failed before any HTTP
// status was received.
func (m *Metrics) ObserveFailure(method, path string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendErrorsTotal.WithLabelValues(method, path).Inc()
	m.BackendRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
