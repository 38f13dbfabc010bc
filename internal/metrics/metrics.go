package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	StoreOperations *prometheus.CounterVec
}

// New registers the collectors with reg. Tests pass a fresh registry so
// repeated construction does not panic on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profile_api",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "profile_api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profile_api",
			Name:      "store_operations_total",
			Help:      "Key-value and blob store operations by name and outcome.",
		}, []string{"operation", "outcome"}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.StoreOperations)
	return m
}

// ObserveStore counts one store operation. A nil receiver is a no-op.
func (m *Metrics) ObserveStore(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.StoreOperations.WithLabelValues(operation, outcome).Inc()
}
