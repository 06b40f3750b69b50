package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RateLimited     *prometheus.CounterVec
}

// New creates and registers the HTTP metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gimm_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimm_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"route"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

// IncrementRateLimited records one rejected request.
func (m *Metrics) IncrementRateLimited(route string) {
	if m != nil {
		m.RateLimited.WithLabelValues(route).Inc()
	}
}
