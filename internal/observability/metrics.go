package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes prometheus instruments for the HTTP surface and the
// moderation workflow.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
	ModerationEvents *prometheus.CounterVec
}

// NewMetrics registers instruments on a fresh registry and returns both.
func NewMetrics() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blacklist_http_requests_total",
			Help: "Total HTTP requests served, by path, method and status",
		}, []string{"path", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blacklist_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blacklist_http_errors_total",
			Help: "Total domain errors returned, by path, method and code",
		}, []string{"path", "method", "code"}),
		ModerationEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blacklist_moderation_events_total",
			Help: "Moderation lifecycle events, by event type",
		}, []string{"event"}),
	}
	return m, reg
}

// RecordRequest increments request counters.
func (m *Metrics) RecordRequest(path, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(path, method).Observe(seconds)
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordModerationEvent increments the moderation event counter.
func (m *Metrics) RecordModerationEvent(event string) {
	if m == nil {
		return
	}
	m.ModerationEvents.WithLabelValues(event).Inc()
}
