package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LoginsTotal        *prometheus.CounterVec
	TransitionsTotal   *prometheus.CounterVec
	StorageUploadBytes prometheus.Histogram

	registry *prometheus.Registry
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "culturepassport_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "culturepassport_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "culturepassport_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		TransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "culturepassport_mission_transitions_total",
				Help: "User mission lifecycle transitions by event and result",
			},
			[]string{"event", "result"},
		),
		StorageUploadBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "culturepassport_storage_upload_bytes",
				Help:    "Size of uploaded objects in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginsTotal,
		m.TransitionsTotal,
		m.StorageUploadBytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request. path is the route
// template, never the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveLogin(ok bool) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) ObserveTransition(event string, ok bool) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(event, result(ok)).Inc()
}

func (m *Metrics) ObserveUpload(size int) {
	if m == nil {
		return
	}
	m.StorageUploadBytes.Observe(float64(size))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
