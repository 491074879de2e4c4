// Package metrics holds the Prometheus collectors of the service. Collectors
// live on their own registry so tests can build as many as they like.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPStatusTotal     *prometheus.CounterVec

	AuthFailuresTotal prometheus.Counter
	MenuViewsTotal    *prometheus.CounterVec
	ImageUploadsTotal *prometheus.CounterVec
	MenuWritesTotal   *prometheus.CounterVec
}

func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPStatusTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_status_total",
				Help: "HTTP responses by status class",
			},
			[]string{"category"},
		),
		AuthFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_failures_total",
				Help: "Requests rejected because no valid identity was presented",
			},
		),
		MenuViewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_menu_views_total",
				Help: "Public menu page loads per restaurant",
			},
			[]string{"slug"},
		),
		ImageUploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_image_uploads_total",
				Help: "Dish image uploads by result",
			},
			[]string{"result"},
		),
		MenuWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_menu_writes_total",
				Help: "Admin writes to menus by entity and operation",
			},
			[]string{"entity", "operation"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// StatusCategory maps a status code to its class label, e.g. 404 -> "4xx"
func StatusCategory(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}

func (m *Metrics) RecordMenuView(slug string) {
	m.MenuViewsTotal.WithLabelValues(slug).Inc()
}

func (m *Metrics) RecordImageUpload(result string) {
	m.ImageUploadsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordMenuWrite(entity, operation string) {
	m.MenuWritesTotal.WithLabelValues(entity, operation).Inc()
}
