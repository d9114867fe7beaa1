package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ExchangesRequestsTotal prometheus.Counter
	RateRequestsTotal      prometheus.Counter

	SourceFetchTotal    *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
	CacheLookupsTotal   *prometheus.CounterVec
	ResolveTotal        *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg. Pass prometheus.DefaultRegisterer
// in the server and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		ExchangesRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exchanges_requests_total",
				Help: "Total number of exchange listing requests",
			},
		),

		RateRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_requests_total",
				Help: "Total number of single exchange rate requests",
			},
		),

		SourceFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "source_fetch_total",
				Help: "Upstream source requests by result",
			},
			[]string{"source", "result"},
		),

		SourceFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "source_fetch_duration_seconds",
				Help:    "Upstream source request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Rate cache lookups by key and result",
			},
			[]string{"key", "result"},
		),

		ResolveTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_resolve_total",
				Help: "Resolved exchange rate queries by status",
			},
			[]string{"status"},
		),
	}
}
