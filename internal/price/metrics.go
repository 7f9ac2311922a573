package price

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the price client collectors.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheHitsTotal  prometheus.Counter
	CacheMissTotal  prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry so that several
// clients can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "price_requests_total",
				Help: "Total number of price API requests",
			},
			[]string{"method", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "price_request_duration_seconds",
				Help:    "Price API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "price_cache_hits_total",
				Help: "Total number of prices served from cache",
			},
		),

		CacheMissTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "price_cache_misses_total",
				Help: "Total number of prices fetched from the API",
			},
		),
	}
}
