package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route template and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// MediaOperations counts media store calls by kind (upload, destroy) and result.
	MediaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_media_operations_total",
			Help: "Total number of media store operations",
		},
		[]string{"kind", "result"},
	)
	// CacheLookups counts read cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_cache_lookups_total",
			Help: "Total number of read cache lookups",
		},
		[]string{"result"},
	)
)

// Result labels a completed operation.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
