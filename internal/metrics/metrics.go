// Package metrics provides Prometheus metrics for the backoffice server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

var (
	// HTTPRequestsTotal counts dashboard requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures dashboard request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UpstreamRequestsTotal counts calls to the remote API by endpoint and
	// outcome. Transport failures are recorded with status "error".
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests made to the upstream API",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamRequestDuration measures upstream API latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheRequestsTotal counts query cache lookups by result (hit, miss,
	// shared).
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Total number of query cache lookups",
		},
		[]string{"result"},
	)

	// CacheInvalidationsTotal counts entries dropped by tag invalidation.
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Total number of cache entries invalidated by tag",
		},
		[]string{"tag"},
	)

	// ExportsTotal counts spreadsheet exports by entity.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of spreadsheet exports",
		},
		[]string{"entity"},
	)
)

// RecordHTTP records a served dashboard request.
func RecordHTTP(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordUpstream records an upstream API call. A status of 0 means the
// request failed before a response arrived.
func RecordUpstream(endpoint string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(endpoint, label).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordCache records a cache lookup result.
func RecordCache(result string) {
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordInvalidation records n entries dropped for tag.
func RecordInvalidation(tag string, n int) {
	CacheInvalidationsTotal.WithLabelValues(tag).Add(float64(n))
}

// RecordExport records a spreadsheet export.
func RecordExport(entity string) {
	ExportsTotal.WithLabelValues(entity).Inc()
}
