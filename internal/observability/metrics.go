package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheHits counts cache-aside hits and misses by entity.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_cache_requests_total",
		Help: "Total cache-aside lookups by entity and outcome",
	}, []string{"entity", "outcome"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_auth_failures_total",
		Help: "Total authentication failures by reason",
	}, []string{"reason"})
)

// ObserveQuery records the latency of a database query, typically via defer.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// RecordCacheLookup increments the cache hit/miss counter for the entity.
func RecordCacheLookup(entity string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheHits.WithLabelValues(entity, outcome).Inc()
}

// RecordAuthFailure increments the auth failure counter for the reason.
func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}
