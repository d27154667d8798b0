package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scribe_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PageCacheRequests counts page cache lookups by cache name and result (hit, miss, error).
	PageCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_page_cache_requests_total",
		Help: "Page cache lookups by cache and result",
	}, []string{"cache", "result"})

	// FeedRequests counts feed reads by feed kind.
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_feed_requests_total",
		Help: "Feed page reads by feed kind",
	}, []string{"feed"})

	// Mutations counts write operations by kind and outcome.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_mutations_total",
		Help: "Write operations by kind and outcome",
	}, []string{"kind", "outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordMutation increments the mutation counter; outcome is derived from err.
func RecordMutation(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Mutations.WithLabelValues(kind, outcome).Inc()
}
