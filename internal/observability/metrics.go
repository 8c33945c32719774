package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodmedia_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foodmedia_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedRequestsTotal counts feed page requests by viewer kind and policy.
	FeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodmedia_feed_requests_total",
		Help: "Total feed page requests by viewer kind and guest policy",
	}, []string{"viewer", "policy"})

	// FeedPageFill records how many posts each feed page returned.
	FeedPageFill = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foodmedia_feed_page_fill",
		Help:    "Number of posts returned per feed page",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
	})

	// LikeTogglesTotal counts like toggles by resulting state.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodmedia_like_toggles_total",
		Help: "Total like toggles by resulting state (liked or unliked)",
	}, []string{"result"})

	// FollowChangesTotal counts follow edge changes by action.
	FollowChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodmedia_follow_changes_total",
		Help: "Total follow graph changes by action (follow or unfollow)",
	}, []string{"action"})

	// UploadsTotal counts image uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodmedia_uploads_total",
		Help: "Total image uploads by outcome",
	}, []string{"outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
