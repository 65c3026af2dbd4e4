package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the Mitché backend
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	EchoesCreatedTotal      prometheus.Counter
	OfferingsCreatedTotal   prometheus.CounterVec
	HopePointsGrantedTotal  prometheus.CounterVec
	PermissionDeniedTotal   prometheus.CounterVec
	AggregatorRunDuration   prometheus.Histogram
	LeaderboardRefreshTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mitche_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mitche_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_db_queries_total",
				Help: "Total database queries by operation and table",
			},
			[]string{"operation", "table"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mitche_db_query_duration_seconds",
				Help:    "Database query latency distribution in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation", "table"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_cache_hits_total",
				Help: "Total cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_cache_misses_total",
				Help: "Total cache misses by cache name",
			},
			[]string{"cache"},
		),

		// Business Metrics
		EchoesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mitche_echoes_created_total",
				Help: "Total help requests posted",
			},
		),
		OfferingsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_offerings_created_total",
				Help: "Total offerings recorded by kind",
			},
			[]string{"kind"},
		),
		HopePointsGrantedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_hope_points_granted_total",
				Help: "Total hope points granted by category",
			},
			[]string{"category"},
		),
		PermissionDeniedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mitche_permission_denied_total",
				Help: "Authorization denials by permission tag",
			},
			[]string{"permission"},
		),
		AggregatorRunDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mitche_aggregator_run_duration_seconds",
				Help:    "Ledger aggregator run duration in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		LeaderboardRefreshTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mitche_leaderboard_refresh_total",
				Help: "Leaderboard snapshot refreshes completed",
			},
		),
	}
}
