package metrics

import (
	"github.com/prometheus/client_golang/prometheus"          // Prometheus metric types
	"github.com/prometheus/client_golang/prometheus/promauto" // Auto-registration with the default registry
)

var (
	// HTTPRequestsTotal counts requests by method, route template and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"}, // Labels
	)

	// HTTPRequestDuration observes handler latency by method and route template
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets, // Default latency buckets
		},
		[]string{"method", "path"},
	)

	// UsersCreatedTotal counts successful registrations
	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_users_created_total",
			Help: "Total number of registered users",
		},
	)

	// WalletAdjustmentsTotal counts committed adjustments by transaction type
	WalletAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_adjustments_total",
			Help: "Total number of committed wallet adjustments",
		},
		[]string{"type"},
	)

	// CacheLookupsTotal counts read cache hits and misses per resource
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_cache_lookups_total",
			Help: "Read cache lookups by outcome",
		},
		[]string{"resource", "outcome"},
	)
)

// RecordHTTPRequest records one finished request and its duration in seconds
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordUserCreated counts a registered user
func RecordUserCreated() {
	UsersCreatedTotal.Inc()
}

// RecordWalletAdjustment counts a committed adjustment of type "credit" or "debit"
func RecordWalletAdjustment(txType string) {
	WalletAdjustmentsTotal.WithLabelValues(txType).Inc()
}

// RecordCacheLookup counts a hit or miss for resource ("users" or "transactions")
func RecordCacheLookup(resource string, hit bool) {
	outcome := "miss" // Default outcome
	if hit {
		outcome = "hit"
	}
	CacheLookupsTotal.WithLabelValues(resource, outcome).Inc()
}
