package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway request metrics
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldnet_requests_total",
			Help: "Total number of gateway requests by terminal outcome",
		},
		[]string{"operation", "outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worldnet_request_duration_seconds",
			Help: "Duration of gateway requests in seconds (sign to classify)",
			// Buckets: 50ms to 30s (typical gateway round trips)
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	responseHashFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldnet_response_hash_failures_total",
			Help: "Responses rejected because their hash did not verify",
		},
		[]string{"operation"},
	)
)

// RecordGatewayRequest records one finished gateway call
func RecordGatewayRequest(operation, outcome string, duration time.Duration) {
	gatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordResponseHashFailure records a response that failed hash verification
func RecordResponseHashFailure(operation string) {
	responseHashFailuresTotal.WithLabelValues(operation).Inc()
}
