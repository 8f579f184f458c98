package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_requests_total",
		Help: "Number of handled feedback API requests",
	}, []string{"operation", "status"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedback_request_duration_seconds",
		Help:    "Feedback API request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// MustRegister registers the metrics.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		RequestsTotal,
		RequestDuration,
	)
}

// ObserveRequest records the duration and status of one handled request.
func ObserveRequest(operation string, start time.Time, status int) {
	if operation == "" {
		operation = "unknown"
	}
	RequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
