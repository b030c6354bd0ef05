// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total number of order submissions",
		},
		[]string{"source", "status"}, // source: api, kafka; status: success, validation_error, integrity_error, offline, remote_error
	)

	OrderSubmissionTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_submission_seconds",
			Help:    "Time spent submitting orders",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"source", "operation"},
	)

	AppendAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_log_append_attempts_total",
			Help: "Total attempts to append a row to the order log",
		},
		[]string{"result"}, // result: success, error
	)

	ErrorsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_errors_classified_total",
			Help: "Submission failures by error category",
		},
		[]string{"category"},
	)

	BackupWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "failure_backup_writes_total",
			Help: "Failure backup writes",
		},
		[]string{"store", "status"}, // store: sql, kafka; status: success, error
	)

	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total cache operations",
		},
		[]string{"type", "result"}, // type: get, set; result: hit, miss
	)

	NetworkOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "network_online",
			Help: "1 when the order log is reachable, 0 otherwise",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "code"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)

	HTTPResponseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "HTTP response time",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)
)
