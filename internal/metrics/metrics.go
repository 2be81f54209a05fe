// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream Fetch Metrics
var (
	// FetchTotal tracks upstream fetches by category and status (success/error/breaker_open)
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenwatch_fetch_total",
			Help: "Total upstream stock fetches by category and status",
		},
		[]string{"category", "status"},
	)

	// FetchDuration tracks upstream fetch latency in seconds
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gardenwatch_fetch_duration_seconds",
			Help:    "Upstream stock fetch duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"category"},
	)

	// CircuitBreakerState tracks the fetch breaker per category (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gardenwatch_circuit_breaker_state",
			Help: "Current fetch circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"category"},
	)
)

// Polling Metrics
var (
	// RestocksDetected tracks restock events for watched items
	RestocksDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenwatch_restocks_detected_total",
			Help: "Total restock events detected for watched items",
		},
		[]string{"category"},
	)

	// RetryArmed tracks how often the short retry timer was armed
	RetryArmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenwatch_retry_armed_total",
			Help: "Total retry timer arms by category",
		},
		[]string{"category"},
	)

	// SnapshotWrites tracks snapshot persistence by category and status
	SnapshotWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenwatch_snapshot_writes_total",
			Help: "Total snapshot writes by category and status",
		},
		[]string{"category", "status"},
	)

	// TrackerState tracks each category's polling state (0=idle, 1=polling)
	TrackerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gardenwatch_tracker_state",
			Help: "Current tracker state (0=idle, 1=polling)",
		},
		[]string{"category"},
	)
)

// Notification Metrics
var (
	// NotificationsTotal tracks combined notifications by status (sent/failed)
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenwatch_notifications_total",
			Help: "Total combined restock notifications by status",
		},
		[]string{"status"},
	)
)
