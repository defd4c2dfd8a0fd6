// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pacekeeper_queries_total",
			Help: "Total number of statements sent to the database",
		},
		[]string{"dialect", "op", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pacekeeper_query_duration_seconds",
			Help:    "Statement duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dialect", "op"},
	)

	AppealsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pacekeeper_appeals_recorded_total",
			Help: "Total number of milestone appeals written to the ledger",
		},
		[]string{"appeal_type"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pacekeeper_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
