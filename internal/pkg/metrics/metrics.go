// Package metrics holds the Prometheus collectors of the service. They are
// registered with the default registry and served by the HTTP adapter at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeAccessDenied = "access_denied"
	OutcomeConflict     = "conflict"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
	OutcomeSkipped      = "skipped"
)

var (
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_transitions_total",
		Help: "Parcel status transitions by target status and outcome",
	}, []string{"status", "outcome"})

	SideEffectsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_transition_side_effects_skipped_total",
		Help: "Transition side effects skipped because a branch or courier was missing",
	}, []string{"effect"})

	AggregationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_aggregation_runs_total",
		Help: "Performance aggregation runs by outcome",
	}, []string{"outcome"})

	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "logistics_aggregation_duration_seconds",
		Help:    "Duration of performance aggregation runs",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	CreditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_aggregation_credits_total",
		Help: "Segment and event credits by kind and outcome",
	}, []string{"kind", "outcome"})

	QueuePending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "logistics_delivery_queue_pending",
		Help: "Parcels waiting in the delivery completion queue",
	})
)
