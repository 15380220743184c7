package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gateway Metrics
var (
	// GatewayCallsTotal tracks outbound platform calls by operation and outcome
	GatewayCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_calls_total",
			Help: "Outbound platform calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// GatewayCallDuration tracks outbound call latency in seconds
	GatewayCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_call_duration_seconds",
			Help:    "Outbound platform call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation"},
	)

	// GatewayInFlight tracks outbound calls currently holding a permit
	GatewayInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_in_flight_calls",
			Help: "Outbound platform calls currently holding a permit",
		},
	)

	// GatewayPermitWait tracks how long callers wait for a permit
	GatewayPermitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_permit_wait_seconds",
			Help:    "Time spent waiting for a gateway permit in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)

// Quota Metrics
var (
	// QuotaDecisionsTotal tracks quota consumption attempts by kind and result
	QuotaDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_decisions_total",
			Help: "Quota consumption attempts by action kind and result",
		},
		[]string{"kind", "result"},
	)
)

// Update Processing Metrics
var (
	// UpdatesTotal tracks inbound updates by handler
	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "updates_total",
			Help: "Inbound platform updates by handler",
		},
		[]string{"handler"},
	)

	// UpdatesFlooded tracks updates dropped by the inbound flood guard
	UpdatesFlooded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_flooded_total",
			Help: "Inbound updates dropped by the per-user flood guard",
		},
	)
)

// Moderation Metrics
var (
	// ModerationActionsTotal tracks punitive actions by type
	ModerationActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_actions_total",
			Help: "Punitive moderation actions by type",
		},
		[]string{"action"},
	)
)
