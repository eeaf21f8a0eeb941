package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsDetected counts bridge events received from each chain
	EventsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_events_detected_total",
			Help: "Total number of bridge events detected",
		},
		[]string{"chain", "event_type"},
	)

	// TransactionsTotal counts bridge transaction status changes
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_transactions_total",
			Help: "Total number of bridge transactions by type and reached status",
		},
		[]string{"type", "status"},
	)

	// SignaturesIssued counts allowance attestations signed per target chain
	SignaturesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_signatures_issued_total",
			Help: "Total number of allowance signatures issued",
		},
		[]string{"chain"},
	)

	// WrappedTokensCreated counts wrapped tokens deployed per target chain
	WrappedTokensCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_wrapped_tokens_created_total",
			Help: "Total number of wrapped tokens created",
		},
		[]string{"chain"},
	)

	// FinalityWait tracks how long events wait for confirmation depth
	FinalityWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_finality_wait_seconds",
			Help:    "Time spent waiting for finality in seconds",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"chain"},
	)

	// SubscriptionReconnects counts re-established log subscriptions
	SubscriptionReconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_subscription_reconnects_total",
			Help: "Total number of log subscription reconnects",
		},
		[]string{"chain", "event_type"},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// LastProcessedBlock tracks the last fully dispatched block
	LastProcessedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_last_processed_block",
			Help: "Last processed block number by chain and event",
		},
		[]string{"chain", "event_type"},
	)

	// PendingTransactions tracks non-terminal bridge transactions
	PendingTransactions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_pending_transactions",
			Help: "Number of bridge transactions by non-terminal status",
		},
		[]string{"status"},
	)
)
