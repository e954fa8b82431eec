// Package metrics provides Prometheus instrumentation of the message feed.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"

	PushDuplicate = "duplicate"
	PushConfirmed = "confirmed"
	PushAppended  = "appended"
	PushIgnored   = "ignored"

	LoadInitial = "initial"
	LoadOlder   = "older"
)

var (
	// SendsTotal counts send attempts by outcome.
	SendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_sends_total",
			Help: "Message sends by result",
		},
		[]string{"result"},
	)

	// PageLoadsTotal counts history page loads.
	PageLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_page_loads_total",
			Help: "History page loads by kind and result",
		},
		[]string{"kind", "result"},
	)

	// PageLoadDuration tracks gateway list latency.
	PageLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_page_load_duration_seconds",
			Help:    "Gateway list call duration in seconds",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	// RealtimePushesTotal counts realtime deliveries by what the deduplicator did with them.
	RealtimePushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_realtime_pushes_total",
			Help: "Realtime message deliveries by dedup outcome",
		},
		[]string{"outcome"},
	)

	// SubscriptionsTotal counts realtime subscription attempts.
	SubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_subscriptions_total",
			Help: "Realtime subscription attempts by result",
		},
		[]string{"result"},
	)

	PendingSends = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_pending_sends",
			Help: "Optimistic messages waiting for confirmation",
		},
	)
)

// RecordPageLoad records one gateway list call.
func RecordPageLoad(kind, result string, duration float64) {
	PageLoadsTotal.WithLabelValues(kind, result).Inc()
	PageLoadDuration.WithLabelValues(kind).Observe(duration)
}

func RecordSend(result string) {
	SendsTotal.WithLabelValues(result).Inc()
}

func RecordPush(outcome string) {
	RealtimePushesTotal.WithLabelValues(outcome).Inc()
}

func RecordSubscription(result string) {
	SubscriptionsTotal.WithLabelValues(result).Inc()
}
