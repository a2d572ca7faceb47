package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	messagesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_messages_sent_total",
			Help: "Total number of messages appended through the pipeline.",
		},
		[]string{"type"},
	)
	aiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_ai_requests_total",
			Help: "Total number of assistant requests by outcome.",
		},
		[]string{"outcome"},
	)
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_notifications_total",
			Help: "Total number of notification raises by outcome.",
		},
		[]string{"outcome"},
	)
	callEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_call_events_total",
			Help: "Total number of call lifecycle events.",
		},
		[]string{"kind", "event"},
	)
	locationSharesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_location_shares_total",
			Help: "Total number of location share attempts by outcome.",
		},
		[]string{"outcome"},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_ws_active_connections",
			Help: "Number of active websocket subscribers.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		messagesSentTotal,
		aiRequestsTotal,
		notificationsTotal,
		callEventsTotal,
		locationSharesTotal,
		wsActiveConnections,
	)
}

func IncMessageSent(msgType string) {
	messagesSentTotal.WithLabelValues(msgType).Inc()
}

func IncAIRequest(outcome string) {
	aiRequestsTotal.WithLabelValues(outcome).Inc()
}

func IncNotification(outcome string) {
	notificationsTotal.WithLabelValues(outcome).Inc()
}

func IncCallEvent(kind, event string) {
	callEventsTotal.WithLabelValues(kind, event).Inc()
}

func IncLocationShare(outcome string) {
	locationSharesTotal.WithLabelValues(outcome).Inc()
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}
