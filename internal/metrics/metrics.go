package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Host event delivery
	EventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markerbridge_events_emitted_total",
			Help: "Total number of events delivered to the host consumer",
		},
		[]string{"event"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markerbridge_events_dropped_total",
			Help: "Total number of events dropped because no live host consumer was attached",
		},
		[]string{"event"},
	)

	// Commands dropped on a failed precondition
	CommandsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markerbridge_commands_dropped_total",
			Help: "Total number of host commands dropped without reaching the engine",
		},
		[]string{"command", "reason"}, // reason: no_foreground, not_initialized, invalid_input
	)

	// WebSocket consumers
	ActiveConsumers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "markerbridge_ws_active_consumers",
			Help: "Number of connected WebSocket event consumers",
		},
	)
)
