// Package metrics provides Prometheus metrics for the sync engine,
// exposed at /metrics when the web server is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Polls counts sample-and-compare cycles, successful or not.
var Polls = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "xidlesync",
	Name:      "polls_total",
	Help:      "Total idle poll cycles.",
})

// PollErrors counts poll cycles that failed and were skipped.
var PollErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "xidlesync",
	Name:      "poll_errors_total",
	Help:      "Total poll cycles skipped due to an error.",
})

// HintWrites counts idle-hint writes by published value.
var HintWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "xidlesync",
	Name:      "hint_writes_total",
	Help:      "Total idle-hint writes pushed to the session manager.",
}, []string{"value"})

// SessionIdle reports the engine's current state (1 idle, 0 active).
var SessionIdle = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "xidlesync",
	Name:      "session_idle",
	Help:      "Whether the session is currently considered idle.",
})

// IdleSeconds reports the last sampled idle duration.
var IdleSeconds = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "xidlesync",
	Name:      "idle_seconds",
	Help:      "Last sampled display idle time in seconds.",
})
