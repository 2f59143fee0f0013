// Package metrics defines and registers all custom Prometheus metrics for the
// habit tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto. Per-request HTTP metrics come from the
// echoprometheus middleware wired in the router.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "habits"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or a short failure reason (e.g. "invalid_credentials", "user_exists")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register/login attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Habit metrics ─────────────────────────────────────────────────────────────

// HabitEntriesCreatedTotal counts habit entries persisted.
var HabitEntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of habit entries logged.",
	},
)

// ── Completion metrics ────────────────────────────────────────────────────────

// CompletionRequestsTotal counts calls to the completion service.
// Labels:
//   - kind: "tips" (free-text prompt) or "suggestions" (built from history)
//   - result: "success" or "error"
var CompletionRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_requests_total",
		Help:      "Total number of tip generation requests, by kind and result.",
	},
	[]string{"kind", "result"},
)

// CompletionDuration measures end-to-end tip generation latency.
// Label:
//   - kind: "tips" or "suggestions"
var CompletionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "completion_duration_seconds",
		Help:      "Duration of tip generation including history lookup.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
	},
	[]string{"kind"},
)

// ObserveCompletion records one tip generation outcome.
func ObserveCompletion(kind string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CompletionRequestsTotal.WithLabelValues(kind, result).Inc()
	CompletionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
