// Package metrics defines all custom Prometheus metrics for the request
// management API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "requestdesk"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: "EMPLOYEE" or "MANAGER"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by role.",
	},
	[]string{"role"},
)

// RequestsCreatedTotal counts newly created work requests.
var RequestsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of work requests created.",
	},
)

// RequestTransitionsTotal counts successful status transitions.
// Label:
//   - status: the status the request moved to ("APPROVED", "REJECTED", "CLOSED")
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_transitions_total",
		Help:      "Total number of successful request status transitions, by target status.",
	},
	[]string{"status"},
)

// TransitionErrorsTotal counts rejected transition attempts.
// Label:
//   - reason: "not_found", "forbidden", "invalid_state", "conflict"
var TransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_errors_total",
		Help:      "Total number of rejected request transition attempts, by reason.",
	},
	[]string{"reason"},
)
