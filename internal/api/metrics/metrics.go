// Package metrics defines and registers all custom Prometheus metrics for
// the HR backend. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "inactive"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts newly registered accounts.
// Label:
//   - role: "Admin", "Manager", or "Employee"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// UsersInactivatedTotal counts inactivation events.
var UsersInactivatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_inactivated_total",
		Help:      "Total number of users transitioned to the Inactive role.",
	},
)

// TasksCreatedTotal counts created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// ForbiddenTotal counts requests denied by the authorization engine.
// Label:
//   - path: the route template that was denied
var ForbiddenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of requests denied by an authorization rule.",
	},
	[]string{"path"},
)
