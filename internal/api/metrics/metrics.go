// Package metrics defines the custom Prometheus metrics for the backoffice
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-rotation attempts.
// Label:
//   - result: "success" or "rejected"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token rotations, labelled by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts RBAC denials.
// Label:
//   - role: the role that was turned away
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of role-based access denials, labelled by role.",
	},
	[]string{"role"},
)

// SessionsEndedTotal counts logouts and forced session terminations.
// Label:
//   - reason: "logout" or "refresh_failed"
var SessionsEndedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions torn down, labelled by reason.",
	},
	[]string{"reason"},
)
