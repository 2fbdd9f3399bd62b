// Package metrics defines the custom Prometheus metrics of the DocuShop
// storefront. HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docushop"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders persisted by POST /orders.
// Label:
//   - tier: "discreet" or "express"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed, by shipping tier.",
	},
	[]string{"tier"},
)

// OrderTransitionsTotal counts successful status transitions.
// Label:
//   - status: the status the order moved to
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions, by resulting status.",
	},
	[]string{"status"},
)

var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of order placements answered from the idempotency store.",
	},
)

// ── Account metrics ───────────────────────────────────────────────────────────

var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginFailuresTotal counts rejected logins.
// Label:
//   - reason: "not_found", "invalid_credentials", "inactive" or "invalid_request"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts, by reason.",
	},
	[]string{"reason"},
)
