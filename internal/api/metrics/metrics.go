// Package metrics defines and registers all custom Prometheus metrics for the
// gym storefront BFF. It is the single source of truth for metric names,
// labels, and help strings.
//
// promauto registers everything with the default registry at init time; the
// router exposes it on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionLoginsTotal counts login attempts through the BFF.
// Label:
//   - result: "ok", "invalid_credentials" or "malformed_token"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart operations that reached the backend.
// Labels:
//   - op: "refresh", "add", "set_quantity", "remove", "clear"
//   - result: "ok" or "error"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutInitiatedTotal counts gateway redirects issued.
// Label:
//   - origin: "cart" or "plan"
var CheckoutInitiatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_initiated_total",
		Help:      "Total number of payment-gateway redirects issued, by purchase origin.",
	},
	[]string{"origin"},
)

// CheckoutOutcomesTotal counts interpreted gateway returns, including
// abandonment detected on cart-page loads.
// Labels:
//   - status: "success", "failure", "aborted", "aborted_by_user"
//   - origin: "cart", "plan" or "unknown"
var CheckoutOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_outcomes_total",
		Help:      "Total number of checkout outcomes, by terminal status and origin.",
	},
	[]string{"status", "origin"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures round trips to the gym's REST backend.
// Labels:
//   - endpoint: logical endpoint name (e.g. "carrito", "webpay_create")
//   - status: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of HTTP round trips to the store backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint", "status"},
)
