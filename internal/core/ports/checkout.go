package ports

import (
	"context"

	"github.com/gymstore/storefront/internal/core/domain"
)

// PaymentGateway creates a gateway payment session for an intent and returns
// where to send the browser. Consumed exclusively by the Checkout Coordinator.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, token string, intent domain.PaymentIntent) (GatewayRedirect, error)
}

// GatewayRedirect is the form-post target returned by the gateway. Token is
// submitted as the token_ws field of a full-page form post to URL.
type GatewayRedirect struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// MarkerStore holds the "payment in flight" flag per browsing session. It
// must survive the full-page redirect to the gateway but not a fresh browser
// session, and is cleared exactly once per app load.
type MarkerStore interface {
	Set(ctx context.Context, sid string) error
	// Clear removes the marker and reports whether it was set.
	Clear(ctx context.Context, sid string) (bool, error)
}

// CheckoutRedirect is what the storefront needs to hand the browser to the
// gateway: the form-post target plus the buy order it will come back with.
type CheckoutRedirect struct {
	URL      string `json:"url"`
	Token    string `json:"token"`
	BuyOrder string `json:"buy_order"`
	Amount   int64  `json:"amount"`
}

// ReturnQuery carries the query parameters of the gateway's return redirect.
type ReturnQuery struct {
	Status   string
	Amount   string
	BuyOrder string
	Origin   string
}

// CheckoutService orchestrates the hand-off to the external payment gateway
// and the interpretation of the return trip.
type CheckoutService interface {
	InitiateCartCheckout(ctx context.Context, sid string, sess domain.Session, cartTotal int64) (CheckoutRedirect, error)
	InitiatePlanCheckout(ctx context.Context, sid string, sess domain.Session, plan domain.Plan) (CheckoutRedirect, error)
	// HandleReturn unconditionally clears the in-flight marker, interprets the
	// query parameters and, for a successful cart purchase, resets the cart.
	HandleReturn(ctx context.Context, sid string, sess domain.Session, q ReturnQuery) (domain.Outcome, error)
	// DetectAbandonment is invoked on cart-page loads that carry no return
	// parameters. A still-set marker means the user backed out of the gateway
	// mid-flow; the marker is cleared and an aborted_by_user outcome returned.
	// Returns nil when no checkout was in flight.
	DetectAbandonment(ctx context.Context, sid string) (*domain.Outcome, error)
}
