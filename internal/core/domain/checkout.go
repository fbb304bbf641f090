package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CheckoutStatus is the terminal state of one gateway round trip.
type CheckoutStatus string

const (
	CheckoutSuccess       CheckoutStatus = "success"
	CheckoutFailure       CheckoutStatus = "failure"
	CheckoutAborted       CheckoutStatus = "aborted"
	CheckoutAbortedByUser CheckoutStatus = "aborted_by_user"
)

// CheckoutOrigin identifies which flow created a buy order.
type CheckoutOrigin string

const (
	OriginCart    CheckoutOrigin = "cart"
	OriginPlan    CheckoutOrigin = "plan"
	OriginUnknown CheckoutOrigin = "unknown"
)

// Post-outcome navigation targets presented to the storefront.
const (
	RouteMyPlan  = "/mi-plan"
	RouteHistory = "/historial"
	RouteProfile = "/profile"
	RoutePlans   = "/planes"
	RouteCart    = "/carrito"
)

// NewCartBuyOrder builds the buy-order identifier for a full cart purchase.
// Format: C{userID}T{unixTimestamp}. The result page relies on this exact
// shape to recognise the origin without a further backend call.
func NewCartBuyOrder(userID int64, at time.Time) string {
	return fmt.Sprintf("C%dT%d", userID, at.Unix())
}

// NewPlanBuyOrder builds the buy-order identifier for a single-plan purchase.
// Format: PLAN-{planID}-USER-{userID}-T-{timestamp}.
func NewPlanBuyOrder(planID, userID int64, at time.Time) string {
	return fmt.Sprintf("PLAN-%d-USER-%d-T-%d", planID, userID, at.Unix())
}

// BuyOrder is the decoded form of a buy-order identifier.
type BuyOrder struct {
	Raw      string
	Origin   CheckoutOrigin
	UserID   int64
	PlanID   int64
	IssuedAt int64
}

// ParseBuyOrder decodes a buy-order string back into its origin and embedded
// identifiers. Unrecognised shapes yield OriginUnknown rather than an error:
// the result page must still render an outcome for a mangled identifier.
func ParseBuyOrder(raw string) BuyOrder {
	bo := BuyOrder{Raw: raw, Origin: OriginUnknown}
	switch {
	case strings.HasPrefix(raw, "PLAN-"):
		// PLAN-{planID}-USER-{userID}-T-{timestamp}
		bo.Origin = OriginPlan
		parts := strings.Split(raw, "-")
		if len(parts) == 6 && parts[2] == "USER" && parts[4] == "T" {
			bo.PlanID, _ = strconv.ParseInt(parts[1], 10, 64)
			bo.UserID, _ = strconv.ParseInt(parts[3], 10, 64)
			bo.IssuedAt, _ = strconv.ParseInt(parts[5], 10, 64)
		}
	case strings.HasPrefix(raw, "P"):
		// Legacy plan orders that predate the parsable layout.
		bo.Origin = OriginPlan
	case strings.HasPrefix(raw, "C"):
		// C{userID}T{unixTimestamp}
		bo.Origin = OriginCart
		rest := raw[1:]
		if i := strings.IndexByte(rest, 'T'); i > 0 {
			bo.UserID, _ = strconv.ParseInt(rest[:i], 10, 64)
			bo.IssuedAt, _ = strconv.ParseInt(rest[i+1:], 10, 64)
		}
	}
	return bo
}

// PaymentIntent is the transient record of an in-flight checkout. It exists
// only between buy-order construction and the gateway redirect; the survivor
// across the round trip is the in-flight marker, not this struct.
type PaymentIntent struct {
	BuyOrder  string
	SessionID string
	Amount    int64
	ReturnURL string
}

// Outcome is the structured result the payment result page renders.
type Outcome struct {
	Succeeded bool           `json:"succeeded"`
	Status    CheckoutStatus `json:"status"`
	Origin    CheckoutOrigin `json:"origin"`
	Amount    int64          `json:"amount"`
	BuyOrder  string         `json:"buy_order"`
	NextRoute string         `json:"next_route"`
}
