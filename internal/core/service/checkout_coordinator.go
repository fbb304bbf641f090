package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// CheckoutCoordinator hands the browser off to the external payment gateway
// and interprets the return trip. The only state surviving the round trip is
// the in-flight marker: IDLE → AWAITING_GATEWAY (marker set, redirect issued)
// → SUCCESS | FAILURE | ABORTED, and all three terminal paths clear the
// marker, returning the machine to IDLE.
type CheckoutCoordinator struct {
	gateway   ports.PaymentGateway
	marker    ports.MarkerStore
	cart      ports.CartService
	returnURL string
	logger    zerolog.Logger

	now func() time.Time
}

func NewCheckoutCoordinator(gateway ports.PaymentGateway, marker ports.MarkerStore, cart ports.CartService, returnURL string, logger zerolog.Logger) *CheckoutCoordinator {
	return &CheckoutCoordinator{
		gateway:   gateway,
		marker:    marker,
		cart:      cart,
		returnURL: returnURL,
		logger:    logger,
		now:       time.Now,
	}
}

// InitiateCartCheckout starts a full-cart purchase. The buy order encodes the
// cart origin plus user id and timestamp so the result page can recognise the
// flow without another backend call.
func (c *CheckoutCoordinator) InitiateCartCheckout(ctx context.Context, sid string, sess domain.Session, cartTotal int64) (ports.CheckoutRedirect, error) {
	if !sess.Authenticated() {
		return ports.CheckoutRedirect{}, domain.ErrAuthRequired
	}
	intent := domain.PaymentIntent{
		BuyOrder:  domain.NewCartBuyOrder(sess.UserID, c.now()),
		SessionID: "session_" + sid,
		Amount:    cartTotal,
		ReturnURL: c.returnURL,
	}
	return c.initiate(ctx, sid, sess, intent)
}

// InitiatePlanCheckout starts a single-plan purchase; the amount comes from
// the plan, not from any cart.
func (c *CheckoutCoordinator) InitiatePlanCheckout(ctx context.Context, sid string, sess domain.Session, plan domain.Plan) (ports.CheckoutRedirect, error) {
	if !sess.Authenticated() {
		return ports.CheckoutRedirect{}, domain.ErrAuthRequired
	}
	intent := domain.PaymentIntent{
		BuyOrder:  domain.NewPlanBuyOrder(plan.ID, sess.UserID, c.now()),
		SessionID: fmt.Sprintf("session_plan_%d", plan.ID),
		Amount:    plan.Price,
		ReturnURL: c.returnURL,
	}
	return c.initiate(ctx, sid, sess, intent)
}

func (c *CheckoutCoordinator) initiate(ctx context.Context, sid string, sess domain.Session, intent domain.PaymentIntent) (ports.CheckoutRedirect, error) {
	redirect, err := c.gateway.CreateTransaction(ctx, sess.Token, intent)
	if err != nil {
		return ports.CheckoutRedirect{}, err
	}
	if redirect.URL == "" || redirect.Token == "" {
		return ports.CheckoutRedirect{}, domain.ErrCheckoutInit
	}

	// The marker goes up only once the gateway hand-off is certain; a failed
	// initiation must leave the machine in IDLE.
	if err := c.marker.Set(ctx, sid); err != nil {
		return ports.CheckoutRedirect{}, fmt.Errorf("set in-flight marker: %w", err)
	}

	c.logger.Info().
		Str("sid", sid).
		Str("buy_order", intent.BuyOrder).
		Int64("amount", intent.Amount).
		Msg("gateway redirect issued")

	return ports.CheckoutRedirect{
		URL:      redirect.URL,
		Token:    redirect.Token,
		BuyOrder: intent.BuyOrder,
		Amount:   intent.Amount,
	}, nil
}

// HandleReturn is invoked by the result page. It clears the in-flight marker
// unconditionally — the single cleanup point for success, failure and
// abandonment alike — then interprets the gateway's query parameters. A
// successful cart purchase resets the cart with no confirmation prompt.
func (c *CheckoutCoordinator) HandleReturn(ctx context.Context, sid string, sess domain.Session, q ports.ReturnQuery) (domain.Outcome, error) {
	if _, err := c.marker.Clear(ctx, sid); err != nil {
		// The outcome must still render; a marker stuck in the store only
		// risks one spurious abandonment report later.
		c.logger.Error().Err(err).Str("sid", sid).Msg("clearing in-flight marker failed")
	}

	bo := domain.ParseBuyOrder(q.BuyOrder)
	origin := bo.Origin
	if origin == domain.OriginUnknown {
		switch domain.CheckoutOrigin(q.Origin) {
		case domain.OriginCart, domain.OriginPlan:
			origin = domain.CheckoutOrigin(q.Origin)
		}
	}

	status := normalizeStatus(q.Status)
	amount, _ := strconv.ParseInt(q.Amount, 10, 64)
	succeeded := status == domain.CheckoutSuccess

	if succeeded && origin == domain.OriginCart {
		if _, err := c.cart.Clear(ctx, sid, sess, false); err != nil {
			c.logger.Warn().Err(err).Str("sid", sid).Msg("post-payment cart reset failed")
		}
	}

	outcome := domain.Outcome{
		Succeeded: succeeded,
		Status:    status,
		Origin:    origin,
		Amount:    amount,
		BuyOrder:  q.BuyOrder,
		NextRoute: nextRoute(succeeded, origin),
	}

	c.logger.Info().
		Str("sid", sid).
		Str("buy_order", q.BuyOrder).
		Str("status", string(status)).
		Str("origin", string(origin)).
		Msg("gateway return processed")

	return outcome, nil
}

// DetectAbandonment runs on cart-page loads that carry no return parameters.
// A marker still set means the browser came back without ever reaching the
// gateway's return redirect: the user closed or backed out mid-flow. That is
// an implicit failed outcome, presented the same way as a declined payment.
func (c *CheckoutCoordinator) DetectAbandonment(ctx context.Context, sid string) (*domain.Outcome, error) {
	wasSet, err := c.marker.Clear(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("clear in-flight marker: %w", err)
	}
	if !wasSet {
		return nil, nil
	}

	c.logger.Info().Str("sid", sid).Msg("in-flight checkout abandoned by user")
	return &domain.Outcome{
		Succeeded: false,
		Status:    domain.CheckoutAbortedByUser,
		Origin:    domain.OriginUnknown,
		NextRoute: domain.RouteCart,
	}, nil
}

func normalizeStatus(s string) domain.CheckoutStatus {
	switch domain.CheckoutStatus(s) {
	case domain.CheckoutSuccess:
		return domain.CheckoutSuccess
	case domain.CheckoutAborted:
		return domain.CheckoutAborted
	case domain.CheckoutAbortedByUser:
		return domain.CheckoutAbortedByUser
	default:
		return domain.CheckoutFailure
	}
}

func nextRoute(succeeded bool, origin domain.CheckoutOrigin) string {
	if succeeded {
		switch origin {
		case domain.OriginPlan:
			return domain.RouteMyPlan
		case domain.OriginCart:
			return domain.RouteHistory
		default:
			return domain.RouteProfile
		}
	}
	if origin == domain.OriginPlan {
		return domain.RoutePlans
	}
	return domain.RouteCart
}
