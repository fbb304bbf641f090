package handler

import (
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/api/metrics"
	"github.com/gymstore/storefront/internal/core/ports"
)

// CheckoutHandler drives the hand-off to the payment gateway and the
// interpretation of the return trip.
type CheckoutHandler struct {
	checkout ports.CheckoutService
	cart     ports.CartService
	catalog  ports.CatalogBackend
}

func NewCheckoutHandler(checkout ports.CheckoutService, cart ports.CartService, catalog ports.CatalogBackend) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, cart: cart, catalog: catalog}
}

// PayCart starts a gateway transaction for the whole cart. The amount is the
// backend's cart total, refreshed immediately before the hand-off so a stale
// mirror can never set the charge.
//
// @Summary      Pay the cart
// @Tags         checkout
// @Produce      json
// @Security     SessionCookie
// @Param        redirect  query     string  false  "Set to 'form' to receive an auto-submitting HTML form instead of JSON"
// @Success      200       {object}  ports.CheckoutRedirect
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /v1/checkout/carrito [post]
func (h *CheckoutHandler) PayCart(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	state, err := h.cart.Refresh(c.Request().Context(), sid, sess)
	if err != nil {
		return err
	}
	if state.Total <= 0 || len(state.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "el carrito está vacío")
	}

	redirect, err := h.checkout.InitiateCartCheckout(c.Request().Context(), sid, sess, state.Total)
	if err != nil {
		return err
	}
	metrics.CheckoutInitiatedTotal.WithLabelValues("cart").Inc()

	return h.respondRedirect(c, redirect)
}

// PayPlan starts a gateway transaction for one membership plan. The amount is
// the plan's current backend price, never a client-supplied figure.
//
// @Summary      Pay a membership plan
// @Tags         checkout
// @Produce      json
// @Security     SessionCookie
// @Param        id        path      int     true   "Plan id"
// @Param        redirect  query     string  false  "Set to 'form' to receive an auto-submitting HTML form instead of JSON"
// @Success      200       {object}  ports.CheckoutRedirect
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /v1/checkout/planes/{id} [post]
func (h *CheckoutHandler) PayPlan(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid plan id")
	}

	plan, err := h.catalog.PlanByID(c.Request().Context(), planID)
	if err != nil {
		return err
	}

	redirect, err := h.checkout.InitiatePlanCheckout(c.Request().Context(), sid, sess, plan)
	if err != nil {
		return err
	}
	metrics.CheckoutInitiatedTotal.WithLabelValues("plan").Inc()

	return h.respondRedirect(c, redirect)
}

// Result interprets the gateway's return redirect. The in-flight marker is
// cleared no matter what the query parameters say; a successful cart purchase
// additionally resets the cart.
//
// @Summary      Payment result
// @Tags         checkout
// @Produce      json
// @Security     SessionCookie
// @Param        status     query     string  false  "Gateway status"
// @Param        amount     query     string  false  "Charged amount"
// @Param        buy_order  query     string  false  "Buy order the gateway echoes back"
// @Param        origin     query     string  false  "Origin hint when the buy order is unparsable"
// @Success      200        {object}  domain.Outcome
// @Failure      401        {object}  errorResponse
// @Router       /v1/checkout/resultado [get]
func (h *CheckoutHandler) Result(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	outcome, err := h.checkout.HandleReturn(c.Request().Context(), sid, sess, ports.ReturnQuery{
		Status:   c.QueryParam("status"),
		Amount:   c.QueryParam("amount"),
		BuyOrder: c.QueryParam("buy_order"),
		Origin:   c.QueryParam("origin"),
	})
	if err != nil {
		return err
	}
	metrics.CheckoutOutcomesTotal.WithLabelValues(string(outcome.Status), string(outcome.Origin)).Inc()

	return c.JSON(http.StatusOK, outcome)
}

// respondRedirect returns the gateway hand-off either as JSON for the
// storefront to post itself, or as a self-submitting form that carries the
// browser straight to the gateway. Webpay expects the token in a token_ws
// form field of a full-page POST.
func (h *CheckoutHandler) respondRedirect(c echo.Context, redirect ports.CheckoutRedirect) error {
	if c.QueryParam("redirect") != "form" {
		return c.JSON(http.StatusOK, redirect)
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body onload="document.forms[0].submit()">
<form action=%q method="POST">
<input type="hidden" name="token_ws" value=%q>
<noscript><button type="submit">Continuar al pago</button></noscript>
</form>
</body>
</html>`, html.EscapeString(redirect.URL), html.EscapeString(redirect.Token))

	return c.HTML(http.StatusOK, page)
}
