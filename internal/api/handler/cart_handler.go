package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/api/metrics"
	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// CartHandler exposes the cart mirror. Every mutation answers with the full
// post-operation cart so the storefront re-renders from one payload.
type CartHandler struct {
	cart     ports.CartService
	checkout ports.CheckoutService
}

func NewCartHandler(cart ports.CartService, checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout}
}

func countOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CartMutationsTotal.WithLabelValues(op, result).Inc()
}

// Get serves the cart page load: refresh the mirror from the backend and
// check whether a checkout was left in flight. An abandoned checkout is
// reported exactly once, on this load.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/carrito [get]
func (h *CartHandler) Get(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	aborted, err := h.checkout.DetectAbandonment(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	if aborted != nil {
		metrics.CheckoutOutcomesTotal.WithLabelValues(string(aborted.Status), string(aborted.Origin)).Inc()
	}

	state, err := h.cart.Refresh(c.Request().Context(), sid, sess)
	countOp("refresh", err)
	if err != nil {
		return err
	}

	resp := newCartResponse(state)
	resp.AbortedCheckout = aborted
	return c.JSON(http.StatusOK, resp)
}

// AddItem adds one unit of a product.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      addCartItemRequest  true  "Product to add"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/carrito/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.cart.AddItem(c.Request().Context(), sid, sess, req.ProductID)
	countOp("add", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(state))
}

// UpdateItem sets the quantity of a cart line. A quantity of zero or less
// removes the line.
//
// @Summary      Set a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int                    true  "Cart item id"
// @Param        body  body      updateCartItemRequest  true  "New quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/carrito/items/{id} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	state, err := h.cart.SetQuantity(c.Request().Context(), sid, sess, itemID, req.Quantity)
	countOp("set_quantity", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(state))
}

// RemoveItem deletes a cart line.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Cart item id"
// @Success      200  {object}  cartResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/carrito/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	state, err := h.cart.RemoveItem(c.Request().Context(), sid, sess, itemID)
	countOp("remove", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(state))
}

// Empty clears the whole cart. The caller must send confirmar=true; the
// destructive action never runs on an accidental submit.
//
// @Summary      Empty the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      emptyCartRequest  true  "Confirmation flag"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/carrito/vaciar [post]
func (h *CartHandler) Empty(c echo.Context) error {
	sid, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req emptyCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if !req.Confirm {
		return domain.ErrConfirmationRequired
	}

	state, err := h.cart.Clear(c.Request().Context(), sid, sess, true)
	countOp("clear", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(state))
}
