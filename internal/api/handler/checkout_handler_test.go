package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

func TestCheckoutHandler_PayCart(t *testing.T) {
	cart := &stubCartService{state: testCartState()}
	checkout := &stubCheckoutService{
		redirect: ports.CheckoutRedirect{
			URL:      "https://webpay/init",
			Token:    "tok_ws",
			BuyOrder: "C42T1690000000",
			Amount:   20000,
		},
	}
	h := NewCheckoutHandler(checkout, cart, &stubCatalogBackend{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/checkout/carrito", "", clientSession)

	if err := h.PayCart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cart.lastOp != "refresh" {
		t.Fatalf("amount must come from a fresh backend cart, last op %q", cart.lastOp)
	}

	var resp ports.CheckoutRedirect
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.URL != "https://webpay/init" || resp.Token != "tok_ws" || resp.BuyOrder != "C42T1690000000" {
		t.Fatalf("unexpected redirect: %+v", resp)
	}
}

func TestCheckoutHandler_PayCart_EmptyCart(t *testing.T) {
	cart := &stubCartService{state: domain.EmptyCart()}
	h := NewCheckoutHandler(&stubCheckoutService{}, cart, &stubCatalogBackend{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/checkout/carrito", "", clientSession)

	err := h.PayCart(c)
	if err == nil {
		t.Fatalf("expected error for empty cart")
	}
}

func TestCheckoutHandler_PayCart_FormRedirect(t *testing.T) {
	checkout := &stubCheckoutService{
		redirect: ports.CheckoutRedirect{URL: "https://webpay/init", Token: "tok_ws"},
	}
	h := NewCheckoutHandler(checkout, &stubCartService{state: testCartState()}, &stubCatalogBackend{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/checkout/carrito?redirect=form", "", clientSession)

	if err := h.PayCart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="token_ws"`) || !strings.Contains(body, "tok_ws") {
		t.Fatalf("form must carry token_ws: %s", body)
	}
	if !strings.Contains(body, "https://webpay/init") {
		t.Fatalf("form must post to the gateway: %s", body)
	}
}

func TestCheckoutHandler_PayPlan(t *testing.T) {
	catalog := &stubCatalogBackend{
		plan: domain.Plan{ID: 3, Name: "Plan Anual", Price: 240000},
	}
	checkout := &stubCheckoutService{
		redirect: ports.CheckoutRedirect{
			URL:      "https://webpay/init",
			Token:    "tok_ws",
			BuyOrder: "PLAN-3-USER-42-T-1690000000",
			Amount:   240000,
		},
	}
	h := NewCheckoutHandler(checkout, &stubCartService{}, catalog)

	c, rec := newTestContext(t, http.MethodPost, "/v1/checkout/planes/3", "", clientSession)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.PayPlan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp ports.CheckoutRedirect
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.BuyOrder != "PLAN-3-USER-42-T-1690000000" || resp.Amount != 240000 {
		t.Fatalf("unexpected redirect: %+v", resp)
	}
}

func TestCheckoutHandler_PayPlan_UnknownPlan(t *testing.T) {
	catalog := &stubCatalogBackend{planErr: domain.ErrNotFound}
	h := NewCheckoutHandler(&stubCheckoutService{}, &stubCartService{}, catalog)

	c, _ := newTestContext(t, http.MethodPost, "/v1/checkout/planes/99", "", clientSession)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.PayPlan(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckoutHandler_Result(t *testing.T) {
	checkout := &stubCheckoutService{
		outcome: domain.Outcome{
			Succeeded: true,
			Status:    domain.CheckoutSuccess,
			Origin:    domain.OriginCart,
			Amount:    20000,
			BuyOrder:  "C42T1690000000",
			NextRoute: domain.RouteHistory,
		},
	}
	h := NewCheckoutHandler(checkout, &stubCartService{}, &stubCatalogBackend{})

	c, rec := newTestContext(t, http.MethodGet,
		"/v1/checkout/resultado?status=success&amount=20000&buy_order=C42T1690000000", "", clientSession)

	if err := h.Result(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp domain.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Succeeded || resp.NextRoute != domain.RouteHistory {
		t.Fatalf("unexpected outcome: %+v", resp)
	}
}

func TestCheckoutHandler_Result_RequiresAuth(t *testing.T) {
	h := NewCheckoutHandler(&stubCheckoutService{}, &stubCartService{}, &stubCatalogBackend{})

	c, _ := newTestContext(t, http.MethodGet, "/v1/checkout/resultado", "", domain.Anonymous)

	if err := h.Result(c); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}
