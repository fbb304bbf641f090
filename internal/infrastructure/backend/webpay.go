package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// WebpayGateway obtains a gateway payment session through the backend, which
// holds the Transbank credentials. The browser is then form-posted to the
// returned URL with the token_ws field.
type WebpayGateway struct {
	client *Client
}

func NewWebpayGateway(client *Client) *WebpayGateway {
	return &WebpayGateway{client: client}
}

type createTransactionRequest struct {
	Amount    int64  `json:"amount"`
	SessionID string `json:"session_id"`
	BuyOrder  string `json:"buy_order"`
	ReturnURL string `json:"return_url"`
}

func (g *WebpayGateway) CreateTransaction(ctx context.Context, token string, intent domain.PaymentIntent) (ports.GatewayRedirect, error) {
	req := createTransactionRequest{
		Amount:    intent.Amount,
		SessionID: intent.SessionID,
		BuyOrder:  intent.BuyOrder,
		ReturnURL: intent.ReturnURL,
	}

	var redirect ports.GatewayRedirect
	if err := g.client.do(ctx, http.MethodPost, "/webpay/create/", "webpay_create", token, req, &redirect); err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) {
			// The backend answered but could not open a gateway session.
			return ports.GatewayRedirect{}, fmt.Errorf("%w: %s", domain.ErrCheckoutInit, be.Reason())
		}
		return ports.GatewayRedirect{}, err
	}
	if redirect.URL == "" || redirect.Token == "" {
		return ports.GatewayRedirect{}, domain.ErrCheckoutInit
	}
	return redirect, nil
}
