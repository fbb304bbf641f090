package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gymstore/storefront/internal/core/domain"
)

// CartBackend calls the backend's cart endpoints. Every endpoint answers with
// the full cart representation, which is exactly what the synchronizer
// installs as its new state.
type CartBackend struct {
	client *Client
}

func NewCartBackend(client *Client) *CartBackend {
	return &CartBackend{client: client}
}

type addItemRequest struct {
	ProductID int64 `json:"producto_id"`
	Quantity  int   `json:"cantidad"`
}

type updateItemRequest struct {
	Quantity int `json:"cantidad"`
}

func (b *CartBackend) Fetch(ctx context.Context, token string) (domain.CartState, error) {
	var state domain.CartState
	err := b.client.do(ctx, http.MethodGet, "/carrito/", "carrito", token, nil, &state)
	return state, err
}

func (b *CartBackend) Add(ctx context.Context, token string, productID int64, quantity int) (domain.CartState, error) {
	var state domain.CartState
	err := b.client.do(ctx, http.MethodPost, "/carrito/agregar/", "carrito_agregar", token,
		addItemRequest{ProductID: productID, Quantity: quantity}, &state)
	return state, err
}

func (b *CartBackend) UpdateItem(ctx context.Context, token string, itemID int64, quantity int) (domain.CartState, error) {
	var state domain.CartState
	path := fmt.Sprintf("/carrito/item/%d/actualizar/", itemID)
	err := b.client.do(ctx, http.MethodPatch, path, "carrito_item", token,
		updateItemRequest{Quantity: quantity}, &state)
	return state, err
}

func (b *CartBackend) RemoveItem(ctx context.Context, token string, itemID int64) (domain.CartState, error) {
	var state domain.CartState
	path := fmt.Sprintf("/carrito/item/%d/eliminar/", itemID)
	err := b.client.do(ctx, http.MethodDelete, path, "carrito_item", token, nil, &state)
	return state, err
}

func (b *CartBackend) Empty(ctx context.Context, token string) (domain.CartState, error) {
	var state domain.CartState
	err := b.client.do(ctx, http.MethodPost, "/carrito/vaciar/", "carrito_vaciar", token, nil, &state)
	return state, err
}
