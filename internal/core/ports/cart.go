package ports

import (
	"context"

	"github.com/gymstore/storefront/internal/core/domain"
)

// CartBackend is the remote cart API. Every call returns the authoritative
// full cart representation; the synchronizer never derives state locally.
type CartBackend interface {
	Fetch(ctx context.Context, token string) (domain.CartState, error)
	Add(ctx context.Context, token string, productID int64, quantity int) (domain.CartState, error)
	UpdateItem(ctx context.Context, token string, itemID int64, quantity int) (domain.CartState, error)
	RemoveItem(ctx context.Context, token string, itemID int64) (domain.CartState, error)
	Empty(ctx context.Context, token string) (domain.CartState, error)
}

// CartService keeps a per-session local mirror consistent with the backend's
// cart. Mutations are independent round trips with no queueing: among
// overlapping requests the last response to arrive wins, since each response
// replaces the whole state.
type CartService interface {
	// Refresh fetches the current cart and replaces the mirror wholesale.
	// On failure the mirror keeps its last known value.
	Refresh(ctx context.Context, sid string, sess domain.Session) (domain.CartState, error)
	// Current returns the mirror without a round trip (view/badge reads).
	Current(sid string) domain.CartState
	AddItem(ctx context.Context, sid string, sess domain.Session, productID int64) (domain.CartState, error)
	// SetQuantity with quantity <= 0 is equivalent to RemoveItem.
	SetQuantity(ctx context.Context, sid string, sess domain.Session, itemID int64, quantity int) (domain.CartState, error)
	RemoveItem(ctx context.Context, sid string, sess domain.Session, itemID int64) (domain.CartState, error)
	// Clear empties the cart server-side. When requireConfirmation is true
	// the caller must have obtained explicit user confirmation beforehand;
	// post-payment cleanup passes false.
	Clear(ctx context.Context, sid string, sess domain.Session, requireConfirmation bool) (domain.CartState, error)
}
