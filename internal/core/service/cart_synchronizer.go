package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// CartSynchronizer keeps a per-session local mirror of the server-side cart.
// The backend is the source of truth: every mutation is a round trip whose
// response replaces the mirror wholesale, so client and server never diverge
// on price or stock. No optimistic mutation, no request queueing — among
// overlapping mutations the last response to arrive wins.
type CartSynchronizer struct {
	backend ports.CartBackend
	logger  zerolog.Logger

	mu    sync.RWMutex
	carts map[string]domain.CartState
}

func NewCartSynchronizer(backend ports.CartBackend, logger zerolog.Logger) *CartSynchronizer {
	return &CartSynchronizer{
		backend: backend,
		logger:  logger,
		carts:   make(map[string]domain.CartState),
	}
}

// SessionChanged implements ports.SessionListener: login triggers a refetch,
// logout clears the mirror to empty.
func (s *CartSynchronizer) SessionChanged(ctx context.Context, sid string, sess domain.Session) {
	if !sess.Authenticated() {
		s.install(sid, domain.EmptyCart())
		return
	}
	if _, err := s.Refresh(ctx, sid, sess); err != nil {
		s.logger.Warn().Err(err).Str("sid", sid).Msg("cart refresh after login failed")
	}
}

// Refresh fetches the current cart and replaces the mirror. On failure the
// mirror keeps its last known value and the error is surfaced — no partial
// update.
func (s *CartSynchronizer) Refresh(ctx context.Context, sid string, sess domain.Session) (domain.CartState, error) {
	if !sess.Authenticated() {
		return s.Current(sid), domain.ErrAuthRequired
	}
	state, err := s.backend.Fetch(ctx, sess.Token)
	if err != nil {
		return s.Current(sid), err
	}
	return s.install(sid, state.Sanitize()), nil
}

// Current returns the mirror without a round trip. Unknown sessions read as
// an empty cart.
func (s *CartSynchronizer) Current(sid string) domain.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.carts[sid]; ok {
		return state
	}
	return domain.EmptyCart()
}

// AddItem requests one unit of productID. The backend's rejection reason
// (stock exhausted, unknown product) travels back unchanged.
func (s *CartSynchronizer) AddItem(ctx context.Context, sid string, sess domain.Session, productID int64) (domain.CartState, error) {
	if !sess.Authenticated() {
		return s.Current(sid), domain.ErrAuthRequired
	}
	state, err := s.backend.Add(ctx, sess.Token, productID, 1)
	if err != nil {
		return s.Current(sid), err
	}
	s.logger.Debug().Str("sid", sid).Int64("producto", productID).Msg("item added to cart")
	return s.install(sid, state.Sanitize()), nil
}

// SetQuantity updates a line's quantity. A target of zero or less removes the
// line instead of sending an invalid quantity to the backend.
func (s *CartSynchronizer) SetQuantity(ctx context.Context, sid string, sess domain.Session, itemID int64, quantity int) (domain.CartState, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sid, sess, itemID)
	}
	if !sess.Authenticated() {
		return s.Current(sid), domain.ErrAuthRequired
	}
	state, err := s.backend.UpdateItem(ctx, sess.Token, itemID, quantity)
	if err != nil {
		return s.Current(sid), err
	}
	return s.install(sid, state.Sanitize()), nil
}

// RemoveItem deletes a line entirely.
func (s *CartSynchronizer) RemoveItem(ctx context.Context, sid string, sess domain.Session, itemID int64) (domain.CartState, error) {
	if !sess.Authenticated() {
		return s.Current(sid), domain.ErrAuthRequired
	}
	state, err := s.backend.RemoveItem(ctx, sess.Token, itemID)
	if err != nil {
		return s.Current(sid), err
	}
	return s.install(sid, state.Sanitize()), nil
}

// Clear empties the cart server-side. requireConfirmation is a caller
// contract: when true, explicit user confirmation must have been obtained
// before invoking; post-payment cleanup passes false.
func (s *CartSynchronizer) Clear(ctx context.Context, sid string, sess domain.Session, requireConfirmation bool) (domain.CartState, error) {
	if !sess.Authenticated() {
		return s.Current(sid), domain.ErrAuthRequired
	}
	state, err := s.backend.Empty(ctx, sess.Token)
	if err != nil {
		return s.Current(sid), err
	}
	s.logger.Info().Str("sid", sid).Bool("user_confirmed", requireConfirmation).Msg("cart emptied")
	return s.install(sid, state.Sanitize()), nil
}

func (s *CartSynchronizer) install(sid string, state domain.CartState) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sid] = state
	return state
}
