package ports

import (
	"context"

	"github.com/gymstore/storefront/internal/core/domain"
)

// TokenStore persists the bearer token for a browsing session across page
// loads. This is the durable storage the Session Manager rehydrates from; no
// other component reads it directly.
type TokenStore interface {
	Save(ctx context.Context, sid, token string) error
	Load(ctx context.Context, sid string) (string, error)
	Delete(ctx context.Context, sid string) error
}

// SessionListener is notified after every session state transition
// (login, logout, forced logout on decode failure). The Cart Synchronizer
// registers one so refetch-on-auth-change is an explicit subscription rather
// than an implicit side effect.
type SessionListener interface {
	SessionChanged(ctx context.Context, sid string, sess domain.Session)
}

// SessionService owns the single source of truth for "who is the current
// user". All other components hold a read-only view obtained from Current.
type SessionService interface {
	// Login installs token for the session and derives identity from its
	// claims. The token is supplied by the caller, already obtained from the
	// backend; no network call happens here.
	Login(ctx context.Context, sid, token string) (domain.Session, error)
	// Logout clears the session. Idempotent.
	Logout(ctx context.Context, sid string) error
	// Current rehydrates the session from the token store. A token that no
	// longer decodes is uninstalled and the anonymous session returned.
	Current(ctx context.Context, sid string) (domain.Session, error)
	// Subscribe registers a listener for session transitions.
	Subscribe(l SessionListener)
}
