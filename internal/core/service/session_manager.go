package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// SessionManager owns the bearer token and the identity derived from it.
// States are ANONYMOUS (no token) and AUTHENTICATED (token installed, role
// resolved); decode is synchronous and local, so there is no pending state.
type SessionManager struct {
	tokens ports.TokenStore
	logger zerolog.Logger

	mu        sync.RWMutex
	listeners []ports.SessionListener
}

func NewSessionManager(tokens ports.TokenStore, logger zerolog.Logger) *SessionManager {
	return &SessionManager{tokens: tokens, logger: logger}
}

// Subscribe registers a listener notified after every session transition.
func (m *SessionManager) Subscribe(l ports.SessionListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Login installs token for the session and persists it to the token store.
// The token was already obtained from the backend by the caller; an
// undecodable one is never installed.
func (m *SessionManager) Login(ctx context.Context, sid, token string) (domain.Session, error) {
	sess, err := Decode(token)
	if err != nil {
		if lerr := m.Logout(ctx, sid); lerr != nil {
			m.logger.Error().Err(lerr).Str("sid", sid).Msg("logout after decode failure")
		}
		return domain.Anonymous, err
	}

	if err := m.tokens.Save(ctx, sid, token); err != nil {
		return domain.Anonymous, fmt.Errorf("persist token: %w", err)
	}

	m.logger.Info().Str("sid", sid).Str("role", sess.Role).Int64("user_id", sess.UserID).Msg("session opened")
	m.notify(ctx, sid, sess)
	return sess, nil
}

// Logout clears the token and durable storage. Calling it when already logged
// out is a no-op with no error.
func (m *SessionManager) Logout(ctx context.Context, sid string) error {
	if err := m.tokens.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	m.notify(ctx, sid, domain.Anonymous)
	return nil
}

// Current rehydrates the session from the token store and decodes it. A token
// that no longer decodes is uninstalled on the spot (decode failure → forced
// logout) and the anonymous session is returned without a blocking error.
func (m *SessionManager) Current(ctx context.Context, sid string) (domain.Session, error) {
	token, err := m.tokens.Load(ctx, sid)
	if err != nil {
		return domain.Anonymous, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return domain.Anonymous, nil
	}

	sess, err := Decode(token)
	if err != nil {
		m.logger.Warn().Str("sid", sid).Err(err).Msg("stored token undecodable, forcing logout")
		if lerr := m.Logout(ctx, sid); lerr != nil {
			return domain.Anonymous, lerr
		}
		return domain.Anonymous, nil
	}
	return sess, nil
}

func (m *SessionManager) notify(ctx context.Context, sid string, sess domain.Session) {
	m.mu.RLock()
	listeners := m.listeners
	m.mu.RUnlock()
	for _, l := range listeners {
		l.SessionChanged(ctx, sid, sess)
	}
}

// Decode derives identity and role from the token claims. It is a pure
// function: the backend signed the token, so only claim extraction happens
// here, no signature verification. A token that cannot be parsed or lacks the
// user_id claim fails with ErrMalformedToken.
//
// The role comes strictly from the role claim. An absent or unrecognised
// claim defaults to cliente, the lowest privilege — never to an elevated role.
func Decode(token string) (domain.Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Anonymous, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}

	userID, ok := claimInt64(claims, "user_id")
	if !ok {
		return domain.Anonymous, fmt.Errorf("%w: missing user_id claim", domain.ErrMalformedToken)
	}

	role := domain.RoleCliente
	if r, ok := claims["role"].(string); ok && domain.KnownRole(r) {
		role = r
	}

	username, _ := claims["username"].(string)

	return domain.Session{
		Token:    token,
		Role:     role,
		UserID:   userID,
		Username: username,
	}, nil
}

// claimInt64 tolerates the numeric encodings JWT claims arrive in.
func claimInt64(claims jwt.MapClaims, name string) (int64, bool) {
	switch v := claims[name].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
