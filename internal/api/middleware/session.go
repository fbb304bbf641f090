package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gymstore/storefront/internal/core/ports"
)

// Context keys must match the handler package's expectations.
const (
	ctxSessionID = "sid"
	ctxSession   = "session"
)

// SessionConfig controls the browsing-session cookie.
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
}

// Session assigns every browser a session id cookie and rehydrates the
// identity for it on each request. A request without a cookie gets a fresh
// anonymous session; an undecodable stored token has already been uninstalled
// by the session service, so the request proceeds anonymously rather than
// failing.
func Session(sessions ports.SessionService, cfg SessionConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				sid = cookie.Value
			}
			if sid == "" {
				var err error
				sid, err = newSessionID()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "could not create session")
				}
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess, err := sessions.Current(c.Request().Context(), sid)
			if err != nil {
				log.Error().Err(err).Str("sid", sid).Msg("session rehydration failed")
				return err
			}

			c.Set(ctxSessionID, sid)
			c.Set(ctxSession, sess)
			return next(c)
		}
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
