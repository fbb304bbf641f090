package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/core/domain"
)

// Context keys populated by the session middleware.
const (
	CtxSessionID = "sid"
	CtxSession   = "session"
)

// ctxSession extracts the browsing-session id and the rehydrated session the
// session middleware injected. A missing sid means the middleware did not run
// on this route, which is a wiring mistake, not a client error.
func ctxSession(c echo.Context) (string, domain.Session, error) {
	sid, _ := c.Get(CtxSessionID).(string)
	if sid == "" {
		return "", domain.Anonymous, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	sess, _ := c.Get(CtxSession).(domain.Session)
	return sid, sess, nil
}

// requireAuth is ctxSession plus the guard every account-bound route shares.
func requireAuth(c echo.Context) (string, domain.Session, error) {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return "", domain.Anonymous, err
	}
	if !sess.Authenticated() {
		return "", domain.Anonymous, domain.ErrAuthRequired
	}
	return sid, sess, nil
}
