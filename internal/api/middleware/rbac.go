package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/core/domain"
)

// RBAC enforces role-based access control on management routes. The role
// comes from the rehydrated session, so the Session middleware must run
// first. Unauthenticated requests get 401, authenticated ones with the wrong
// role get 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get(ctxSession).(domain.Session)
			if !sess.Authenticated() {
				return domain.ErrAuthRequired
			}
			if _, ok := allowed[sess.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
