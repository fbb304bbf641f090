package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/api/metrics"
	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// AuthHandler handles login, logout and account endpoints. Credentials are
// forwarded to the backend's token endpoint and never stored; only the
// resulting bearer token is installed into the session.
type AuthHandler struct {
	sessions ports.SessionService
	cart     ports.CartService
	account  ports.AccountBackend
}

func NewAuthHandler(sessions ports.SessionService, cart ports.CartService, account ports.AccountBackend) *AuthHandler {
	return &AuthHandler{sessions: sessions, cart: cart, account: account}
}

func (h *AuthHandler) sessionView(sid string, sess domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: sess.Authenticated(),
		Role:          sess.Role,
		UserID:        sess.UserID,
		Username:      sess.Username,
		CartItemCount: h.cart.Current(sid).ItemCount(),
	}
}

// Login exchanges credentials for a backend token and installs it.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Member credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.account.ObtainToken(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return err
	}

	sess, err := h.sessions.Login(c.Request().Context(), sid, token)
	if err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("malformed_token").Inc()
		if errors.Is(err, domain.ErrMalformedToken) {
			return echo.NewHTTPError(http.StatusBadGateway, "backend issued an unusable token")
		}
		return err
	}
	metrics.SessionLoginsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, h.sessionView(sid, sess))
}

// Logout clears the session. Idempotent: logging out twice is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204  "session cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current identity. Anonymous sessions get a 200 with
// authenticated=false rather than a 401; the storefront shell renders for
// everyone. App start with a persisted token is a cart refresh trigger: the
// storefront calls this once per load, so the mirror is warmed here in case
// the process restarted since the session opened. A failed refresh falls back
// to the last known mirror.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if sess.Authenticated() {
		_, _ = h.cart.Refresh(c.Request().Context(), sid, sess)
	}
	return c.JSON(http.StatusOK, h.sessionView(sid, sess))
}

// Register creates a member account on the backend. It does not log the new
// member in; the storefront sends them to the login form next.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Member registration details"
// @Success      201   "account created"
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.account.Register(c.Request().Context(), ports.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		RUT:            req.RUT,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Profile returns the member profile behind the identity card.
//
// @Summary      Get my profile
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	profile, err := h.account.Profile(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update my profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      updateProfileRequest  true  "Fields to change; empty fields are left untouched"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.account.UpdateProfile(c.Request().Context(), sess.Token, ports.UpdateProfileInput{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
