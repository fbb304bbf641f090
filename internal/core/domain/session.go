package domain

import "errors"

// Role is the authorization level derived from the bearer token's role claim.
const (
	RoleAdmin     = "admin"
	RoleContadora = "contadora"
	RoleCliente   = "cliente"
	RoleNone      = "none"
)

var ErrMalformedToken = errors.New("malformed bearer token")
var ErrAuthRequired = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrNotFound = errors.New("resource not found")
var ErrBackendUnavailable = errors.New("store backend unavailable")
var ErrCheckoutInit = errors.New("could not initiate gateway transaction")
var ErrConfirmationRequired = errors.New("explicit confirmation required")

// KnownRole reports whether r is one of the roles the token claim may carry.
// Anything else is treated as the lowest-privilege role at decode time.
func KnownRole(r string) bool {
	return r == RoleAdmin || r == RoleContadora || r == RoleCliente
}

// Session is the authenticated identity for one browsing session.
// Role and UserID are always derived from Token by decoding its claims;
// they are never set independently of a successful decode.
type Session struct {
	Token    string `json:"-"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Anonymous is the session state when no token is installed.
var Anonymous = Session{Role: RoleNone}

// Authenticated reports whether a token is installed.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Staff reports whether the session may reach role-gated management surfaces.
func (s Session) Staff() bool {
	return s.Role == RoleAdmin || s.Role == RoleContadora
}
