package handler

import "github.com/gymstore/storefront/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username       string `json:"username"          validate:"required"`
	Email          string `json:"email"             validate:"required,email"`
	Password       string `json:"password"          validate:"required,min=8"`
	FirstName      string `json:"first_name"        validate:"required"`
	LastName       string `json:"last_name"         validate:"required"`
	RUT            string `json:"rut"               validate:"required"`
	Phone          string `json:"telefono"`
	EmergencyPhone string `json:"telefono_emergencia"`
}

type updateProfileRequest struct {
	Email          string `json:"email" validate:"omitempty,email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"telefono"`
	EmergencyPhone string `json:"telefono_emergencia"`
}

// sessionResponse is the identity view returned by login and /auth/me. The
// token itself never leaves the server.
type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role"`
	UserID        int64  `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	CartItemCount int    `json:"cart_item_count"`
}

// --- Cart ---

type addCartItemRequest struct {
	ProductID int64 `json:"producto_id" validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity int `json:"cantidad" validate:"required"`
}

type emptyCartRequest struct {
	Confirm bool `json:"confirmar"`
}

// cartResponse is the cart page payload. AbortedCheckout is present only when
// an in-flight checkout was abandoned and detected on this load.
type cartResponse struct {
	Items           []domain.CartItem `json:"items"`
	Total           int64             `json:"total"`
	ItemCount       int               `json:"item_count"`
	AbortedCheckout *domain.Outcome   `json:"aborted_checkout,omitempty"`
}

func newCartResponse(state domain.CartState) cartResponse {
	return cartResponse{
		Items:     state.Items,
		Total:     state.Total,
		ItemCount: state.ItemCount(),
	}
}

// --- Catalog / management ---

type createReviewRequest struct {
	Rating  int    `json:"calificacion" validate:"required,gte=1,lte=5"`
	Comment string `json:"comentario"   validate:"required"`
}

type moderateReviewRequest struct {
	Visible bool `json:"aprobada"`
}

type savePlanRequest struct {
	Name           string `json:"nombre"         validate:"required"`
	Price          int64  `json:"precio"         validate:"required,gt=0"`
	DurationMonths int    `json:"duracion_meses" validate:"required,gte=1"`
	Description    string `json:"descripcion"`
}

type updateUserRequest struct {
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellidos"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"numero_personal"`
	EmergencyPhone string `json:"numero_emergencia"`
	Active         bool   `json:"is_active"`
}

type createNewsRequest struct {
	Title string `json:"titulo"    validate:"required"`
	Body  string `json:"contenido" validate:"required"`
}

type createNotificationRequest struct {
	Title   string `json:"titulo"  validate:"required"`
	Message string `json:"mensaje" validate:"required"`
}
