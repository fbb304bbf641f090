package ports

import (
	"context"

	"github.com/gymstore/storefront/internal/core/domain"
)

// AccountBackend covers authentication and profile endpoints of the store
// backend. ObtainToken is the only place credentials travel through this
// service; they are never stored.
type AccountBackend interface {
	ObtainToken(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) error
	Profile(ctx context.Context, token string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, token string, input UpdateProfileInput) (domain.Profile, error)
}

// RegisterInput carries a new member registration.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	RUT            string
	Phone          string
	EmergencyPhone string
}

// UpdateProfileInput carries editable profile fields. Empty strings mean
// "leave unchanged"; the backend applies partial updates.
type UpdateProfileInput struct {
	Email          string
	FirstName      string
	LastName       string
	Phone          string
	EmergencyPhone string
}

// PlanInput carries a plan create or update.
type PlanInput struct {
	Name           string
	Description    string
	Price          int64
	DurationMonths int
}

// UpdateUserInput carries the member fields staff may edit, including the
// account's active flag.
type UpdateUserInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	EmergencyPhone string
	Active         bool
}

// CatalogBackend covers the read-mostly storefront endpoints plus the
// role-gated management mutations proxied for admin screens.
type CatalogBackend interface {
	Products(ctx context.Context) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int64) (domain.Product, error)
	Reviews(ctx context.Context, token string, productID int64) ([]domain.Review, error)
	CreateReview(ctx context.Context, token string, productID int64, rating int, comment string) (domain.Review, error)

	Plans(ctx context.Context) ([]domain.Plan, error)
	PlanByID(ctx context.Context, id int64) (domain.Plan, error)
	CreatePlan(ctx context.Context, token string, input PlanInput) (domain.Plan, error)
	UpdatePlan(ctx context.Context, token string, id int64, input PlanInput) (domain.Plan, error)
	DeletePlan(ctx context.Context, token string, id int64) error
	MySubscription(ctx context.Context, token string) (*domain.Subscription, error)

	OrderHistory(ctx context.Context, token string) ([]domain.Order, error)

	News(ctx context.Context) ([]domain.NewsPost, error)
	NewsByID(ctx context.Context, id int64) (domain.NewsPost, error)
	CreateNews(ctx context.Context, token string, title, body string) (domain.NewsPost, error)
	DeleteNews(ctx context.Context, token string, id int64) error

	Notifications(ctx context.Context, token string) ([]domain.Notification, error)
	CreateNotification(ctx context.Context, token string, title, message string) (domain.Notification, error)

	// Staff-only management surfaces.
	Users(ctx context.Context, token string) ([]domain.Profile, error)
	UpdateUser(ctx context.Context, token string, id int64, input UpdateUserInput) (domain.Profile, error)
	ModerateReview(ctx context.Context, token string, reviewID int64, visible bool) error
}
