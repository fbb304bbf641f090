package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// CatalogBackend covers the storefront's read endpoints plus the role-gated
// management mutations the admin screens proxy through this service.
type CatalogBackend struct {
	client *Client
}

func NewCatalogBackend(client *Client) *CatalogBackend {
	return &CatalogBackend{client: client}
}

func (b *CatalogBackend) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := b.client.do(ctx, http.MethodGet, "/productos/", "productos", "", nil, &products)
	return products, err
}

func (b *CatalogBackend) ProductByID(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/productos/%d/", id)
	err := b.client.do(ctx, http.MethodGet, path, "producto", "", nil, &product)
	return product, err
}

func (b *CatalogBackend) Reviews(ctx context.Context, token string, productID int64) ([]domain.Review, error) {
	// Token optional: staff see hidden reviews, the public only visible ones.
	var reviews []domain.Review
	path := fmt.Sprintf("/productos/%d/reviews/", productID)
	err := b.client.do(ctx, http.MethodGet, path, "reviews", token, nil, &reviews)
	return reviews, err
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comentario"`
}

func (b *CatalogBackend) CreateReview(ctx context.Context, token string, productID int64, rating int, comment string) (domain.Review, error) {
	var review domain.Review
	path := fmt.Sprintf("/productos/%d/reviews/", productID)
	err := b.client.do(ctx, http.MethodPost, path, "reviews", token,
		createReviewRequest{Rating: rating, Comment: comment}, &review)
	return review, err
}

type moderateReviewRequest struct {
	Visible bool `json:"is_visible"`
}

func (b *CatalogBackend) ModerateReview(ctx context.Context, token string, reviewID int64, visible bool) error {
	path := fmt.Sprintf("/reviews/%d/moderate/", reviewID)
	return b.client.do(ctx, http.MethodPatch, path, "reviews_moderate", token,
		moderateReviewRequest{Visible: visible}, nil)
}

func (b *CatalogBackend) Plans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := b.client.do(ctx, http.MethodGet, "/planes/", "planes", "", nil, &plans)
	return plans, err
}

func (b *CatalogBackend) PlanByID(ctx context.Context, id int64) (domain.Plan, error) {
	var plan domain.Plan
	path := fmt.Sprintf("/planes/%d/", id)
	err := b.client.do(ctx, http.MethodGet, path, "plan", "", nil, &plan)
	return plan, err
}

type planRequest struct {
	Name           string `json:"nombre"`
	Price          int64  `json:"precio"`
	DurationMonths int    `json:"duracion_meses"`
	Description    string `json:"descripcion"`
}

func (b *CatalogBackend) CreatePlan(ctx context.Context, token string, input ports.PlanInput) (domain.Plan, error) {
	var plan domain.Plan
	err := b.client.do(ctx, http.MethodPost, "/planes/", "planes", token, planRequest{
		Name:           input.Name,
		Price:          input.Price,
		DurationMonths: input.DurationMonths,
		Description:    input.Description,
	}, &plan)
	return plan, err
}

func (b *CatalogBackend) UpdatePlan(ctx context.Context, token string, id int64, input ports.PlanInput) (domain.Plan, error) {
	var plan domain.Plan
	path := fmt.Sprintf("/planes/%d/", id)
	err := b.client.do(ctx, http.MethodPatch, path, "plan", token, planRequest{
		Name:           input.Name,
		Price:          input.Price,
		DurationMonths: input.DurationMonths,
		Description:    input.Description,
	}, &plan)
	return plan, err
}

func (b *CatalogBackend) DeletePlan(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/planes/%d/", id)
	return b.client.do(ctx, http.MethodDelete, path, "plan", token, nil, nil)
}

// MySubscription returns nil without error when the user has no active plan;
// the backend answers 200 with a null body in that case.
func (b *CatalogBackend) MySubscription(ctx context.Context, token string) (*domain.Subscription, error) {
	var sub *domain.Subscription
	if err := b.client.do(ctx, http.MethodGet, "/mi-suscripcion/", "mi_suscripcion", token, nil, &sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (b *CatalogBackend) OrderHistory(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	err := b.client.do(ctx, http.MethodGet, "/historial-pedidos/", "historial", token, nil, &orders)
	return orders, err
}

func (b *CatalogBackend) News(ctx context.Context) ([]domain.NewsPost, error) {
	var posts []domain.NewsPost
	err := b.client.do(ctx, http.MethodGet, "/noticias/", "noticias", "", nil, &posts)
	return posts, err
}

func (b *CatalogBackend) NewsByID(ctx context.Context, id int64) (domain.NewsPost, error) {
	var post domain.NewsPost
	path := fmt.Sprintf("/noticias/%d/", id)
	err := b.client.do(ctx, http.MethodGet, path, "noticia", "", nil, &post)
	return post, err
}

type createNewsRequest struct {
	Title string `json:"titulo"`
	Body  string `json:"contenido"`
}

func (b *CatalogBackend) CreateNews(ctx context.Context, token string, title, body string) (domain.NewsPost, error) {
	var post domain.NewsPost
	err := b.client.do(ctx, http.MethodPost, "/noticias/", "noticias", token,
		createNewsRequest{Title: title, Body: body}, &post)
	return post, err
}

func (b *CatalogBackend) DeleteNews(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/noticias/%d/", id)
	return b.client.do(ctx, http.MethodDelete, path, "noticias", token, nil, nil)
}

func (b *CatalogBackend) Notifications(ctx context.Context, token string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := b.client.do(ctx, http.MethodGet, "/notificaciones/", "notificaciones", token, nil, &notifications)
	return notifications, err
}

type createNotificationRequest struct {
	Title   string `json:"titulo"`
	Message string `json:"mensaje"`
}

func (b *CatalogBackend) CreateNotification(ctx context.Context, token string, title, message string) (domain.Notification, error) {
	var notification domain.Notification
	err := b.client.do(ctx, http.MethodPost, "/notificaciones/", "notificaciones", token,
		createNotificationRequest{Title: title, Message: message}, &notification)
	return notification, err
}

func (b *CatalogBackend) Users(ctx context.Context, token string) ([]domain.Profile, error) {
	var users []domain.Profile
	err := b.client.do(ctx, http.MethodGet, "/usuarios/", "usuarios", token, nil, &users)
	return users, err
}

type updateUserRequest struct {
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellidos"`
	Email          string `json:"email"`
	Phone          string `json:"numero_personal"`
	EmergencyPhone string `json:"numero_emergencia"`
	Active         bool   `json:"is_active"`
}

func (b *CatalogBackend) UpdateUser(ctx context.Context, token string, id int64, input ports.UpdateUserInput) (domain.Profile, error) {
	var user domain.Profile
	path := fmt.Sprintf("/usuarios/%d/", id)
	err := b.client.do(ctx, http.MethodPatch, path, "usuarios", token, updateUserRequest{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		EmergencyPhone: input.EmergencyPhone,
		Active:         input.Active,
	}, &user)
	return user, err
}
