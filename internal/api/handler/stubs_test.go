package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
)

// --- Shared test doubles for the handler layer ---

type stubSessionService struct {
	loginFn  func(ctx context.Context, sid, token string) (domain.Session, error)
	logoutFn func(ctx context.Context, sid string) error
}

func (s *stubSessionService) Login(ctx context.Context, sid, token string) (domain.Session, error) {
	return s.loginFn(ctx, sid, token)
}

func (s *stubSessionService) Logout(ctx context.Context, sid string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sid)
	}
	return nil
}

func (s *stubSessionService) Current(ctx context.Context, sid string) (domain.Session, error) {
	return domain.Anonymous, nil
}

func (s *stubSessionService) Subscribe(l ports.SessionListener) {}

type stubCartService struct {
	state      domain.CartState
	refreshErr error
	addErr     error
	clearErr   error
	lastOp     string
}

func (s *stubCartService) Refresh(ctx context.Context, sid string, sess domain.Session) (domain.CartState, error) {
	s.lastOp = "refresh"
	return s.state, s.refreshErr
}

func (s *stubCartService) Current(sid string) domain.CartState { return s.state }

func (s *stubCartService) AddItem(ctx context.Context, sid string, sess domain.Session, productID int64) (domain.CartState, error) {
	s.lastOp = "add"
	return s.state, s.addErr
}

func (s *stubCartService) SetQuantity(ctx context.Context, sid string, sess domain.Session, itemID int64, quantity int) (domain.CartState, error) {
	s.lastOp = "set_quantity"
	return s.state, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, sid string, sess domain.Session, itemID int64) (domain.CartState, error) {
	s.lastOp = "remove"
	return s.state, nil
}

func (s *stubCartService) Clear(ctx context.Context, sid string, sess domain.Session, requireConfirmation bool) (domain.CartState, error) {
	s.lastOp = "clear"
	return domain.EmptyCart(), s.clearErr
}

type stubCheckoutService struct {
	redirect    ports.CheckoutRedirect
	initiateErr error
	outcome     domain.Outcome
	abandoned   *domain.Outcome
}

func (s *stubCheckoutService) InitiateCartCheckout(ctx context.Context, sid string, sess domain.Session, cartTotal int64) (ports.CheckoutRedirect, error) {
	return s.redirect, s.initiateErr
}

func (s *stubCheckoutService) InitiatePlanCheckout(ctx context.Context, sid string, sess domain.Session, plan domain.Plan) (ports.CheckoutRedirect, error) {
	return s.redirect, s.initiateErr
}

func (s *stubCheckoutService) HandleReturn(ctx context.Context, sid string, sess domain.Session, q ports.ReturnQuery) (domain.Outcome, error) {
	return s.outcome, nil
}

func (s *stubCheckoutService) DetectAbandonment(ctx context.Context, sid string) (*domain.Outcome, error) {
	out := s.abandoned
	s.abandoned = nil
	return out, nil
}

type stubAccountBackend struct {
	obtainFn   func(ctx context.Context, username, password string) (string, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) error
	profile    domain.Profile
}

func (s *stubAccountBackend) ObtainToken(ctx context.Context, username, password string) (string, error) {
	return s.obtainFn(ctx, username, password)
}

func (s *stubAccountBackend) Register(ctx context.Context, input ports.RegisterInput) error {
	return s.registerFn(ctx, input)
}

func (s *stubAccountBackend) Profile(ctx context.Context, token string) (domain.Profile, error) {
	return s.profile, nil
}

func (s *stubAccountBackend) UpdateProfile(ctx context.Context, token string, input ports.UpdateProfileInput) (domain.Profile, error) {
	return s.profile, nil
}

type stubCatalogBackend struct {
	plan          domain.Plan
	planErr       error
	lastPlanInput ports.PlanInput
	lastUserInput ports.UpdateUserInput
	lastUserID    int64
	deletedPlanID int64
}

func (s *stubCatalogBackend) Products(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (s *stubCatalogBackend) ProductByID(ctx context.Context, id int64) (domain.Product, error) {
	return domain.Product{}, nil
}
func (s *stubCatalogBackend) Reviews(ctx context.Context, token string, productID int64) ([]domain.Review, error) {
	return nil, nil
}
func (s *stubCatalogBackend) CreateReview(ctx context.Context, token string, productID int64, rating int, comment string) (domain.Review, error) {
	return domain.Review{}, nil
}
func (s *stubCatalogBackend) Plans(ctx context.Context) ([]domain.Plan, error) { return nil, nil }
func (s *stubCatalogBackend) PlanByID(ctx context.Context, id int64) (domain.Plan, error) {
	return s.plan, s.planErr
}
func (s *stubCatalogBackend) CreatePlan(ctx context.Context, token string, input ports.PlanInput) (domain.Plan, error) {
	s.lastPlanInput = input
	return domain.Plan{ID: 99, Name: input.Name, Price: input.Price, DurationMonths: input.DurationMonths}, nil
}
func (s *stubCatalogBackend) UpdatePlan(ctx context.Context, token string, id int64, input ports.PlanInput) (domain.Plan, error) {
	s.lastPlanInput = input
	return domain.Plan{ID: id, Name: input.Name, Price: input.Price, DurationMonths: input.DurationMonths}, nil
}
func (s *stubCatalogBackend) DeletePlan(ctx context.Context, token string, id int64) error {
	s.deletedPlanID = id
	return nil
}
func (s *stubCatalogBackend) MySubscription(ctx context.Context, token string) (*domain.Subscription, error) {
	return nil, nil
}
func (s *stubCatalogBackend) OrderHistory(ctx context.Context, token string) ([]domain.Order, error) {
	return nil, nil
}
func (s *stubCatalogBackend) News(ctx context.Context) ([]domain.NewsPost, error) { return nil, nil }
func (s *stubCatalogBackend) NewsByID(ctx context.Context, id int64) (domain.NewsPost, error) {
	return domain.NewsPost{}, nil
}
func (s *stubCatalogBackend) CreateNews(ctx context.Context, token string, title, body string) (domain.NewsPost, error) {
	return domain.NewsPost{Title: title, Body: body}, nil
}
func (s *stubCatalogBackend) DeleteNews(ctx context.Context, token string, id int64) error {
	return nil
}
func (s *stubCatalogBackend) Notifications(ctx context.Context, token string) ([]domain.Notification, error) {
	return nil, nil
}
func (s *stubCatalogBackend) CreateNotification(ctx context.Context, token string, title, message string) (domain.Notification, error) {
	return domain.Notification{Title: title, Message: message}, nil
}
func (s *stubCatalogBackend) Users(ctx context.Context, token string) ([]domain.Profile, error) {
	return nil, nil
}
func (s *stubCatalogBackend) UpdateUser(ctx context.Context, token string, id int64, input ports.UpdateUserInput) (domain.Profile, error) {
	s.lastUserID = id
	s.lastUserInput = input
	return domain.Profile{ID: id, FirstName: input.FirstName, Email: input.Email, Active: input.Active}, nil
}
func (s *stubCatalogBackend) ModerateReview(ctx context.Context, token string, reviewID int64, visible bool) error {
	return nil
}

// newTestContext builds an echo context with the session middleware's keys
// already populated, the way handlers see real requests.
func newTestContext(t *testing.T, method, target, body string, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxSessionID, "sid-1")
	c.Set(CtxSession, sess)
	return c, rec
}

var clientSession = domain.Session{Token: "tok", Role: domain.RoleCliente, UserID: 42, Username: "ana"}
