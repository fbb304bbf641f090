package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/gymstore/storefront/internal/api/handler"
	"github.com/gymstore/storefront/internal/api/middleware"
	"github.com/gymstore/storefront/internal/core/domain"
	"github.com/gymstore/storefront/internal/core/ports"
	"github.com/gymstore/storefront/internal/infrastructure/backend"
	"github.com/gymstore/storefront/internal/infrastructure/config"
)

// Dependencies bundles the wired services the router mounts.
type Dependencies struct {
	Sessions ports.SessionService
	Cart     ports.CartService
	Checkout ports.CheckoutService
	Account  ports.AccountBackend
	Catalog  ports.CatalogBackend
	Backend  *backend.Client
	Redis    *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	session := middleware.Session(deps.Sessions, middleware.SessionConfig{
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		TTL:          cfg.Session.TokenTTL,
	}, log)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleContadora)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Cart, deps.Account)
	cartHandler := handler.NewCartHandler(deps.Cart, deps.Checkout)
	checkoutHandler := handler.NewCheckoutHandler(deps.Checkout, deps.Cart, deps.Catalog)
	storeHandler := handler.NewStoreHandler(deps.Catalog)
	healthHandler := handler.NewHealthHandler(deps.Redis, deps.Backend.Ping)

	// --- Auth routes ---
	auth := e.Group("/auth", session)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", authHandler.Me)

	// --- Storefront routes ---
	v1 := e.Group("/v1", session)

	v1.GET("/profile", authHandler.Profile)
	v1.PUT("/profile", authHandler.UpdateProfile)

	v1.GET("/carrito", cartHandler.Get)
	v1.POST("/carrito/items", cartHandler.AddItem)
	v1.PATCH("/carrito/items/:id", cartHandler.UpdateItem)
	v1.DELETE("/carrito/items/:id", cartHandler.RemoveItem)
	v1.POST("/carrito/vaciar", cartHandler.Empty)

	v1.POST("/checkout/carrito", checkoutHandler.PayCart)
	v1.POST("/checkout/planes/:id", checkoutHandler.PayPlan)
	v1.GET("/checkout/resultado", checkoutHandler.Result)

	v1.GET("/productos", storeHandler.Products)
	v1.GET("/productos/:id", storeHandler.Product)
	v1.GET("/productos/:id/reviews", storeHandler.Reviews)
	v1.POST("/productos/:id/reviews", storeHandler.CreateReview)

	v1.GET("/planes", storeHandler.Plans)
	v1.GET("/mi-suscripcion", storeHandler.MySubscription)
	v1.GET("/historial-pedidos", storeHandler.OrderHistory)

	v1.GET("/noticias", storeHandler.News)
	v1.GET("/noticias/:id", storeHandler.NewsPost)
	v1.GET("/notificaciones", storeHandler.Notifications)

	// --- Management routes ---
	// News publishing is admin-only; plan and review management is open to the
	// contadora as well; user administration is admin-only.
	v1.POST("/noticias", storeHandler.CreateNews, adminOnly)
	v1.DELETE("/noticias/:id", storeHandler.DeleteNews, adminOnly)
	v1.POST("/notificaciones", storeHandler.CreateNotification, staffOnly)
	v1.POST("/reviews/:id/moderate", storeHandler.ModerateReview, staffOnly)
	v1.POST("/planes", storeHandler.CreatePlan, staffOnly)
	v1.PATCH("/planes/:id", storeHandler.UpdatePlan, staffOnly)
	v1.DELETE("/planes/:id", storeHandler.DeletePlan, staffOnly)
	v1.GET("/usuarios", storeHandler.Users, adminOnly)
	v1.PATCH("/usuarios/:id", storeHandler.UpdateUser, adminOnly)

	// --- Operational endpoints (no session required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
