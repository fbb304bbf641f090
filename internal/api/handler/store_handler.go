package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gymstore/storefront/internal/core/ports"
)

// StoreHandler proxies the read-mostly storefront endpoints plus the
// role-gated management mutations. It holds no state of its own; the backend
// stays the source of truth and the router's RBAC middleware gates the
// management routes.
type StoreHandler struct {
	catalog ports.CatalogBackend
}

func NewStoreHandler(catalog ports.CatalogBackend) *StoreHandler {
	return &StoreHandler{catalog: catalog}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// Products lists the catalog.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /v1/productos [get]
func (h *StoreHandler) Products(c echo.Context) error {
	products, err := h.catalog.Products(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Product fetches one catalog entry.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/productos/{id} [get]
func (h *StoreHandler) Product(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.ProductByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Reviews lists a product's reviews. Staff sessions also see hidden ones;
// the backend decides based on the forwarded token.
//
// @Summary      List product reviews
// @Tags         catalog
// @Produce      json
// @Param        id   path     int  true  "Product id"
// @Success      200  {array}  domain.Review
// @Router       /v1/productos/{id}/reviews [get]
func (h *StoreHandler) Reviews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	reviews, err := h.catalog.Reviews(c.Request().Context(), sess.Token, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// CreateReview posts a review for a product.
//
// @Summary      Review a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int                  true  "Product id"
// @Param        body  body      createReviewRequest  true  "Rating and comment"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/productos/{id}/reviews [post]
func (h *StoreHandler) CreateReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.catalog.CreateReview(c.Request().Context(), sess.Token, id, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// ModerateReview shows or hides a review. Staff only.
//
// @Summary      Moderate a review
// @Tags         management
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path  int                    true  "Review id"
// @Param        body  body  moderateReviewRequest  true  "Visibility flag"
// @Success      204   "review updated"
// @Failure      403   {object}  errorResponse
// @Router       /v1/reviews/{id}/moderate [post]
func (h *StoreHandler) ModerateReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req moderateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.catalog.ModerateReview(c.Request().Context(), sess.Token, id, req.Visible); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Plans lists membership plans.
//
// @Summary      List membership plans
// @Tags         plans
// @Produce      json
// @Success      200  {array}  domain.Plan
// @Router       /v1/planes [get]
func (h *StoreHandler) Plans(c echo.Context) error {
	plans, err := h.catalog.Plans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// CreatePlan adds a membership plan. Staff only.
//
// @Summary      Create a membership plan
// @Tags         management
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      savePlanRequest  true  "Plan details"
// @Success      201   {object}  domain.Plan
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/planes [post]
func (h *StoreHandler) CreatePlan(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req savePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.catalog.CreatePlan(c.Request().Context(), sess.Token, ports.PlanInput{
		Name:           req.Name,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// UpdatePlan edits a membership plan. Staff only.
//
// @Summary      Update a membership plan
// @Tags         management
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int              true  "Plan id"
// @Param        body  body      savePlanRequest  true  "Plan details"
// @Success      200   {object}  domain.Plan
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/planes/{id} [patch]
func (h *StoreHandler) UpdatePlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req savePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.catalog.UpdatePlan(c.Request().Context(), sess.Token, id, ports.PlanInput{
		Name:           req.Name,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a membership plan. Staff only.
//
// @Summary      Delete a membership plan
// @Tags         management
// @Produce      json
// @Security     SessionCookie
// @Param        id   path  int  true  "Plan id"
// @Success      204  "plan deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/planes/{id} [delete]
func (h *StoreHandler) DeletePlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeletePlan(c.Request().Context(), sess.Token, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MySubscription returns the member's active plan, or null when none exists.
//
// @Summary      Get my subscription
// @Tags         plans
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  domain.Subscription
// @Failure      401  {object}  errorResponse
// @Router       /v1/mi-suscripcion [get]
func (h *StoreHandler) MySubscription(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	sub, err := h.catalog.MySubscription(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// OrderHistory lists the member's completed purchases.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /v1/historial-pedidos [get]
func (h *StoreHandler) OrderHistory(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	orders, err := h.catalog.OrderHistory(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// News lists published posts.
//
// @Summary      List news posts
// @Tags         news
// @Produce      json
// @Success      200  {array}  domain.NewsPost
// @Router       /v1/noticias [get]
func (h *StoreHandler) News(c echo.Context) error {
	posts, err := h.catalog.News(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// NewsPost fetches one post.
//
// @Summary      Get a news post
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  domain.NewsPost
// @Failure      404  {object}  errorResponse
// @Router       /v1/noticias/{id} [get]
func (h *StoreHandler) NewsPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	post, err := h.catalog.NewsByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// CreateNews publishes a post. Staff only.
//
// @Summary      Publish a news post
// @Tags         management
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createNewsRequest  true  "Post content"
// @Success      201   {object}  domain.NewsPost
// @Failure      403   {object}  errorResponse
// @Router       /v1/noticias [post]
func (h *StoreHandler) CreateNews(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req createNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.catalog.CreateNews(c.Request().Context(), sess.Token, req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// DeleteNews removes a post. Staff only.
//
// @Summary      Delete a news post
// @Tags         management
// @Produce      json
// @Security     SessionCookie
// @Param        id   path  int  true  "Post id"
// @Success      204  "post deleted"
// @Failure      403  {object}  errorResponse
// @Router       /v1/noticias/{id} [delete]
func (h *StoreHandler) DeleteNews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteNews(c.Request().Context(), sess.Token, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Notifications lists broadcast messages for the member.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Notification
// @Failure      401  {object}  errorResponse
// @Router       /v1/notificaciones [get]
func (h *StoreHandler) Notifications(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	notes, err := h.catalog.Notifications(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNotification broadcasts a message to members. Staff only.
//
// @Summary      Create a notification
// @Tags         management
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createNotificationRequest  true  "Notification content"
// @Success      201   {object}  domain.Notification
// @Failure      403   {object}  errorResponse
// @Router       /v1/notificaciones [post]
func (h *StoreHandler) CreateNotification(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.catalog.CreateNotification(c.Request().Context(), sess.Token, req.Title, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// Users lists member accounts. Staff only.
//
// @Summary      List members
// @Tags         management
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Profile
// @Failure      403  {object}  errorResponse
// @Router       /v1/usuarios [get]
func (h *StoreHandler) Users(c echo.Context) error {
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}
	users, err := h.catalog.Users(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser edits a member account, including its active flag. Admin only.
//
// @Summary      Update a member account
// @Tags         management
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/usuarios/{id} [patch]
func (h *StoreHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	_, sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.catalog.UpdateUser(c.Request().Context(), sess.Token, id, ports.UpdateUserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		Active:         req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
