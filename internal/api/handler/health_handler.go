package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	rdb          *redis.Client
	backendProbe func(ctx context.Context) error
}

func NewHealthHandler(rdb *redis.Client, backendProbe func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{rdb: rdb, backendProbe: backendProbe}
}

// Liveness reports that the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the session store and the store backend are
// reachable. A degraded dependency returns 503 so the load balancer can stop
// routing here.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := map[string]string{"redis": "ok", "backend": "ok"}
	healthy := true

	if err := h.rdb.Ping(ctx).Err(); err != nil {
		deps["redis"] = err.Error()
		healthy = false
	}
	if err := h.backendProbe(ctx); err != nil {
		deps["backend"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, deps)
}
