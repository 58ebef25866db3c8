package handler

import (
	"context"
	"time"

	"podium/internal/delivery/api/response"
	domainerrors "podium/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check pings the database and answers 200 or 503.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		return domainerrors.NewStoreUnavailableError(err, "health check")
	}

	return response.OK(c, map[string]string{"status": "ok"})
}
