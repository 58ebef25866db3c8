// Package router contains routing for the JSON API.
package router

import (
	"podium/config"
	"podium/internal/delivery/api/middleware"
	"podium/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	HealthHandler     *handler.HealthHandler
	SessionMiddleware *middleware.SessionMiddleware
	Registry          *prometheus.Registry
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	healthHandler     *handler.HealthHandler
	sessionMiddleware *middleware.SessionMiddleware
	registry          *prometheus.Registry
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		healthHandler:     params.HealthHandler,
		sessionMiddleware: params.SessionMiddleware,
		registry:          params.Registry,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.sessionMiddleware.Authenticate)
	}

	r.registerMetricsRoute(e)
}

func (r *router) registerMetricsRoute(e *echo.Echo) {
	if r.config.Metrics == nil || !r.config.Metrics.Enabled || r.registry == nil {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})))
}
