package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scamwatch/blacklist-service/internal/api/http/handlers"
	"github.com/scamwatch/blacklist-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Reports        *handlers.ReportsHandler
	Appeals        *handlers.AppealsHandler
	AuthMiddleware *auth.Middleware
	Registry       *prometheus.Registry
}

// RegisterRoutes wires HTTP routes. The boundary enforces authenticated /
// privileged access before any core operation runs; the evidence endpoint is
// public with an optional identity because disclosure is decided per report.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	blacklist := app.Group("/api/blacklist")
	blacklist.Get("/", cfg.Reports.ListPublic)
	blacklist.Get("/search", cfg.Reports.Search)
	blacklist.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Reports.Create)

	blacklist.Get("/all", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reports.ListAll)
	blacklist.Get("/pending", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reports.ListPending)
	blacklist.Get("/stats", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reports.Stats)

	blacklist.Get("/:id/image", cfg.AuthMiddleware.Optional, cfg.Reports.Evidence)
	blacklist.Patch("/:id/approve", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reports.Approve)
	blacklist.Patch("/:id/status", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reports.SetStatus)
	blacklist.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Reports.Delete)

	appeal := app.Group("/api/appeal")
	appeal.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Appeals.Create)
	appeal.Get("/pending", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Appeals.ListOpen)
	appeal.Get("/count", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Appeals.CountOpen)
	appeal.Patch("/:id/approve", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Appeals.Resolve)
	appeal.Patch("/:id/close", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Appeals.Close)
}
