package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-console/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Metrics     *handlers.MetricsHandler
	Accounts    *handlers.AccountsHandler
	AccountsAPI *handlers.AccountsAPIHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	app.Get("/", cfg.Accounts.Index)
	pages := app.Group("/accounts")
	pages.Get("/table", cfg.Accounts.Table)
	pages.Post("/refresh", cfg.Accounts.Refresh)
	pages.Post("/:id/toggle", cfg.Accounts.Toggle)

	app.Get("/api/accounts", cfg.AccountsAPI.List)
	api := app.Group("/api/accounts")
	api.Post("/:id/toggle", cfg.AccountsAPI.Toggle)
	api.Get("/:id/audit", cfg.AccountsAPI.Audit)
}
