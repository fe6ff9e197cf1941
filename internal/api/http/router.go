package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/early-access-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Subscribe *handlers.SubscribeHandler
	Stats     *handlers.StatsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/subscribe", cfg.Subscribe.Subscribe)
	api.Get("/stats", cfg.Stats.Stats)
}
