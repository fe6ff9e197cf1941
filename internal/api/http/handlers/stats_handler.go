package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/early-access-service/internal/observability"
	"github.com/spec-kit/early-access-service/internal/service"
)

// StatsHandler reports submission counters and request metrics.
type StatsHandler struct {
	subscriptions *service.SubscriptionService
	metrics       *observability.Metrics
}

// NewStatsHandler constructs handler.
func NewStatsHandler(subscriptions *service.SubscriptionService, metrics *observability.Metrics) *StatsHandler {
	return &StatsHandler{subscriptions: subscriptions, metrics: metrics}
}

// Stats handles GET /api/stats.
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()

	data := fiber.Map{
		"submissions_today": h.subscriptions.SubmissionsToday(c.Context()),
		"requests":          requests,
		"errors":            errs,
	}
	if weekly, err := h.subscriptions.SubmissionsLastWeek(c.Context()); err == nil {
		data["submissions_last_7d"] = weekly
	}

	return c.JSON(fiber.Map{"ok": true, "data": data})
}
