package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/early-access-service/internal/api/dto"
	"github.com/spec-kit/early-access-service/internal/domain"
	"github.com/spec-kit/early-access-service/internal/service"
	"github.com/spec-kit/early-access-service/pkg/util"
)

// SubscribeHandler exposes the early-access ingestion endpoint.
type SubscribeHandler struct {
	subscriptions *service.SubscriptionService
	logger        *zap.Logger
}

// NewSubscribeHandler constructs handler.
func NewSubscribeHandler(subscriptions *service.SubscriptionService, logger *zap.Logger) *SubscribeHandler {
	return &SubscribeHandler{subscriptions: subscriptions, logger: logger}
}

// Subscribe handles POST /api/subscribe. The wire contract is fixed: 400 with
// {"error": "Missing name or email"} for incomplete payloads, 500 with
// {"error": <message>} for persistence or unexpected failures, 200 with
// {"ok": true, "data": [...]} on success. Nothing propagates as a raw fault.
func (h *SubscribeHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			h.logger.Error("subscribe payload unparsable", zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": util.ToDomainError(err).Message,
			})
		}
	}

	inserted, err := h.subscriptions.Subscribe(c.Context(), domain.Submission{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		domainErr := util.ToDomainError(err)
		if domainErr.HTTPStatus >= 500 {
			h.logger.Error("subscribe failed", zap.String("kind", string(domainErr.Kind)), zap.Error(domainErr))
		}
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
	}

	return c.JSON(fiber.Map{"ok": true, "data": inserted})
}
