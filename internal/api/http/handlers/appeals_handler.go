package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scamwatch/blacklist-service/internal/api/dto"
	"github.com/scamwatch/blacklist-service/internal/auth"
	"github.com/scamwatch/blacklist-service/internal/service"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// AppealsHandler exposes the dispute endpoints.
type AppealsHandler struct {
	appeals    *service.AppealService
	moderation *service.ModerationService
}

// NewAppealsHandler constructs handler.
func NewAppealsHandler(appeals *service.AppealService, moderation *service.ModerationService) *AppealsHandler {
	return &AppealsHandler{appeals: appeals, moderation: moderation}
}

// Create handles POST /api/appeal (authenticated).
func (h *AppealsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AppealCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	appeal, err := h.appeals.Create(c.UserContext(), identity, service.AppealCreateInput{
		TargetName:    req.TargetName,
		Detail:        req.Detail,
		EvidenceImage: req.EvidenceImage,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AppealFromDomain(*appeal)})
}

// ListOpen handles GET /api/appeal/pending (admin).
func (h *AppealsHandler) ListOpen(c *fiber.Ctx) error {
	list, err := h.appeals.ListOpen(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AppealsFromDomain(list)})
}

// CountOpen handles GET /api/appeal/count (admin).
func (h *AppealsHandler) CountOpen(c *fiber.Ctx) error {
	count, err := h.appeals.CountOpen(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// Resolve handles PATCH /api/appeal/:id/approve (admin): the cross-entity
// resolution closing the appeal and transitioning matching reports.
func (h *AppealsHandler) Resolve(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	result, err := h.moderation.ResolveAppeal(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"appeal_id":        result.AppealID,
		"resolved_reports": result.ResolvedReports,
	}})
}

// Close handles PATCH /api/appeal/:id/close (admin): closes the queue item
// without touching any report.
func (h *AppealsHandler) Close(c *fiber.Ctx) error {
	appeal, err := h.appeals.Close(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AppealFromDomain(*appeal)})
}
