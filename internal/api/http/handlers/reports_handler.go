package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scamwatch/blacklist-service/internal/api/dto"
	"github.com/scamwatch/blacklist-service/internal/auth"
	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/service"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// ReportsHandler exposes the blacklist report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// ListPublic handles GET /api/blacklist.
func (h *ReportsHandler) ListPublic(c *fiber.Ctx) error {
	list, err := h.reports.ListPublic(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportsFromDomain(list)})
}

// ListAll handles GET /api/blacklist/all (admin).
func (h *ReportsHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.reports.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportsFromDomain(list)})
}

// ListPending handles GET /api/blacklist/pending (admin).
func (h *ReportsHandler) ListPending(c *fiber.Ctx) error {
	list, err := h.reports.ListPending(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportsFromDomain(list)})
}

// Search handles GET /api/blacklist/search?q=...
func (h *ReportsHandler) Search(c *fiber.Ctx) error {
	list, err := h.reports.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportsFromDomain(list)})
}

// Stats handles GET /api/blacklist/stats (admin).
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reports.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Create handles POST /api/blacklist (authenticated).
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ReportCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.Create(c.UserContext(), identity, service.ReportCreateInput{
		TargetName:    req.TargetName,
		Category:      domain.ReportCategory(req.Category),
		Detail:        req.Detail,
		EvidenceImage: req.EvidenceImage,
	})
	if err != nil {
		return err
	}

	response := dto.ReportFromDomain(*report)
	response.EvidenceImage = ""
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": response})
}

// Approve handles PATCH /api/blacklist/:id/approve (admin).
func (h *ReportsHandler) Approve(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := h.reports.Approve(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": domain.ReportStatusFlagged}})
}

// SetStatus handles PATCH /api/blacklist/:id/status (admin). This is the raw
// override, distinct from Approve and appeal resolution.
func (h *ReportsHandler) SetStatus(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.StatusOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var status *domain.ReportStatus
	if req.Status != nil {
		value := domain.ReportStatus(*req.Status)
		status = &value
	}

	if err := h.reports.SetStatus(c.UserContext(), identity, c.Params("id"), status, req.NegotiationNote); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// Evidence handles GET /api/blacklist/:id/image (disclosure-gated).
func (h *ReportsHandler) Evidence(c *fiber.Ctx) error {
	// Unauthenticated callers still reach this endpoint; disclosure is
	// decided by report status unless the caller is privileged.
	identity, _ := auth.IdentityFromContext(c)

	image, err := h.reports.GetEvidence(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EvidenceResponse{Image: image}})
}

// Delete handles DELETE /api/blacklist/:id (admin).
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := h.reports.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
