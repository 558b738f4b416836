package handlers

import (
	"eps-clinic/internal/core/services"
	"eps-clinic/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AffiliateHandler handles affiliate endpoints
type AffiliateHandler struct {
	affiliateService *services.AffiliateService
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(affiliateService *services.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliateService: affiliateService}
}

// Register handles affiliate registration
func (h *AffiliateHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterAffiliateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.affiliateService.RegisterAffiliate(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to register affiliate")
	}
	return response.FromResult(c, result)
}

// List handles affiliate listing, sorted by surname
func (h *AffiliateHandler) List(c *fiber.Ctx) error {
	affs, err := h.affiliateService.ListAffiliates(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list affiliates")
	}
	return c.JSON(fiber.Map{"affiliates": affs})
}

// Search handles affiliate point lookup by id
func (h *AffiliateHandler) Search(c *fiber.Ctx) error {
	aff, err := h.affiliateService.SearchByID(c.Context(), c.Query("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search affiliate")
	}
	if aff == nil {
		return response.NotFound(c, "not found")
	}
	return c.JSON(aff)
}

// Stats handles the affiliate population aggregate
func (h *AffiliateHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.affiliateService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute stats")
	}
	return c.JSON(stats)
}

// Export makes sure the affiliate and survey files exist on disk
func (h *AffiliateHandler) Export(c *fiber.Ctx) error {
	result, err := h.affiliateService.ExportFiles(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to export files")
	}
	return response.FromResult(c, result)
}
