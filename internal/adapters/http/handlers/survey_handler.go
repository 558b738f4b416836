package handlers

import (
	"eps-clinic/internal/core/services"
	"eps-clinic/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SurveyHandler handles satisfaction survey endpoints
type SurveyHandler struct {
	affiliateService *services.AffiliateService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(affiliateService *services.AffiliateService) *SurveyHandler {
	return &SurveyHandler{affiliateService: affiliateService}
}

// RecordSurveyRequest represents survey recording request body
type RecordSurveyRequest struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
}

// Record handles survey recording
func (h *SurveyHandler) Record(c *fiber.Ctx) error {
	var req RecordSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.affiliateService.RecordSurvey(c.Context(), req.ID, req.Rating)
	if err != nil {
		return response.InternalServerError(c, "Failed to record survey")
	}
	return response.FromResult(c, result)
}

// Stats handles survey aggregates, optionally segmented with ?by=plan or
// ?by=gender
func (h *SurveyHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.affiliateService.SurveyStats(c.Context(), c.Query("by"))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute survey stats")
	}
	return c.JSON(stats)
}
