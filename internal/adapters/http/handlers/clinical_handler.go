package handlers

import (
	"eps-clinic/internal/core/services"
	"eps-clinic/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClinicalHandler handles appointment and prescription endpoints
type ClinicalHandler struct {
	clinicalService *services.ClinicalService
}

// NewClinicalHandler creates a new clinical handler
func NewClinicalHandler(clinicalService *services.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{clinicalService: clinicalService}
}

// ScheduleAppointment handles appointment scheduling
func (h *ClinicalHandler) ScheduleAppointment(c *fiber.Ctx) error {
	var req services.ScheduleAppointmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.clinicalService.ScheduleAppointment(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to schedule appointment")
	}
	return response.FromResult(c, result)
}

// ListAppointments lists the requesting user's appointments. Credentials
// come as query parameters, matching the original API.
func (h *ClinicalHandler) ListAppointments(c *fiber.Ctx) error {
	appts, result, err := h.clinicalService.ListAppointments(c.Context(), c.Query("name"), c.Query("password"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}
	if !result.OK() {
		return response.FromResult(c, result)
	}
	return c.JSON(fiber.Map{"appointments": appts})
}

// CancelAppointmentRequest represents appointment cancellation request body
type CancelAppointmentRequest struct {
	PatientName     string `json:"patient_name"`
	PatientPassword string `json:"patient_password"`
	AppointmentID   string `json:"appointment_id"`
}

// CancelAppointment handles appointment cancellation
func (h *ClinicalHandler) CancelAppointment(c *fiber.Ctx) error {
	var req CancelAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.clinicalService.CancelAppointment(c.Context(), req.PatientName, req.PatientPassword, req.AppointmentID)
	if err != nil {
		return response.InternalServerError(c, "Failed to cancel appointment")
	}
	return response.FromResult(c, result)
}

// CreatePrescription handles prescription creation
func (h *ClinicalHandler) CreatePrescription(c *fiber.Ctx) error {
	var req services.CreatePrescriptionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.clinicalService.CreatePrescription(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create prescription")
	}
	return response.FromResult(c, result)
}

// ListPrescriptions lists prescriptions for the requesting user by role
func (h *ClinicalHandler) ListPrescriptions(c *fiber.Ctx) error {
	prescs, result, err := h.clinicalService.ListPrescriptions(
		c.Context(), c.Query("role"), c.Query("name"), c.Query("password"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list prescriptions")
	}
	if !result.OK() {
		return response.FromResult(c, result)
	}
	return c.JSON(fiber.Map{"prescriptions": prescs})
}
