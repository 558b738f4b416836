package handlers

import (
	"eps-clinic/internal/core/services"
	"eps-clinic/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user registration and session endpoints
type UserHandler struct {
	identityService *services.IdentityService
}

// NewUserHandler creates a new user handler
func NewUserHandler(identityService *services.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// RegisterUserRequest represents user registration request body
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionRequest represents session open/close request body
type SessionRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Session  bool   `json:"session"`
}

// Register handles user registration
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.identityService.RegisterUser(c.Context(), req.Name, req.Password, req.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to register user")
	}
	return response.FromResult(c, result)
}

// Session handles session open/close
func (h *UserHandler) Session(c *fiber.Ctx) error {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.identityService.OpenCloseSession(c.Context(), req.Name, req.Password, req.Session)
	if err != nil {
		return response.InternalServerError(c, "Failed to update session")
	}
	return response.FromResult(c, result)
}
