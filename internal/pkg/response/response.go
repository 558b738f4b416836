package response

import (
	"github.com/gofiber/fiber/v2"

	"eps-clinic/internal/core/domain"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromResult maps a domain result code onto an HTTP response. The message
// is always the exact code string; only the status varies.
func FromResult(c *fiber.Ctx, result domain.Result) error {
	msg := result.String()
	switch result {
	case domain.ResultOK:
		return Success(c, msg, nil)
	case domain.ResultInvalidData, domain.ResultInvalidDateFormat, domain.ResultOutOfRange:
		return BadRequest(c, msg)
	case domain.ResultNotLoggedIn:
		return Unauthorized(c, msg)
	case domain.ResultNotFound, domain.ResultDoctorNotFound:
		return NotFound(c, msg)
	case domain.ResultIDAlreadyExists, domain.ResultAlreadyExists, domain.ResultSlotTaken:
		return Conflict(c, msg)
	default:
		return InternalServerError(c, msg)
	}
}
