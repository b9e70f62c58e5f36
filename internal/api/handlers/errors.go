package handlers

import (
	"errors"

	"foodflow/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInventoryItemNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMealNotFound),
		errors.Is(err, domain.ErrUnknownFlag):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrWorkflowBusy),
		errors.Is(err, domain.ErrConfirmationPending),
		errors.Is(err, domain.ErrNoPendingDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyRegistered):
		return fiber.StatusConflict
	case domain.IsRemoteFailure(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
