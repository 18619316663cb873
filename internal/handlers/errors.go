package handlers

import (
	"errors"

	"bhansa/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps the shared error taxonomy onto HTTP status codes.
// Anything unrecognized is a remote failure and reported generically.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error envelope. Internal errors keep their
// detail out of the response body; the log line at the call site has it.
func fail(c *fiber.Ctx, message string, err error) error {
	status := statusFromError(err)
	body := fiber.Map{"message": message}
	if status != fiber.StatusInternalServerError {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
