package handler

import (
	"errors"
	"log"

	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusForError maps service errors onto the HTTP taxonomy:
// validation 400, not found 404, ownership 403, conflicts 409,
// insufficient stock and closed shift 400, everything else 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrShiftNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrShiftNotOwned):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrOpenShiftExists),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrCategoryInUse):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrShiftClosed):
		return fiber.StatusBadRequest
	}

	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}

// fail writes the error response. Storage errors are logged server-side
// and surface as a generic message.
func fail(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// currentUserID reads the authenticated user set by RequireAuth
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("unauthenticated")
	}
	return uuid.Parse(raw)
}
