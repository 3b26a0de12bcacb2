package server

import (
	"errors"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a catalog read error to an HTTP status.
// Load failures are server errors: the rules shipped with the service are broken.
func StatusFor(err error) int {
	var (
		le *catalog.LoadError
		pe *catalog.ParseError
	)
	switch {
	case errors.As(err, &le):
		return fiber.StatusInternalServerError
	case errors.Is(err, catalog.ErrUnknownFilter), errors.As(err, &pe):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Error writes err as a JSON body with the status StatusFor picks.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// NotFound writes a 404 naming what was looked up.
func NotFound(c *fiber.Ctx, what, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": what + " not found",
		"id":    id,
	})
}
