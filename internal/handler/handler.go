package handler

import (
	"errors"

	"go-pos-sync/internal/replication"
	"go-pos-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper untuk ambil user info dari JWT context (set by auth middleware)
func getUserName(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "system"
	}
	return username.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps the service/replication error taxonomy onto HTTP codes.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	var connErr *replication.ConnectivityError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(400).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.Is(err, service.ErrReferenceNotFound):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &connErr):
		return c.Status(503).JSON(fiber.Map{"error": connErr.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
