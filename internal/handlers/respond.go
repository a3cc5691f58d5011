package handlers

import (
	"errors"
	"log"

	"crm/internal/apperrors"
	"crm/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP responses: validation 400,
// missing references 404, anything else 500.
func respondError(c *fiber.Ctx, err error, action string) error {
	switch {
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": apperrors.Message(err),
		})
	case apperrors.IsReference(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": apperrors.Message(err),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Record not found",
		})
	}
	log.Printf("Error: could not %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action,
		"error":   err.Error(),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func invalidQuery(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid query parameters",
		"error":   err.Error(),
	})
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "ID must be a positive integer",
	})
}
