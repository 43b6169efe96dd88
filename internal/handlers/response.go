package handlers

import (
	"errors"

	"resumehub/internal/adapters"
	integrationController "resumehub/internal/controllers/integration"
	"resumehub/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, message string, data any) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(body)
}

func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// syncFailure maps sync errors to responses. Adapter errors carry their
// remediation payload; anything unexpected gets a generic 500.
func syncFailure(c *fiber.Ctx, log logger.Logger, err error, internalMessage string) error {
	var adapterErr *adapters.AdapterError
	switch {
	case errors.Is(err, integrationController.ErrMissingCredential):
		return failure(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &adapterErr):
		body := fiber.Map{"success": false, "message": adapterErr.Message}
		if adapterErr.Instructions != nil {
			body["instructions"] = adapterErr.Instructions
		}
		if adapterErr.Fallback != "" {
			body["fallback"] = adapterErr.Fallback
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	default:
		log.Er(internalMessage, err)
		return failure(c, fiber.StatusInternalServerError, internalMessage)
	}
}
