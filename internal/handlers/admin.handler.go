package handlers

import (
	"errors"

	"resumehub/internal/app"
	adminController "resumehub/internal/controllers/admin"
	"resumehub/internal/handlers/middleware"
	"resumehub/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller *adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller: app.AdminController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin")
	admin.Delete("/clear-my-data", h.clearMyData)
	admin.Delete("/clear-all-data", h.clearAllData)
}

func (h *AdminHandler) clearMyData(c *fiber.Ctx) error {
	log := h.log.Function("clearMyData")

	result, err := h.controller.ClearUserData(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Er("failed to clear user data", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to clear data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "All your data has been cleared successfully",
		"deleted": result,
	})
}

func (h *AdminHandler) clearAllData(c *fiber.Ctx) error {
	log := h.log.Function("clearAllData")

	result, err := h.controller.ClearAllData(c.Context(), middleware.UserID(c))
	switch {
	case errors.Is(err, adminController.ErrProductionOnly):
		return failure(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		log.Er("failed to clear all data", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to clear data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "ALL data has been cleared from database",
		"deleted": result,
	})
}
