package handlers

import (
	"errors"
	"fmt"

	"resumehub/internal/app"
	integrationController "resumehub/internal/controllers/integration"
	"resumehub/internal/handlers/middleware"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

type IntegrationHandler struct {
	Handler
	controller *integrationController.IntegrationController
}

type SyncAllRequest struct {
	GitHub   string `json:"github"`
	Coursera string `json:"coursera"`
	Devfolio string `json:"devfolio"`
}

func NewIntegrationHandler(app app.App, router fiber.Router) *IntegrationHandler {
	log := logger.New("handlers").File("integration_handler")
	return &IntegrationHandler{
		controller: app.IntegrationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *IntegrationHandler) Register() {
	integrations := h.router.Group("/integrations")
	integrations.Get("/coursera", h.syncPlatform(PlatformCoursera))
	integrations.Get("/github", h.syncPlatform(PlatformGitHub))
	integrations.Get("/devfolio", h.syncPlatform(PlatformDevfolio))
	integrations.Post("/sync-all", h.syncAll)

	integrations.Get("/data", h.getData)
	integrations.Delete("/data/:id", h.deleteData)
}

func (h *IntegrationHandler) syncPlatform(platform Platform) fiber.Handler {
	log := h.log.Function("syncPlatform")
	param := integrationController.CredentialParam(platform)

	return func(c *fiber.Ctx) error {
		summary, err := h.controller.SyncPlatform(
			c.Context(),
			middleware.UserID(c),
			platform,
			c.Query(param),
		)
		if err != nil {
			return syncFailure(c, log, err, fmt.Sprintf("Failed to sync %s data", platform))
		}

		return success(c,
			fmt.Sprintf("Successfully synced %d items from %s", summary.Synced, platform),
			summary,
		)
	}
}

func (h *IntegrationHandler) syncAll(c *fiber.Ctx) error {
	log := h.log.Function("syncAll")

	var request SyncAllRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			log.Er("failed to parse sync-all request", err)
			return failure(c, fiber.StatusBadRequest, "failed to parse sync-all request")
		}
	}

	summary, err := h.controller.SyncAll(c.Context(), middleware.UserID(c), map[Platform]string{
		PlatformGitHub:   request.GitHub,
		PlatformCoursera: request.Coursera,
		PlatformDevfolio: request.Devfolio,
	})
	if err != nil {
		return syncFailure(c, log, err, "Failed to sync all platforms")
	}

	return success(c,
		fmt.Sprintf("Successfully synced %d items from all platforms", summary.Synced),
		summary,
	)
}

func (h *IntegrationHandler) getData(c *fiber.Ctx) error {
	log := h.log.Function("getData")

	data, err := h.controller.GetIntegrationData(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Er("failed to fetch integration data", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to fetch integration data")
	}

	return success(c, "", data)
}

func (h *IntegrationHandler) deleteData(c *fiber.Ctx) error {
	log := h.log.Function("deleteData")

	err := h.controller.DeleteRecord(c.Context(), middleware.UserID(c), c.Params("id"))
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
		return failure(c, fiber.StatusNotFound, "Integration data not found")
	case err != nil:
		log.Er("failed to delete integration data", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to delete integration data")
	}

	return success(c, "Integration data deleted successfully", nil)
}
