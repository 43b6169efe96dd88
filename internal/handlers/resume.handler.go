package handlers

import (
	"errors"

	"resumehub/internal/app"
	resumeController "resumehub/internal/controllers/resume"
	"resumehub/internal/handlers/middleware"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

type ResumeHandler struct {
	Handler
	controller *resumeController.ResumeController
}

func NewResumeHandler(app app.App, router fiber.Router) *ResumeHandler {
	log := logger.New("handlers").File("resume_handler")
	return &ResumeHandler{
		controller: app.ResumeController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ResumeHandler) Register() {
	h.router.Get("/resume", h.getResume)
	h.router.Delete("/resume", h.deleteResume)
	h.router.Post("/save-resume", h.saveResume)
	h.router.Post("/generate-summary", h.generateSummary)
}

func (h *ResumeHandler) getResume(c *fiber.Ctx) error {
	log := h.log.Function("getResume")

	resume, err := h.controller.GetResume(c.Context(), middleware.UserID(c))
	switch {
	case errors.Is(err, repositories.ErrResumeNotFound):
		return failure(c, fiber.StatusNotFound, "Resume not found")
	case err != nil:
		log.Er("failed to fetch resume", err)
		return failure(c, fiber.StatusInternalServerError, "Error fetching resume")
	}

	return success(c, "", resume)
}

func (h *ResumeHandler) saveResume(c *fiber.Ctx) error {
	log := h.log.Function("saveResume")

	var request SaveResumeRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse resume", err)
		return failure(c, fiber.StatusBadRequest, "failed to parse resume")
	}

	resume, err := h.controller.SaveResume(c.Context(), middleware.UserID(c), request)
	switch {
	case errors.Is(err, resumeController.ErrInvalidResume):
		return failure(c, fiber.StatusBadRequest, "Every project, course and achievement needs a title")
	case err != nil:
		log.Er("failed to save resume", err)
		return failure(c, fiber.StatusInternalServerError, "Error saving resume")
	}

	return success(c, "Resume saved successfully", resume)
}

func (h *ResumeHandler) deleteResume(c *fiber.Ctx) error {
	log := h.log.Function("deleteResume")

	err := h.controller.DeleteResume(c.Context(), middleware.UserID(c))
	switch {
	case errors.Is(err, repositories.ErrResumeNotFound):
		return failure(c, fiber.StatusNotFound, "Resume not found")
	case err != nil:
		log.Er("failed to delete resume", err)
		return failure(c, fiber.StatusInternalServerError, "Error deleting resume")
	}

	return success(c, "Resume deleted successfully", nil)
}

func (h *ResumeHandler) generateSummary(c *fiber.Ctx) error {
	log := h.log.Function("generateSummary")

	var request GenerateSummaryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			log.Er("failed to parse summary request", err)
			return failure(c, fiber.StatusBadRequest, "failed to parse summary request")
		}
	}

	return success(c, "Summary generated successfully", fiber.Map{
		"summary": resumeController.GenerateSummary(request),
	})
}
