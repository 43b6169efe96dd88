package handlers

import (
	"time"

	"resumehub/internal/app"
	"resumehub/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, app *app.App) {
	log := logger.New("handlers").File("health_handler").Function("health")

	router.Get("/health", func(c *fiber.Ctx) error {
		database := "ok"
		sqlDB, err := app.Database.SQL.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Context())
		}
		if err != nil {
			log.Er("database ping failed", err)
			database = "unavailable"
		}

		status := fiber.StatusOK
		if database != "ok" {
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(fiber.Map{
			"success":     status == fiber.StatusOK,
			"message":     "Server is running",
			"environment": app.Config.GeneralEnvironment,
			"database":    database,
			"timestamp":   time.Now().UTC(),
		})
	})
}
