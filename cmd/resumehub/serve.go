package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"resumehub/cmd/migration/initialize"
	"resumehub/internal/app"
	"resumehub/internal/handlers"
	"resumehub/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket server",
	RunE:  runServe,
}

var serveSkipMigrations bool

func init() {
	serveCmd.Flags().BoolVar(&serveSkipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.New("main").Function("serve")

	application, err := app.New()
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	if !serveSkipMigrations {
		if _, err := initialize.InitializeTables(application.Database, log); err != nil {
			return err
		}
	}

	server := fiber.New(fiber.Config{
		AppName:      "resumehub",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	})
	if err := handlers.Router(server, application); err != nil {
		return log.Err("failed to register routes", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("Server listening", "address", address, "environment", application.Config.GeneralEnvironment)
		errs <- server.Listen(address)
	}()

	select {
	case err := <-errs:
		return log.Err("server stopped", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}
