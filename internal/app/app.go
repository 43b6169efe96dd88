package app

import (
	"resumehub/config"
	"resumehub/internal/adapters"
	"resumehub/internal/database"
	"resumehub/internal/events"
	"resumehub/internal/handlers/middleware"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"
	"resumehub/internal/services"
	"resumehub/internal/websockets"

	adminController "resumehub/internal/controllers/admin"
	integrationController "resumehub/internal/controllers/integration"
	reconcileController "resumehub/internal/controllers/reconcile"
	resumeController "resumehub/internal/controllers/resume"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	UserLocker         services.UserLocker

	// Adapters
	Registry        *adapters.Registry
	SyncAllRegistry *adapters.Registry

	// Repositories
	IntegrationRepo repositories.IntegrationRepository
	ResumeRepo      repositories.ResumeRepository

	// Controllers
	ReconcileController   *reconcileController.ReconcileController
	IntegrationController *integrationController.IntegrationController
	ResumeController      *resumeController.ResumeController
	AdminController       *adminController.AdminController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	logger.Setup(config.GeneralEnvironment, config.GeneralLogLevel)

	return Build(config)
}

// Build wires the application from an already loaded config.
func Build(config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	registry, syncAllRegistry, err := newRegistries(config)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to create adapter registries", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	userLocker := services.NewUserLocker(db)

	// Initialize repositories
	integrationRepo := repositories.NewIntegration(db)
	resumeRepo := repositories.NewResume(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(config)
	reconciler := reconcileController.New(integrationRepo, resumeRepo, transactionService, userLocker)
	integrationController := integrationController.New(
		integrationRepo,
		reconciler,
		registry,
		syncAllRegistry,
		eventBus,
	)
	resumeController := resumeController.New(resumeRepo, transactionService, userLocker)
	adminController := adminController.New(eventBus, integrationRepo, resumeRepo, transactionService, config)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		_ = eventBus.Close()
		_ = db.Close()
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		TransactionService:    transactionService,
		UserLocker:            userLocker,
		Registry:              registry,
		SyncAllRegistry:       syncAllRegistry,
		IntegrationRepo:       integrationRepo,
		ResumeRepo:            resumeRepo,
		ReconcileController:   reconciler,
		IntegrationController: integrationController,
		ResumeController:      resumeController,
		AdminController:       adminController,
		Websocket:             websocket,
		EventBus:              eventBus,
	}

	if err := app.validate(); err != nil {
		_ = app.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func newRegistries(config config.Config) (*adapters.Registry, *adapters.Registry, error) {
	options := adapters.Options{
		Timeout:         config.AdapterTimeout(),
		GitHubBaseURL:   config.AdapterGitHubBaseURL,
		DevfolioBaseURL: config.AdapterDevfolioURL,
	}

	registry, err := adapters.NewRegistry(map[Platform]adapters.SourceMode{
		PlatformGitHub:   adapters.SourceMode(config.SyncModeGitHub),
		PlatformCoursera: adapters.SourceMode(config.SyncModeCoursera),
		PlatformDevfolio: adapters.SourceMode(config.SyncModeDevfolio),
	}, options)
	if err != nil {
		return nil, nil, err
	}

	syncAllRegistry, err := adapters.NewRegistry(map[Platform]adapters.SourceMode{
		PlatformGitHub:   adapters.SourceMode(config.SyncAllModeGitHub),
		PlatformCoursera: adapters.SourceMode(config.SyncAllModeCoursera),
		PlatformDevfolio: adapters.SourceMode(config.SyncAllModeDevfolio),
	}, options)
	if err != nil {
		return nil, nil, err
	}

	return registry, syncAllRegistry, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.UserLocker,
		a.Registry,
		a.SyncAllRegistry,
		a.IntegrationRepo,
		a.ResumeRepo,
		a.ReconcileController,
		a.IntegrationController,
		a.ResumeController,
		a.AdminController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
