package adminController

import (
	"context"
	"errors"

	"resumehub/config"
	"resumehub/internal/events"
	"resumehub/internal/logger"
	"resumehub/internal/repositories"
	"resumehub/internal/services"
)

var ErrProductionOnly = errors.New("This endpoint is only available in development")

type ClearResult struct {
	Integrations int64 `json:"integrations"`
	Resumes      int64 `json:"resumes"`
}

type AdminController struct {
	integrationRepo    repositories.IntegrationRepository
	resumeRepo         repositories.ResumeRepository
	transactionService *services.TransactionService
	Config             config.Config
	log                logger.Logger
	eventBus           *events.EventBus
}

func New(
	eventBus *events.EventBus,
	integrationRepo repositories.IntegrationRepository,
	resumeRepo repositories.ResumeRepository,
	transactionService *services.TransactionService,
	config config.Config,
) *AdminController {
	return &AdminController{
		integrationRepo:    integrationRepo,
		resumeRepo:         resumeRepo,
		transactionService: transactionService,
		Config:             config,
		log:                logger.New("AdminController"),
		eventBus:           eventBus,
	}
}

// ClearUserData hard deletes the user's integration records and resume.
func (c *AdminController) ClearUserData(ctx context.Context, userID string) (ClearResult, error) {
	log := c.log.Function("ClearUserData")

	var result ClearResult
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		var err error
		if result.Integrations, err = c.integrationRepo.DeleteAllForUser(txCtx, userID); err != nil {
			return err
		}
		if result.Resumes, err = c.resumeRepo.DeleteForUser(txCtx, userID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return ClearResult{}, log.Err("failed to clear user data", err, "userID", userID)
	}

	log.Info("Cleared user data",
		"userID", userID,
		"integrations", result.Integrations,
		"resumes", result.Resumes,
	)
	c.broadcast(userID, result)
	return result, nil
}

// ClearAllData wipes every user's data. Refused in production.
func (c *AdminController) ClearAllData(ctx context.Context, requestedBy string) (ClearResult, error) {
	log := c.log.Function("ClearAllData")

	if c.Config.IsProduction() {
		log.Warn("refused clear-all in production", "requestedBy", requestedBy)
		return ClearResult{}, ErrProductionOnly
	}

	var result ClearResult
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		var err error
		if result.Integrations, err = c.integrationRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		if result.Resumes, err = c.resumeRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return ClearResult{}, log.Err("failed to clear all data", err)
	}

	log.Warn("Cleared all data",
		"requestedBy", requestedBy,
		"integrations", result.Integrations,
		"resumes", result.Resumes,
	)
	c.broadcast("", result)
	return result, nil
}

// broadcast with an empty userID reaches every connected client.
func (c *AdminController) broadcast(userID string, result ClearResult) {
	if c.eventBus == nil {
		return
	}

	event := events.NewEvent(events.ChannelAdmin, events.TypeDataCleared, userID, map[string]any{
		"integrations": result.Integrations,
		"resumes":      result.Resumes,
	})
	if err := c.eventBus.Publish(events.ChannelAdmin, event); err != nil {
		c.log.Function("broadcast").Er("failed to publish event", err, "userID", userID)
	}
}
