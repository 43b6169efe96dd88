package reconcileController

import (
	"context"
	"errors"

	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"
	"resumehub/internal/services"
)

type ReconcileController struct {
	integrationRepo    repositories.IntegrationRepository
	resumeRepo         repositories.ResumeRepository
	transactionService *services.TransactionService
	locker             services.UserLocker
	log                logger.Logger
}

func New(
	integrationRepo repositories.IntegrationRepository,
	resumeRepo repositories.ResumeRepository,
	transactionService *services.TransactionService,
	locker services.UserLocker,
) *ReconcileController {
	return &ReconcileController{
		integrationRepo:    integrationRepo,
		resumeRepo:         resumeRepo,
		transactionService: transactionService,
		locker:             locker,
		log:                logger.New("ReconcileController"),
	}
}

// Reconcile merges the user's active integration records into the projects,
// courses and achievements of their resume. Other sections are untouched.
func (rc *ReconcileController) Reconcile(ctx context.Context, userID string) (*Resume, error) {
	log := rc.log.Function("Reconcile")

	unlock, err := rc.locker.Lock(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to lock user for reconcile", err, "userID", userID)
	}
	defer unlock()

	var result *Resume
	err = rc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		records, err := rc.integrationRepo.ListActive(txCtx, userID)
		if err != nil {
			return log.Err("failed to list integration records", err, "userID", userID)
		}

		resume, err := rc.resumeRepo.FindByUser(txCtx, userID)
		isNew := errors.Is(err, repositories.ErrResumeNotFound)
		switch {
		case isNew:
			resume = EmptyResume(userID)
		case err != nil:
			return log.Err("failed to load resume", err, "userID", userID)
		}

		sections := Classify(records)
		resume.Courses = MergeByTitle(resume.Courses, sections.Courses)
		resume.Projects = MergeByTitle(resume.Projects, sections.Projects)
		resume.Achievements = MergeByTitle(resume.Achievements, sections.Achievements)

		if isNew {
			err = rc.resumeRepo.CreateForUser(txCtx, resume)
		} else {
			err = rc.resumeRepo.Save(txCtx, resume)
		}
		if err != nil {
			return log.Err("failed to persist reconciled resume", err, "userID", userID)
		}

		log.Info("Reconciled resume",
			"userID", userID,
			"records", len(records),
			"projects", len(resume.Projects),
			"courses", len(resume.Courses),
			"achievements", len(resume.Achievements),
		)
		result = resume
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
