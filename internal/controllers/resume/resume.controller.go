package resumeController

import (
	"context"
	"errors"
	"fmt"

	reconcileController "resumehub/internal/controllers/reconcile"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"
	"resumehub/internal/services"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

var ErrInvalidResume = errors.New("invalid resume")

type ResumeController struct {
	resumeRepo         repositories.ResumeRepository
	transactionService *services.TransactionService
	locker             services.UserLocker
	validate           *validator.Validate
	log                logger.Logger
}

func New(
	resumeRepo repositories.ResumeRepository,
	transactionService *services.TransactionService,
	locker services.UserLocker,
) *ResumeController {
	return &ResumeController{
		resumeRepo:         resumeRepo,
		transactionService: transactionService,
		locker:             locker,
		validate:           validator.New(validator.WithRequiredStructEnabled()),
		log:                logger.New("ResumeController"),
	}
}

// GetResume returns repositories.ErrResumeNotFound when the user has none.
func (rc *ResumeController) GetResume(ctx context.Context, userID string) (*Resume, error) {
	return rc.resumeRepo.FindByUser(ctx, userID)
}

// SaveResume creates or updates the user's resume. Only the sections present
// in the request are replaced. Entries with a repeated title are dropped.
func (rc *ResumeController) SaveResume(
	ctx context.Context,
	userID string,
	request SaveResumeRequest,
) (*Resume, error) {
	log := rc.log.Function("SaveResume")

	if err := rc.validate.Struct(request); err != nil {
		log.Warn("rejected resume", "userID", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidResume, err)
	}

	// Shares the reconcile lock so a sync cannot overwrite a manual save.
	unlock, err := rc.locker.Lock(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to lock user for save", err, "userID", userID)
	}
	defer unlock()

	var result *Resume
	err = rc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		resume, err := rc.resumeRepo.FindByUser(txCtx, userID)
		isNew := errors.Is(err, repositories.ErrResumeNotFound)
		switch {
		case isNew:
			resume = EmptyResume(userID)
		case err != nil:
			return log.Err("failed to load resume", err, "userID", userID)
		}

		applyRequest(resume, request)

		if isNew {
			err = rc.resumeRepo.CreateForUser(txCtx, resume)
		} else {
			err = rc.resumeRepo.Save(txCtx, resume)
		}
		if err != nil {
			return log.Err("failed to save resume", err, "userID", userID)
		}

		result = resume
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Saved resume",
		"userID", userID,
		"projects", len(result.Projects),
		"courses", len(result.Courses),
		"achievements", len(result.Achievements),
	)
	return result, nil
}

func applyRequest(resume *Resume, request SaveResumeRequest) {
	if request.PersonalInfo != nil {
		resume.PersonalInfo = *request.PersonalInfo
	}
	if request.Summary != nil {
		resume.Summary = *request.Summary
	}
	if request.Experience != nil {
		resume.Experience = datatypes.JSONSlice[Experience](*request.Experience)
	}
	if request.Education != nil {
		resume.Education = datatypes.JSONSlice[Education](*request.Education)
	}
	if request.Skills != nil {
		resume.Skills = datatypes.JSONSlice[string](*request.Skills)
	}
	if request.Projects != nil {
		resume.Projects = reconcileController.MergeByTitle(nil, *request.Projects)
	}
	if request.Courses != nil {
		resume.Courses = reconcileController.MergeByTitle(nil, *request.Courses)
	}
	if request.Achievements != nil {
		resume.Achievements = reconcileController.MergeByTitle(nil, *request.Achievements)
	}
	resume.Normalize()
}

// DeleteResume returns repositories.ErrResumeNotFound when there was nothing to delete.
func (rc *ResumeController) DeleteResume(ctx context.Context, userID string) error {
	log := rc.log.Function("DeleteResume")

	unlock, err := rc.locker.Lock(ctx, userID)
	if err != nil {
		return log.Err("failed to lock user for delete", err, "userID", userID)
	}
	defer unlock()

	deleted, err := rc.resumeRepo.DeleteForUser(ctx, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return repositories.ErrResumeNotFound
	}

	log.Info("Deleted resume", "userID", userID)
	return nil
}
