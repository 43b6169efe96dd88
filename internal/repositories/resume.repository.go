package repositories

import (
	"context"
	"errors"

	"resumehub/internal/database"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/services"

	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	FindByUser(ctx context.Context, userID string) (*Resume, error)
	CreateForUser(ctx context.Context, resume *Resume) error
	Save(ctx context.Context, resume *Resume) error
	DeleteForUser(ctx context.Context, userID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type resumeRepository struct {
	db  database.DB
	log logger.Logger
}

func NewResume(db database.DB) ResumeRepository {
	return &resumeRepository{
		db:  db,
		log: logger.New("resumeRepository"),
	}
}

func (r *resumeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// FindByUser returns ErrResumeNotFound when the user has no resume yet.
func (r *resumeRepository) FindByUser(ctx context.Context, userID string) (*Resume, error) {
	log := r.log.Function("FindByUser")

	var resume Resume
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, log.Err("failed to find resume", err, "userID", userID)
	}

	return &resume, nil
}

func (r *resumeRepository) CreateForUser(ctx context.Context, resume *Resume) error {
	log := r.log.Function("CreateForUser")

	if resume.UserID == "" {
		return log.Error("resume has no user")
	}

	if err := r.getDB(ctx).Create(resume).Error; err != nil {
		return log.Err("failed to create resume", err, "userID", resume.UserID)
	}

	return nil
}

func (r *resumeRepository) Save(ctx context.Context, resume *Resume) error {
	log := r.log.Function("Save")

	if err := r.getDB(ctx).Save(resume).Error; err != nil {
		return log.Err("failed to save resume", err, "userID", resume.UserID, "resumeID", resume.ID)
	}

	return nil
}

func (r *resumeRepository) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	log := r.log.Function("DeleteForUser")

	result := r.getDB(ctx).Where("user_id = ?", userID).Delete(&Resume{})
	if result.Error != nil {
		return 0, log.Err("failed to delete resume", result.Error, "userID", userID)
	}

	return result.RowsAffected, nil
}

func (r *resumeRepository) DeleteAll(ctx context.Context) (int64, error) {
	log := r.log.Function("DeleteAll")

	result := r.getDB(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Resume{})
	if result.Error != nil {
		return 0, log.Err("failed to delete all resumes", result.Error)
	}

	return result.RowsAffected, nil
}
