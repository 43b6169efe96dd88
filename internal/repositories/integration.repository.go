package repositories

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"resumehub/internal/database"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/schemas"
	"resumehub/internal/services"
	"resumehub/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRecordNotFound = errors.New("integration record not found")

const (
	INTEGRATION_CACHE_EXPIRY = 10 * time.Minute

	groupedCachePattern = "integration:grouped:%s"
	statsCachePattern   = "integration:stats:%s"
)

type IntegrationRepository interface {
	UpsertAll(ctx context.Context, userID string, records []IntegrationRecord) UpsertResult
	ListActive(ctx context.Context, userID string) ([]IntegrationRecord, error)
	SoftDelete(ctx context.Context, userID, recordID string) (*IntegrationRecord, error)
	GroupedByType(ctx context.Context, userID string) (GroupedIntegrations, error)
	StatsByPlatform(ctx context.Context, userID string) ([]PlatformStats, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type integrationRepository struct {
	db       database.DB
	validate *validator.Validate
	now      func() time.Time
	log      logger.Logger
}

func NewIntegration(db database.DB) IntegrationRepository {
	return NewIntegrationWithClock(db, time.Now)
}

// NewIntegrationWithClock lets tests control the syncedAt timestamps.
func NewIntegrationWithClock(db database.DB, now func() time.Time) IntegrationRepository {
	return &integrationRepository{
		db:       db,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
		log:      logger.New("integrationRepository"),
	}
}

func (r *integrationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// UpsertAll stores each record under its (user, platform, title) key. A
// failing record is reported in Errors and never stops the rest.
func (r *integrationRepository) UpsertAll(
	ctx context.Context,
	userID string,
	records []IntegrationRecord,
) UpsertResult {
	log := r.log.Function("UpsertAll")

	result := UpsertResult{
		Saved:  []IntegrationRecord{},
		Errors: []RecordError{},
	}

	for _, record := range records {
		saved, err := r.upsert(ctx, userID, record)
		if err != nil {
			log.Warn("failed to upsert integration record",
				"userID", userID,
				"platform", record.Platform,
				"title", record.Title,
				"error", err,
			)
			result.Errors = append(result.Errors, RecordError{Title: record.Title, Error: err.Error()})
			continue
		}
		result.Saved = append(result.Saved, *saved)
	}

	if len(result.Saved) > 0 {
		r.invalidateCache(ctx, userID)
	}

	log.Info("Upserted integration records",
		"userID", userID,
		"saved", len(result.Saved),
		"failed", len(result.Errors),
	)
	return result
}

func (r *integrationRepository) upsert(
	ctx context.Context,
	userID string,
	record IntegrationRecord,
) (*IntegrationRecord, error) {
	now := r.now().UTC()

	candidate := IntegrationRecord{
		UserID:         userID,
		Platform:       record.Platform,
		DataType:       record.DataType,
		Title:          strings.TrimSpace(record.Title),
		Description:    strings.TrimSpace(record.Description),
		Date:           strings.TrimSpace(record.Date),
		CertificateURL: strings.TrimSpace(record.CertificateURL),
		Metadata:       record.Metadata,
		SyncedAt:       now,
		IsActive:       true,
	}
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if candidate.Metadata == nil {
		candidate.Metadata = map[string]any{}
	}

	if err := r.validate.Struct(candidate); err != nil {
		return nil, err
	}
	if err := schemas.ValidateMetadata(candidate.Platform, candidate.Metadata); err != nil {
		return nil, err
	}

	var stored IntegrationRecord
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}, {Name: "title"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"data_type",
				"description",
				"date",
				"certificate_url",
				"metadata",
				"synced_at",
				"is_active",
				"updated_at",
			}),
		}).Create(&candidate).Error; err != nil {
			return err
		}

		return tx.Where(
			"user_id = ? AND platform = ? AND title = ?",
			userID, candidate.Platform, candidate.Title,
		).First(&stored).Error
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// ListActive orders newest date first; unparseable dates go last and ties
// keep insertion order.
func (r *integrationRepository) ListActive(
	ctx context.Context,
	userID string,
) ([]IntegrationRecord, error) {
	log := r.log.Function("ListActive")

	var records []IntegrationRecord
	if err := r.getDB(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to list active integration records", err, "userID", userID)
	}

	slices.SortStableFunc(records, func(a, b IntegrationRecord) int {
		return utils.CompareLooseDatesDesc(a.Date, b.Date)
	})

	return records, nil
}

func (r *integrationRepository) SoftDelete(
	ctx context.Context,
	userID, recordID string,
) (*IntegrationRecord, error) {
	log := r.log.Function("SoftDelete")

	var record IntegrationRecord
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&IntegrationRecord{}).
			Where("id = ? AND user_id = ? AND is_active = ?", recordID, userID, true).
			UpdateColumns(map[string]any{
				"is_active":  false,
				"updated_at": r.now().UTC(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		return tx.Where("id = ?", recordID).First(&record).Error
	})
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, log.Err("failed to soft delete integration record", err,
			"userID", userID,
			"recordID", recordID,
		)
	}

	r.invalidateCache(ctx, userID)
	return &record, nil
}

func (r *integrationRepository) GroupedByType(
	ctx context.Context,
	userID string,
) (GroupedIntegrations, error) {
	log := r.log.Function("GroupedByType")

	grouped := NewGroupedIntegrations()
	if r.readCache(ctx, groupedCachePattern, userID, &grouped) {
		return grouped, nil
	}

	records, err := r.ListActive(ctx, userID)
	if err != nil {
		return GroupedIntegrations{}, log.Err("failed to group integration records", err, "userID", userID)
	}

	for _, record := range records {
		entry := record.ToResumeFormat()
		switch record.DataType {
		case DataTypeCourse:
			grouped.Courses = append(grouped.Courses, entry)
		case DataTypeProject:
			grouped.Projects = append(grouped.Projects, entry)
		case DataTypeHackathon:
			grouped.Hackathons = append(grouped.Hackathons, entry)
		case DataTypeCertification:
			grouped.Certifications = append(grouped.Certifications, entry)
		case DataTypeAchievement:
			grouped.Achievements = append(grouped.Achievements, entry)
		}
	}

	r.writeCache(ctx, groupedCachePattern, userID, grouped)
	return grouped, nil
}

type platformStatsRow struct {
	Platform Platform
	SyncedAt time.Time
}

// StatsByPlatform counts active records per platform. The latest sync is
// reduced in Go because sqlite returns MAX(datetime) as text.
func (r *integrationRepository) StatsByPlatform(
	ctx context.Context,
	userID string,
) ([]PlatformStats, error) {
	log := r.log.Function("StatsByPlatform")

	stats := []PlatformStats{}
	if r.readCache(ctx, statsCachePattern, userID, &stats) {
		return stats, nil
	}

	var rows []platformStatsRow
	if err := r.getDB(ctx).
		Model(&IntegrationRecord{}).
		Select("platform", "synced_at").
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&rows).Error; err != nil {
		return nil, log.Err("failed to aggregate integration stats", err, "userID", userID)
	}

	byPlatform := map[Platform]*PlatformStats{}
	for _, row := range rows {
		entry, ok := byPlatform[row.Platform]
		if !ok {
			entry = &PlatformStats{Platform: row.Platform}
			byPlatform[row.Platform] = entry
		}
		entry.Count++
		if row.SyncedAt.After(entry.LastSync) {
			entry.LastSync = row.SyncedAt
		}
	}

	for _, platform := range SupportedPlatforms {
		if entry, ok := byPlatform[platform]; ok {
			stats = append(stats, *entry)
		}
	}

	r.writeCache(ctx, statsCachePattern, userID, stats)
	return stats, nil
}

func (r *integrationRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	log := r.log.Function("DeleteAllForUser")

	result := r.getDB(ctx).Where("user_id = ?", userID).Delete(&IntegrationRecord{})
	if result.Error != nil {
		return 0, log.Err("failed to delete integration records", result.Error, "userID", userID)
	}

	r.invalidateCache(ctx, userID)
	return result.RowsAffected, nil
}

func (r *integrationRepository) DeleteAll(ctx context.Context) (int64, error) {
	log := r.log.Function("DeleteAll")

	result := r.getDB(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&IntegrationRecord{})
	if result.Error != nil {
		return 0, log.Err("failed to delete all integration records", result.Error)
	}

	if client := r.db.Cache.Integration; client != nil {
		if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
			log.Warn("failed to flush integration cache", "error", err)
		}
	}
	return result.RowsAffected, nil
}

// Reads inside a transaction bypass the cache so they see uncommitted writes.
func (r *integrationRepository) readCache(
	ctx context.Context,
	pattern, userID string,
	target any,
) bool {
	if _, ok := services.GetTransaction(ctx); ok {
		return false
	}

	found, err := database.NewCacheBuilder(r.db.Cache.Integration, userID).
		WithHashPattern(pattern).
		WithContext(ctx).
		Get(target)
	if err != nil {
		r.log.Function("readCache").Warn("failed to read integration cache", "userID", userID, "error", err)
		return false
	}
	return found
}

func (r *integrationRepository) writeCache(ctx context.Context, pattern, userID string, value any) {
	if _, ok := services.GetTransaction(ctx); ok {
		return
	}

	if err := database.NewCacheBuilder(r.db.Cache.Integration, userID).
		WithHashPattern(pattern).
		WithStruct(value).
		WithTTL(INTEGRATION_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		r.log.Function("writeCache").Warn("failed to write integration cache", "userID", userID, "error", err)
	}
}

func (r *integrationRepository) invalidateCache(ctx context.Context, userID string) {
	for _, pattern := range []string{groupedCachePattern, statsCachePattern} {
		if err := database.NewCacheBuilder(r.db.Cache.Integration, userID).
			WithHashPattern(pattern).
			WithContext(ctx).
			Delete(); err != nil {
			r.log.Function("invalidateCache").
				Warn("failed to invalidate integration cache", "userID", userID, "error", err)
		}
	}
}
