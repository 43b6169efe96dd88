package integrationController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resumehub/internal/adapters"
	"resumehub/internal/events"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"

	"golang.org/x/sync/errgroup"
)

type Reconciler interface {
	Reconcile(ctx context.Context, userID string) (*Resume, error)
}

type SyncSummary struct {
	Platform Platform            `json:"platform"`
	Synced   int                 `json:"synced"`
	Failed   int                 `json:"failed"`
	Records  []IntegrationRecord `json:"records"`
	Errors   []RecordError       `json:"errors"`
	Username string              `json:"username,omitempty"`
}

type SyncAllSummary struct {
	Synced         int                               `json:"synced"`
	Failed         int                               `json:"failed"`
	Platforms      map[string]int                    `json:"platforms"`
	PlatformErrors map[string]*adapters.AdapterError `json:"platformErrors"`
	Errors         []RecordError                     `json:"errors"`
}

type IntegrationData struct {
	All     []IntegrationRecord `json:"all"`
	Grouped GroupedIntegrations `json:"grouped"`
	Stats   []PlatformStats     `json:"stats"`
}

type IntegrationController struct {
	integrationRepo repositories.IntegrationRepository
	reconciler      Reconciler
	registry        *adapters.Registry
	syncAllRegistry *adapters.Registry
	eventBus        *events.EventBus
	log             logger.Logger
}

// New takes two registries: single-platform syncs and sync-all may read
// from different sources.
func New(
	integrationRepo repositories.IntegrationRepository,
	reconciler Reconciler,
	registry *adapters.Registry,
	syncAllRegistry *adapters.Registry,
	eventBus *events.EventBus,
) *IntegrationController {
	return &IntegrationController{
		integrationRepo: integrationRepo,
		reconciler:      reconciler,
		registry:        registry,
		syncAllRegistry: syncAllRegistry,
		eventBus:        eventBus,
		log:             logger.New("IntegrationController"),
	}
}

// SyncPlatform fetches one platform, stores what it returned and reconciles
// the resume. An adapter failure returns before anything is written.
func (ic *IntegrationController) SyncPlatform(
	ctx context.Context,
	userID string,
	platform Platform,
	credential string,
) (SyncSummary, error) {
	log := ic.log.Function("SyncPlatform")

	credential = strings.TrimSpace(credential)
	if credential == "" {
		return SyncSummary{}, newMissingCredential(platform)
	}

	records, err := ic.registry.Fetch(ctx, platform, credential)
	if err != nil {
		log.Warn("adapter failed", "userID", userID, "platform", platform, "error", err)
		return SyncSummary{}, err
	}

	result := ic.integrationRepo.UpsertAll(ctx, userID, records)

	if _, err := ic.reconciler.Reconcile(ctx, userID); err != nil {
		return SyncSummary{}, fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	summary := SyncSummary{
		Platform: platform,
		Synced:   len(result.Saved),
		Failed:   len(result.Errors),
		Records:  result.Saved,
		Errors:   result.Errors,
	}
	if !credentialFor(platform).secret {
		summary.Username = credential
	}

	log.Info("Synced platform",
		"userID", userID,
		"platform", platform,
		"synced", summary.Synced,
		"failed", summary.Failed,
	)
	ic.publish(events.TypeIntegrationSynced, userID, map[string]any{
		"platform": string(platform),
		"synced":   summary.Synced,
		"failed":   summary.Failed,
	})

	return summary, nil
}

type platformFetch struct {
	platform Platform
	records  []IntegrationRecord
	err      *adapters.AdapterError
}

// SyncAll fetches every platform concurrently. A failing platform is
// reported in PlatformErrors and does not stop the others; everything that
// was fetched goes through one upsert and one reconcile.
func (ic *IntegrationController) SyncAll(
	ctx context.Context,
	userID string,
	credentials map[Platform]string,
) (SyncAllSummary, error) {
	log := ic.log.Function("SyncAll")

	platforms := ic.syncAllRegistry.Platforms()
	fetches := make([]platformFetch, len(platforms))

	var group errgroup.Group
	for i, platform := range platforms {
		group.Go(func() error {
			fetches[i] = ic.fetchForSyncAll(ctx, platform, credentials[platform])
			return nil
		})
	}
	_ = group.Wait()

	summary := SyncAllSummary{
		Platforms:      map[string]int{},
		PlatformErrors: map[string]*adapters.AdapterError{},
		Errors:         []RecordError{},
	}

	var combined []IntegrationRecord
	for _, fetch := range fetches {
		key := strings.ToLower(string(fetch.platform))
		if fetch.err != nil {
			summary.PlatformErrors[key] = fetch.err
			continue
		}
		summary.Platforms[key] = len(fetch.records)
		combined = append(combined, fetch.records...)
	}

	result := ic.integrationRepo.UpsertAll(ctx, userID, combined)
	summary.Synced = len(result.Saved)
	summary.Failed = len(result.Errors)
	summary.Errors = result.Errors

	if _, err := ic.reconciler.Reconcile(ctx, userID); err != nil {
		return SyncAllSummary{}, fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	log.Info("Synced all platforms",
		"userID", userID,
		"synced", summary.Synced,
		"failed", summary.Failed,
		"platformErrors", len(summary.PlatformErrors),
	)
	ic.publish(events.TypeIntegrationSynced, userID, map[string]any{
		"platform": "all",
		"synced":   summary.Synced,
		"failed":   summary.Failed,
	})

	return summary, nil
}

func (ic *IntegrationController) fetchForSyncAll(
	ctx context.Context,
	platform Platform,
	credential string,
) platformFetch {
	credential = strings.TrimSpace(credential)
	if credential == "" && ic.syncAllRegistry.Mode(platform) == adapters.ModeLive {
		return platformFetch{
			platform: platform,
			err: &adapters.AdapterError{
				Platform: platform,
				Message:  newMissingCredential(platform).Error(),
			},
		}
	}

	records, err := ic.syncAllRegistry.Fetch(ctx, platform, credential)
	if err != nil {
		var adapterErr *adapters.AdapterError
		if !errors.As(err, &adapterErr) {
			adapterErr = &adapters.AdapterError{Platform: platform, Message: err.Error(), Cause: err}
		}
		return platformFetch{platform: platform, err: adapterErr}
	}

	return platformFetch{platform: platform, records: records}
}

func (ic *IntegrationController) GetIntegrationData(ctx context.Context, userID string) (IntegrationData, error) {
	log := ic.log.Function("GetIntegrationData")

	all, err := ic.integrationRepo.ListActive(ctx, userID)
	if err != nil {
		return IntegrationData{}, log.Err("failed to list integration data", err, "userID", userID)
	}

	grouped, err := ic.integrationRepo.GroupedByType(ctx, userID)
	if err != nil {
		return IntegrationData{}, log.Err("failed to group integration data", err, "userID", userID)
	}

	stats, err := ic.integrationRepo.StatsByPlatform(ctx, userID)
	if err != nil {
		return IntegrationData{}, log.Err("failed to load integration stats", err, "userID", userID)
	}

	return IntegrationData{All: all, Grouped: grouped, Stats: stats}, nil
}

// DeleteRecord deactivates one record and reconciles. The reconcile never
// removes resume entries, it only stops the record from being merged again.
func (ic *IntegrationController) DeleteRecord(ctx context.Context, userID, recordID string) error {
	log := ic.log.Function("DeleteRecord")

	record, err := ic.integrationRepo.SoftDelete(ctx, userID, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}
		return log.Err("failed to delete integration record", err, "userID", userID, "recordID", recordID)
	}

	if _, err := ic.reconciler.Reconcile(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	ic.publish(events.TypeIntegrationDeleted, userID, map[string]any{
		"id":       record.ID,
		"platform": string(record.Platform),
		"title":    record.Title,
	})
	return nil
}

func (ic *IntegrationController) publish(eventType, userID string, data map[string]any) {
	if ic.eventBus == nil {
		return
	}

	event := events.NewEvent(events.ChannelIntegration, eventType, userID, data)
	if err := ic.eventBus.Publish(events.ChannelIntegration, event); err != nil {
		ic.log.Function("publish").Er("failed to publish event", err, "type", eventType, "userID", userID)
	}
}
