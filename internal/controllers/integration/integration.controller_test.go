package integrationController

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"resumehub/config"
	"resumehub/internal/adapters"
	reconcileController "resumehub/internal/controllers/reconcile"
	"resumehub/internal/database"
	"resumehub/internal/events"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"
	"resumehub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db              database.DB
	integrationRepo repositories.IntegrationRepository
	resumeRepo      repositories.ResumeRepository
	reconciler      *reconcileController.ReconcileController
	bus             *events.EventBus
	published       *[]events.Event
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)

	integrationRepo := repositories.NewIntegration(db)
	resumeRepo := repositories.NewResume(db)

	bus := events.New(nil, config.Config{})
	t.Cleanup(func() { _ = bus.Close() })
	published := &[]events.Event{}
	bus.Subscribe(events.ChannelIntegration, func(event events.Event) error {
		*published = append(*published, event)
		return nil
	})

	return fixture{
		db:              db,
		integrationRepo: integrationRepo,
		resumeRepo:      resumeRepo,
		reconciler: reconcileController.New(
			integrationRepo,
			resumeRepo,
			services.NewTransactionService(db),
			services.NewMemoryUserLocker(),
		),
		bus:       bus,
		published: published,
	}
}

func registry(t *testing.T, modes map[Platform]adapters.SourceMode, options adapters.Options) *adapters.Registry {
	t.Helper()
	r, err := adapters.NewRegistry(modes, options)
	require.NoError(t, err)
	return r
}

func allFixtures() map[Platform]adapters.SourceMode {
	return map[Platform]adapters.SourceMode{
		PlatformGitHub:   adapters.ModeFixture,
		PlatformCoursera: adapters.ModeFixture,
		PlatformDevfolio: adapters.ModeFixture,
	}
}

func (f fixture) controller(single, all *adapters.Registry) *IntegrationController {
	return New(f.integrationRepo, f.reconciler, single, all, f.bus)
}

func (f fixture) countRecords(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.SQL.Model(&IntegrationRecord{}).Count(&count).Error)
	return count
}

func (f fixture) countResumes(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.SQL.Model(&Resume{}).Count(&count).Error)
	return count
}

func TestSyncPlatform_MissingCredential(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(registry(t, allFixtures(), adapters.Options{}), nil)

	tests := []struct {
		platform Platform
		message  string
	}{
		{platform: PlatformGitHub, message: "GitHub username is required"},
		{platform: PlatformDevfolio, message: "Devfolio username is required"},
		{platform: PlatformCoursera, message: "API key is required. Please provide your Coursera API key."},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			_, err := controller.SyncPlatform(context.Background(), "user-1", tt.platform, "   ")
			require.ErrorIs(t, err, ErrMissingCredential)
			assert.Equal(t, tt.message, err.Error())

			var missing *MissingCredentialError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.platform, missing.Platform)
		})
	}

	assert.Zero(t, f.countRecords(t))
}

func TestSyncPlatform_CourseraFailurePerformsNoWrites(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(registry(t, nil, adapters.Options{}), nil)

	summary, err := controller.SyncPlatform(context.Background(), "user-1", PlatformCoursera, "api-key")

	var adapterErr *adapters.AdapterError
	require.ErrorAs(t, err, &adapterErr)
	require.NotNil(t, adapterErr.Instructions)
	assert.True(t, adapterErr.Instructions.Manual)
	assert.Len(t, adapterErr.Instructions.Steps, 3)
	assert.Zero(t, summary.Synced)

	assert.Zero(t, f.countRecords(t))
	assert.Zero(t, f.countResumes(t))
	assert.Empty(t, *f.published)
}

func TestSyncPlatform_GitHubLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"name": "resumehub", "description": "sync", "html_url": "https://github.com/octo/resumehub",
			 "updated_at": "2024-06-01T12:00:00Z", "fork": false, "stargazers_count": 2, "forks_count": 0,
			 "language": "Go", "topics": ["cli"]},
			{"name": "fork-of-something", "updated_at": "2024-06-02T12:00:00Z", "fork": true}
		]`))
	}))
	defer server.Close()

	f := newFixture(t)
	single := registry(t, nil, adapters.Options{GitHubBaseURL: server.URL, HTTPClient: server.Client()})
	controller := f.controller(single, nil)

	summary, err := controller.SyncPlatform(context.Background(), "user-1", PlatformGitHub, " octo ")
	require.NoError(t, err)

	assert.Equal(t, PlatformGitHub, summary.Platform)
	assert.Equal(t, 1, summary.Synced)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, "octo", summary.Username)
	require.Len(t, summary.Records, 1)

	resume, err := f.resumeRepo.FindByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, resume.Projects, 1)
	assert.Equal(t, "Go, cli", resume.Projects[0].Technologies)

	require.Len(t, *f.published, 1)
	assert.Equal(t, events.TypeIntegrationSynced, (*f.published)[0].Type)
}

func TestSyncPlatform_RepeatedSyncDoesNotDuplicate(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(registry(t, allFixtures(), adapters.Options{}), nil)
	ctx := context.Background()

	for range 2 {
		summary, err := controller.SyncPlatform(ctx, "user-1", PlatformDevfolio, "builder")
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Synced)
	}

	assert.Equal(t, int64(3), f.countRecords(t))

	resume, err := f.resumeRepo.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, resume.Achievements, 2)
	assert.Len(t, resume.Projects, 1)
}

func TestSyncPlatform_CourseraKeyNotEchoed(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(registry(t, allFixtures(), adapters.Options{}), nil)

	summary, err := controller.SyncPlatform(context.Background(), "user-1", PlatformCoursera, "secret")
	require.NoError(t, err)
	assert.Empty(t, summary.Username)
	assert.Equal(t, 3, summary.Synced)
}

type failingReconciler struct{}

func (failingReconciler) Reconcile(ctx context.Context, userID string) (*Resume, error) {
	return nil, errors.New("disk full")
}

func TestSyncPlatform_ReconcileFailure(t *testing.T) {
	f := newFixture(t)
	controller := New(
		f.integrationRepo,
		failingReconciler{},
		registry(t, allFixtures(), adapters.Options{}),
		nil,
		nil,
	)

	_, err := controller.SyncPlatform(context.Background(), "user-1", PlatformGitHub, "octo")
	require.ErrorIs(t, err, ErrReconcileFailed)
	assert.Contains(t, err.Error(), "disk full")

	// Records stay stored so the next reconcile can pick them up.
	assert.Equal(t, int64(3), f.countRecords(t))
}

func TestSyncAll_Fixtures(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(nil, registry(t, allFixtures(), adapters.Options{}))
	ctx := context.Background()

	summary, err := controller.SyncAll(ctx, "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, 9, summary.Synced)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, map[string]int{"coursera": 3, "github": 3, "devfolio": 3}, summary.Platforms)
	assert.Empty(t, summary.PlatformErrors)

	resume, err := f.resumeRepo.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, resume.Courses, 3)
	assert.Len(t, resume.Projects, 3)
	assert.Len(t, resume.Achievements, 3)

	again, err := controller.SyncAll(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 9, again.Synced)
	assert.Equal(t, int64(9), f.countRecords(t))
}

func TestSyncAll_PlatformFailureDoesNotBlockOthers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newFixture(t)
	all := registry(t, map[Platform]adapters.SourceMode{
		PlatformGitHub:   adapters.ModeFixture,
		PlatformCoursera: adapters.ModeLive,
		PlatformDevfolio: adapters.ModeLive,
	}, adapters.Options{DevfolioBaseURL: server.URL, HTTPClient: server.Client()})
	controller := f.controller(nil, all)

	summary, err := controller.SyncAll(context.Background(), "user-1", map[Platform]string{
		PlatformDevfolio: "builder",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Synced)
	assert.Equal(t, map[string]int{"github": 3}, summary.Platforms)
	require.Len(t, summary.PlatformErrors, 2)
	assert.Equal(t, "API key is required. Please provide your Coursera API key.", summary.PlatformErrors["coursera"].Message)
	assert.Equal(t, "You can add hackathon projects manually in Resume Builder", summary.PlatformErrors["devfolio"].Fallback)
}

func TestGetIntegrationData(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(nil, registry(t, allFixtures(), adapters.Options{}))
	ctx := context.Background()

	_, err := controller.SyncAll(ctx, "user-1", nil)
	require.NoError(t, err)

	data, err := controller.GetIntegrationData(ctx, "user-1")
	require.NoError(t, err)

	assert.Len(t, data.All, 9)
	assert.Equal(t, "AI for Everyone", data.All[0].Title)
	assert.Len(t, data.Grouped.Courses, 2)
	assert.Len(t, data.Grouped.Certifications, 1)
	assert.Len(t, data.Grouped.Hackathons, 2)
	assert.Len(t, data.Stats, 3)
}

func TestDeleteRecord(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(registry(t, allFixtures(), adapters.Options{}), nil)
	ctx := context.Background()

	summary, err := controller.SyncPlatform(ctx, "user-1", PlatformGitHub, "octo")
	require.NoError(t, err)
	target := summary.Records[0]

	require.ErrorIs(t, controller.DeleteRecord(ctx, "user-2", target.ID), repositories.ErrRecordNotFound)
	require.NoError(t, controller.DeleteRecord(ctx, "user-1", target.ID))
	require.ErrorIs(t, controller.DeleteRecord(ctx, "user-1", target.ID), repositories.ErrRecordNotFound)

	active, err := f.integrationRepo.ListActive(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	last := (*f.published)[len(*f.published)-1]
	assert.Equal(t, events.TypeIntegrationDeleted, last.Type)
	assert.Equal(t, target.ID, last.Data["id"])
}

func TestDeleteRecord_ResumeKeepsMergedEntry(t *testing.T) {
	f := newFixture(t)
	controller := f.controller(registry(t, allFixtures(), adapters.Options{}), nil)
	ctx := context.Background()

	summary, err := controller.SyncPlatform(ctx, "user-1", PlatformGitHub, "octo")
	require.NoError(t, err)
	target := summary.Records[0]

	before, err := f.resumeRepo.FindByUser(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, controller.DeleteRecord(ctx, "user-1", target.ID))

	active, err := f.integrationRepo.ListActive(ctx, "user-1")
	require.NoError(t, err)
	for _, record := range active {
		assert.NotEqual(t, target.ID, record.ID)
	}

	after, err := f.resumeRepo.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, before.Projects, after.Projects)
	assert.Equal(t, before.Achievements, after.Achievements)

	var titles []string
	for _, project := range after.Projects {
		titles = append(titles, project.Title)
	}
	for _, achievement := range after.Achievements {
		titles = append(titles, achievement.Title)
	}
	assert.Contains(t, titles, target.Title)
}
