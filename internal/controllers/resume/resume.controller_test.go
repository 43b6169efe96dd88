package resumeController

import (
	"context"
	"path/filepath"
	"testing"

	"resumehub/config"
	"resumehub/internal/database"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"
	"resumehub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (*ResumeController, repositories.ResumeRepository) {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)

	resumeRepo := repositories.NewResume(db)
	return New(resumeRepo, services.NewTransactionService(db), services.NewMemoryUserLocker()), resumeRepo
}

func ptr[T any](v T) *T {
	return &v
}

func TestGetResume_NotFound(t *testing.T) {
	controller, _ := newController(t)

	_, err := controller.GetResume(context.Background(), "user-1")
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound)
}

func TestSaveResume_CreatesThenUpdatesOnlyGivenSections(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	created, err := controller.SaveResume(ctx, "user-1", SaveResumeRequest{
		PersonalInfo: &PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com"},
		Summary:      ptr("Engineer."),
		Skills:       &[]string{"Go", "SQL"},
		Projects:     &[]Project{{Title: "Engine"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.PersonalInfo.Name)

	updated, err := controller.SaveResume(ctx, "user-1", SaveResumeRequest{
		Summary: ptr("Mathematician."),
		Courses: &[]Course{{Title: "Analytical Engines", Provider: "manual"}},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Mathematician.", updated.Summary)
	assert.Equal(t, "ada@example.com", updated.PersonalInfo.Email)
	assert.Equal(t, []string{"Go", "SQL"}, []string(updated.Skills))
	require.Len(t, updated.Projects, 1)
	require.Len(t, updated.Courses, 1)

	stored, err := controller.GetResume(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Mathematician.", stored.Summary)
	assert.Equal(t, "Engine", stored.Projects[0].Title)
}

func TestSaveResume_DropsRepeatedTitles(t *testing.T) {
	controller, _ := newController(t)

	resume, err := controller.SaveResume(context.Background(), "user-1", SaveResumeRequest{
		Projects: &[]Project{
			{Title: "API Gateway", Description: "first"},
			{Title: "api gateway", Description: "second"},
		},
		Achievements: &[]Achievement{{Title: "Winner"}, {Title: "WINNER"}, {Title: "Finalist"}},
	})
	require.NoError(t, err)

	require.Len(t, resume.Projects, 1)
	assert.Equal(t, "first", resume.Projects[0].Description)
	assert.Len(t, resume.Achievements, 2)
}

func TestSaveResume_RejectsUntitledEntries(t *testing.T) {
	controller, resumeRepo := newController(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		request SaveResumeRequest
	}{
		{name: "project", request: SaveResumeRequest{Projects: &[]Project{{Description: "no title"}}}},
		{name: "course", request: SaveResumeRequest{Courses: &[]Course{{Provider: "Coursera"}}}},
		{name: "achievement", request: SaveResumeRequest{Achievements: &[]Achievement{{Date: "2024"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.SaveResume(ctx, "user-1", tt.request)
			assert.ErrorIs(t, err, ErrInvalidResume)
		})
	}

	_, err := resumeRepo.FindByUser(ctx, "user-1")
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound)
}

func TestDeleteResume(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	assert.ErrorIs(t, controller.DeleteResume(ctx, "user-1"), repositories.ErrResumeNotFound)

	_, err := controller.SaveResume(ctx, "user-1", SaveResumeRequest{Summary: ptr("x")})
	require.NoError(t, err)

	require.NoError(t, controller.DeleteResume(ctx, "user-1"))
	_, err = controller.GetResume(ctx, "user-1")
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound)
}

func TestGenerateSummary(t *testing.T) {
	tests := []struct {
		name     string
		request  GenerateSummaryRequest
		expected string
	}{
		{
			name:    "defaults only",
			request: GenerateSummaryRequest{},
			expected: "This professional is a passionate Software Developer. " +
				"Known for delivering high-quality solutions and staying current with industry trends.",
		},
		{
			name: "singular counts",
			request: GenerateSummaryRequest{
				Name:         "Ada Lovelace",
				Role:         "Backend Engineer",
				Skills:       []string{"Go"},
				Projects:     []Project{{Title: "a"}},
				Experience:   []Experience{{Company: "Acme"}},
				Courses:      []Course{{Title: "c"}},
				Achievements: []Achievement{{Title: "w"}},
			},
			expected: "Ada Lovelace is a passionate Backend Engineer with expertise in Go" +
				". With hands-on experience in 1 project" +
				" and 1 position of professional experience" +
				", Ada demonstrates continuous learning through 1 completed course" +
				" and has earned 1 notable achievement" +
				". Known for delivering high-quality solutions and staying current with industry trends.",
		},
		{
			name: "plural counts and top five skills",
			request: GenerateSummaryRequest{
				Name:     "Grace",
				Skills:   []string{"Go", "SQL", "Docker", "Kubernetes", "React", "Rust"},
				Projects: []Project{{Title: "a"}, {Title: "b"}},
				Courses:  []Course{{Title: "c"}, {Title: "d"}, {Title: "e"}},
			},
			expected: "Grace is a passionate Software Developer with expertise in Go, SQL, Docker, Kubernetes, React" +
				". With hands-on experience in 2 projects" +
				", Grace demonstrates continuous learning through 3 completed courses" +
				". Known for delivering high-quality solutions and staying current with industry trends.",
		},
		{
			name: "default name first word used for courses",
			request: GenerateSummaryRequest{
				Achievements: []Achievement{{Title: "a"}, {Title: "b"}},
				Courses:      []Course{{Title: "c"}},
			},
			expected: "This professional is a passionate Software Developer" +
				", This demonstrates continuous learning through 1 completed course" +
				" and has earned 2 notable achievements" +
				". Known for delivering high-quality solutions and staying current with industry trends.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSummary(tt.request))
		})
	}
}
