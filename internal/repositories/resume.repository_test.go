package repositories

import (
	"context"
	"testing"

	. "resumehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestResumeRepository_FindByUser_NotFound(t *testing.T) {
	repo := NewResume(newTestDB(t))

	resume, err := repo.FindByUser(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrResumeNotFound)
	assert.Nil(t, resume)
}

func TestResumeRepository_CreateAndSave(t *testing.T) {
	repo := NewResume(newTestDB(t))
	ctx := context.Background()

	resume := EmptyResume("user-1")
	resume.PersonalInfo = PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com"}
	resume.Skills = datatypes.JSONSlice[string]{"Go", "SQL"}
	require.NoError(t, repo.CreateForUser(ctx, resume))
	require.NotEmpty(t, resume.ID)

	found, err := repo.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, resume.ID, found.ID)
	assert.Equal(t, "Ada Lovelace", found.PersonalInfo.Name)
	assert.Equal(t, []string{"Go", "SQL"}, []string(found.Skills))
	assert.NotNil(t, found.Projects)
	assert.Empty(t, found.Projects)

	found.Projects = append(found.Projects, Project{Title: "resumehub", Technologies: "Go"})
	found.Summary = "Builds things."
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Projects, 1)
	assert.Equal(t, "resumehub", reloaded.Projects[0].Title)
	assert.Equal(t, "Builds things.", reloaded.Summary)
}

func TestResumeRepository_CreateForUser_OnePerUser(t *testing.T) {
	repo := NewResume(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateForUser(ctx, EmptyResume("user-1")))
	assert.Error(t, repo.CreateForUser(ctx, EmptyResume("user-1")))
	assert.Error(t, repo.CreateForUser(ctx, &Resume{}))
}

func TestResumeRepository_NilSectionsPersistAsEmpty(t *testing.T) {
	repo := NewResume(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateForUser(ctx, &Resume{UserID: "user-1"}))

	var raw string
	require.NoError(t, repo.(*resumeRepository).db.SQL.
		Raw("SELECT achievements FROM resumes WHERE user_id = ?", "user-1").
		Scan(&raw).Error)
	assert.Equal(t, "[]", raw)
}

func TestResumeRepository_Delete(t *testing.T) {
	repo := NewResume(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateForUser(ctx, EmptyResume("user-1")))
	require.NoError(t, repo.CreateForUser(ctx, EmptyResume("user-2")))

	deleted, err := repo.DeleteForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	all, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), all)
}
