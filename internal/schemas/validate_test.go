package schemas

import (
	"testing"

	"resumehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name     string
		platform models.Platform
		metadata map[string]any
		field    string
	}{
		{
			name:     "github repository",
			platform: models.PlatformGitHub,
			metadata: map[string]any{
				"stars":     127,
				"forks":     34,
				"language":  "Go",
				"topics":    []string{"cli", "sync"},
				"isPrivate": false,
			},
		},
		{
			name:     "github null language",
			platform: models.PlatformGitHub,
			metadata: map[string]any{"language": nil, "topics": []string{}},
		},
		{
			name:     "github extra keys allowed",
			platform: models.PlatformGitHub,
			metadata: map[string]any{"contributions": 234, "pullRequests": 52},
		},
		{
			name:     "github negative stars",
			platform: models.PlatformGitHub,
			metadata: map[string]any{"stars": -1},
			field:    "stars",
		},
		{
			name:     "devfolio hackathon",
			platform: models.PlatformDevfolio,
			metadata: map[string]any{
				"position":     "Winner",
				"teamSize":     4,
				"technologies": []any{"React", "Python"},
			},
		},
		{
			name:     "devfolio technologies must be strings",
			platform: models.PlatformDevfolio,
			metadata: map[string]any{"technologies": []any{"React", 3}},
			field:    "technologies.1",
		},
		{
			name:     "coursera course",
			platform: models.PlatformCoursera,
			metadata: map[string]any{"instructor": "Andrew Ng", "grade": "98%"},
		},
		{
			name:     "topics must be an array on any platform",
			platform: models.PlatformUdemy,
			metadata: map[string]any{"topics": "go"},
			field:    "topics",
		},
		{
			name:     "language must be a string",
			platform: models.PlatformLinkedIn,
			metadata: map[string]any{"language": 42},
			field:    "language",
		},
		{
			name:     "nil metadata",
			platform: models.PlatformGitHub,
			metadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadata(tt.platform, tt.metadata)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Schema: "github",
		Errors: []FieldError{{Field: "stars", Message: "Must be greater than or equal to 0"}},
	}

	assert.Equal(t, "invalid github metadata: stars: Must be greater than or equal to 0", err.Error())
}
