package adapters

import (
	"context"

	"resumehub/internal/models"
)

const courseraManualExport = "Coursera integration requires manual export. Please:\n" +
	"1. Go to coursera.org/account/accomplishments\n" +
	"2. Export your certificates\n" +
	"3. Use the manual upload feature to add courses"

var courseraSteps = []string{
	"Go to coursera.org/account/accomplishments",
	"Download your certificates",
	"Add courses manually in Resume Builder",
}

// CourseraAdapter has no public API to call. Every fetch fails with manual
// export instructions.
type CourseraAdapter struct{}

func NewCourseraAdapter() *CourseraAdapter {
	return &CourseraAdapter{}
}

func (a *CourseraAdapter) Platform() models.Platform {
	return models.PlatformCoursera
}

func (a *CourseraAdapter) Fetch(ctx context.Context, apiKey string) ([]models.IntegrationRecord, error) {
	return nil, &AdapterError{
		Platform: models.PlatformCoursera,
		Message:  courseraManualExport,
		Instructions: &Instructions{
			Manual: true,
			Steps:  append([]string(nil), courseraSteps...),
		},
	}
}
