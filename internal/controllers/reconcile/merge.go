package reconcileController

import (
	"strings"

	. "resumehub/internal/models"
)

type Titled interface {
	GetTitle() string
}

// MergeByTitle appends incoming to existing and keeps the first entry for
// each case-insensitive title.
func MergeByTitle[T Titled](existing, incoming []T) []T {
	merged := make([]T, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, list := range [][]T{existing, incoming} {
		for _, entry := range list {
			key := strings.ToLower(entry.GetTitle())
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, entry)
		}
	}

	return merged
}

// Technologies flattens a record's metadata into "Language, tech, tech".
// An explicit technologies list wins over topics even when empty.
func Technologies(metadata Metadata) string {
	list, ok := metadata.Technologies()
	if !ok {
		list, _ = metadata.Topics()
	}

	parts := make([]string, 0, len(list)+1)
	if language, ok := metadata.Language(); ok {
		parts = append(parts, language)
	}
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			parts = append(parts, item)
		}
	}

	return strings.Join(parts, ", ")
}

type Sections struct {
	Courses      []Course
	Projects     []Project
	Achievements []Achievement
}

// Classify sorts records into resume sections. Blank titles and unknown data
// types are skipped.
func Classify(records []IntegrationRecord) Sections {
	sections := Sections{
		Courses:      []Course{},
		Projects:     []Project{},
		Achievements: []Achievement{},
	}

	for _, record := range records {
		if strings.TrimSpace(record.Title) == "" {
			continue
		}

		switch record.DataType {
		case DataTypeCourse, DataTypeCertification:
			sections.Courses = append(sections.Courses, Course{
				Title:          record.Title,
				Provider:       string(record.Platform),
				CompletionDate: record.Date,
				Certificate:    record.CertificateURL,
				Description:    record.Description,
			})
		case DataTypeProject:
			sections.Projects = append(sections.Projects, Project{
				Title:        record.Title,
				Description:  record.Description,
				Technologies: Technologies(record.Meta()),
				Link:         record.CertificateURL,
				Date:         record.Date,
			})
		case DataTypeHackathon, DataTypeAchievement:
			sections.Achievements = append(sections.Achievements, Achievement{
				Title:       record.Title,
				Description: record.Description,
				Date:        record.Date,
			})
		}
	}

	return sections
}
