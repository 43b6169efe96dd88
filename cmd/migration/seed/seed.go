package seed

import (
	"context"
	"errors"

	"resumehub/internal/adapters"
	"resumehub/internal/app"
	integrationController "resumehub/internal/controllers/integration"
	"resumehub/internal/logger"
	. "resumehub/internal/models"
	"resumehub/internal/repositories"

	"gorm.io/datatypes"
)

const DemoUserID = "demo-user"

func demoResume(userID string) *Resume {
	resume := EmptyResume(userID)
	resume.PersonalInfo = PersonalInfo{
		Name:     "Ada Lovelace",
		Email:    "ada.lovelace@example.com",
		Location: "London, UK",
		Github:   "https://github.com/ada",
	}
	resume.Summary = "Engineer focused on analytical engines and the programs that run on them."
	resume.Skills = datatypes.JSONSlice[string]{"Go", "PostgreSQL", "Distributed Systems"}
	resume.Experience = datatypes.JSONSlice[Experience]{{
		Company:     "Analytical Engines Ltd",
		Position:    "Lead Programmer",
		StartDate:   "2021-01",
		Current:     true,
		Description: "Designed the first published algorithm for the engine.",
	}}
	resume.Education = datatypes.JSONSlice[Education]{{
		Institution: "University of London",
		Degree:      "BSc",
		Field:       "Mathematics",
		StartDate:   "2016-09",
		EndDate:     "2020-06",
	}}
	// Same title as a GitHub fixture record, so the seeded entry wins the merge.
	resume.Projects = datatypes.JSONSlice[Project]{{
		Title:        "AI Resume Builder",
		Description:  "Hand written description kept over the imported one.",
		Technologies: "Go, React",
	}}
	return resume
}

// Seed creates the demo resume when missing and runs a sync-all against the
// built-in fixtures, whatever sources the config selects.
func Seed(ctx context.Context, app *app.App, userID string, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data", "userID", userID)

	_, err := app.ResumeRepo.FindByUser(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrResumeNotFound):
		if err := app.ResumeRepo.CreateForUser(ctx, demoResume(userID)); err != nil {
			return log.Err("failed to create demo resume", err, "userID", userID)
		}
		log.Info("Seeded demo resume", "userID", userID)
	case err != nil:
		return log.Err("failed to look up resume", err, "userID", userID)
	default:
		log.Info("Resume already exists", "userID", userID)
	}

	fixtures, err := adapters.NewRegistry(map[Platform]adapters.SourceMode{
		PlatformGitHub:   adapters.ModeFixture,
		PlatformCoursera: adapters.ModeFixture,
		PlatformDevfolio: adapters.ModeFixture,
	}, adapters.Options{})
	if err != nil {
		return log.Err("failed to build fixture registry", err)
	}

	controller := integrationController.New(
		app.IntegrationRepo,
		app.ReconcileController,
		fixtures,
		fixtures,
		app.EventBus,
	)
	summary, err := controller.SyncAll(ctx, userID, nil)
	if err != nil {
		return log.Err("failed to sync fixtures", err, "userID", userID)
	}

	log.Info("Seeded integration records",
		"userID", userID,
		"synced", summary.Synced,
		"failed", summary.Failed,
	)
	return nil
}
