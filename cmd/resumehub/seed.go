package main

import (
	"resumehub/cmd/migration/initialize"
	"resumehub/cmd/migration/seed"
	"resumehub/internal/app"
	"resumehub/internal/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo resume and sync the built-in fixture records",
	RunE:  runSeed,
}

var seedUserID string

func init() {
	seedCmd.Flags().StringVarP(&seedUserID, "user", "u", seed.DemoUserID, "User to seed")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	if application.Config.IsProduction() {
		return log.Function("seed").ErrMsg("refusing to seed a production database")
	}

	if _, err := initialize.InitializeTables(application.Database, log); err != nil {
		return err
	}

	return seed.Seed(cmd.Context(), application, seedUserID, log)
}
