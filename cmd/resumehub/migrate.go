package main

import (
	"fmt"

	"resumehub/cmd/migration/initialize"
	"resumehub/config"
	"resumehub/internal/database"
	"resumehub/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	RunE:  runMigrateDown,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE:  runMigrateStatus,
}

var migrateDownSteps int

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "Number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func openDatabase() (database.DB, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return database.DB{}, err
	}
	logger.Setup(cfg.GeneralEnvironment, cfg.GeneralLogLevel)

	return database.New(cfg)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	applied, err := initialize.InitializeTables(db, logger.New("main"))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
	return nil
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	if migrateDownSteps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rolledBack, err := db.Rollback(migrateDownSteps)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", rolledBack)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	statuses, err := db.MigrationStatus()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, status := range statuses {
		state := "pending"
		if status.Applied {
			state = "applied"
		}
		fmt.Fprintf(out, "%-40s %s\n", status.ID, state)
	}
	return nil
}
