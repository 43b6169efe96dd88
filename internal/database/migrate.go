package database

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

func migrationSource(dialect string) *migrate.EmbedFileSystemMigrationSource {
	root := "migrations/sqlite"
	if dialect == DialectPostgres {
		root = "migrations/postgres"
	}
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       root,
	}
}

// Migrate applies pending migrations and returns how many ran.
func (s *DB) Migrate() (int, error) {
	log := s.log.Function("Migrate")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	applied, err := migrate.Exec(sqlDB, s.Dialect, migrationSource(s.Dialect), migrate.Up)
	if err != nil {
		return 0, log.Err("failed to apply migrations", err, "dialect", s.Dialect)
	}

	log.Info("Applied migrations", "count", applied, "dialect", s.Dialect)
	return applied, nil
}

// Rollback reverts up to steps migrations, all of them when steps is 0.
func (s *DB) Rollback(steps int) (int, error) {
	log := s.log.Function("Rollback")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	reverted, err := migrate.ExecMax(
		sqlDB,
		s.Dialect,
		migrationSource(s.Dialect),
		migrate.Down,
		steps,
	)
	if err != nil {
		return 0, log.Err("failed to roll back migrations", err, "dialect", s.Dialect)
	}

	log.Info("Rolled back migrations", "count", reverted, "dialect", s.Dialect)
	return reverted, nil
}

type MigrationStatus struct {
	ID      string
	Applied bool
}

func (s *DB) MigrationStatus() ([]MigrationStatus, error) {
	log := s.log.Function("MigrationStatus")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return nil, log.Err("failed to get database from GORM", err)
	}

	migrations, err := migrationSource(s.Dialect).FindMigrations()
	if err != nil {
		return nil, log.Err("failed to read migrations", err)
	}

	records, err := migrate.GetMigrationRecords(sqlDB, s.Dialect)
	if err != nil {
		return nil, log.Err("failed to read migration records", err)
	}

	applied := make(map[string]bool, len(records))
	for _, record := range records {
		applied[record.Id] = true
	}

	status := make([]MigrationStatus, 0, len(migrations))
	for _, migration := range migrations {
		status = append(status, MigrationStatus{ID: migration.Id, Applied: applied[migration.Id]})
	}
	return status, nil
}
