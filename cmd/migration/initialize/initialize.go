package initialize

import (
	"resumehub/internal/database"
	"resumehub/internal/logger"
)

// InitializeTables applies every pending migration for the configured dialect.
func InitializeTables(db database.DB, log logger.Logger) (int, error) {
	log = log.Function("InitializeTables")
	log.Info("Applying migrations", "dialect", db.Dialect)

	applied, err := db.Migrate()
	if err != nil {
		return 0, log.Err("failed to apply migrations", err, "dialect", db.Dialect)
	}

	log.Info("Table initialization complete", "applied", applied)
	return applied, nil
}
