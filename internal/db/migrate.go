package db

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/luppa-project/luppa/internal/util"
)

// RunMigrations applies all pending schema migrations against DATABASE_URL.
func RunMigrations() error {
	sourceURL := util.GetEnvString("MIGRATIONS_PATH", "file://internal/db/migrations")
	databaseURL := util.GetEnv("DATABASE_URL")

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
