package postgres

import (
	"context"
	"database/sql"

	"podium/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// Migration directions accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// Migrate applies the embedded goose migrations against db. "down" rolls back one version.
func Migrate(ctx context.Context, db *gorm.DB, direction string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return migrateSQL(ctx, sqlDB, direction)
}

func migrateSQL(ctx context.Context, sqlDB *sql.DB, direction string) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	switch direction {
	case MigrateUp:
		err := goose.UpContext(ctx, sqlDB, ".")

		return errors.Wrap(err, "failed to apply migrations")
	case MigrateDown:
		err := goose.DownContext(ctx, sqlDB, ".")

		return errors.Wrap(err, "failed to roll back migration")
	case MigrateStatus:
		err := goose.StatusContext(ctx, sqlDB, ".")

		return errors.Wrap(err, "failed to read migration status")
	default:
		return errors.Errorf("unknown migration direction %q", direction)
	}
}
