package main

import (
	"context"
	"log/slog"

	"podium/internal/domain/lifecycle"
	"podium/internal/errors"
	"podium/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Long:      `Apply (up), roll back the latest (down) or list (status) the embedded schema migrations.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE:      runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := postgres.MigrateUp
	if len(args) == 1 {
		direction = args[0]
	}

	var (
		db     *gorm.DB
		logger *slog.Logger
	)

	app := fx.New(
		injectInfra(),
		fx.Populate(&db, &logger),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start migration dependencies")
	}

	migrateErr := postgres.Migrate(ctx, db, direction)
	if migrateErr == nil {
		logger.Info("Migration finished", slog.String("direction", direction))
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer stopCancel()

	return errors.Join(migrateErr, app.Stop(stopCtx))
}
