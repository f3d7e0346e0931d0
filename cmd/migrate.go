package main

import (
	"context"
	root "taskmanager"
	"taskmanager/internal/config"
	"taskmanager/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand that applies database
// migrations to the latest version using goose.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if cfg.Storage.Driver != config.StorageDriverPostgres {
				logger.Info(ctx, "nothing to migrate", zap.String("driver", cfg.Storage.Driver))

				return
			}

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			goose.SetBaseFS(root.Migrations)

			if err := goose.SetDialect("postgres"); err != nil {
				logger.Fatal(ctx, "could not set goose dialect to postgres", zap.Error(err))
			}

			down, _ := cmd.Flags().GetBool("down")
			if down {
				if err := goose.DownContext(ctx, strg.DB, "migrations"); err != nil {
					logger.Fatal(ctx, "could not roll back pgsql", zap.Error(err))
				}
				logger.Info(ctx, "rolled back one migration")

				return
			}

			if err := goose.UpContext(ctx, strg.DB, "migrations"); err != nil {
				logger.Fatal(ctx, "could not migrate pgsql", zap.Error(err))
			}

			version, err := goose.GetDBVersionContext(ctx, strg.DB)
			if err != nil {
				logger.Warn(ctx, "could not read schema version", zap.Error(err))

				return
			}
			logger.Info(ctx, "database is up to date", zap.Int64("version", version))
		},
	}

	cmd.Flags().Bool("down", false, "Roll back the most recent migration instead")

	return cmd
}
