package cli

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"movie-quiz/internal/config"
	pgmigrations "movie-quiz/internal/infra/postgres/migrations"
	sqlitemigrations "movie-quiz/internal/infra/sqlite/migrations"
	"movie-quiz/internal/logging"
)

// newMigrateCmd applies database migrations.
func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations (Postgres via bun, SQLite via goose)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), opts.cfg, logging.FromContext(cmd.Context()), status)
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "print SQLite migration status after applying")
	return cmd
}

func runMigrations(ctx context.Context, cfg config.Config, logger zerolog.Logger, status bool) error {
	ran := false
	if cfg.Postgres.URL != "" {
		if err := runPostgresMigrations(ctx, cfg.Postgres.URL, logger); err != nil {
			return err
		}
		ran = true
	}
	if cfg.Statistics.Store == config.StoreSQLite {
		if err := runSQLiteMigrations(cfg.SQLite.Path, logger, status); err != nil {
			return err
		}
		ran = true
	}
	if !ran {
		return fmt.Errorf("nothing to migrate: set postgres.url or use the sqlite statistics store")
	}
	return nil
}

func runPostgresMigrations(ctx context.Context, dsn string, logger zerolog.Logger) error {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logger.Info().Msg("postgres schema up to date")
		return nil
	}
	logger.Info().Str("group", group.String()).Msg("postgres migrations applied")
	return nil
}

func runSQLiteMigrations(path string, logger zerolog.Logger, status bool) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := sqlitemigrations.Run(db); err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("sqlite migrations applied")
	if status {
		return sqlitemigrations.Status(db)
	}
	return nil
}
