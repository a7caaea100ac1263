package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/phrazzld/todoai-api/internal/config"
	"github.com/phrazzld/todoai-api/migrations"
)

// setupGoose points goose at the embedded migration files.
func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// migrateUp applies all pending migrations. It runs on every server start
// so a fresh database is usable without a separate migration step.
func migrateUp(db *sql.DB, logger *slog.Logger) error {
	if err := setupGoose(); err != nil {
		return err
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("database migrations applied")
	return nil
}

// runMigrationCommand executes a one-off migration command (-migrate flag)
// against the configured database and exits without starting the server.
func runMigrationCommand(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("migration command %q requires a database URL", command)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("failed to close database", "error", closeErr)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := setupGoose(); err != nil {
		return err
	}

	logger.Info("running migration command", "command", command)

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}

	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}
