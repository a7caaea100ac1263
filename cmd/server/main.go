// Package main implements the entry point for the todoai API server,
// which manages todos backed by PostgreSQL and derives their attributes
// from free-text descriptions through an LLM inference layer.
package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/phrazzld/todoai-api/internal/config"
	"github.com/phrazzld/todoai-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := runMigrationCommand(ctx, cfg, appLogger, *migrateCmd); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
