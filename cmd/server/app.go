package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/todoai-api/internal/config"
	"github.com/phrazzld/todoai-api/internal/inference"
	"github.com/phrazzld/todoai-api/internal/platform/gemini"
	"github.com/phrazzld/todoai-api/internal/platform/memory"
	"github.com/phrazzld/todoai-api/internal/platform/postgres"
	"github.com/phrazzld/todoai-api/internal/service"
	"github.com/phrazzld/todoai-api/internal/store"
)

// dbPingTimeout bounds the startup connectivity check.
const dbPingTimeout = 5 * time.Second

// application holds the wired dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	todoService service.TodoService
}

// newApplication wires the application from its configuration: database
// (or the in-memory store when no URL is configured), migrations,
// inference backend, service layer.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	todoStore, err := app.setupStore(ctx)
	if err != nil {
		return nil, err
	}

	inferrer := app.setupInferrer(ctx)

	todoService, err := service.NewTodoService(todoStore, inferrer, cfg.LLM.Timeout(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo service: %w", err)
	}
	app.todoService = todoService

	return app, nil
}

// setupStore opens the PostgreSQL pool and applies pending migrations, or
// falls back to the in-memory store when no database URL is configured.
func (app *application) setupStore(ctx context.Context) (store.TodoStore, error) {
	if app.config.Database.URL == "" {
		app.logger.Warn("no database URL configured, using in-memory store")
		return memory.NewTodoStore(), nil
	}

	db, err := sql.Open("pgx", app.config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			app.logger.Warn("failed to close database after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrateUp(db, app.logger); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			app.logger.Warn("failed to close database after migration failure", "error", closeErr)
		}
		return nil, err
	}

	app.db = db
	app.logger.Info("database connection established")
	return postgres.NewPostgresTodoStore(db, app.logger), nil
}

// setupInferrer builds the Gemini inferrer, or the disabled one when no
// API key is configured. Inference is advisory, so a misconfigured
// inferrer downgrades to disabled instead of failing startup.
func (app *application) setupInferrer(ctx context.Context) inference.Inferrer {
	if app.config.LLM.GeminiAPIKey == "" {
		app.logger.Warn("no Gemini API key configured, inference disabled")
		return inference.Disabled{}
	}

	inferrer, err := gemini.NewGeminiInferrer(ctx, app.logger, app.config.LLM)
	if err != nil {
		app.logger.Error("failed to create Gemini inferrer, inference disabled", "error", err)
		return inference.Disabled{}
	}

	app.logger.Info("Gemini inference enabled", "model", app.config.LLM.ModelName)
	return inferrer
}

// startHTTPServer starts the HTTP server with graceful shutdown support.
// It blocks until the server stops, either through a shutdown signal or a
// listener failure.
func (app *application) startHTTPServer(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.setupRouter(),
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("shutdown signal received")
	case <-serverCtx.Done():
		app.logger.Info("server context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
