package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todoai-api/internal/api"
	"github.com/phrazzld/todoai-api/internal/platform/logger"
)

// setupRouter creates and configures the application router with all
// routes and the stock middleware stack.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.requestLogger)
	r.Use(middleware.Recoverer)

	todoHandler := api.NewTodoHandler(app.todoService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Post("/", todoHandler.CreateTodo)
			r.Get("/", todoHandler.ListTodos)
			r.Get("/{id}", todoHandler.GetTodo)
			r.Patch("/{id}", todoHandler.UpdateTodo)
			r.Delete("/{id}", todoHandler.DeleteTodo)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// requestLogger attaches a request-scoped logger carrying the request ID
// to the context, so every layer below logs with the same correlation
// field.
func (app *application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := app.logger
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			reqLogger = reqLogger.With(slog.String("request_id", reqID))
		}
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), reqLogger)))
	})
}
