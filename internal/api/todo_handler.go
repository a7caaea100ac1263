// Package api contains the HTTP handlers mapping the todo service's
// operations onto routes. The layer is intentionally thin: decode,
// validate, call the service, map errors to status codes.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/todoai-api/internal/api/shared"
	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/service"
)

// CreateTodoRequest represents the request body for creating a new todo.
// The description is the only input; everything else is derived or
// defaulted by the service.
type CreateTodoRequest struct {
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateTodoRequest represents the request body for partially updating a
// todo. Omitted fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress done aborted"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Deadline    *time.Time `json:"deadline"`
	Tags        *string    `json:"tags"`
}

// TodoResponse represents the response data for a todo
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Tags        string     `json:"tags"`
}

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoService service.TodoService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService service.TodoService, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoHandler{
		todoService: todoService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "todo_handler")),
	}
}

// CreateTodo handles POST /api/todos requests
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	todo, err := h.todoService.Create(r.Context(), req.Description)
	if err != nil {
		if errors.Is(err, service.ErrEmptyDescription) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Description cannot be empty")
			return
		}
		h.logger.Error("failed to create todo", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, todoToResponse(todo))
}

// GetTodo handles GET /api/todos/{id} requests
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todoService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed to get todo", "error", err, "todo_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get todo")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// ListTodos handles GET /api/todos requests
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list todos", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list todos")
		return
	}

	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, todoToResponse(todo))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateTodo handles PATCH /api/todos/{id} requests
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	todo, err := h.todoService.Update(r.Context(), id, req.toPatch())
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed to update todo", "error", err, "todo_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// DeleteTodo handles DELETE /api/todos/{id} requests.
// Deleting an absent ID reports 404, but a repeated delete is harmless.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	deleted, err := h.todoService.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete todo", "error", err, "todo_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	if !deleted {
		shared.RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// todoID parses the id path parameter, responding with 400 on malformed
// input.
func (h *TodoHandler) todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return uuid.Nil, false
	}
	return id, true
}

// toPatch converts the request DTO into a domain patch. The status and
// priority strings were validated against the enum sets already.
func (req UpdateTodoRequest) toPatch() domain.TodoPatch {
	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}
	return patch
}

// todoToResponse converts a domain.Todo to a TodoResponse
func todoToResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID.String(),
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Priority:    string(todo.Priority),
		CreatedAt:   todo.CreatedAt,
		Deadline:    todo.Deadline,
		Tags:        todo.Tags,
	}
}
