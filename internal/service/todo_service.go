package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/inference"
	"github.com/phrazzld/todoai-api/internal/store"
)

// TodoService provides task-level todo operations. It is the only
// component exposed to callers; it combines the inference boundary and
// the store without depending on any concrete implementation of either.
type TodoService interface {
	// Create derives title, priority, deadline and tags from the
	// description, substitutes defaults for whatever inference could not
	// provide, and persists the assembled todo. Inference can never fail
	// a creation; only persistence errors propagate.
	Create(ctx context.Context, description string) (*domain.Todo, error)

	// GetByID retrieves a todo. Returns ErrTodoNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error)

	// GetAll retrieves every todo.
	GetAll(ctx context.Context) ([]*domain.Todo, error)

	// Update applies a partial patch. Returns ErrTodoNotFound if absent.
	Update(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error)

	// Delete removes a todo, reporting whether a record was removed.
	// Deleting an absent ID returns false without an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Common sentinel errors for TodoService
var (
	// ErrTodoNotFound indicates that the todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrEmptyDescription indicates a create call without description text.
	ErrEmptyDescription = errors.New("description cannot be empty")
)

// TodoServiceError wraps errors from the todo service with context.
type TodoServiceError struct {
	// Operation is the operation that failed (e.g. "create_todo")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TodoServiceError.
func (e *TodoServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("todo service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("todo service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TodoServiceError) Unwrap() error {
	return e.Err
}

// newTodoServiceError wraps err with operation context. Known sentinel
// conditions are returned as service-level sentinels instead of wrapped,
// so callers can branch on them with errors.Is.
func newTodoServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) || errors.Is(err, ErrTodoNotFound) {
		return ErrTodoNotFound
	}

	return &TodoServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// fallbackTitleLimit bounds the title derived from the description when
// inference returns nothing.
const fallbackTitleLimit = 60

// todoServiceImpl implements the TodoService interface.
type todoServiceImpl struct {
	todoStore    store.TodoStore
	inferrer     inference.Inferrer
	inferTimeout time.Duration
	logger       *slog.Logger
}

// NewTodoService creates a new TodoService. inferTimeout bounds each of
// the four inference sub-calls during creation so a hung external call
// cannot block a create indefinitely.
// It returns an error if any of the required dependencies are nil.
func NewTodoService(
	todoStore store.TodoStore,
	inferrer inference.Inferrer,
	inferTimeout time.Duration,
	logger *slog.Logger,
) (TodoService, error) {
	if todoStore == nil {
		return nil, &TodoServiceError{
			Operation: "create_service",
			Message:   "todoStore cannot be nil",
		}
	}
	if inferrer == nil {
		return nil, &TodoServiceError{
			Operation: "create_service",
			Message:   "inferrer cannot be nil",
		}
	}
	if inferTimeout <= 0 {
		inferTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &todoServiceImpl{
		todoStore:    todoStore,
		inferrer:     inferrer,
		inferTimeout: inferTimeout,
		logger:       logger.With(slog.String("component", "todo_service")),
	}, nil
}

// inferredFields collects the results of the four concurrent inference
// calls. Each ok flag means the corresponding value was actually derived.
type inferredFields struct {
	title      string
	titleOK    bool
	priority   domain.Priority
	priorityOK bool
	deadline   time.Time
	deadlineOK bool
	tags       string
	tagsOK     bool
}

// Create implements TodoService.Create
func (s *todoServiceImpl) Create(ctx context.Context, description string) (*domain.Todo, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	fields := s.infer(ctx, description)

	title := fields.title
	if !fields.titleOK {
		title = fallbackTitle(description)
	}
	priority := fields.priority
	if !fields.priorityOK {
		priority = domain.PriorityMedium
	}
	var deadline *time.Time
	if fields.deadlineOK {
		deadline = &fields.deadline
	}
	var tags string
	if fields.tagsOK {
		tags = fields.tags
	}

	todo, err := domain.NewTodo(title, description, priority, deadline, tags)
	if err != nil {
		return nil, newTodoServiceError("create_todo", "failed to assemble todo", err)
	}

	if err := s.todoStore.Create(ctx, todo); err != nil {
		return nil, newTodoServiceError("create_todo", "failed to persist todo", err)
	}

	s.logger.InfoContext(ctx, "todo created",
		slog.String("todo_id", todo.ID.String()),
		slog.Bool("title_inferred", fields.titleOK),
		slog.Bool("priority_inferred", fields.priorityOK),
		slog.Bool("deadline_inferred", fields.deadlineOK),
		slog.Bool("tags_inferred", fields.tagsOK))

	return todo, nil
}

// infer fans the four inference calls out concurrently and joins them.
// The calls are independent reads of the same input, so ordering between
// them does not matter; each runs under its own timeout.
func (s *todoServiceImpl) infer(ctx context.Context, description string) inferredFields {
	var fields inferredFields
	var wg sync.WaitGroup

	run := func(fn func(ctx context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, s.inferTimeout)
			defer cancel()
			fn(callCtx)
		}()
	}

	run(func(ctx context.Context) {
		fields.title, fields.titleOK = s.inferrer.InferTitle(ctx, description)
	})
	run(func(ctx context.Context) {
		fields.priority, fields.priorityOK = s.inferrer.InferPriority(ctx, description)
	})
	run(func(ctx context.Context) {
		fields.deadline, fields.deadlineOK = s.inferrer.InferDeadline(ctx, description)
	})
	run(func(ctx context.Context) {
		fields.tags, fields.tagsOK = s.inferrer.InferTags(ctx, description)
	})

	wg.Wait()
	return fields
}

// fallbackTitle derives a title from the description itself: the first
// line of the trimmed text, truncated to fallbackTitleLimit runes. The
// caller guarantees the description is not blank, so the derived title is
// never empty either.
func fallbackTitle(description string) string {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(description), "\n", 2)[0])
	runes := []rune(line)
	if len(runes) <= fallbackTitleLimit {
		return line
	}
	return strings.TrimSpace(string(runes[:fallbackTitleLimit])) + "…"
}

// GetByID implements TodoService.GetByID
func (s *todoServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, id)
	if err != nil {
		return nil, newTodoServiceError("get_todo", "failed to get todo", err)
	}
	return todo, nil
}

// GetAll implements TodoService.GetAll
func (s *todoServiceImpl) GetAll(ctx context.Context) ([]*domain.Todo, error) {
	todos, err := s.todoStore.GetAll(ctx)
	if err != nil {
		return nil, newTodoServiceError("list_todos", "failed to list todos", err)
	}
	return todos, nil
}

// Update implements TodoService.Update
func (s *todoServiceImpl) Update(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := s.todoStore.Update(ctx, id, patch)
	if err != nil {
		return nil, newTodoServiceError("update_todo", "failed to update todo", err)
	}
	return todo, nil
}

// Delete implements TodoService.Delete
func (s *todoServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.todoStore.Delete(ctx, id)
	if err != nil {
		return false, newTodoServiceError("delete_todo", "failed to delete todo", err)
	}
	return deleted, nil
}
