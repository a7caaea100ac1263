package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/platform/logger"
	"github.com/phrazzld/todoai-api/internal/store"
)

// PostgresTodoStore implements the store.TodoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the
// TodoStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure PostgresTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*PostgresTodoStore)(nil)

const todoColumns = "id, title, description, status, priority, created_at, deadline, tags"

// rowScanner abstracts *sql.Row and *sql.Rows for scanTodo.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTodo reads one todos row and decodes the status and priority codes.
// A code outside the defined set is reported as store.ErrCorruptRecord.
func scanTodo(row rowScanner) (*domain.Todo, error) {
	var todo domain.Todo
	var statusCode, priorityCode int16
	var deadline sql.NullTime

	if err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&statusCode,
		&priorityCode,
		&todo.CreatedAt,
		&deadline,
		&todo.Tags,
	); err != nil {
		return nil, err
	}

	status, err := domain.StatusFromCode(statusCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrCorruptRecord, err)
	}
	priority, err := domain.PriorityFromCode(priorityCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrCorruptRecord, err)
	}

	todo.Status = status
	todo.Priority = priority
	if deadline.Valid {
		t := deadline.Time.UTC()
		todo.Deadline = &t
	}

	return &todo, nil
}

// Create implements store.TodoStore.Create
// It saves a new todo to the database, handling domain validation.
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return err
	}

	statusCode, err := todo.Status.Code()
	if err != nil {
		return err
	}
	priorityCode, err := todo.Priority.Code()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO todos (id, title, description, status, priority, created_at, deadline, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		todo.ID,
		todo.Title,
		todo.Description,
		statusCode,
		priorityCode,
		todo.CreatedAt,
		todo.Deadline,
		todo.Tags,
	)

	if err != nil {
		log.Error("failed to create todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return MapError(err)
	}

	log.Info("todo created successfully",
		slog.String("todo_id", todo.ID.String()),
		slog.String("status", string(todo.Status)),
		slog.String("priority", string(todo.Priority)))
	return nil
}

// GetByID implements store.TodoStore.GetByID
// Returns store.ErrTodoNotFound if the todo does not exist.
func (s *PostgresTodoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM todos WHERE id = $1`, todoColumns)

	todo, err := scanTodo(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found", slog.String("todo_id", id.String()))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return nil, MapError(err)
	}

	return todo, nil
}

// GetAll implements store.TodoStore.GetAll
// Rows come back in creation order, though callers must not rely on it.
func (s *PostgresTodoStore) GetAll(ctx context.Context) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM todos ORDER BY created_at`, todoColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list todos", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			if store.IsCorruptRecordError(err) {
				log.Error("corrupt todo row, aborting list", slog.String("error", err.Error()))
			} else {
				log.Error("failed to scan todo row", slog.String("error", err.Error()))
			}
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return todos, nil
}

// Update implements store.TodoStore.Update
// The patch collapses to a single UPDATE statement, so a concurrent update
// on the same row is simply last-writer-wins.
// Returns store.ErrTodoNotFound if the todo does not exist.
func (s *PostgresTodoStore) Update(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("patch validation failed during update",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return nil, err
	}

	// Encode the enum fields only when set; nil propagates into the
	// COALESCE as SQL NULL, leaving the column unchanged.
	var statusCode, priorityCode *int16
	if patch.Status != nil {
		code, err := patch.Status.Code()
		if err != nil {
			return nil, err
		}
		statusCode = &code
	}
	if patch.Priority != nil {
		code, err := patch.Priority.Code()
		if err != nil {
			return nil, err
		}
		priorityCode = &code
	}

	query := fmt.Sprintf(`
		UPDATE todos
		SET title = COALESCE($2::text, title),
		    description = COALESCE($3::text, description),
		    status = COALESCE($4::smallint, status),
		    priority = COALESCE($5::smallint, priority),
		    deadline = COALESCE($6::timestamptz, deadline),
		    tags = COALESCE($7::text, tags)
		WHERE id = $1
		RETURNING %s
	`, todoColumns)

	todo, err := scanTodo(s.db.QueryRowContext(
		ctx,
		query,
		id,
		patch.Title,
		patch.Description,
		statusCode,
		priorityCode,
		patch.Deadline,
		patch.Tags,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found for update", slog.String("todo_id", id.String()))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to update todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("todo updated successfully", slog.String("todo_id", id.String()))
	return todo, nil
}

// Delete implements store.TodoStore.Delete
// It reports whether a record was actually removed; deleting an absent ID
// returns false without an error.
func (s *PostgresTodoStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		log.Debug("no todo found to delete", slog.String("todo_id", id.String()))
		return false, nil
	}

	log.Info("todo deleted successfully", slog.String("todo_id", id.String()))
	return true, nil
}
