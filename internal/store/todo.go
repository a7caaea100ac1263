package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todoai-api/internal/domain"
)

// TodoStore defines the interface for todo persistence.
//
// Absence of a record is reported through ErrTodoNotFound (or, for Delete,
// a false return), never by inventing zero values; any other error means
// the store itself failed and must be propagated by callers.
type TodoStore interface {
	// Create saves a new todo to the store. The todo carries its
	// ID and creation timestamp already; the store only persists them.
	// Returns validation errors from the domain Todo if data is invalid.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByID retrieves a todo by its unique ID.
	// Returns ErrTodoNotFound if the todo does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error)

	// GetAll retrieves every stored todo. Order follows creation time but
	// callers must not rely on it. Returns an empty slice when the store
	// is empty.
	GetAll(ctx context.Context) ([]*domain.Todo, error)

	// Update applies the patch to the stored todo and returns the updated
	// record. Returns ErrTodoNotFound if the todo does not exist; in that
	// case nothing is mutated.
	Update(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error)

	// Delete removes the todo if present and reports whether a record was
	// actually removed. Deleting an absent ID is not an error; it simply
	// returns false.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
