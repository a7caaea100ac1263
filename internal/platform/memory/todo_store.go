// Package memory provides a mutex-guarded in-memory implementation of the
// todo store. It backs local development when no database is configured
// and serves as the swappable repository variant in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/store"
)

// TodoStore is an in-memory store.TodoStore backed by a map under a
// single coarse-grained mutex. The production PostgreSQL implementation
// relies on the database's own concurrency control instead; here the
// mutex provides the equivalent per-operation atomicity.
type TodoStore struct {
	mu    sync.RWMutex
	todos map[uuid.UUID]domain.Todo
}

// NewTodoStore creates an empty in-memory todo store.
func NewTodoStore() *TodoStore {
	return &TodoStore{
		todos: make(map[uuid.UUID]domain.Todo),
	}
}

// Ensure TodoStore implements store.TodoStore interface
var _ store.TodoStore = (*TodoStore)(nil)

// Create implements store.TodoStore.Create
func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if err := todo.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.ID]; exists {
		return store.ErrDuplicate
	}

	// Store a copy so later mutation of the caller's value cannot reach
	// past the store boundary.
	s.todos[todo.ID] = *todo
	return nil
}

// GetByID implements store.TodoStore.GetByID
func (s *TodoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, store.ErrTodoNotFound
	}

	return &todo, nil
}

// GetAll implements store.TodoStore.GetAll
// Results are sorted by creation time to match the PostgreSQL variant.
func (s *TodoStore) GetAll(ctx context.Context) ([]*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*domain.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		t := todo
		todos = append(todos, &t)
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})

	return todos, nil
}

// Update implements store.TodoStore.Update
func (s *TodoStore) Update(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.todos[id]
	if !exists {
		return nil, store.ErrTodoNotFound
	}

	updated := patch.Apply(current)
	s.todos[id] = updated

	return &updated, nil
}

// Delete implements store.TodoStore.Delete
func (s *TodoStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return false, nil
	}

	delete(s.todos, id)
	return true, nil
}
