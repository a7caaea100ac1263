package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/store"
)

// MockTodoStore implements store.TodoStore for testing
type MockTodoStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, todo *domain.Todo) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	GetAllFn  func(ctx context.Context) ([]*domain.Todo, error)
	UpdateFn  func(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error)
	DeleteFn  func(ctx context.Context, id uuid.UUID) (bool, error)

	// Data for the default implementation
	mu    sync.Mutex
	Todos map[uuid.UUID]*domain.Todo

	// Errors returned by the default implementation when set
	CreateError error
	GetError    error
}

// NewMockTodoStore creates a new mock store with initialized defaults
func NewMockTodoStore() *MockTodoStore {
	return &MockTodoStore{
		Todos: make(map[uuid.UUID]*domain.Todo),
	}
}

// Ensure MockTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*MockTodoStore)(nil)

// Create implements the TodoStore interface
func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, todo)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Todos[todo.ID]; exists {
		return store.ErrDuplicate
	}

	copied := *todo
	m.Todos[todo.ID] = &copied
	return nil
}

// GetByID implements the TodoStore interface
func (m *MockTodoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	todo, exists := m.Todos[id]
	if !exists {
		return nil, store.ErrTodoNotFound
	}

	copied := *todo
	return &copied, nil
}

// GetAll implements the TodoStore interface
func (m *MockTodoStore) GetAll(ctx context.Context) ([]*domain.Todo, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	todos := make([]*domain.Todo, 0, len(m.Todos))
	for _, todo := range m.Todos {
		copied := *todo
		todos = append(todos, &copied)
	}
	return todos, nil
}

// Update implements the TodoStore interface
func (m *MockTodoStore) Update(ctx context.Context, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.Todos[id]
	if !exists {
		return nil, store.ErrTodoNotFound
	}

	updated := patch.Apply(*current)
	m.Todos[id] = &updated

	copied := updated
	return &copied, nil
}

// Delete implements the TodoStore interface
func (m *MockTodoStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Todos[id]; !exists {
		return false, nil
	}

	delete(m.Todos, id)
	return true, nil
}
