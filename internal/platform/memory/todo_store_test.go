package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/store"
)

func newTestTodo(t *testing.T, title string) *domain.Todo {
	t.Helper()
	todo, err := domain.NewTodo(title, title+" description", domain.PriorityMedium, nil, "")
	require.NoError(t, err)
	return todo
}

func TestCreateAndGetByIDRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	todo := newTestTodo(t, "Round trip")
	require.NoError(t, s.Create(ctx, todo))

	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo, got)

	// The store holds a copy; mutating the original must not leak in.
	todo.Title = "mutated"
	got, err = s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Round trip", got.Title)
}

func TestGetByIDAbsent(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

func TestCreateDuplicateID(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	todo := newTestTodo(t, "Original")
	require.NoError(t, s.Create(ctx, todo))
	assert.ErrorIs(t, s.Create(ctx, todo), store.ErrDuplicate)
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	todo := newTestTodo(t, "Delete me")
	require.NoError(t, s.Create(ctx, todo))

	deleted, err := s.Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, store.ErrTodoNotFound)

	// Second delete reports false without an error.
	deleted, err = s.Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

func TestUpdateAppliesPatch(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	todo := newTestTodo(t, "Before update")
	require.NoError(t, s.Create(ctx, todo))

	newTitle := "After update"
	newStatus := domain.StatusDone
	updated, err := s.Update(ctx, todo.ID, domain.TodoPatch{
		Title:  &newTitle,
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, todo.Description, updated.Description)

	// The update is visible to subsequent reads.
	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateAbsentLeavesStoreUntouched(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newTestTodo(t, "Bystander")))

	before, err := s.GetAll(ctx)
	require.NoError(t, err)

	title := "No target"
	_, err = s.Update(ctx, uuid.New(), domain.TodoPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrTodoNotFound)

	after, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	todo := newTestTodo(t, "Valid")
	require.NoError(t, s.Create(ctx, todo))

	badStatus := domain.Status("paused")
	_, err := s.Update(ctx, todo.ID, domain.TodoPatch{Status: &badStatus})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestGetAllSortedByCreation(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	first := newTestTodo(t, "First")
	second := newTestTodo(t, "Second")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	// Insert out of order; GetAll sorts by creation time.
	require.NoError(t, s.Create(ctx, second))
	require.NoError(t, s.Create(ctx, first))

	todos, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "First", todos[0].Title)
	assert.Equal(t, "Second", todos[1].Title)
}

func TestGetAllEmpty(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()

	todos, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestConcurrentCreates(t *testing.T) {
	t.Parallel()
	s := NewTodoStore()
	ctx := context.Background()

	const writers = 16
	todos := make([]*domain.Todo, writers)
	for i := range todos {
		todos[i] = newTestTodo(t, "Concurrent")
	}

	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Create(ctx, todos[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}

	todos, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, writers)

	ids := make(map[uuid.UUID]struct{}, writers)
	for _, todo := range todos {
		ids[todo.ID] = struct{}{}
	}
	assert.Len(t, ids, writers, "all ids must be distinct")
}
