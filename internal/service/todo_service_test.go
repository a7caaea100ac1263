package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/mocks"
	"github.com/phrazzld/todoai-api/internal/store"
)

func newTestService(t *testing.T, todoStore store.TodoStore, inferrer *mocks.MockInferrer) TodoService {
	t.Helper()
	svc, err := NewTodoService(todoStore, inferrer, time.Second, nil)
	require.NoError(t, err)
	return svc
}

func TestNewTodoServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewTodoService(nil, mocks.NewMockInferrerAllAbsent(), time.Second, nil)
	assert.Error(t, err)

	_, err = NewTodoService(mocks.NewMockTodoStore(), nil, time.Second, nil)
	assert.Error(t, err)

	svc, err := NewTodoService(mocks.NewMockTodoStore(), mocks.NewMockInferrerAllAbsent(), 0, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestCreateWithAllInferenceAbsent(t *testing.T) {
	t.Parallel()
	todoStore := mocks.NewMockTodoStore()
	svc := newTestService(t, todoStore, mocks.NewMockInferrerAllAbsent())

	start := time.Now().UTC()
	todo, err := svc.Create(context.Background(), "Water the plants on the balcony")
	require.NoError(t, err)

	// Creation must succeed with well-defined defaults.
	assert.Equal(t, "Water the plants on the balcony", todo.Title)
	assert.Equal(t, "Water the plants on the balcony", todo.Description)
	assert.Equal(t, domain.StatusPending, todo.Status)
	assert.Equal(t, domain.PriorityMedium, todo.Priority)
	assert.Nil(t, todo.Deadline)
	assert.Empty(t, todo.Tags)
	assert.NotEqual(t, uuid.Nil, todo.ID)
	assert.False(t, todo.CreatedAt.Before(start))

	// The default todo is persisted, not just returned.
	stored, err := todoStore.GetByID(context.Background(), todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo, stored)
}

func TestCreateFallbackTitleTruncates(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, mocks.NewMockTodoStore(), mocks.NewMockInferrerAllAbsent())

	long := strings.Repeat("reorganize the storage room ", 10)
	todo, err := svc.Create(context.Background(), long)
	require.NoError(t, err)

	assert.NotEmpty(t, todo.Title)
	assert.LessOrEqual(t, len([]rune(todo.Title)), fallbackTitleLimit+1)

	// Only the first line feeds the fallback title.
	todo, err = svc.Create(context.Background(), "Call the dentist\nask about the invoice too")
	require.NoError(t, err)
	assert.Equal(t, "Call the dentist", todo.Title)
}

func TestCreateFallbackTitleSkipsLeadingBlankLines(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, mocks.NewMockTodoStore(), mocks.NewMockInferrerAllAbsent())

	// A description starting with blank lines is valid input; the fallback
	// title must come from the first line with content, never end up empty.
	todo, err := svc.Create(context.Background(), "\nBuy milk before the shop closes")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk before the shop closes", todo.Title)

	todo, err = svc.Create(context.Background(), "  \n\t\nRenew the passport\nbring photos")
	require.NoError(t, err)
	assert.Equal(t, "Renew the passport", todo.Title)
}

func TestCreateUsesInferredFields(t *testing.T) {
	t.Parallel()
	todoStore := mocks.NewMockTodoStore()
	inferrer := &mocks.MockInferrer{
		Title:      "Buy milk",
		TitleOK:    true,
		Priority:   domain.PriorityLow,
		PriorityOK: true,
		Tags:       "errand",
		TagsOK:     true,
		// Deadline deliberately absent.
	}
	svc := newTestService(t, todoStore, inferrer)

	start := time.Now().UTC()
	todo, err := svc.Create(context.Background(), "Buy milk")
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, domain.PriorityLow, todo.Priority)
	assert.Equal(t, "errand", todo.Tags)
	assert.Nil(t, todo.Deadline)
	assert.Equal(t, domain.StatusPending, todo.Status)
	assert.NotEqual(t, uuid.Nil, todo.ID)
	assert.False(t, todo.CreatedAt.Before(start))

	// One request per attribute, all with the original description.
	assert.Equal(t, 4, inferrer.CallCount())
	for _, desc := range inferrer.Descriptions {
		assert.Equal(t, "Buy milk", desc)
	}
}

func TestCreateUsesInferredDeadline(t *testing.T) {
	t.Parallel()
	deadline := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	inferrer := &mocks.MockInferrer{
		Deadline:   deadline,
		DeadlineOK: true,
	}
	svc := newTestService(t, mocks.NewMockTodoStore(), inferrer)

	todo, err := svc.Create(context.Background(), "File the quarterly report")
	require.NoError(t, err)
	require.NotNil(t, todo.Deadline)
	assert.True(t, todo.Deadline.Equal(deadline))
}

func TestCreateEmptyDescription(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, mocks.NewMockTodoStore(), mocks.NewMockInferrerAllAbsent())

	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestCreatePropagatesStoreErrors(t *testing.T) {
	t.Parallel()
	storeErr := errors.New("connection refused")
	todoStore := mocks.NewMockTodoStore()
	todoStore.CreateError = storeErr

	svc := newTestService(t, todoStore, mocks.NewMockInferrerAllAbsent())

	_, err := svc.Create(context.Background(), "Doomed todo")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)

	var svcErr *TodoServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_todo", svcErr.Operation)
}

func TestCreateSlowInferenceIsBounded(t *testing.T) {
	t.Parallel()
	inferrer := &mocks.MockInferrer{
		InferTitleFn: func(ctx context.Context, description string) (string, bool) {
			// Simulate a hung external call; the per-call timeout must
			// cut it off.
			<-ctx.Done()
			return "", false
		},
	}
	todoStore := mocks.NewMockTodoStore()
	svc, err := NewTodoService(todoStore, inferrer, 50*time.Millisecond, nil)
	require.NoError(t, err)

	start := time.Now()
	todo, err := svc.Create(context.Background(), "Renew the passport")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "Renew the passport", todo.Title)
}

func TestConcurrentCreatesProduceDistinctTodos(t *testing.T) {
	t.Parallel()
	todoStore := mocks.NewMockTodoStore()
	svc := newTestService(t, todoStore, mocks.NewMockInferrerAllAbsent())

	var wg sync.WaitGroup
	results := make([]*domain.Todo, 2)
	errs := make([]error, 2)
	descriptions := []string{"Wash the car", "Mow the lawn"}

	for i := range descriptions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Create(context.Background(), descriptions[i])
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, results[0].ID, results[1].ID)

	todos, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestGetByIDPassThrough(t *testing.T) {
	t.Parallel()
	todoStore := mocks.NewMockTodoStore()
	svc := newTestService(t, todoStore, mocks.NewMockInferrerAllAbsent())

	created, err := svc.Create(context.Background(), "Read a chapter")
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestUpdatePassThrough(t *testing.T) {
	t.Parallel()
	todoStore := mocks.NewMockTodoStore()
	svc := newTestService(t, todoStore, mocks.NewMockInferrerAllAbsent())

	created, err := svc.Create(context.Background(), "Draft the offer")
	require.NoError(t, err)

	newStatus := domain.StatusInProgress
	updated, err := svc.Update(context.Background(), created.ID, domain.TodoPatch{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)

	// Updating a missing id is absence, and nothing else changes.
	title := "ghost"
	_, err = svc.Update(context.Background(), uuid.New(), domain.TodoPatch{Title: &title})
	assert.ErrorIs(t, err, ErrTodoNotFound)

	todos, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, todos, 1)
	assert.Equal(t, domain.StatusInProgress, todos[0].Status)
}

func TestDeletePassThrough(t *testing.T) {
	t.Parallel()
	todoStore := mocks.NewMockTodoStore()
	svc := newTestService(t, todoStore, mocks.NewMockInferrerAllAbsent())

	created, err := svc.Create(context.Background(), "Cancel the subscription")
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestServiceErrorWrapping(t *testing.T) {
	t.Parallel()

	// Store-level absence maps to the service sentinel.
	err := newTodoServiceError("get_todo", "lookup failed", store.ErrTodoNotFound)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	// Other errors are wrapped with operation context.
	cause := errors.New("disk on fire")
	err = newTodoServiceError("list_todos", "scan failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list_todos")
	assert.Contains(t, err.Error(), "scan failed")

	assert.NoError(t, newTodoServiceError("noop", "no error", nil))
}
