package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/inference"
)

// MockInferrer implements inference.Inferrer for testing
type MockInferrer struct {
	// Function fields for customizable behavior
	InferTitleFn    func(ctx context.Context, description string) (string, bool)
	InferPriorityFn func(ctx context.Context, description string) (domain.Priority, bool)
	InferDeadlineFn func(ctx context.Context, description string) (time.Time, bool)
	InferTagsFn     func(ctx context.Context, description string) (string, bool)

	// Default response values; the zero value means everything absent
	Title      string
	TitleOK    bool
	Priority   domain.Priority
	PriorityOK bool
	Deadline   time.Time
	DeadlineOK bool
	Tags       string
	TagsOK     bool

	// Call tracking for verification
	mu           sync.Mutex
	Descriptions []string
}

// Ensure MockInferrer implements the inference boundary
var _ inference.Inferrer = (*MockInferrer)(nil)

// record tracks the description passed to an inference call.
func (m *MockInferrer) record(description string) {
	m.mu.Lock()
	m.Descriptions = append(m.Descriptions, description)
	m.mu.Unlock()
}

// CallCount returns how many inference calls were made in total.
func (m *MockInferrer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Descriptions)
}

// InferTitle implements the inference.Inferrer interface
func (m *MockInferrer) InferTitle(ctx context.Context, description string) (string, bool) {
	m.record(description)
	if m.InferTitleFn != nil {
		return m.InferTitleFn(ctx, description)
	}
	return m.Title, m.TitleOK
}

// InferPriority implements the inference.Inferrer interface
func (m *MockInferrer) InferPriority(ctx context.Context, description string) (domain.Priority, bool) {
	m.record(description)
	if m.InferPriorityFn != nil {
		return m.InferPriorityFn(ctx, description)
	}
	return m.Priority, m.PriorityOK
}

// InferDeadline implements the inference.Inferrer interface
func (m *MockInferrer) InferDeadline(ctx context.Context, description string) (time.Time, bool) {
	m.record(description)
	if m.InferDeadlineFn != nil {
		return m.InferDeadlineFn(ctx, description)
	}
	return m.Deadline, m.DeadlineOK
}

// InferTags implements the inference.Inferrer interface
func (m *MockInferrer) InferTags(ctx context.Context, description string) (string, bool) {
	m.record(description)
	if m.InferTagsFn != nil {
		return m.InferTagsFn(ctx, description)
	}
	return m.Tags, m.TagsOK
}

// NewMockInferrerAllAbsent creates a MockInferrer whose every operation
// reports absence.
func NewMockInferrerAllAbsent() *MockInferrer {
	return &MockInferrer{}
}
