package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents a single task. Title, priority, deadline and tags are
// derived from the description at creation time; all of them plus status
// and the description itself are mutable afterwards. ID and CreatedAt are
// assigned once and never change.
type Todo struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Tags        string     `json:"tags"`
}

// TodoPatch describes a partial update to a todo. Nil fields are left
// unchanged. Note that a set deadline cannot be cleared through a patch;
// absence of a deadline is only expressible at creation time.
type TodoPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Tags        *string    `json:"tags,omitempty"`
}

// NewTodo creates a new Todo with the given resolved fields. It generates
// a new UUID, sets the status to pending and stamps the creation time.
// Returns an error if validation fails.
func NewTodo(title, description string, priority Priority, deadline *time.Time, tags string) (*Todo, error) {
	todo := &Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
		Deadline:    deadline,
		Tags:        tags,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// Validate checks if the Todo has valid data.
// Returns an error if any field fails validation.
func (t *Todo) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTodoID
	}

	if t.Title == "" {
		return ErrEmptyTodoTitle
	}

	if t.Description == "" {
		return ErrEmptyTodoDescription
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}

// Validate checks that every set field of the patch carries a valid value.
func (p *TodoPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return ErrEmptyTodoTitle
	}

	if p.Description != nil && *p.Description == "" {
		return ErrEmptyTodoDescription
	}

	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}

	if p.Priority != nil && !p.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}

// Apply returns a copy of the todo with the patch's set fields replacing
// the originals. ID and CreatedAt are never touched.
func (p *TodoPatch) Apply(todo Todo) Todo {
	if p.Title != nil {
		todo.Title = *p.Title
	}
	if p.Description != nil {
		todo.Description = *p.Description
	}
	if p.Status != nil {
		todo.Status = *p.Status
	}
	if p.Priority != nil {
		todo.Priority = *p.Priority
	}
	if p.Deadline != nil {
		todo.Deadline = p.Deadline
	}
	if p.Tags != nil {
		todo.Tags = *p.Tags
	}
	return todo
}
