package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyTodoID is returned when a todo ID is the nil UUID.
	ErrEmptyTodoID = errors.New("todo ID cannot be empty")

	// ErrEmptyTodoTitle is returned when a todo title is empty.
	ErrEmptyTodoTitle = errors.New("todo title cannot be empty")

	// ErrEmptyTodoDescription is returned when a todo description is empty.
	ErrEmptyTodoDescription = errors.New("todo description cannot be empty")

	// ErrInvalidStatus is returned when a status is not a defined variant.
	ErrInvalidStatus = errors.New("invalid todo status")

	// ErrInvalidPriority is returned when a priority is not a defined variant.
	ErrInvalidPriority = errors.New("invalid todo priority")

	// ErrInvalidStatusCode is returned when a stored status code does not
	// decode to any defined variant. This indicates a corrupt record.
	ErrInvalidStatusCode = errors.New("invalid todo status code")

	// ErrInvalidPriorityCode is returned when a stored priority code does
	// not decode to any defined variant. This indicates a corrupt record.
	ErrInvalidPriorityCode = errors.New("invalid todo priority code")
)
