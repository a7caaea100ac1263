package store

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todoai-api/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. It signals absence, which is an expected outcome for lookups,
	// not a store failure.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// constraint before being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCorruptRecord is returned when a stored record cannot be decoded
	// back into a valid domain entity, e.g. a status or priority code
	// outside the defined set. Unlike ErrNotFound this is fatal for the
	// operation, but it stays scoped to the affected record so unrelated
	// concurrent requests keep working.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrTodoNotFound indicates that the requested todo does not exist.
	ErrTodoNotFound = fmt.Errorf("%w: todo", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCorruptRecordError checks if the error indicates a record that could
// not be decoded, including invalid enum codes surfaced by the domain.
func IsCorruptRecordError(err error) bool {
	return errors.Is(err, ErrCorruptRecord) ||
		errors.Is(err, domain.ErrInvalidStatusCode) ||
		errors.Is(err, domain.ErrInvalidPriorityCode)
}
