package gemini

import "errors"

// Errors used internally by the Gemini inferrer. They never cross the
// inference boundary; the Inferrer methods absorb them into absent results.
var (
	// ErrEmptyDescription is returned when a prompt would be built from
	// empty description text.
	ErrEmptyDescription = errors.New("description text cannot be empty")

	// ErrInvalidResponse is returned when the model response is missing,
	// empty, or cannot be parsed under the expected grammar.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due
	// to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that persisted
	// through all retry attempts.
	ErrTransientFailure = errors.New("transient error calling language model")

	// ErrInvalidConfig is returned when the inferrer configuration is invalid.
	ErrInvalidConfig = errors.New("invalid inferrer configuration")
)
