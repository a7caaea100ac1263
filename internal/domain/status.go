package domain

import "fmt"

// Status represents the lifecycle state of a todo.
type Status string

// Possible todo status values
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusAborted    Status = "aborted"
)

// statusCodes maps each status to its storage code. The mapping is
// bijective; both directions fail loudly on values outside the set.
var statusCodes = map[Status]int16{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusDone:       2,
	StatusAborted:    3,
}

// Code returns the small-integer storage code for the status.
// Returns ErrInvalidStatus if the status is not a defined variant.
func (s Status) Code() (int16, error) {
	code, ok := statusCodes[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return code, nil
}

// IsValid reports whether the status is one of the defined variants.
func (s Status) IsValid() bool {
	_, ok := statusCodes[s]
	return ok
}

// StatusFromCode decodes a storage code back into a Status.
// Returns ErrInvalidStatusCode for codes outside the defined set; callers
// should treat that as data corruption for the affected record, not as
// a recoverable absence.
func StatusFromCode(code int16) (Status, error) {
	for s, c := range statusCodes {
		if c == code {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %d", ErrInvalidStatusCode, code)
}
