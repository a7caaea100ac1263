package domain

import (
	"fmt"
	"strings"
)

// Priority represents the urgency of a todo.
type Priority string

// Possible todo priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityCodes = map[Priority]int16{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
}

// Code returns the small-integer storage code for the priority.
// Returns ErrInvalidPriority if the priority is not a defined variant.
func (p Priority) Code() (int16, error) {
	code, ok := priorityCodes[p]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return code, nil
}

// IsValid reports whether the priority is one of the defined variants.
func (p Priority) IsValid() bool {
	_, ok := priorityCodes[p]
	return ok
}

// PriorityFromCode decodes a storage code back into a Priority.
// Returns ErrInvalidPriorityCode for codes outside the defined set.
func PriorityFromCode(code int16) (Priority, error) {
	for p, c := range priorityCodes {
		if c == code {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %d", ErrInvalidPriorityCode, code)
}

// ParsePriority parses a priority name, accepting any casing
// (e.g. "Low", "MEDIUM", "high"). Returns ErrInvalidPriority for
// anything outside the defined set.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}
