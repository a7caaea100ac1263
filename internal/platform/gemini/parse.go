package gemini

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the only date format the deadline grammar accepts.
const dateLayout = "2006-01-02"

// parseSingleLine validates a response expected to be one non-empty line
// of text. Surrounding whitespace and quotes are stripped; anything
// spanning multiple lines is rejected, since that means the model ignored
// the output constraint.
func parseSingleLine(text string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(text), `"`)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty text", ErrInvalidResponse)
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return "", fmt.Errorf("%w: expected a single line, got %d bytes", ErrInvalidResponse, len(text))
	}
	return trimmed, nil
}

// parseDate parses a response expected to be exactly a YYYY-MM-DD date.
// The resulting time is midnight UTC of that date.
func parseDate(text string) (time.Time, error) {
	trimmed := strings.Trim(strings.TrimSpace(text), `"`)
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a %s date", ErrInvalidResponse, trimmed, dateLayout)
	}
	return t.UTC(), nil
}
