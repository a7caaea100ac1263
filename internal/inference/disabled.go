package inference

import (
	"context"
	"time"

	"github.com/phrazzld/todoai-api/internal/domain"
)

// Disabled is the Inferrer used when no inference backend is configured.
// Every operation reports absence, so creation falls back to its defaults.
type Disabled struct{}

var _ Inferrer = Disabled{}

// InferTitle implements Inferrer.
func (Disabled) InferTitle(ctx context.Context, description string) (string, bool) {
	return "", false
}

// InferPriority implements Inferrer.
func (Disabled) InferPriority(ctx context.Context, description string) (domain.Priority, bool) {
	return "", false
}

// InferDeadline implements Inferrer.
func (Disabled) InferDeadline(ctx context.Context, description string) (time.Time, bool) {
	return time.Time{}, false
}

// InferTags implements Inferrer.
func (Disabled) InferTags(ctx context.Context, description string) (string, bool) {
	return "", false
}
