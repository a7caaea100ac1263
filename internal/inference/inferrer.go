// Package inference defines the boundary between the application core and
// external text-generation services. The boundary is strictly advisory:
// every operation reports absence instead of failure, so a broken or slow
// model can never break the caller.
package inference

import (
	"context"
	"time"

	"github.com/phrazzld/todoai-api/internal/domain"
)

// Inferrer derives semi-structured todo attributes from free-form
// description text.
//
// Each method issues one independent request and returns the derived value
// with ok=true, or the zero value with ok=false when the attribute could
// not be derived because the external call failed, timed out, or returned
// output outside the expected grammar. The operations are mutually
// independent and safe to run concurrently over the same input.
//
// Note the deliberate lack of an error return: implementations absorb
// transport and parse failures (logging them) rather than surfacing them.
type Inferrer interface {
	// InferTitle derives a short single-line title.
	InferTitle(ctx context.Context, description string) (string, bool)

	// InferPriority derives a priority from the closed low/medium/high set.
	InferPriority(ctx context.Context, description string) (domain.Priority, bool)

	// InferDeadline estimates a completion date.
	InferDeadline(ctx context.Context, description string) (time.Time, bool)

	// InferTags derives a free-text classification label.
	InferTags(ctx context.Context, description string) (string, bool)
}
