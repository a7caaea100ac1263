package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCapturedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	attached, buf := newCapturedLogger()
	ctx := WithLogger(context.Background(), attached)

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	// A bare context yields the process default rather than nil.
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	attached, _ := newCapturedLogger()
	fallback, _ := newCapturedLogger()

	// Context logger wins over the fallback.
	ctx := WithLogger(context.Background(), attached)
	assert.Equal(t, attached, FromContextOrDefault(ctx, fallback))

	// Without one, the fallback is used.
	assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))

	// Without either, the process default steps in.
	assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
