// Package testutil provides shared helpers for tests: context loggers with
// capturable output and goroutine leak verification.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wizzomafizzo/datasink/internal/logging"
)

// NewTestContext creates a context with a logger attached and a function to
// retrieve everything logged so far. The writer is synchronized so parallel
// subtests can share it.
func NewTestContext(t *testing.T) (ctx context.Context, getLogOutput func() string) {
	t.Helper()

	var logOutput strings.Builder
	syncWriter := zerolog.SyncWriter(&logOutput)

	ctx, _, err := logging.New(context.Background(), nil, logging.Config{
		Writer: syncWriter,
		Level:  zerolog.DebugLevel,
	})
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return ctx, logOutput.String
}
