package testutil

import (
	"context"
	"testing"
	"time"
)

// Context derives a cancellable context from the test's own context, which
// ends when the test finishes. A positive timeout also bounds it in time.
func Context(t testing.TB, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(t.Context(), timeout)
	} else {
		ctx, cancel = context.WithCancel(t.Context())
	}
	t.Cleanup(cancel)
	return ctx, cancel
}
