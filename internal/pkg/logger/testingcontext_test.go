package logger

import (
	"context"
	"testing"
)

// testingContext stands in for testing.T.Context (Go 1.24+): it returns a
// context that is canceled when the test finishes.
func testingContext(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
