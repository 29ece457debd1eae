package pool

import (
	"log/slog"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// quietLogger keeps expected warnings (pinning on small machines, task
// panics) out of the test output.
func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
