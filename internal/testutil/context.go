package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds quiz tests that do not pass their own timeout.
const DefaultTimeout = 5 * time.Second

// deadliner is implemented by *testing.T; testing.TB does not expose Deadline.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context cancelled at cleanup. When the test binary runs
// with -timeout, the context expires a second before the test would.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(deadliner); ok {
		if deadline, set := d.Deadline(); set {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
