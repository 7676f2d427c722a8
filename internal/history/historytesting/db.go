package historytesting

import (
	"testing"
	"time"

	"quizmaker/internal/history"
	"quizmaker/internal/testutil"
)

const defaultTimeout = 5 * time.Second

// Open opens an in-memory history database with the schema applied.
func Open(t testing.TB) *history.DB {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	db, err := history.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
