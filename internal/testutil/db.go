//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/folio/internal/adapter/postgres"
)

// SetupTestDB connects to the test database and applies the embedded migrations.
// It skips the test if TEST_DATABASE_URL is not set.
// Each call uses the same DB, so callers must isolate by unique ids.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	if err := postgres.Migrate(url); err != nil {
		t.Fatalf("migrate test DB: %v", err)
	}

	h := postgres.NewHandle(url, 4)
	pool, err := h.Acquire(context.Background())
	if err != nil {
		t.Fatalf("connect to test DB: %v", err)
	}

	t.Cleanup(h.Close)
	return pool
}
