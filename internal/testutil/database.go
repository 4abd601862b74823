// Package testutil provides shared test fixtures: an in-memory store with
// schema and seeds applied, and a deterministic clock.
package testutil

import (
	"testing"

	"cctop-gen/internal/database"
)

// NewTestStore creates an in-memory SQLite store with the schema applied and
// the event types seeded. The store is automatically closed when the test
// completes.
func NewTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	store := database.NewSQLiteStoreFromDB(sqlDB)
	if err := store.SeedEventTypes(); err != nil {
		store.Close()
		t.Fatalf("failed to seed event types: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
